package gh

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/lsfreitas/repo-sync/internal/logging"
)

// API rate limiting defaults. One request per second with a small burst is
// well under GitHub's secondary rate limits for authenticated CLI use.
const (
	defaultRequestsPerSecond = 1.0
	defaultBurstSize         = 3
)

// CommandRunner interface for executing system commands
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	RunWithInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, error)
}

// realCommandRunner executes actual system commands
type realCommandRunner struct {
	logger    *logrus.Logger
	logConfig *logging.LogConfig
	limiter   *rate.Limiter
	token     string
}

// NewCommandRunner creates a new command runner.
//
// Every invocation waits on a shared token-bucket limiter before touching
// the network. The wait honors context cancellation; there is no retry on
// rate-limit responses at this layer.
//
// When token is non-empty it is passed to the gh CLI through GH_TOKEN,
// overriding any stored credential.
func NewCommandRunner(logger *logrus.Logger, logConfig *logging.LogConfig, token string) CommandRunner {
	return &realCommandRunner{
		logger:    logger,
		logConfig: logConfig,
		limiter:   rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultBurstSize),
		token:     token,
	}
}

// Run executes a command and returns its output
func (r *realCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return r.RunWithInput(ctx, nil, name, args...)
}

// RunWithInput executes a command with input and returns its output.
//
// Detailed request/response logging is enabled by the --debug-api flag,
// including timing and response size.
func (r *realCommandRunner) RunWithInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if r.token != "" {
		cmd.Env = append(os.Environ(), "GH_TOKEN="+r.token)
	}

	logger := logging.WithStandardFields(r.logger, r.logConfig, logging.ComponentNames.API)

	debugAPI := r.logConfig != nil && r.logConfig.Debug.API
	if debugAPI {
		logger.WithFields(logrus.Fields{
			logging.StandardFields.Operation: logging.OperationTypes.APIRequest,
			"args":                           args,
			logging.StandardFields.Timestamp: time.Now().Format(time.RFC3339),
		}).Debug("GitHub CLI request")

		if input != nil {
			logger.WithFields(logrus.Fields{
				logging.StandardFields.ContentSize: len(input),
				"input":                            string(input),
			}).Trace("Request input")
		}
	} else if r.logger != nil && r.logger.IsLevelEnabled(logrus.DebugLevel) {
		r.logger.WithFields(logrus.Fields{
			"command": name,
			"args":    args,
		}).Debug("Executing command")
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if input != nil {
		cmd.Stdin = bytes.NewReader(input)
	}

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if debugAPI {
		logger.WithFields(logrus.Fields{
			logging.StandardFields.DurationMs:  duration.Milliseconds(),
			logging.StandardFields.ContentSize: stdout.Len(),
			logging.StandardFields.Error:       err,
		}).Debug("GitHub CLI response")

		if err == nil && stdout.Len() > 0 && stdout.Len() < 1024 {
			logger.WithField("response", stdout.String()).Trace("Response body")
		}
	}

	if err != nil {
		if stderr.Len() > 0 {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{
					logging.StandardFields.Component: logging.ComponentNames.API,
					"command":                        name,
					"args":                           args,
					"stderr":                         stderr.String(),
					logging.StandardFields.Status:    "failed",
				}).Error("Command failed")
			}
			return nil, &CommandError{
				Command: name,
				Args:    args,
				Stderr:  stderr.String(),
				Err:     err,
			}
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}

// CommandError provides detailed error information from command execution
type CommandError struct {
	Command string
	Args    []string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	return e.Stderr
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
