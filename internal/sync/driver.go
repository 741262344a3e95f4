package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lsfreitas/repo-sync/internal/config"
	"github.com/lsfreitas/repo-sync/internal/gh"
	"github.com/lsfreitas/repo-sync/internal/git"
	"github.com/lsfreitas/repo-sync/internal/logging"
)

// Outcome is the terminal state of a sync attempt
type Outcome string

// Terminal outcomes of Driver.Run
const (
	// OutcomeNoChanges means the target already contains every source commit
	OutcomeNoChanges Outcome = "no_changes"

	// OutcomeDryRun means integration completed locally but nothing was
	// pushed or opened
	OutcomeDryRun Outcome = "dry_run"

	// OutcomePullRequestReady means an open pull request holds a clean
	// integration
	OutcomePullRequestReady Outcome = "pull_request_ready"

	// OutcomePullRequestDraft means the pull request was opened as a draft
	// because conflicting content was committed for manual resolution
	OutcomePullRequestDraft Outcome = "pull_request_draft"
)

// Result reports what a sync attempt produced
type Result struct {
	Outcome     Outcome
	SyncBranch  string
	Commits     []git.Commit
	Integration *IntegrationResult
	Summary     string
	PR          *gh.PR
	PRCreated   bool
}

// Driver runs a complete sync attempt from clone to pull request. A Driver
// is stateless between runs; every Run starts from a fresh clone.
type Driver struct {
	cfg       *config.Config
	git       git.Client
	gh        gh.Client
	logger    *logrus.Logger
	logConfig *logging.LogConfig

	// now is replaceable for deterministic branch names in tests
	now func() time.Time
}

// NewDriver creates a sync driver for a validated configuration
func NewDriver(cfg *config.Config, gitClient git.Client, ghClient gh.Client, logger *logrus.Logger, logConfig *logging.LogConfig) *Driver {
	return &Driver{
		cfg:       cfg,
		git:       gitClient,
		gh:        ghClient,
		logger:    logger,
		logConfig: logConfig,
		now:       time.Now,
	}
}

// Run executes one sync attempt. The workspace is cleaned up on every path,
// success or failure. Failures are wrapped with the stage sentinel of the
// phase that produced them.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	start := d.now()
	entry := logging.WithStandardFields(d.logger, d.logConfig, logging.ComponentNames.Sync).
		WithFields(logrus.Fields{
			logging.StandardFields.SourceRepo: d.cfg.Source.URL,
			logging.StandardFields.TargetRepo: d.cfg.Target.Repo,
			logging.StandardFields.Operation:  logging.OperationTypes.SyncExecute,
		})

	ws, err := AcquireWorkspace(ctx, d.git, d.logger, d.logConfig, d.cfg.Target.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRepoAcquisition, err)
	}
	defer ws.Cleanup(ctx)
	entry.WithField(logging.StandardFields.Status, "cloned").Debug("Target repository cloned")

	if err := ws.AddSourceRemote(ctx, d.cfg.Source.URL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteConfig, err)
	}

	if err := ws.FetchSource(ctx, d.cfg.Source.Branch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	entry.WithField(logging.StandardFields.Status, "fetched").Debug("Source branch fetched")

	syncBranch := d.cfg.SyncBranchName(d.now())
	if err := ws.EnsureSyncBranch(ctx, d.cfg.Target.Branch, syncBranch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRepoAcquisition, err)
	}

	result := &Result{SyncBranch: syncBranch}

	commits, err := ws.PendingCommits(ctx, d.cfg.Source.Branch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	result.Commits = commits

	if len(commits) == 0 {
		entry.Info("Target already contains every source commit")
		result.Outcome = OutcomeNoChanges
		return result, nil
	}

	entry.WithField(logging.StandardFields.CommitCount, len(commits)).Info("Integrating source commits")

	integrator, err := NewIntegrator(d.cfg.Sync.Strategy, d.git, d.logger, d.logConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntegrationFatal, err)
	}

	integration, err := integrator.Integrate(ctx, ws.RepoPath, SourceRef(d.cfg.Source.Branch), commits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntegrationFatal, err)
	}
	result.Integration = integration
	result.Summary = BuildSummary(d.cfg.Source.Repo, commits)

	if integration.Applied == 0 {
		entry.Info("Every pending commit was already applied")
		result.Outcome = OutcomeNoChanges
		return result, nil
	}

	if d.logConfig != nil && d.logConfig.DryRun {
		entry.WithField(logging.StandardFields.Status, "dry_run").
			Info("Dry run: skipping push and pull request")
		result.Outcome = OutcomeDryRun
		return result, nil
	}

	if err := ws.Push(ctx, syncBranch, d.cfg.Sync.ForcePush); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPush, err)
	}
	entry.WithField(logging.StandardFields.Status, "pushed").Debug("Sync branch pushed")

	reconciler := NewPRReconciler(d.gh, d.logger, d.logConfig)
	pr, created, err := reconciler.Reconcile(ctx, d.cfg.Target.Repo, gh.PRRequest{
		Title: d.prTitle(syncBranch),
		Body:  buildPRBody(result.Summary, integration),
		Head:  syncBranch,
		Base:  d.cfg.Target.Branch,
		Draft: integration.Conflicted,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPullRequest, err)
	}
	result.PR = pr
	result.PRCreated = created

	if integration.Conflicted {
		result.Outcome = OutcomePullRequestDraft
	} else {
		result.Outcome = OutcomePullRequestReady
	}

	entry.WithFields(logrus.Fields{
		logging.StandardFields.Status:     string(result.Outcome),
		logging.StandardFields.PRNumber:   pr.Number,
		logging.StandardFields.DurationMs: d.now().Sub(start).Milliseconds(),
	}).Info("Sync attempt complete")

	return result, nil
}

// prTitle returns the configured pull request title or a generated one
func (d *Driver) prTitle(syncBranch string) string {
	if d.cfg.Sync.PRTitle != "" {
		return d.cfg.Sync.PRTitle
	}

	source := d.cfg.Source.Repo
	if source == "" {
		source = d.cfg.Source.URL
	}

	return fmt.Sprintf("Sync %s (%s) into %s", source, syncBranch, d.cfg.Target.Branch)
}

// buildPRBody assembles the pull request body from the commit summary and,
// when conflicts were committed, a resolution warning listing them
func buildPRBody(summary string, integration *IntegrationResult) string {
	var b strings.Builder

	b.WriteString("## Synced commits\n\n")
	b.WriteString(summary)

	if integration.Skipped > 0 {
		fmt.Fprintf(&b, "\n%d commit(s) were skipped because their changes are already present.\n", integration.Skipped)
	}

	if integration.Conflicted {
		b.WriteString("\n## Conflicts\n\n")
		b.WriteString("Conflicting content was committed as-is and must be resolved before merging.\n")

		for _, sha := range integration.ConflictedSHAs {
			fmt.Fprintf(&b, "- %s\n", shortSHA(sha))
		}
	}

	return b.String()
}
