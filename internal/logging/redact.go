// Package logging provides redaction of sensitive data in log output.
//
// Tokens and credentials must never reach the log stream: the sync driver
// handles GitHub tokens (for authenticated push and the hosting API) and
// remote URLs that may embed credentials. Redaction is applied both through
// a logrus hook and via the manual RedactSensitive helper.
package logging

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// RedactionService handles sensitive data redaction for log output.
type RedactionService struct {
	githubTokenPatterns []*regexp.Regexp
	authHeaderPattern   *regexp.Regexp
	urlCredsPattern     *regexp.Regexp
	envSecretPattern    *regexp.Regexp
	sensitiveFields     []string
}

// NewRedactionService creates a redaction service with the patterns relevant
// to this tool: GitHub token formats, authorization headers, credentials
// embedded in remote URLs, and secret-bearing environment assignments.
func NewRedactionService() *RedactionService {
	return &RedactionService{
		githubTokenPatterns: []*regexp.Regexp{
			regexp.MustCompile(`ghp_[a-zA-Z0-9]{4,}`),         // GitHub personal tokens
			regexp.MustCompile(`ghs_[a-zA-Z0-9]{4,}`),         // GitHub app tokens
			regexp.MustCompile(`github_pat_[a-zA-Z0-9_]{4,}`), // New GitHub PAT format
			regexp.MustCompile(`ghr_[a-zA-Z0-9]{4,}`),         // GitHub refresh tokens
		},
		authHeaderPattern: regexp.MustCompile(`(Bearer|Token)\s+([^\s'"]+)`),
		urlCredsPattern:   regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`),
		envSecretPattern:  regexp.MustCompile(`([A-Z_]*(?:TOKEN|SECRET|KEY|PASSWORD)[A-Z_]*=)([^\s]+)`),
		sensitiveFields: []string{
			"password",
			"token",
			"secret",
			"api_key",
			"gh_token",
			"github_token",
			"authorization",
			"credentials",
		},
	}
}

// RedactSensitive removes sensitive data from text using pattern matching.
//
// GitHub tokens keep their prefix so the token type remains visible in logs;
// everything else is replaced wholesale.
func (r *RedactionService) RedactSensitive(text string) string {
	for _, pattern := range r.githubTokenPatterns {
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			idx := strings.Index(match, "_")
			return match[:idx+1] + "***REDACTED***"
		})
	}

	text = r.authHeaderPattern.ReplaceAllString(text, "$1 ***REDACTED***")
	text = r.urlCredsPattern.ReplaceAllString(text, "://$1:***REDACTED***@")
	text = r.envSecretPattern.ReplaceAllString(text, "$1***REDACTED***")

	return text
}

// IsSensitiveField reports whether a structured log field name commonly
// carries secrets and should have its value redacted entirely.
func (r *RedactionService) IsSensitiveField(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range r.sensitiveFields {
		if lower == field || strings.HasSuffix(lower, "_"+field) {
			return true
		}
	}
	return false
}

// RedactionHook is a logrus hook that redacts sensitive data from every
// log entry's message and string fields before formatting.
type RedactionHook struct {
	service *RedactionService
}

// CreateHook returns a logrus hook backed by this redaction service.
func (r *RedactionService) CreateHook() *RedactionHook {
	return &RedactionHook{service: r}
}

// Levels returns all log levels; redaction applies everywhere.
func (h *RedactionHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire redacts the entry message and any string field values in place.
func (h *RedactionHook) Fire(entry *logrus.Entry) error {
	entry.Message = h.service.RedactSensitive(entry.Message)

	for key, value := range entry.Data {
		if h.service.IsSensitiveField(key) {
			entry.Data[key] = "***REDACTED***"
			continue
		}
		if str, ok := value.(string); ok {
			entry.Data[key] = h.service.RedactSensitive(str)
		}
	}

	return nil
}
