package sync

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/lsfreitas/repo-sync/internal/gh"
	"github.com/lsfreitas/repo-sync/internal/logging"
)

// PRReconciler converges the open pull request for a sync branch onto the
// desired state. Reconcile is idempotent: re-running a sync updates the
// existing pull request instead of opening a duplicate.
type PRReconciler struct {
	gh        gh.Client
	logger    *logrus.Logger
	logConfig *logging.LogConfig
}

// NewPRReconciler creates a reconciler backed by the given GitHub client
func NewPRReconciler(ghClient gh.Client, logger *logrus.Logger, logConfig *logging.LogConfig) *PRReconciler {
	return &PRReconciler{
		gh:        ghClient,
		logger:    logger,
		logConfig: logConfig,
	}
}

// Reconcile ensures an open pull request exists for req's head and base.
// When one already exists its body is refreshed and its number is returned;
// otherwise a new pull request is created, as a draft when req.Draft is set.
// The returned bool reports whether a pull request was created.
func (r *PRReconciler) Reconcile(ctx context.Context, repo string, req gh.PRRequest) (*gh.PR, bool, error) {
	entry := logging.WithStandardFields(r.logger, r.logConfig, logging.ComponentNames.Sync).
		WithField(logging.StandardFields.BranchName, req.Head)

	prs, err := r.gh.ListPRs(ctx, repo, req.Head, req.Base)
	if err != nil {
		return nil, false, err
	}

	if len(prs) > 0 {
		existing := prs[0]
		entry.WithField(logging.StandardFields.PRNumber, existing.Number).
			Info("Pull request already open, refreshing body")

		if err := r.gh.UpdatePR(ctx, repo, existing.Number, gh.PRUpdate{Body: &req.Body}); err != nil {
			return nil, false, err
		}

		existing.Body = req.Body
		return &existing, false, nil
	}

	pr, err := r.gh.CreatePR(ctx, repo, req)
	if err != nil {
		return nil, false, err
	}

	entry.WithFields(logrus.Fields{
		logging.StandardFields.PRNumber: pr.Number,
		"draft":                         req.Draft,
	}).Info("Pull request created")

	return pr, true, nil
}
