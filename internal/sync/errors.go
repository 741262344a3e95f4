package sync

import "errors"

// Stage sentinels. Each phase of a sync attempt wraps its failures with the
// matching sentinel so callers can tell where the attempt stopped.
var (
	// ErrRepoAcquisition indicates the target repository could not be
	// cloned or the sync branch could not be prepared
	ErrRepoAcquisition = errors.New("failed to acquire repository")

	// ErrRemoteConfig indicates the source remote could not be configured
	ErrRemoteConfig = errors.New("failed to configure source remote")

	// ErrFetch indicates the source branch could not be fetched
	ErrFetch = errors.New("failed to fetch source branch")

	// ErrIntegrationFatal indicates integration stopped on a failure that
	// is not a content conflict. Content conflicts are handled in place
	// and never surface through this sentinel.
	ErrIntegrationFatal = errors.New("integration failed")

	// ErrPush indicates the sync branch could not be pushed
	ErrPush = errors.New("failed to push sync branch")

	// ErrPullRequest indicates the pull request could not be reconciled
	ErrPullRequest = errors.New("failed to reconcile pull request")
)
