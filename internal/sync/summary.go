package sync

import (
	"fmt"
	"strings"

	"github.com/lsfreitas/repo-sync/internal/git"
)

// shortSHALength matches the abbreviation git uses in its own output
const shortSHALength = 7

// BuildSummary renders a markdown bullet list of the commits brought over,
// one line per commit, oldest first. When sourceRepo holds an owner/name
// path the short SHA links to the commit on github.com; otherwise the SHA is
// plain text. An empty commit list yields an empty string.
func BuildSummary(sourceRepo string, commits []git.Commit) string {
	if len(commits) == 0 {
		return ""
	}

	var b strings.Builder

	for _, commit := range commits {
		if sourceRepo != "" {
			fmt.Fprintf(&b, "- [%s](https://github.com/%s/commit/%s): %s\n",
				shortSHA(commit.SHA), sourceRepo, commit.SHA, commit.Message)
		} else {
			fmt.Fprintf(&b, "- %s: %s\n", shortSHA(commit.SHA), commit.Message)
		}
	}

	return b.String()
}

// shortSHA abbreviates a commit SHA for display
func shortSHA(sha string) string {
	if len(sha) <= shortSHALength {
		return sha
	}
	return sha[:shortSHALength]
}
