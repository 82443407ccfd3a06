package gitclient

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

var (
	ErrNoRepository        = errors.New("no Git repository detected")
	ErrEmptyMessage        = errors.New("commit message cannot be empty")
	ErrNothingStaged       = errors.New("no files staged for commit")
	ErrBranchExists        = errors.New("branch already exists")
	ErrBranchNotFound      = errors.New("branch not found")
	ErrInvalidBranchName   = errors.New("invalid branch name")
	ErrDeleteCurrentBranch = errors.New("cannot delete the current branch")
	ErrAlreadyOnBranch     = errors.New("already on branch")
	ErrDetachedHead        = errors.New("HEAD is detached")
)

var ownErrors = []error{
	ErrNoRepository,
	ErrEmptyMessage,
	ErrNothingStaged,
	ErrBranchExists,
	ErrBranchNotFound,
	ErrInvalidBranchName,
	ErrDeleteCurrentBranch,
	ErrAlreadyOnBranch,
}

// ExplainError turns an adapter error into a short message for the status
// bar.
func ExplainError(err error) string {
	if err == nil {
		return ""
	}
	for _, own := range ownErrors {
		if errors.Is(err, own) {
			return capitalize(err.Error())
		}
	}

	switch {
	case errors.Is(err, ErrDetachedHead):
		return "Cannot perform this operation on a detached HEAD. Check out a branch first."
	case errors.Is(err, git.ErrRepositoryNotExists):
		return "No Git repository detected"
	case errors.Is(err, git.ErrRemoteNotFound):
		return "Remote not found. Check 'git remote -v'."
	case errors.Is(err, git.ErrNonFastForwardUpdate):
		return "Remote has diverged. Only fast-forward pulls are supported."
	case errors.Is(err, git.ErrUnstagedChanges):
		return "Local changes would be overwritten. Commit or stash them first."
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		isSSHAuthFailure(err):
		return "Authentication failed. Check your SSH keys or Git credentials."
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return "Remote repository not found. Check the remote URL or network connectivity."
	case errors.Is(err, transport.ErrEmptyRemoteRepository):
		return "Remote repository is empty."
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		return "Reference not found. Make an initial commit or check the branch name."
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return "Repository is missing objects. Try 'git fsck --full'."
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "index") && strings.Contains(msg, "lock"):
		return "Git index is locked. Another Git operation may be running. Try again in a moment."
	case strings.Contains(msg, "conflict"):
		return "Merge conflicts detected. Resolve conflicts and commit manually."
	case strings.Contains(msg, "network"), strings.Contains(msg, "dial tcp"), strings.Contains(msg, "no such host"):
		return "Network error. Check your internet connection and remote URL."
	case strings.Contains(msg, "corrupt"):
		return "Repository data is corrupted. Try 'git fsck --full'."
	}
	return "Git error: " + err.Error()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
