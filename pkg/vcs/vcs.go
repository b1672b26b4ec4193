// Package vcs is the version control transport behind the gitclone operation.
package vcs

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// DefaultBranch is checked out when a clone names no branch.
const DefaultBranch = "master"

// CloneOptions are the transport specific knobs of a clone.
type CloneOptions struct {
	Branch            string
	Depth             int
	RecurseSubmodules bool
	Timeout           time.Duration
}

// Cloner clones a remote repository into a local directory.
// An existing repository at dest is reported with ErrCloneExists.
type Cloner interface {
	Clone(ctx context.Context, url, dest string, opts CloneOptions) error
}

// GitCloner clones with go-git, without needing a git binary.
type GitCloner struct {
	// Progress receives the remote's sideband output when set.
	Progress io.Writer
}

// NewGitCloner returns a GitCloner.
func NewGitCloner(progress io.Writer) *GitCloner {
	return &GitCloner{Progress: progress}
}

// Clone checks out opts.Branch of url into dest.
func (c *GitCloner) Clone(ctx context.Context, url, dest string, opts CloneOptions) error {
	logger := logging.GetLogger("vcs")

	branch := opts.Branch
	if branch == "" {
		branch = DefaultBranch
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	recurse := git.NoRecurseSubmodules
	if opts.RecurseSubmodules {
		recurse = git.DefaultSubmoduleRecursionDepth
	}

	logger.Debug().
		Str("url", url).
		Str("dest", dest).
		Str("branch", branch).
		Int("depth", opts.Depth).
		Msg("Cloning repository")

	_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:               url,
		ReferenceName:     plumbing.NewBranchReferenceName(branch),
		SingleBranch:      true,
		Depth:             opts.Depth,
		RecurseSubmodules: recurse,
		Progress:          c.Progress,
	})
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, git.ErrRepositoryAlreadyExists):
		return errors.Wrapf(err, errors.ErrCloneExists, "repository already exists in %s", dest)
	default:
		return errors.Wrapf(err, errors.ErrCloneFailed, "cannot clone %s into %s", url, dest)
	}
}
