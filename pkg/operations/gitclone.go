package operations

import (
	"context"
	"time"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/filesystem"
	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
	"github.com/arthur-debert/polkadot/pkg/vcs"
)

// NameGitClone is the operation name of GitClone.
const NameGitClone = "gitclone"

type gitCloneEffect struct {
	source            string
	branch            string
	depth             int
	recurseSubmodules bool
	timeout           time.Duration
}

// GitClone clones the repository at source into the directory dest, checking
// out Branch (default "master"). A destination that already holds a
// repository is skipped.
func GitClone(dest, source string, opts ...Option) *pipeline.Operation {
	o := newOptions(opts)
	return pipeline.NewOperation(&gitCloneEffect{
		source:            source,
		branch:            o.branch,
		depth:             o.depth,
		recurseSubmodules: o.recurseSubmodules,
		timeout:           o.timeout,
	}, dest, o.deps...)
}

func (e *gitCloneEffect) Name() string { return NameGitClone }

func (e *gitCloneEffect) Args() []pipeline.Arg {
	args := []pipeline.Arg{
		{Name: "source", Value: e.source},
		{Name: "branch", Value: e.branch},
	}
	if e.depth > 0 {
		args = append(args, pipeline.Arg{Name: "depth", Value: e.depth})
	}
	if e.recurseSubmodules {
		args = append(args, pipeline.Arg{Name: "recurse_submodules", Value: true})
	}
	return args
}

func (e *gitCloneEffect) Apply(ctx *pipeline.Context, dest string, emit pipeline.Emit) error {
	logger := logging.GetLogger("operations.gitclone").With().
		Str("source", e.source).
		Str("dest", dest).
		Str("branch", e.branch).
		Logger()
	logger.Debug().Msg("git clone")

	skip := func() error {
		logger.Info().Msgf("skipped git clone, %s is not empty", dest)
		emit(pipeline.Record{
			Operation: NameGitClone,
			Path:      dest,
			Args:      e.Args(),
			Status:    pipeline.StatusSkipped,
			Message:   "destination not empty",
		})
		return nil
	}

	if occupied(ctx.FS(), dest) {
		return skip()
	}

	err := ctx.Cloner().Clone(context.Background(), e.source, dest, vcs.CloneOptions{
		Branch:            e.branch,
		Depth:             e.depth,
		RecurseSubmodules: e.recurseSubmodules,
		Timeout:           e.timeout,
	})
	if errors.IsErrorCode(err, errors.ErrCloneExists) {
		return skip()
	}
	if err != nil {
		return err
	}

	emit(pipeline.Record{Operation: NameGitClone, Path: dest, Args: e.Args(), Status: pipeline.StatusApplied})
	return nil
}

// occupied reports whether dest is a directory with at least one entry.
func occupied(fs filesystem.FS, dest string) bool {
	entries, err := fs.ReadDir(dest)
	return err == nil && len(entries) > 0
}
