package operations

import (
	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
)

// NameMkdir is the operation name of Mkdir.
const NameMkdir = "mkdir"

type mkdirEffect struct{}

// Mkdir creates dest and any missing parents. An existing directory is fine.
func Mkdir(dest string, opts ...Option) *pipeline.Operation {
	o := newOptions(opts)
	return pipeline.NewOperation(mkdirEffect{}, dest, o.deps...)
}

func (mkdirEffect) Name() string         { return NameMkdir }
func (mkdirEffect) Args() []pipeline.Arg { return nil }

func (mkdirEffect) Apply(ctx *pipeline.Context, dest string, emit pipeline.Emit) error {
	logger := logging.GetLogger("operations.mkdir")
	logger.Debug().Str("dest", dest).Msg("mkdir")

	if err := ctx.FS().MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dest)
	}
	emit(pipeline.Record{Operation: NameMkdir, Path: dest, Status: pipeline.StatusApplied})
	return nil
}
