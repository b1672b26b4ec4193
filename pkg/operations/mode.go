package operations

import (
	"os"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
)

// NameMode is the operation name of Mode.
const NameMode = "mode"

type modeEffect struct {
	mode os.FileMode
}

// Mode sets the permission bits of dest. Use FileModeFromOctal for values
// such as 04755 that carry special bits.
func Mode(dest string, mode os.FileMode, opts ...Option) *pipeline.Operation {
	o := newOptions(opts)
	return pipeline.NewOperation(modeEffect{mode: mode}, dest, o.deps...)
}

func (modeEffect) Name() string { return NameMode }

func (e modeEffect) Args() []pipeline.Arg {
	return []pipeline.Arg{{Name: "mode", Value: octal(e.mode)}}
}

func (e modeEffect) Apply(ctx *pipeline.Context, dest string, emit pipeline.Emit) error {
	logger := logging.GetLogger("operations.mode")
	logger.Debug().Str("dest", dest).Str("mode", octal(e.mode)).Msg("chmod")

	if err := ctx.FS().Chmod(dest, e.mode); err != nil {
		return errors.Wrapf(err, errors.ErrChmod, "cannot chmod %s to %s", dest, octal(e.mode))
	}
	emit(pipeline.Record{Operation: NameMode, Path: dest, Args: e.Args(), Status: pipeline.StatusApplied})
	return nil
}
