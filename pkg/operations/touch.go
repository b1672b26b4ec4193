package operations

import (
	"os"
	"time"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
)

// NameTouch is the operation name of Touch.
const NameTouch = "touch"

type touchEffect struct{}

// Touch creates dest if it is missing and bumps its timestamps. Existing
// content is never truncated.
func Touch(dest string, opts ...Option) *pipeline.Operation {
	o := newOptions(opts)
	return pipeline.NewOperation(touchEffect{}, dest, o.deps...)
}

func (touchEffect) Name() string         { return NameTouch }
func (touchEffect) Args() []pipeline.Arg { return nil }

func (touchEffect) Apply(ctx *pipeline.Context, dest string, emit pipeline.Emit) error {
	logger := logging.GetLogger("operations.touch")
	logger.Debug().Str("dest", dest).Msg("touch")

	f, err := ctx.FS().OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot open %s", dest)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", dest)
	}

	now := time.Now()
	if err := ctx.FS().Chtimes(dest, now, now); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot set times on %s", dest)
	}

	emit(pipeline.Record{Operation: NameTouch, Path: dest, Status: pipeline.StatusApplied})
	return nil
}
