package cli

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/arthur-debert/polkadot/pkg/config"
	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
	"github.com/arthur-debert/polkadot/pkg/ui"
)

type runOptions struct {
	configPath string
	dryRun     bool
	extras     []string
	output     string

	stdout io.Writer
	stderr io.Writer
}

// reportedError marks an error that was already rendered for the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r reportedError
	return stderrors.As(err, &r)
}

// run loads the configuration, drives every declared unit and renders the
// result. Contained failures do not make it fail.
func run(opts runOptions) error {
	logger := logging.GetLogger("cli.run")

	format, err := ui.ParseFormat(opts.output)
	if err != nil {
		return err
	}
	out, err := ui.NewRenderer(format, opts.stdout)
	if err != nil {
		return err
	}
	errOut, err := ui.NewRenderer(format, opts.stderr)
	if err != nil {
		return err
	}
	fail := func(err error) error {
		_ = errOut.RenderError(err)
		return reportedError{err}
	}

	extras, err := config.ParseExtras(opts.extras)
	if err != nil {
		return fail(err)
	}

	path := opts.configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fail(err)
		}
		if path, err = config.Find(cwd); err != nil {
			return fail(err)
		}
	}

	f, err := config.Load(path)
	if err != nil {
		return fail(err)
	}
	units, err := config.Build(f)
	if err != nil {
		return fail(err)
	}
	ctx, err := pipeline.NewContext(f.ContextOptions(opts.dryRun, extras))
	if err != nil {
		return fail(err)
	}

	logger.Info().
		Str("config", f.Path).
		Int("units", len(units)).
		Bool("dryRun", ctx.DryRun()).
		Msg("Running configuration")

	driver := pipeline.NewDriver(pipeline.WithObserver(func(rec pipeline.Record) {
		logger.Info().Str("status", string(rec.Status)).Msg(rec.String())
	}))
	result, runErr := driver.Run(units, ctx)

	if err := out.RenderResult(result); err != nil {
		return err
	}
	if runErr != nil {
		return fail(runErr)
	}
	return nil
}
