package operations

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/filesystem"
	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/arthur-debert/polkadot/pkg/matcher"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
)

// NameCopy is the operation name of Copy.
const NameCopy = "copy"

type copyEffect struct {
	source   string
	template bool
}

// Copy copies every file matching source (relative to the working directory)
// into the directory of dest, rendering it as a template unless Template(false).
// A wildcard source requires a wildcard dest, e.g. Copy(".vim/*", "vim/*").
func Copy(dest, source string, opts ...Option) *pipeline.Operation {
	o := newOptions(opts)
	return pipeline.NewOperation(&copyEffect{source: source, template: o.template}, dest, o.deps...)
}

func (e *copyEffect) Name() string { return NameCopy }

func (e *copyEffect) Args() []pipeline.Arg {
	return []pipeline.Arg{
		{Name: "source", Value: e.source},
		{Name: "template", Value: e.template},
	}
}

func (e *copyEffect) Apply(ctx *pipeline.Context, dest string, emit pipeline.Emit) error {
	logger := logging.GetLogger("operations.copy")

	if strings.HasSuffix(e.source, "*") && !strings.HasSuffix(dest, "*") {
		err := errors.New(errors.ErrCopyGlob, "globbed sources must be copied to a globbed directory").
			WithDetail("source", e.source).
			WithDetail("dest", dest)
		logger.Error().Str("source", e.source).Str("dest", dest).Msg("Globbed sources must be copied to a globbed directory")
		emit(pipeline.Record{
			Operation: NameCopy,
			Path:      dest,
			Args:      e.Args(),
			Status:    pipeline.StatusFailed,
			Message:   err.Error(),
		})
		return nil
	}

	destDir := filepath.Dir(dest)
	for source, err := range matcher.Match(ctx.FS(), e.source, ctx.WorkingDirectory()) {
		if err != nil {
			return err
		}

		realdest := filepath.Join(destDir, filepath.Base(source))
		logger.Debug().Str("source", source).Str("dest", realdest).Bool("template", e.template).Msg("copy")

		if e.template {
			if err := renderFile(ctx, source, realdest); err != nil {
				return err
			}
		} else if err := copyFile(ctx.FS(), ctx.Source(source), realdest); err != nil {
			return err
		}

		emit(pipeline.Record{
			Operation: NameCopy,
			Path:      realdest,
			Args:      []pipeline.Arg{{Name: "source", Value: source}, {Name: "template", Value: e.template}},
			Status:    pipeline.StatusApplied,
		})
	}
	return nil
}

// renderFile renders source with the whole context as data and writes it to dest.
func renderFile(ctx *pipeline.Context, source, dest string) error {
	output, err := ctx.Templates().Render(source, ctx.Namespace())
	if err != nil {
		return err
	}
	if err := ctx.FS().WriteFile(dest, []byte(output), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest)
	}
	return copyStat(ctx.FS(), ctx.Source(source), dest)
}

// copyFile copies bytes and metadata from source to dest.
func copyFile(fs filesystem.FS, source, dest string) error {
	in, err := fs.Open(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", source)
	}
	defer func() { _ = in.Close() }()

	out, err := fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dest)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot copy %s to %s", source, dest)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", dest)
	}
	return copyStat(fs, source, dest)
}

// copyStat copies permission bits and the modification time from source to dest.
func copyStat(fs filesystem.FS, source, dest string) error {
	info, err := fs.Stat(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", source)
	}
	if err := fs.Chmod(dest, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrChmod, "cannot chmod %s", dest)
	}
	if err := fs.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot set times on %s", dest)
	}
	return nil
}
