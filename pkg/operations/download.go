package operations

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
)

// NameDownload is the operation name of Download.
const NameDownload = "download"

// ChunkSize is the read size used when streaming a download to disk.
const ChunkSize = 1024

type downloadEffect struct {
	source string
}

// Download streams the body of an HTTP GET on source into dest. Transport,
// status and write failures are logged and reported as a failed record; they
// never stop the run.
func Download(dest, source string, opts ...Option) *pipeline.Operation {
	o := newOptions(opts)
	return pipeline.NewOperation(&downloadEffect{source: source}, dest, o.deps...)
}

func (e *downloadEffect) Name() string { return NameDownload }

func (e *downloadEffect) Args() []pipeline.Arg {
	return []pipeline.Arg{{Name: "source", Value: e.source}}
}

func (e *downloadEffect) Apply(ctx *pipeline.Context, dest string, emit pipeline.Emit) error {
	logger := logging.GetLogger("operations.download").With().
		Str("source", e.source).
		Str("dest", dest).
		Logger()
	logger.Debug().Msg("downloading file")

	written, err := e.fetch(ctx, dest)
	if err != nil {
		if !recoverable(err) {
			return err
		}
		logger.Error().
			Err(err).
			Str("code", string(errors.GetErrorCode(err))).
			Interface("details", errors.GetErrorDetails(err)).
			Int64("written", written).
			Msg("failed to download file")
		emit(pipeline.Record{
			Operation: NameDownload,
			Path:      dest,
			Args:      e.Args(),
			Status:    pipeline.StatusFailed,
			Message:   err.Error(),
		})
		return nil
	}

	emit(pipeline.Record{
		Operation: NameDownload,
		Path:      dest,
		Args:      e.Args(),
		Status:    pipeline.StatusApplied,
		Message:   fmt.Sprintf("%d bytes", written),
	})
	return nil
}

// fetch opens the response and the destination and streams one into the other.
// Both are closed before it returns.
func (e *downloadEffect) fetch(ctx *pipeline.Context, dest string) (int64, error) {
	body, err := ctx.Fetcher().Get(context.Background(), e.source)
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()

	out, err := ctx.FS().OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrDownloadWrite, "cannot create %s", dest)
	}

	written, err := copyChunks(out, body)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = errors.Wrapf(closeErr, errors.ErrDownloadWrite, "cannot close %s", dest)
	}
	return written, err
}

// copyChunks copies r to w in ChunkSize reads, skipping empty chunks.
func copyChunks(w io.Writer, r io.Reader) (int64, error) {
	buf := make([]byte, ChunkSize)
	var written int64
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			m, err := w.Write(buf[:n])
			written += int64(m)
			if err != nil {
				return written, errors.Wrap(err, errors.ErrDownloadWrite, "write failed")
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, errors.Wrap(readErr, errors.ErrDownloadTransport, "read failed")
		}
	}
}

// recoverable is the closed set of download failures that are contained.
func recoverable(err error) bool {
	switch {
	case errors.IsErrorCode(err, errors.ErrDownloadTransport),
		errors.IsErrorCode(err, errors.ErrDownloadStatus),
		errors.IsErrorCode(err, errors.ErrDownloadWrite):
		return true
	}
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr)
}
