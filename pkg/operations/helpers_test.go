package operations_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/arthur-debert/polkadot/pkg/fetch"
	"github.com/arthur-debert/polkadot/pkg/filesystem"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
	"github.com/arthur-debert/polkadot/pkg/testutil"
	"github.com/arthur-debert/polkadot/pkg/vcs"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	home    = testutil.MemoryHome
	workdir = testutil.MemoryWorkdir
)

// MockCloner implements vcs.Cloner for testing
type MockCloner struct {
	mock.Mock
}

func (m *MockCloner) Clone(ctx context.Context, url, dest string, opts vcs.CloneOptions) error {
	args := m.Called(url, dest, opts)
	return args.Error(0)
}

// MockFetcher implements fetch.Fetcher for testing
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(url)
	body, _ := args.Get(0).(io.ReadCloser)
	return body, args.Error(1)
}

type env struct {
	fs      filesystem.FS
	cloner  vcs.Cloner
	fetcher fetch.Fetcher
	dryRun  bool
	extras  map[string]string
}

func (e env) context(t *testing.T) *pipeline.Context {
	t.Helper()
	ctx, err := pipeline.NewContext(pipeline.ContextOptions{
		DryRun:           e.dryRun,
		HomeDirectory:    home,
		WorkingDirectory: workdir,
		FS:               e.fs,
		Cloner:           e.cloner,
		Fetcher:          e.fetcher,
		Extras:           e.extras,
	})
	require.NoError(t, err)
	return ctx
}

// run drives a single unit and collects its records.
func run(t *testing.T, ctx *pipeline.Context, u pipeline.Unit) ([]pipeline.Record, error) {
	t.Helper()
	var records []pipeline.Record
	err := pipeline.Drive(u, ctx, func(r pipeline.Record) {
		records = append(records, r)
	})
	return records, err
}

// captureLogs redirects the global logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	return testutil.CaptureLogs(t)
}
