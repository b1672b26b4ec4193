package operations_test

import (
	"os"
	"testing"
	"time"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/filesystem"
	"github.com/arthur-debert/polkadot/pkg/operations"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
	"github.com/arthur-debert/polkadot/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDotfiles(t *testing.T) filesystem.FS {
	t.Helper()
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll(home, 0755))
	testutil.CreateFileTree(t, fs, workdir, testutil.FileTree{
		"vimrc": "\" home is {{ .DOTFILES_HOME_DIRECTORY }}, user {{ .USER }}\n",
		"vim": testutil.FileTree{
			"colors":     testutil.FileTree{"dark.vim": "hi Normal ctermbg=black\n"},
			".netrwhist": "let g:netrw_dirhistmax = 10\n",
		},
		"raw.tmpl": "{{ .NOT_RENDERED }}",
	})
	require.NoError(t, fs.Chmod(workdir+"/vimrc", 0600))
	return fs
}

func TestCopyRendersTemplate(t *testing.T) {
	fs := newDotfiles(t)
	modTime := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes(workdir+"/vimrc", modTime, modTime))

	ctx := env{fs: fs, extras: map[string]string{"USER": "me"}}.context(t)
	records, err := run(t, ctx, operations.Copy(".vimrc", "vimrc"))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "/home/me/vimrc", records[0].Path)
	assert.Equal(t, pipeline.StatusApplied, records[0].Status)

	content, err := fs.ReadFile("/home/me/vimrc")
	require.NoError(t, err)
	assert.Equal(t, "\" home is /home/me, user me\n", string(content))

	info, err := fs.Stat("/home/me/vimrc")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(modTime))
}

func TestCopyGlobIntoDirectory(t *testing.T) {
	fs := newDotfiles(t)
	ctx := env{fs: fs}.context(t)

	records, err := run(t, ctx, operations.Copy(".vim/*", "vim/*", operations.Template(false)))
	require.NoError(t, err)

	var paths []string
	for _, r := range records {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{"/home/me/.vim/.netrwhist", "/home/me/.vim/dark.vim"}, paths)

	content, err := fs.ReadFile("/home/me/.vim/dark.vim")
	require.NoError(t, err)
	assert.Equal(t, "hi Normal ctermbg=black\n", string(content))
}

func TestCopyWithoutTemplateKeepsBytes(t *testing.T) {
	fs := newDotfiles(t)
	ctx := env{fs: fs}.context(t)

	_, err := run(t, ctx, operations.Copy("raw.tmpl", "raw.tmpl", operations.Template(false)))
	require.NoError(t, err)

	content, err := fs.ReadFile("/home/me/raw.tmpl")
	require.NoError(t, err)
	assert.Equal(t, "{{ .NOT_RENDERED }}", string(content))
}

func TestCopyGlobGuard(t *testing.T) {
	fs := newDotfiles(t)
	logs := captureLogs(t)
	ctx := env{fs: fs}.context(t)

	records, err := run(t, ctx, operations.Copy("dest", "vim*"))
	require.NoError(t, err, "an invalid glob combination is contained")

	require.Len(t, records, 1)
	assert.Equal(t, pipeline.StatusFailed, records[0].Status)
	assert.Contains(t, records[0].Message, "COPY_GLOB")

	entries, err := fs.ReadDir(home)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file may be written")

	assert.Equal(t, 1, testutil.CountLevel(logs, zerolog.ErrorLevel))
}

func TestCopyWriteFailureFaults(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, workdir+"/vimrc", []byte("set nocompatible\n"), 0644))
	require.NoError(t, base.MkdirAll(home, 0755))
	ctx := env{fs: filesystem.NewAferoFS(afero.NewReadOnlyFs(base))}.context(t)

	records, err := run(t, ctx, operations.Copy(".vimrc", "vimrc", operations.Template(false)))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnitFault))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
	assert.Empty(t, records)
}

func TestCopyDryRun(t *testing.T) {
	fs := newDotfiles(t)
	ctx := env{fs: fs, dryRun: true}.context(t)

	records, err := run(t, ctx, operations.Copy(".vim/*", "vim/*"))
	require.NoError(t, err)

	assert.Equal(t, []pipeline.Record{{
		Operation: "copy",
		Path:      "/home/me/.vim/*",
		Args: []pipeline.Arg{
			{Name: "source", Value: "vim/*"},
			{Name: "template", Value: true},
		},
		Status: pipeline.StatusDescribed,
	}}, records)

	entries, err := fs.ReadDir(home)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCopyUndefinedTemplateKeyFaults(t *testing.T) {
	fs := newDotfiles(t)
	ctx := env{fs: fs}.context(t)

	records, err := run(t, ctx, operations.Copy(".vimrc", "vimrc"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplate))
	assert.Empty(t, records)

	_, err = fs.Stat("/home/me/vimrc")
	assert.True(t, os.IsNotExist(err))
}
