package testutil_test

import (
	"testing"

	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/arthur-debert/polkadot/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEnvironment(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly).
		WithFileTree(testutil.FileTree{
			"vimrc": "set number\n",
			"vim": testutil.FileTree{
				"colors": testutil.FileTree{"dark.vim": "hi Normal\n"},
			},
		}).
		WithHomeTree(testutil.FileTree{".bashrc": "export EDITOR=vi\n"})

	content, err := env.FS.ReadFile("/dotfiles/vim/colors/dark.vim")
	require.NoError(t, err)
	assert.Equal(t, "hi Normal\n", string(content))

	content, err = env.FS.ReadFile(env.Home(".bashrc"))
	require.NoError(t, err)
	assert.Equal(t, "export EDITOR=vi\n", string(content))

	ctx := env.Context(env.Options(true))
	assert.True(t, ctx.DryRun())
	assert.Equal(t, "/home/me/.vimrc", ctx.Resolve(".vimrc"))
}

func TestIsolatedEnvironment(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	info, err := env.FS.Stat(env.HomeDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NotEqual(t, testutil.MemoryHome, env.HomeDir)
}

func TestCaptureLogs(t *testing.T) {
	buf := testutil.CaptureLogs(t)

	logger := logging.GetLogger("test")
	logger.Error().Msg("one")
	logger.Error().Msg("two")
	logger.Warn().Msg("three")

	assert.Equal(t, 2, testutil.CountLevel(buf, zerolog.ErrorLevel))
	assert.Equal(t, 1, testutil.CountLevel(buf, zerolog.WarnLevel))
}
