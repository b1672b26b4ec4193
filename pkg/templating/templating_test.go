package templating_test

import (
	"testing"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/filesystem"
	"github.com/arthur-debert/polkadot/pkg/templating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/dotfiles/git/gitconfig",
		[]byte("[user]\n\temail = {{ .EMAIL }}\n\thome = {{ .DOTFILES_HOME_DIRECTORY }}\n"), 0644))

	r := templating.New(fs, "/dotfiles")
	assert.Equal(t, "/dotfiles", r.Root())

	out, err := r.Render("git/gitconfig", map[string]interface{}{
		"EMAIL":                   "me@example.com",
		"DOTFILES_HOME_DIRECTORY": "/home/me",
	})
	require.NoError(t, err)
	assert.Equal(t, "[user]\n\temail = me@example.com\n\thome = /home/me\n", out)
}

func TestRenderConditional(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/dotfiles/profile",
		[]byte("{{ if .DOTFILES_DRY_RUN }}dry{{ else }}real{{ end }}"), 0644))

	r := templating.New(fs, "/dotfiles")
	out, err := r.Render("profile", map[string]interface{}{"DOTFILES_DRY_RUN": false})
	require.NoError(t, err)
	assert.Equal(t, "real", out)
}

func TestRenderErrors(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/dotfiles/broken", []byte("{{ .Unclosed "), 0644))
	r := templating.New(fs, "/dotfiles")

	t.Run("missing file", func(t *testing.T) {
		_, err := r.Render("absent", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	})

	t.Run("undefined key", func(t *testing.T) {
		require.NoError(t, fs.WriteFile("/dotfiles/undefined", []byte("a={{ .UNDEFINED }}"), 0644))
		out, err := r.Render("undefined", map[string]interface{}{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplate))
		assert.Empty(t, out)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := r.Render("broken", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplate))
	})
}
