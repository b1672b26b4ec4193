package ui_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNamesRoundTrip(t *testing.T) {
	for _, f := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON, ui.FormatYAML} {
		parsed, err := ui.ParseFormat(f.String())
		require.NoError(t, err, f.String())
		assert.Equal(t, f, parsed)
	}
	assert.Equal(t, "unknown", ui.Format(42).String())
}

func TestParseFormatAliases(t *testing.T) {
	cases := map[string]ui.Format{
		"":         ui.FormatAuto,
		"TERMINAL": ui.FormatTerminal,
		"plain":    ui.FormatText,
		"JSON":     ui.FormatJSON,
		"yml":      ui.FormatYAML,
	}
	for input, want := range cases {
		got, err := ui.ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	_, err := ui.ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "unknown format: xml")
}

func TestDetectFormat(t *testing.T) {
	t.Run("NO_COLOR forces text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
	})

	t.Run("regular file is not a terminal", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})
}
