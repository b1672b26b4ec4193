// pkg/config/build_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: pipeline driver, in-memory filesystem
// PURPOSE: Test turning declarations into units and running them

package config_test

import (
	"testing"

	"github.com/arthur-debert/polkadot/pkg/config"
	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/filesystem"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenario = `
[[DOTFILES]]
op = "mkdir"
path = "bin"
id = "bin"

[[DOTFILES]]
op = "touch"
path = "bin/.keep"
requires = ["bin"]
`

func loadScenario(t *testing.T) *config.File {
	t.Helper()
	t.Setenv("HOME", "/home/me")
	f, err := config.LoadBytes([]byte(scenario), config.FormatTOML, "/dotfiles")
	require.NoError(t, err)
	return f
}

func TestBuildSharesRequiredUnits(t *testing.T) {
	units, err := config.Build(loadScenario(t))
	require.NoError(t, err)

	require.Len(t, units, 2)
	assert.Equal(t, "mkdir", units[0].Name())
	assert.Equal(t, "touch", units[1].Name())
	require.Len(t, units[1].Dependencies(), 1)
	assert.Same(t, units[0], units[1].Dependencies()[0])
}

func TestBuildOrdersRequiresBeforeDeps(t *testing.T) {
	f := &config.File{Dotfiles: []config.Declaration{
		{Op: "mkdir", Path: "a", ID: "a"},
		{
			Op:       "touch",
			Path:     "a/b",
			Requires: []string{"a"},
			Deps:     []config.Declaration{{Op: "mkdir", Path: "c"}},
		},
	}}

	units, err := config.Build(f)
	require.NoError(t, err)

	deps := units[1].Dependencies()
	require.Len(t, deps, 2)
	assert.Same(t, units[0], deps[0])
	assert.Equal(t, "c", deps[1].(*pipeline.Operation).Path())
}

func TestBuildRejectsInvalidFiles(t *testing.T) {
	_, err := config.Build(&config.File{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMissing))
}

func TestScenarioDryRun(t *testing.T) {
	f := loadScenario(t)
	units, err := config.Build(f)
	require.NoError(t, err)

	fs := filesystem.NewMemory()
	opts := f.ContextOptions(true, nil)
	opts.FS = fs
	ctx, err := pipeline.NewContext(opts)
	require.NoError(t, err)

	result, err := pipeline.NewDriver().Run(units, ctx)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "mkdir", result.Records[0].Operation)
	assert.Equal(t, "/home/me/bin", result.Records[0].Path)
	assert.Equal(t, "touch", result.Records[1].Operation)
	assert.Equal(t, "/home/me/bin/.keep", result.Records[1].Path)

	_, err = fs.Stat("/home/me/bin")
	assert.Error(t, err)
}

func TestScenarioApply(t *testing.T) {
	f := loadScenario(t)
	units, err := config.Build(f)
	require.NoError(t, err)

	fs := filesystem.NewMemory()
	opts := f.ContextOptions(false, nil)
	opts.FS = fs
	ctx, err := pipeline.NewContext(opts)
	require.NoError(t, err)

	result, err := pipeline.NewDriver().Run(units, ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count(pipeline.StatusApplied))

	info, err := fs.Stat("/home/me/bin")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	_, err = fs.Stat("/home/me/bin/.keep")
	assert.NoError(t, err)
}

func TestContextOptionsRejectsReservedExtras(t *testing.T) {
	f := loadScenario(t)
	f.Constants = map[string]interface{}{"EDITOR": "vi"}

	_, err := pipeline.NewContext(f.ContextOptions(false, map[string]string{"DOTFILES_DRY_RUN": "true"}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrReservedKey))

	ctx, err := pipeline.NewContext(f.ContextOptions(false, map[string]string{"EDITOR": "nvim"}))
	require.NoError(t, err)
	v, _ := ctx.Value("EDITOR")
	assert.Equal(t, "nvim", v)
}
