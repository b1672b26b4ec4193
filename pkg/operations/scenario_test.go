// pkg/operations/scenario_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test end-to-end runs through the driver

package operations_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/polkadot/pkg/operations"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
	"github.com/arthur-debert/polkadot/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diskContext(t *testing.T, dryRun bool) (*pipeline.Context, string) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	return env.Context(env.Options(dryRun)), env.HomeDir
}

func TestMkdirThenTouch(t *testing.T) {
	ctx, homeDir := diskContext(t, false)

	bin := operations.Mkdir("bin")
	units := []pipeline.Unit{bin, operations.Touch("bin/.keep", operations.DependsOn(bin))}

	result, err := pipeline.NewDriver().Run(units, ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count(pipeline.StatusApplied))

	info, err := os.Stat(filepath.Join(homeDir, "bin"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	_, err = os.Stat(filepath.Join(homeDir, "bin", ".keep"))
	assert.NoError(t, err)
}

func TestMkdirThenTouchDryRun(t *testing.T) {
	t.Run("shared dependency", func(t *testing.T) {
		ctx, homeDir := diskContext(t, true)

		bin := operations.Mkdir("bin")
		units := []pipeline.Unit{bin, operations.Touch("bin/.keep", operations.DependsOn(bin))}

		result, err := pipeline.NewDriver().Run(units, ctx)
		require.NoError(t, err)

		require.Len(t, result.Records, 2)
		assert.Equal(t, "mkdir", result.Records[0].Operation)
		assert.Equal(t, filepath.Join(homeDir, "bin"), result.Records[0].Path)
		assert.Equal(t, "touch", result.Records[1].Operation)
		assert.Equal(t, filepath.Join(homeDir, "bin", ".keep"), result.Records[1].Path)

		entries, err := os.ReadDir(homeDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("inline dependency", func(t *testing.T) {
		ctx, _ := diskContext(t, true)

		units := []pipeline.Unit{
			operations.Mkdir("bin"),
			operations.Touch("bin/.keep", operations.DependsOn(operations.Mkdir("bin"))),
		}

		result, err := pipeline.NewDriver().Run(units, ctx)
		require.NoError(t, err)
		assert.Len(t, result.Records, 3, "a separately constructed dependency is its own unit")
	})
}

func TestConstructionHasNoEffects(t *testing.T) {
	homeDir := t.TempDir()

	_ = []pipeline.Unit{
		operations.Mkdir(filepath.Join(homeDir, "a")),
		operations.Touch(filepath.Join(homeDir, "b")),
		operations.Copy(filepath.Join(homeDir, "c"), "c"),
		operations.Mode(filepath.Join(homeDir, "d"), 0700),
		operations.GitClone(filepath.Join(homeDir, "e"), "https://example.com/e.git"),
		operations.Download(filepath.Join(homeDir, "f"), "https://example.com/f"),
	}

	entries, err := os.ReadDir(homeDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
