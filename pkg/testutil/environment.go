// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments for pipeline runs

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/polkadot/pkg/filesystem"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// Memory environment directories.
const (
	MemoryHome    = "/home/me"
	MemoryWorkdir = "/dotfiles"
)

// TestEnvironment provides home and working directories on one filesystem
type TestEnvironment struct {
	HomeDir    string
	WorkingDir string
	FS         filesystem.FS
	Type       EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{Type: envType, t: t}
	switch envType {
	case EnvIsolated:
		root := t.TempDir()
		env.HomeDir = filepath.Join(root, "home")
		env.WorkingDir = filepath.Join(root, "dotfiles")
		env.FS = filesystem.NewOS()
	default:
		env.HomeDir = MemoryHome
		env.WorkingDir = MemoryWorkdir
		env.FS = filesystem.NewMemory()
	}

	for _, dir := range []string{env.HomeDir, env.WorkingDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
	return env
}

// WithFileTree creates tree under the working directory
func (env *TestEnvironment) WithFileTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	CreateFileTree(env.t, env.FS, env.WorkingDir, tree)
	return env
}

// WithHomeTree creates tree under the home directory
func (env *TestEnvironment) WithHomeTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	CreateFileTree(env.t, env.FS, env.HomeDir, tree)
	return env
}

// Options returns context options bound to the environment's directories and filesystem
func (env *TestEnvironment) Options(dryRun bool) pipeline.ContextOptions {
	return pipeline.ContextOptions{
		DryRun:           dryRun,
		HomeDirectory:    env.HomeDir,
		WorkingDirectory: env.WorkingDir,
		FS:               env.FS,
	}
}

// Context builds a context from opts, failing the test on error
func (env *TestEnvironment) Context(opts pipeline.ContextOptions) *pipeline.Context {
	env.t.Helper()
	ctx, err := pipeline.NewContext(opts)
	if err != nil {
		env.t.Fatalf("Failed to create context: %v", err)
	}
	return ctx
}

// Home joins parts onto the home directory
func (env *TestEnvironment) Home(parts ...string) string {
	return filepath.Join(append([]string{env.HomeDir}, parts...)...)
}

// FileTree represents a directory structure for testing
type FileTree map[string]interface{}

// CreateFileTree recursively creates a file tree
func CreateFileTree(t *testing.T, fs filesystem.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", filepath.Dir(fullPath), err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			CreateFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
