// Package testutil provides utilities for testing polkadot components.
//
// Key components:
//   - TestEnvironment: home and working directories on an in-memory or
//     temporary on-disk filesystem, with a matching pipeline context
//   - FileTree: declarative file setup
//   - CaptureLogs: redirect the global logger into a buffer
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated when a collaborator needs real paths (go-git, os.Stat)
//   - All test data should be defined inline, not in external files
package testutil
