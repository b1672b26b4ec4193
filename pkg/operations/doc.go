// Package operations provides the concrete operation kinds a configuration
// can declare: copy, touch, mkdir, mode, gitclone and download.
//
// Each constructor returns a lazy *pipeline.Operation. Nothing touches the
// filesystem or the network until the pipeline drives it:
//
//	bin := operations.Mkdir("bin")
//	keep := operations.Touch("bin/.keep", operations.DependsOn(bin))
//
// Failure policy differs per kind. Copy reports an invalid glob combination
// as a failed record. Gitclone treats an existing repository or any non-empty
// destination as a skip.
// Download contains transport, status and write errors. Everything else is a
// fault that stops the run.
package operations
