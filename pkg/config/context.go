package config

import (
	"github.com/arthur-debert/polkadot/pkg/fetch"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
)

// ContextOptions maps f and the invoker's extras onto pipeline options.
// Dry-run is on when either the file or dryRun asks for it.
func (f *File) ContextOptions(dryRun bool, extras map[string]string) pipeline.ContextOptions {
	return pipeline.ContextOptions{
		DryRun:           f.DryRun || dryRun,
		HomeDirectory:    f.HomeDirectory,
		WorkingDirectory: f.WorkingDirectory,
		Fetcher:          fetch.New(f.DownloadTimeout),
		Constants:        f.Constants,
		Extras:           extras,
	}
}
