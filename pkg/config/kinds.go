package config

import (
	"github.com/arthur-debert/polkadot/pkg/operations"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
	"github.com/arthur-debert/polkadot/pkg/registry"
)

// kind tells how one declared op is checked and built.
type kind struct {
	// needs lists the declaration fields that must be set, besides op and path
	needs []string
	build func(d *Declaration, opts []operations.Option) *pipeline.Operation
}

var kinds = registry.New[kind]()

func init() {
	registry.MustRegister(kinds, operations.NameCopy, kind{
		needs: []string{"source"},
		build: func(d *Declaration, opts []operations.Option) *pipeline.Operation {
			if d.Template != nil {
				opts = append(opts, operations.Template(*d.Template))
			}
			return operations.Copy(d.Path, d.Source, opts...)
		},
	})
	registry.MustRegister(kinds, operations.NameTouch, kind{
		build: func(d *Declaration, opts []operations.Option) *pipeline.Operation {
			return operations.Touch(d.Path, opts...)
		},
	})
	registry.MustRegister(kinds, operations.NameMkdir, kind{
		build: func(d *Declaration, opts []operations.Option) *pipeline.Operation {
			return operations.Mkdir(d.Path, opts...)
		},
	})
	registry.MustRegister(kinds, operations.NameMode, kind{
		needs: []string{"mode"},
		build: func(d *Declaration, opts []operations.Option) *pipeline.Operation {
			return operations.Mode(d.Path, operations.FileModeFromOctal(uint32(*d.Mode)), opts...)
		},
	})
	registry.MustRegister(kinds, operations.NameGitClone, kind{
		needs: []string{"source"},
		build: func(d *Declaration, opts []operations.Option) *pipeline.Operation {
			opts = append(opts,
				operations.Branch(d.Branch),
				operations.Depth(d.Depth),
				operations.RecurseSubmodules(d.RecurseSubmodules),
				operations.Timeout(d.Timeout),
			)
			return operations.GitClone(d.Path, d.Source, opts...)
		},
	})
	registry.MustRegister(kinds, operations.NameDownload, kind{
		needs: []string{"source"},
		build: func(d *Declaration, opts []operations.Option) *pipeline.Operation {
			return operations.Download(d.Path, d.Source, opts...)
		},
	})
}

// Operations lists the op names a declaration may use.
func Operations() []string {
	return kinds.Names()
}

// isSet reports whether the named declaration field carries a value.
func (d *Declaration) isSet(field string) bool {
	switch field {
	case "source":
		return d.Source != ""
	case "mode":
		return d.Mode != nil
	}
	return false
}
