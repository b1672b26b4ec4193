package config

import (
	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// SampleFileName is the name `polkadot init` writes.
const SampleFileName = "polkadot.toml"

// Sample returns a starter configuration.
func Sample() *File {
	no := false
	exec := Mode(0755)
	return &File{
		HomeDirectory: "~",
		Dotfiles: []Declaration{
			{Op: "mkdir", Path: "bin", ID: "bin"},
			{Op: "touch", Path: "bin/.keep", Requires: []string{"bin"}},
			{Op: "copy", Path: ".vimrc", Source: "vimrc"},
			{Op: "copy", Path: ".vim/*", Source: "vim/*", Template: &no},
			{
				Op:   "mode",
				Path: "bin/git-prune-branches",
				Mode: &exec,
				Deps: []Declaration{
					{Op: "copy", Path: "bin/git-prune-branches", Source: "bin/git-prune-branches", Template: &no},
				},
			},
			{Op: "gitclone", Path: ".tmux/plugins/tpm", Source: "https://github.com/tmux-plugins/tpm", Depth: 1},
			{Op: "download", Path: ".vim/autoload/plug.vim", Source: "https://raw.githubusercontent.com/junegunn/vim-plug/master/plug.vim"},
		},
	}
}

// SampleTOML renders Sample as TOML.
func SampleTOML() ([]byte, error) {
	out, err := toml.Marshal(Sample())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode sample configuration")
	}
	return out, nil
}
