// Package config loads polkadot configuration files.
// It supports TOML and YAML files, DOTFILES_* environment overrides and
// command-line extras, and turns the declared operations into pipeline units.
package config
