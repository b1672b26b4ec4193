package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// File is a loaded configuration file.
type File struct {
	// Dotfiles are the top-level declarations, in run order. Nil when the
	// file does not declare DOTFILES at all.
	Dotfiles         []Declaration `koanf:"DOTFILES" toml:"DOTFILES"`
	DryRun           bool          `koanf:"DOTFILES_DRY_RUN" toml:"DOTFILES_DRY_RUN,omitempty"`
	HomeDirectory    string        `koanf:"DOTFILES_HOME_DIRECTORY" toml:"DOTFILES_HOME_DIRECTORY,omitempty"`
	WorkingDirectory string        `koanf:"DOTFILES_WORKING_DIRECTORY" toml:"DOTFILES_WORKING_DIRECTORY,omitempty"`
	DownloadTimeout  time.Duration `koanf:"DOTFILES_DOWNLOAD_TIMEOUT" toml:"DOTFILES_DOWNLOAD_TIMEOUT,omitempty"`

	// Constants are the remaining top-level UPPERCASE scalars.
	Constants map[string]interface{} `koanf:"-" toml:"-"`
	// Path is the file the configuration was read from, if any.
	Path string `koanf:"-" toml:"-"`
}

// Declaration is one operation and its dependencies.
type Declaration struct {
	Op                string        `koanf:"op" toml:"op"`
	Path              string        `koanf:"path" toml:"path"`
	Source            string        `koanf:"source" toml:"source,omitempty"`
	Template          *bool         `koanf:"template" toml:"template,omitempty"`
	Branch            string        `koanf:"branch" toml:"branch,omitempty"`
	Mode              *Mode         `koanf:"mode" toml:"mode,omitempty"`
	Depth             int           `koanf:"depth" toml:"depth,omitempty"`
	RecurseSubmodules bool          `koanf:"recurse_submodules" toml:"recurse_submodules,omitempty"`
	Timeout           time.Duration `koanf:"timeout" toml:"timeout,omitempty"`
	ID                string        `koanf:"id" toml:"id,omitempty"`
	Requires          []string      `koanf:"requires" toml:"requires,omitempty"`
	Deps              []Declaration `koanf:"deps" toml:"deps,omitempty"`
}

// Mode is a chmod style octal permission. Integers are taken as is,
// strings such as "0755" or "0o4755" are parsed as octal.
type Mode uint32

// ParseMode parses an octal permission string.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0o"), "0O")
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid octal mode %q", s)
	}
	if v > 07777 {
		return 0, fmt.Errorf("mode %#o out of range", v)
	}
	return Mode(v), nil
}

// String formats the mode like "0755".
func (m Mode) String() string {
	return fmt.Sprintf("%#o", uint32(m))
}

// MarshalText writes the mode as an octal string.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText reads an octal string.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
