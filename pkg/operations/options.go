package operations

import (
	"fmt"
	"os"
	"time"

	"github.com/arthur-debert/polkadot/pkg/pipeline"
	"github.com/arthur-debert/polkadot/pkg/vcs"
)

// Option customizes an operation at declaration time.
// Options that do not apply to an operation kind are ignored.
type Option func(*options)

type options struct {
	deps              []pipeline.Unit
	template          bool
	branch            string
	depth             int
	recurseSubmodules bool
	timeout           time.Duration
}

func newOptions(opts []Option) *options {
	o := &options{
		template: true,
		branch:   vcs.DefaultBranch,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DependsOn declares units that must finish before this one runs.
func DependsOn(units ...pipeline.Unit) Option {
	return func(o *options) {
		o.deps = append(o.deps, units...)
	}
}

// Template toggles rendering for copy. Enabled by default.
func Template(enabled bool) Option {
	return func(o *options) {
		o.template = enabled
	}
}

// Branch selects the branch gitclone checks out.
func Branch(name string) Option {
	return func(o *options) {
		if name != "" {
			o.branch = name
		}
	}
}

// Depth makes gitclone shallow.
func Depth(n int) Option {
	return func(o *options) {
		o.depth = n
	}
}

// RecurseSubmodules makes gitclone initialize submodules.
func RecurseSubmodules(enabled bool) Option {
	return func(o *options) {
		o.recurseSubmodules = enabled
	}
}

// Timeout bounds a gitclone.
func Timeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// FileModeFromOctal converts a chmod style octal number, including the
// setuid, setgid and sticky bits, into an os.FileMode.
func FileModeFromOctal(v uint32) os.FileMode {
	mode := os.FileMode(v & 0777)
	if v&04000 != 0 {
		mode |= os.ModeSetuid
	}
	if v&02000 != 0 {
		mode |= os.ModeSetgid
	}
	if v&01000 != 0 {
		mode |= os.ModeSticky
	}
	return mode
}

// octal is the inverse of FileModeFromOctal, formatted like "0755".
func octal(mode os.FileMode) string {
	v := uint32(mode.Perm())
	if mode&os.ModeSetuid != 0 {
		v |= 04000
	}
	if mode&os.ModeSetgid != 0 {
		v |= 02000
	}
	if mode&os.ModeSticky != 0 {
		v |= 01000
	}
	return fmt.Sprintf("%#o", v)
}
