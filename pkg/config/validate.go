package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
)

// Problem is one defect found in a configuration.
type Problem struct {
	// Field locates the defect, e.g. DOTFILES[2].deps[0].source.
	Field   string
	Message string
	// Missing is set when a required declaration is absent, as opposed to present but invalid.
	Missing bool
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Field, p.Message)
}

// Validate checks f before any unit is built and reports every problem at
// once. The returned error carries ErrConfigMissing when anything required
// is absent, ErrConfigInvalid otherwise, with the problems under "problems".
func Validate(f *File) error {
	logger := logging.GetLogger("config")

	problems := Check(f)
	if len(problems) == 0 {
		return nil
	}

	code := errors.ErrConfigInvalid
	lines := make([]string, 0, len(problems))
	for _, p := range problems {
		if p.Missing {
			code = errors.ErrConfigMissing
		}
		lines = append(lines, p.String())
		logger.Error().Str("field", p.Field).Bool("missing", p.Missing).Msg(p.Message)
	}

	return errors.Newf(code, "configuration has %d problem(s):\n  %s", len(problems), strings.Join(lines, "\n  ")).
		WithDetail("problems", lines)
}

// Check returns the problems of f in declaration order.
func Check(f *File) []Problem {
	if f.Dotfiles == nil {
		return []Problem{{Field: pipeline.KeyDotfiles, Message: "required declaration is missing", Missing: true}}
	}

	c := &checker{ids: make(map[string]bool)}
	for i := range f.Dotfiles {
		c.declaration(&f.Dotfiles[i], fmt.Sprintf("%s[%d]", pipeline.KeyDotfiles, i))
	}
	return c.problems
}

type checker struct {
	ids      map[string]bool
	problems []Problem
}

func (c *checker) missing(field, message string) {
	c.problems = append(c.problems, Problem{Field: field, Message: message, Missing: true})
}

func (c *checker) invalid(field, format string, args ...interface{}) {
	c.problems = append(c.problems, Problem{Field: field, Message: fmt.Sprintf(format, args...)})
}

// declaration visits d in the same order Build does: requires, deps, then d itself.
func (c *checker) declaration(d *Declaration, field string) {
	for i, id := range d.Requires {
		if !c.ids[id] {
			c.missing(fmt.Sprintf("%s.requires[%d]", field, i), fmt.Sprintf("no earlier declaration has id %q", id))
		}
	}
	for i := range d.Deps {
		c.declaration(&d.Deps[i], fmt.Sprintf("%s.deps[%d]", field, i))
	}

	if d.Path == "" {
		c.missing(field+".path", "path is required")
	}

	if d.Op == "" {
		c.missing(field+".op", "op is required")
	} else if k, err := kinds.Get(d.Op); err != nil {
		c.invalid(field+".op", "unknown operation %q, expected one of %s", d.Op, strings.Join(kinds.Names(), ", "))
	} else {
		for _, need := range k.needs {
			if !d.isSet(need) {
				c.missing(field+"."+need, fmt.Sprintf("%s is required for %s", need, d.Op))
			}
		}
	}
	if d.Mode != nil && *d.Mode > 07777 {
		c.invalid(field+".mode", "mode %s is out of range", *d.Mode)
	}

	if d.Depth < 0 {
		c.invalid(field+".depth", "depth cannot be negative")
	}
	if d.Timeout < 0 {
		c.invalid(field+".timeout", "timeout cannot be negative")
	}

	if d.ID != "" {
		if c.ids[d.ID] {
			c.invalid(field+".id", "duplicate id %q", d.ID)
		}
		c.ids[d.ID] = true
	}
}
