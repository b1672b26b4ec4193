package pipeline

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/fetch"
	"github.com/arthur-debert/polkadot/pkg/filesystem"
	"github.com/arthur-debert/polkadot/pkg/templating"
	"github.com/arthur-debert/polkadot/pkg/vcs"
)

// Reserved context keys. They are read verbatim from the configuration and
// cannot be overridden by extras.
const (
	KeyDotfiles         = "DOTFILES"
	KeyDryRun           = "DOTFILES_DRY_RUN"
	KeyHomeDirectory    = "DOTFILES_HOME_DIRECTORY"
	KeyWorkingDirectory = "DOTFILES_WORKING_DIRECTORY"
	KeyDownloadTimeout  = "DOTFILES_DOWNLOAD_TIMEOUT"
)

var reservedKeys = map[string]bool{
	KeyDotfiles:         true,
	KeyDryRun:           true,
	KeyHomeDirectory:    true,
	KeyWorkingDirectory: true,
	KeyDownloadTimeout:  true,
}

// IsReservedKey reports whether key belongs to the built-in context.
func IsReservedKey(key string) bool {
	return reservedKeys[key]
}

// ContextOptions carries everything needed to build a Context.
type ContextOptions struct {
	DryRun           bool
	HomeDirectory    string
	WorkingDirectory string

	// Templates defaults to a renderer bound to WorkingDirectory.
	Templates templating.Renderer

	// Transports default to the real OS filesystem, net/http and go-git.
	FS      filesystem.FS
	Fetcher fetch.Fetcher
	Cloner  vcs.Cloner

	// Constants are user values declared in the configuration file.
	Constants map[string]interface{}
	// Extras are key=value overrides from the invoker. They win over Constants.
	Extras map[string]string
}

// Context is the run-wide, read-only execution context shared by every unit.
type Context struct {
	dryRun           bool
	homeDirectory    string
	workingDirectory string
	templates        templating.Renderer
	fs               filesystem.FS
	fetcher          fetch.Fetcher
	cloner           vcs.Cloner
	values           map[string]interface{}
}

// NewContext validates opts and freezes them into a Context.
// Constants or extras that shadow a reserved key are rejected.
func NewContext(opts ContextOptions) (*Context, error) {
	if opts.HomeDirectory == "" {
		return nil, errors.New(errors.ErrInvalidInput, "home directory is required")
	}
	if opts.WorkingDirectory == "" {
		return nil, errors.New(errors.ErrInvalidInput, "working directory is required")
	}

	var shadowed []string
	values := make(map[string]interface{}, len(opts.Constants)+len(opts.Extras))
	for k, v := range opts.Constants {
		if IsReservedKey(k) {
			shadowed = append(shadowed, k)
			continue
		}
		values[k] = v
	}
	for k, v := range opts.Extras {
		if IsReservedKey(k) {
			shadowed = append(shadowed, k)
			continue
		}
		values[k] = v
	}
	if len(shadowed) > 0 {
		sort.Strings(shadowed)
		return nil, errors.Newf(errors.ErrReservedKey, "cannot override reserved keys: %v", shadowed).
			WithDetail("keys", shadowed)
	}

	ctx := &Context{
		dryRun:           opts.DryRun,
		homeDirectory:    filepath.Clean(opts.HomeDirectory),
		workingDirectory: filepath.Clean(opts.WorkingDirectory),
		templates:        opts.Templates,
		fs:               opts.FS,
		fetcher:          opts.Fetcher,
		cloner:           opts.Cloner,
		values:           values,
	}
	if ctx.fs == nil {
		ctx.fs = filesystem.NewOS()
	}
	if ctx.templates == nil {
		ctx.templates = templating.New(ctx.fs, ctx.workingDirectory)
	}
	if ctx.fetcher == nil {
		ctx.fetcher = fetch.New(0)
	}
	if ctx.cloner == nil {
		ctx.cloner = vcs.NewGitCloner(nil)
	}
	return ctx, nil
}

func (c *Context) DryRun() bool                   { return c.dryRun }
func (c *Context) HomeDirectory() string          { return c.homeDirectory }
func (c *Context) WorkingDirectory() string       { return c.workingDirectory }
func (c *Context) Templates() templating.Renderer { return c.templates }
func (c *Context) FS() filesystem.FS              { return c.fs }
func (c *Context) Fetcher() fetch.Fetcher         { return c.fetcher }
func (c *Context) Cloner() vcs.Cloner             { return c.cloner }

// Value looks up a constant or extra.
func (c *Context) Value(key string) (interface{}, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Namespace returns a fresh map of every context value, used as template data.
func (c *Context) Namespace() map[string]interface{} {
	ns := make(map[string]interface{}, len(c.values)+3)
	for k, v := range c.values {
		ns[k] = v
	}
	ns[KeyDryRun] = c.dryRun
	ns[KeyHomeDirectory] = c.homeDirectory
	ns[KeyWorkingDirectory] = c.workingDirectory
	return ns
}

// Resolve returns path unchanged when absolute, otherwise joined onto the home directory.
func (c *Context) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.homeDirectory, path)
}

// Source returns path unchanged when absolute, otherwise joined onto the working directory.
func (c *Context) Source(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.workingDirectory, path)
}
