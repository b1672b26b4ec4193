// Package templating renders dotfile sources through Go templates.
//
// A Renderer is bound to one working directory; template names are paths
// relative to it. The data passed to Render becomes the template's dot, so a
// source can reference {{ .DOTFILES_HOME_DIRECTORY }} or any extra value.
package templating

import (
	"bytes"
	"path/filepath"
	"text/template"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/filesystem"
	"github.com/arthur-debert/polkadot/pkg/logging"
)

// Renderer turns a named template and a namespace into text.
type Renderer interface {
	Render(name string, namespace map[string]interface{}) (string, error)
}

// FileRenderer loads templates from a directory through a filesystem.
type FileRenderer struct {
	fs   filesystem.FS
	root string
}

// New returns a renderer that resolves template names under root.
func New(fs filesystem.FS, root string) *FileRenderer {
	return &FileRenderer{fs: fs, root: root}
}

// Root returns the directory template names are resolved against.
func (r *FileRenderer) Root() string {
	return r.root
}

// Render parses the file name (relative to the root) and executes it with namespace.
func (r *FileRenderer) Render(name string, namespace map[string]interface{}) (string, error) {
	logger := logging.GetLogger("templating")

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, name)
	}

	content, err := r.fs.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read template %s", name)
	}

	tmpl, err := template.New(filepath.Base(name)).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplate, "cannot parse template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, namespace); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplate, "cannot render template %s", name)
	}

	logger.Trace().Str("template", name).Int("bytes", buf.Len()).Msg("Rendered template")
	return buf.String(), nil
}
