package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/polkadot/pkg/errors"
)

// FileNames are the configuration file names looked up by Find, in order.
var FileNames = []string{"polkadot.toml", "polkadot.yaml", "polkadot.yml"}

// Find returns the first configuration file in dir, then in the XDG
// configuration directories under "polkadot/".
func Find(dir string) (string, error) {
	searched := make([]string, 0, len(FileNames)*2)
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		searched = append(searched, path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	for _, name := range FileNames {
		rel := filepath.Join("polkadot", name)
		if path, err := xdg.SearchConfigFile(rel); err == nil {
			return path, nil
		}
		searched = append(searched, filepath.Join(xdg.ConfigHome, rel))
	}

	return "", errors.New(errors.ErrNotFound, "no configuration file found").
		WithDetail("searched", searched)
}
