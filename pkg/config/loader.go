package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Supported file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// EnvPrefix is the prefix of the environment variables that override the file.
const EnvPrefix = "DOTFILES_"

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// FormatFromPath picks the file format from the extension of path.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.Newf(errors.ErrConfigLoad, "unsupported configuration format %q", filepath.Ext(path)).
		WithDetail("path", path)
}

// Load reads the configuration file at path, applies DOTFILES_* environment
// overrides and fills in directory defaults.
func Load(path string) (*File, error) {
	logger := logging.GetLogger("config")

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "invalid configuration path %s", path)
	}
	format, err := FormatFromPath(abs)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read configuration %s", abs)
	}

	logger.Debug().Str("path", abs).Str("format", format).Msg("Loading configuration")

	f, err := load(file.Provider(abs), format, filepath.Dir(abs))
	if err != nil {
		return nil, err
	}
	f.Path = abs
	return f, nil
}

// LoadBytes parses an in-memory configuration. Relative working
// directories are resolved against dir.
func LoadBytes(data []byte, format, dir string) (*File, error) {
	return load(&rawBytesProvider{bytes: data}, format, dir)
}

func load(provider koanf.Provider, format, dir string) (*File, error) {
	var parser koanf.Parser
	switch format {
	case FormatTOML:
		parser = toml.Parser()
	case FormatYAML:
		parser = yaml.Parser()
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported configuration format %q", format)
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		pipeline.KeyDryRun:          false,
		pipeline.KeyDownloadTimeout: "0s",
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. The file
	if err := k.Load(provider, parser); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse configuration")
	}

	// 3. Environment, reserved keys only
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		if s == pipeline.KeyDotfiles || !pipeline.IsReservedKey(s) {
			return ""
		}
		return s
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Unmarshal
	var f File
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &f,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				modeHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &f, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to decode configuration")
	}

	// 5. Post-process
	f.Constants = constants(k.Raw())
	if err := resolveDirectories(&f, dir); err != nil {
		return nil, err
	}
	return &f, nil
}

// constants picks the user constants out of the raw top-level keys.
func constants(raw map[string]interface{}) map[string]interface{} {
	logger := logging.GetLogger("config")

	out := make(map[string]interface{})
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !isConstantKey(key) {
			continue
		}
		switch raw[key].(type) {
		case map[string]interface{}, []interface{}:
			logger.Debug().Str("key", key).Msg("Ignoring non scalar top-level value")
			continue
		}
		out[key] = raw[key]
	}
	return out
}

func isConstantKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "_") || pipeline.IsReservedKey(key) {
		return false
	}
	return key == strings.ToUpper(key) && strings.ContainsFunc(key, unicode.IsLetter)
}

// resolveDirectories expands a leading "~" in both directories and anchors
// relative ones on dir. The home directory defaults to $HOME and the working
// directory to dir.
func resolveDirectories(f *File, dir string) error {
	needHome := f.HomeDirectory == "" ||
		strings.HasPrefix(f.HomeDirectory, "~") ||
		strings.HasPrefix(f.WorkingDirectory, "~")

	var home string
	if needHome {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return errors.Wrap(err, errors.ErrConfigInvalid, "cannot determine the home directory")
		}
	}

	if f.HomeDirectory == "" {
		f.HomeDirectory = home
	}
	if f.WorkingDirectory == "" {
		f.WorkingDirectory = dir
	}
	f.HomeDirectory = anchor(expandHome(f.HomeDirectory, home), dir)
	f.WorkingDirectory = anchor(expandHome(f.WorkingDirectory, home), dir)
	return nil
}

func anchor(path, dir string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}

// expandHome replaces a leading "~" or "~/" with home.
func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// modeHookFunc decodes octal strings and plain integers into Mode.
func modeHookFunc() mapstructure.DecodeHookFunc {
	modeType := reflect.TypeOf(Mode(0))
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != modeType {
			return data, nil
		}
		if s, ok := data.(string); ok {
			return ParseMode(s)
		}
		return data, nil
	}
}
