package config

import (
	"strings"

	"github.com/arthur-debert/polkadot/pkg/errors"
)

// ParseExtras turns KEY=VALUE pairs into a map. Values may contain "=";
// later pairs win.
func ParseExtras(pairs []string) (map[string]string, error) {
	extras := make(map[string]string, len(pairs))
	var malformed []string
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			malformed = append(malformed, pair)
			continue
		}
		extras[key] = value
	}
	if len(malformed) > 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "extras must look like KEY=VALUE: %q", malformed).
			WithDetail("extras", malformed)
	}
	return extras, nil
}
