package config

import (
	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/operations"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
)

// Build validates f and constructs its top-level units. Construction has no
// effects. Declarations referenced through requires share one unit instance,
// so they run at most once per run.
func Build(f *File) ([]pipeline.Unit, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}

	b := &builder{byID: make(map[string]pipeline.Unit)}
	units := make([]pipeline.Unit, 0, len(f.Dotfiles))
	for i := range f.Dotfiles {
		u, err := b.unit(&f.Dotfiles[i])
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

type builder struct {
	byID map[string]pipeline.Unit
}

func (b *builder) unit(d *Declaration) (pipeline.Unit, error) {
	deps := make([]pipeline.Unit, 0, len(d.Requires)+len(d.Deps))
	for _, id := range d.Requires {
		deps = append(deps, b.byID[id])
	}
	for i := range d.Deps {
		dep, err := b.unit(&d.Deps[i])
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}

	k, err := kinds.Get(d.Op)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "cannot build declaration")
	}
	u := k.build(d, []operations.Option{operations.DependsOn(deps...)})

	if d.ID != "" {
		b.byID[d.ID] = u
	}
	return u, nil
}
