package config

import (
	"sort"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
)

type Preset struct {
	Description string
	Params      dynamo.Params
}

// regime builds a preset on the faster-diffusing pair used by the named
// pattern regimes.
func regime(desc string, f, k float64) Preset {
	p := dynamo.DefaultParams()
	p.Du, p.Dv = 1.0, 0.5
	p.F, p.K = f, k
	return Preset{Description: desc, Params: p}
}

var Presets = map[string]Preset{
	"default": {
		Description: "reference lab values",
		Params:      dynamo.DefaultParams(),
	},
	"classic": {
		Description: "alternate lab values",
		Params: dynamo.Params{
			Du: 0.2, Dv: 0.06, F: 0.04, K: 0.075,
			ReactionScale: dynamo.DefaultReactionScale,
			Dt:            dynamo.DefaultDt,
			Dx:            dynamo.DefaultDx,
			TMax:          dynamo.DefaultTMax,
		},
	},
	"mitosis": regime("self-replicating spots", 0.0367, 0.0649),
	"coral":   regime("branching coral growth", 0.0545, 0.062),
	"spots":   regime("stable spot lattice", 0.035, 0.065),
	"worms":   regime("labyrinthine stripes", 0.078, 0.061),
}

// GetPreset returns nil for an unknown name.
func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
