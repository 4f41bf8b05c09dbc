package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/conserve/internal/dynamo"
)

var Presets = map[string]dynamo.State{
	"rest":        {M0: 1, V0: 0, M1: 1, V1: 0},
	"head_on":     {M0: 2, V0: 3, M1: 1, V1: -1},
	"equal_mass":  {M0: 1, V0: 2, M1: 1, V1: -2},
	"heavy_light": {M0: 5, V0: 1, M1: 0.5, V1: 0},
	"chase":       {M0: 1, V0: 4, M1: 2, V1: 1},
	"massless":    {M0: 2, V0: 3, M1: 0, V1: -1},
}

func GetPreset(name string) (dynamo.State, error) {
	s, ok := Presets[name]
	if !ok {
		return dynamo.State{}, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	return s, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
