package fatigue

import (
	"fmt"
	"strings"
)

// Property paths a material source has to provide.
const (
	PathUltimateStrength   = "strength.ultimate_strength"
	PathYieldStrength      = "strength.yield_strength"
	PathFatigueCoefficient = "fatigue.fatigue_strength_coefficient"
	PathFatigueExponent    = "fatigue.fatigue_strength_exponent"
	PathEnduranceLimit     = "fatigue.endurance_limit_corrected"
)

// Material holds the five properties the fatigue calculations need.
// All strengths are in MPa. It is never modified after LoadMaterial.
type Material struct {
	UltimateStrength   float64 `json:"ultimate_strength"`
	YieldStrength      float64 `json:"yield_strength"`
	FatigueCoefficient float64 `json:"fatigue_strength_coefficient"` // sigma'f
	FatigueExponent    float64 `json:"fatigue_strength_exponent"`    // b
	EnduranceLimit     float64 `json:"endurance_limit"`              // corrected Se
}

// LoadMaterial reads the required properties from a nested mapping such as
// the one produced by a YAML or JSON decoder. Values are not range checked.
func LoadMaterial(source map[string]any) (Material, error) {
	var m Material
	fields := []struct {
		path string
		dst  *float64
	}{
		{PathUltimateStrength, &m.UltimateStrength},
		{PathYieldStrength, &m.YieldStrength},
		{PathFatigueCoefficient, &m.FatigueCoefficient},
		{PathFatigueExponent, &m.FatigueExponent},
		{PathEnduranceLimit, &m.EnduranceLimit},
	}
	for _, f := range fields {
		v, err := lookupNumber(source, f.path)
		if err != nil {
			return Material{}, err
		}
		*f.dst = v
	}
	return m, nil
}

func lookupNumber(source map[string]any, path string) (float64, error) {
	var cur any = source
	for _, key := range strings.Split(path, ".") {
		node, ok := asMap(cur)
		if !ok {
			return 0, fmt.Errorf("%w: missing required material property: %s", ErrConfiguration, path)
		}
		cur, ok = node[key]
		if !ok {
			return 0, fmt.Errorf("%w: missing required material property: %s", ErrConfiguration, path)
		}
	}
	v, ok := toFloat(cur)
	if !ok {
		return 0, fmt.Errorf("%w: material property %s is not numeric", ErrConfiguration, path)
	}
	return v, nil
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case interface{ Float64() (float64, error) }: // json.Number
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}
