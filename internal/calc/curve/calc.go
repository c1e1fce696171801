package curve

import (
	"Fatigue/internal/calc"
	"Fatigue/internal/fatigue"
)

const defaultPoints = 50

type Input struct {
	Points int `json:"n_points" validate:"omitempty,min=2,max=10000"`
	// MeanStress defaults to true when omitted.
	MeanStress *bool `json:"include_mean_stress"`
}

type Result struct {
	Cycles              []calc.Float `json:"cycles"`
	StressFullyReversed []calc.Float `json:"stress_fully_reversed"`
	EnduranceLimitMPa   calc.Float   `json:"endurance_limit"`
	StressR0            []calc.Float `json:"stress_r0,omitempty"`
}

func Calculate(e *fatigue.Engine, in Input) (fatigue.CurveData, error) {
	n := in.Points
	if n == 0 {
		n = defaultPoints
	}
	mean := true
	if in.MeanStress != nil {
		mean = *in.MeanStress
	}
	return e.Curve(n, mean)
}

func FromCore(data fatigue.CurveData) Result {
	out := Result{
		Cycles:              calc.Floats(data.Cycles),
		StressFullyReversed: calc.Floats(data.StressFullyReversed),
		EnduranceLimitMPa:   calc.Float(data.EnduranceLimit),
	}
	if data.StressR0 != nil {
		out.StressR0 = calc.Floats(data.StressR0)
	}
	return out
}
