package fatigue

import (
	"fmt"
	"math"
)

const (
	curveMinExp = 3 // 1e3 cycles
	curveMaxExp = 8 // 1e8 cycles
)

// CurveData is tabulated S-N data for plotting.
type CurveData struct {
	Cycles              []float64 `json:"cycles"`
	StressFullyReversed []float64 `json:"stress_fully_reversed"`
	EnduranceLimit      float64   `json:"endurance_limit"`
	StressR0            []float64 `json:"stress_r0,omitempty"`
}

// Curve samples the fully reversed S-N curve at n log-spaced points between
// 1e3 and 1e8 cycles. With meanStress set it adds the Goodman R=0 curve,
// where Sa = Sm and therefore Sa = Seq / (1 + Seq/Su).
func (e *Engine) Curve(n int, meanStress bool) (CurveData, error) {
	if n < 1 {
		return CurveData{}, fmt.Errorf("%w: n_points must be positive, got %d", ErrInvalidArgument, n)
	}
	out := CurveData{
		Cycles:              logspace(curveMinExp, curveMaxExp, n),
		StressFullyReversed: make([]float64, n),
		EnduranceLimit:      e.mat.EnduranceLimit,
	}
	if meanStress {
		out.StressR0 = make([]float64, n)
	}
	for i, cycles := range out.Cycles {
		seq := Amplitude(e.mat, cycles)
		out.StressFullyReversed[i] = seq
		if meanStress {
			out.StressR0[i] = seq / (1 + seq/e.mat.UltimateStrength)
		}
	}
	return out, nil
}

func logspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = math.Pow(10, start)
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = math.Pow(10, start+step*float64(i))
	}
	return out
}
