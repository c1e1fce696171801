package fatigue

import "math"

const (
	// MinCycles is the low cycle floor of the Basquin solution.
	MinCycles = 1e3
	// InfiniteLifeCycles is the count at or above which life is reported as infinite.
	InfiniteLifeCycles = 1e7
	// DesignLife is the reference life for the safety factor on life.
	DesignLife = 1e6
)

// Cycles solves Basquin's relation Sa = sigma'f * (2N)^b for N.
// Amplitudes at or below the endurance limit give +Inf.
func Cycles(mat Material, amplitude float64) float64 {
	if amplitude <= mat.EnduranceLimit {
		return math.Inf(1)
	}
	n := 0.5 * math.Pow(amplitude/mat.FatigueCoefficient, 1/mat.FatigueExponent)
	return math.Max(n, MinCycles)
}

// Amplitude is the inverse of Cycles without the floor: the fully reversed
// amplitude at n cycles, held at the endurance limit.
func Amplitude(mat Material, n float64) float64 {
	s := mat.FatigueCoefficient * math.Pow(2*n, mat.FatigueExponent)
	return math.Max(s, mat.EnduranceLimit)
}
