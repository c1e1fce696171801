package fatigue

// StressCycle is a constant amplitude cycle between two stress extremes (MPa).
type StressCycle struct {
	Smax float64 `json:"smax"`
	Smin float64 `json:"smin"`
}

func NewStressCycle(smax, smin float64) StressCycle {
	return StressCycle{Smax: smax, Smin: smin}
}

func (c StressCycle) MeanStress() float64 {
	return (c.Smax + c.Smin) / 2
}

func (c StressCycle) Amplitude() float64 {
	return (c.Smax - c.Smin) / 2
}

func (c StressCycle) Range() float64 {
	return c.Smax - c.Smin
}

// RRatio returns Smin/Smax. With Smax == 0 it returns -1 for a compressive
// Smin and 1 otherwise.
func (c StressCycle) RRatio() float64 {
	if c.Smax == 0 {
		if c.Smin < 0 {
			return -1
		}
		return 1
	}
	return c.Smin / c.Smax
}
