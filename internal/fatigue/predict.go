package fatigue

import "math"

type LifeResult struct {
	Smax             float64 `json:"smax"`
	Smin             float64 `json:"smin"`
	MeanStress       float64 `json:"mean_stress"`
	StressAmplitude  float64 `json:"stress_amplitude"`
	StressRange      float64 `json:"stress_range"`
	RRatio           float64 `json:"r_ratio"`
	EquivalentStress float64 `json:"equivalent_stress"`
	Method           Method  `json:"method"`
	PredictedCycles  float64 `json:"predicted_cycles"`
	PredictedLifeLog float64 `json:"predicted_life_log10"`
	FoSOnLife        float64 `json:"fos_on_life"`
	FoSOnStress      float64 `json:"fos_on_stress"`
	InfiniteLife     bool    `json:"infinite_life"`
}

// Engine runs life predictions against one material. The zero value is not
// usable; build it with NewEngine. An Engine is safe for concurrent use.
type Engine struct {
	mat Material
}

func NewEngine(mat Material) *Engine {
	return &Engine{mat: mat}
}

func (e *Engine) Material() Material {
	return e.mat
}

// Predict estimates the life of a constant amplitude cycle.
func (e *Engine) Predict(smax, smin float64, method Method) (LifeResult, error) {
	cycle := NewStressCycle(smax, smin)

	seq, err := EquivalentStress(method, cycle, e.mat)
	if err != nil {
		return LifeResult{}, err
	}
	n := Cycles(e.mat, seq)

	sa := cycle.Amplitude()
	sm := cycle.MeanStress()

	logN := math.Inf(1)
	fosLife := math.Inf(1)
	if !math.IsInf(n, 1) {
		logN = math.Log10(n)
		fosLife = n / DesignLife
	}

	return LifeResult{
		Smax:             smax,
		Smin:             smin,
		MeanStress:       sm,
		StressAmplitude:  sa,
		StressRange:      cycle.Range(),
		RRatio:           cycle.RRatio(),
		EquivalentStress: seq,
		Method:           method,
		PredictedCycles:  n,
		PredictedLifeLog: logN,
		FoSOnLife:        fosLife,
		FoSOnStress:      e.stressSafetyFactor(sa, sm),
		InfiniteLife:     n >= InfiniteLifeCycles,
	}, nil
}

// stressSafetyFactor is the Goodman factor 1/(Sa/Se + Sm/Su), whatever
// correction was used for the life.
func (e *Engine) stressSafetyFactor(sa, sm float64) float64 {
	if sa <= 0 {
		return math.Inf(1)
	}
	return 1 / (sa/e.mat.EnduranceLimit + sm/e.mat.UltimateStrength)
}

// Compare predicts the cycle with every correction method.
func (e *Engine) Compare(smax, smin float64) []LifeResult {
	out := make([]LifeResult, 0, len(Methods))
	for _, m := range Methods {
		res, _ := e.Predict(smax, smin, m)
		out = append(out, res)
	}
	return out
}
