package life

import (
	"Fatigue/internal/calc"
	"Fatigue/internal/fatigue"
)

type Input struct {
	SmaxMPa float64 `json:"smax_mpa"`
	SminMPa float64 `json:"smin_mpa"`
	Method  string  `json:"method"`
}

type Result struct {
	SmaxMPa             calc.Float     `json:"smax_mpa"`
	SminMPa             calc.Float     `json:"smin_mpa"`
	MeanStressMPa       calc.Float     `json:"mean_stress_mpa"`
	StressAmplitudeMPa  calc.Float     `json:"stress_amplitude_mpa"`
	StressRangeMPa      calc.Float     `json:"stress_range_mpa"`
	RRatio              calc.Float     `json:"r_ratio"`
	EquivalentStressMPa calc.Float     `json:"equivalent_stress_mpa"`
	Method              fatigue.Method `json:"method"`
	PredictedCycles     calc.Float     `json:"predicted_cycles"`
	PredictedLifeLog10  calc.Float     `json:"predicted_life_log10"`
	FoSOnLife           calc.Float     `json:"fos_on_life"`
	FoSOnStress         calc.Float     `json:"fos_on_stress"`
	InfiniteLife        bool           `json:"infinite_life"`
	Notes               string         `json:"notes"`
}

func Calculate(e *fatigue.Engine, in Input) (Result, error) {
	method, err := fatigue.ParseMethod(in.Method)
	if err != nil {
		return Result{}, err
	}
	res, err := e.Predict(in.SmaxMPa, in.SminMPa, method)
	if err != nil {
		return Result{}, err
	}
	return FromCore(res), nil
}

func FromCore(res fatigue.LifeResult) Result {
	notes := "Basquin life with " + string(res.Method) + " mean stress correction."
	if res.InfiniteLife {
		notes = "Equivalent amplitude at or below the endurance limit or beyond 1e7 cycles: infinite life."
	}
	return Result{
		SmaxMPa:             calc.Float(res.Smax),
		SminMPa:             calc.Float(res.Smin),
		MeanStressMPa:       calc.Float(res.MeanStress),
		StressAmplitudeMPa:  calc.Float(res.StressAmplitude),
		StressRangeMPa:      calc.Float(res.StressRange),
		RRatio:              calc.Float(res.RRatio),
		EquivalentStressMPa: calc.Float(res.EquivalentStress),
		Method:              res.Method,
		PredictedCycles:     calc.Float(res.PredictedCycles),
		PredictedLifeLog10:  calc.Float(res.PredictedLifeLog),
		FoSOnLife:           calc.Float(res.FoSOnLife),
		FoSOnStress:         calc.Float(res.FoSOnStress),
		InfiniteLife:        res.InfiniteLife,
		Notes:               notes,
	}
}
