package compare

import (
	"Fatigue/internal/calc/life"
	"Fatigue/internal/fatigue"
)

type Input struct {
	SmaxMPa float64 `json:"smax_mpa"`
	SminMPa float64 `json:"smin_mpa"`
}

type Result struct {
	Results []life.Result `json:"results"`
	// Governing is the method giving the shortest life.
	Governing fatigue.Method `json:"governing"`
	Notes     string         `json:"notes"`
}

func Calculate(e *fatigue.Engine, in Input) Result {
	core := e.Compare(in.SmaxMPa, in.SminMPa)
	out := Result{
		Results: make([]life.Result, len(core)),
		Notes:   "Safety factor on stress always uses the Goodman line.",
	}
	shortest := 0
	for i, res := range core {
		out.Results[i] = life.FromCore(res)
		if res.PredictedCycles < core[shortest].PredictedCycles {
			shortest = i
		}
	}
	out.Governing = core[shortest].Method
	return out
}
