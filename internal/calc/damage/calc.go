package damage

import (
	"Fatigue/internal/calc"
	"Fatigue/internal/fatigue"
)

type Block struct {
	SmaxMPa       float64 `json:"smax_mpa"`
	SminMPa       float64 `json:"smin_mpa"`
	AppliedCycles float64 `json:"applied_cycles" validate:"gt=0"`
}

type Input struct {
	Method string  `json:"method"`
	Blocks []Block `json:"blocks" validate:"required,min=1,max=10000,dive"`
}

type BlockResult struct {
	SmaxMPa       calc.Float `json:"smax_mpa"`
	SminMPa       calc.Float `json:"smin_mpa"`
	AppliedCycles calc.Float `json:"n_applied"`
	FailureCycles calc.Float `json:"n_failure"`
	Damage        calc.Float `json:"damage"`
}

type Result struct {
	Method           fatigue.Method `json:"method"`
	TotalDamage      calc.Float     `json:"total_damage"`
	BlocksToFailure  calc.Float     `json:"predicted_blocks_to_failure"`
	FailurePredicted bool           `json:"failure_predicted"`
	Blocks           []BlockResult  `json:"block_details"`
	Notes            string         `json:"notes"`
}

func Calculate(e *fatigue.Engine, in Input) (Result, error) {
	method, err := fatigue.ParseMethod(in.Method)
	if err != nil {
		return Result{}, err
	}
	blocks := make([]fatigue.Block, len(in.Blocks))
	for i, b := range in.Blocks {
		blocks[i] = fatigue.Block{Smax: b.SmaxMPa, Smin: b.SminMPa, AppliedCycles: b.AppliedCycles}
	}
	res, err := e.Accumulate(blocks, method)
	if err != nil {
		return Result{}, err
	}
	return FromCore(res), nil
}

func FromCore(res fatigue.DamageResult) Result {
	out := Result{
		Method:           res.Method,
		TotalDamage:      calc.Float(res.TotalDamage),
		BlocksToFailure:  calc.Float(res.BlocksToFailure),
		FailurePredicted: res.FailurePredicted,
		Blocks:           make([]BlockResult, len(res.Blocks)),
		Notes:            "Palmgren-Miner linear damage sum; failure at D >= 1.",
	}
	for i, b := range res.Blocks {
		out.Blocks[i] = BlockResult{
			SmaxMPa:       calc.Float(b.Smax),
			SminMPa:       calc.Float(b.Smin),
			AppliedCycles: calc.Float(b.AppliedCycles),
			FailureCycles: calc.Float(b.FailureCycles),
			Damage:        calc.Float(b.Damage),
		}
	}
	return out
}
