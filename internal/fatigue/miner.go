package fatigue

import (
	"fmt"
	"math"
)

// Block is a number of identical cycles in a load spectrum.
type Block struct {
	Smax          float64 `json:"smax"`
	Smin          float64 `json:"smin"`
	AppliedCycles float64 `json:"applied_cycles"`
}

type BlockDamage struct {
	Smax          float64 `json:"smax"`
	Smin          float64 `json:"smin"`
	AppliedCycles float64 `json:"n_applied"`
	FailureCycles float64 `json:"n_failure"`
	Damage        float64 `json:"damage"`
}

type DamageResult struct {
	Method           Method        `json:"method"`
	TotalDamage      float64       `json:"total_damage"`
	BlocksToFailure  float64       `json:"predicted_blocks_to_failure"`
	FailurePredicted bool          `json:"failure_predicted"`
	Blocks           []BlockDamage `json:"block_details"`
}

// Accumulate sums n/Nf over the spectrum (Miner's rule). Blocks with
// infinite life add no damage. Details keep the input order.
func (e *Engine) Accumulate(blocks []Block, method Method) (DamageResult, error) {
	out := DamageResult{
		Method: method,
		Blocks: make([]BlockDamage, 0, len(blocks)),
	}
	for i, b := range blocks {
		res, err := e.Predict(b.Smax, b.Smin, method)
		if err != nil {
			return DamageResult{}, fmt.Errorf("block %d: %w", i, err)
		}
		d := 0.0
		if !math.IsInf(res.PredictedCycles, 1) {
			d = b.AppliedCycles / res.PredictedCycles
		}
		out.TotalDamage += d
		out.Blocks = append(out.Blocks, BlockDamage{
			Smax:          b.Smax,
			Smin:          b.Smin,
			AppliedCycles: b.AppliedCycles,
			FailureCycles: res.PredictedCycles,
			Damage:        d,
		})
	}

	out.BlocksToFailure = math.Inf(1)
	if out.TotalDamage > 0 {
		out.BlocksToFailure = 1 / out.TotalDamage
	}
	out.FailurePredicted = out.TotalDamage >= 1.0
	return out, nil
}
