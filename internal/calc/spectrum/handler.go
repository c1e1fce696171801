package spectrum

import (
	"fmt"
	"net/http"

	"Fatigue/internal/calc"
	"Fatigue/internal/calc/damage"
)

const maxUploadSize = 10 << 20

type Handler struct {
	Env *calc.Env
}

// Import accepts a multipart form with the workbook in "file" and an
// optional correction "method".
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		h.Env.Fail(w, "spectrum", fmt.Errorf("%w: file required", calc.ErrValidation))
		return
	}
	defer file.Close()

	blocks, err := ReadBlocks(file)
	if err != nil {
		h.Env.Fail(w, "spectrum", err)
		return
	}
	input := damage.Input{Method: r.FormValue("method"), Blocks: blocks}
	if err := calc.Validate(input); err != nil {
		h.Env.Fail(w, "spectrum", err)
		return
	}
	res, err := damage.Calculate(h.Env.Engine, input)
	if err != nil {
		h.Env.Fail(w, "spectrum", err)
		return
	}
	h.Env.Log.Infow("spectrum imported", "blocks", len(blocks), "total_damage", float64(res.TotalDamage))
	h.Env.Metrics.Calculation("spectrum", string(res.Method))
	h.Env.Respond(w, r, "damage", string(res.Method), input, res)
}
