package damage

import (
	"net/http"

	"Fatigue/internal/calc"
)

type Handler struct {
	Env *calc.Env
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := calc.Decode(r, &input); err != nil {
		h.Env.Fail(w, "damage", err)
		return
	}
	res, err := Calculate(h.Env.Engine, input)
	if err != nil {
		h.Env.Fail(w, "damage", err)
		return
	}
	h.Env.Metrics.Calculation("damage", string(res.Method))
	h.Env.Respond(w, r, "damage", string(res.Method), input, res)
}
