package compare

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
		h.Env.Fail(w, "compare", err)
		return
	}
	res := Calculate(h.Env.Engine, input)
	h.Env.Metrics.Calculation("compare", "all")
	h.Env.Respond(w, r, "compare", "", input, res)
}
