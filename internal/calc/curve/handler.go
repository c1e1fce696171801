package curve

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
		h.Env.Fail(w, "curve", err)
		return
	}
	data, err := Calculate(h.Env.Engine, input)
	if err != nil {
		h.Env.Fail(w, "curve", err)
		return
	}
	h.Env.Metrics.Calculation("curve", "goodman")
	calc.WriteJSON(w, http.StatusOK, FromCore(data))
}

// Export returns the curve as an xlsx workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := calc.Decode(r, &input); err != nil {
		h.Env.Fail(w, "curve", err)
		return
	}
	data, err := Calculate(h.Env.Engine, input)
	if err != nil {
		h.Env.Fail(w, "curve", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sn_curve.xlsx\"")
	if err := WriteWorkbook(w, h.Env.MaterialName, data); err != nil {
		h.Env.Log.Errorw("write curve workbook", "error", err)
		return
	}
}
