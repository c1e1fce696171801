package report

import (
	"bytes"
	"net/http"

	"Fatigue/internal/calc"
)

type Handler struct {
	Env *calc.Env
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := calc.Decode(r, &input); err != nil {
		h.Env.Fail(w, "report", err)
		return
	}
	rep, err := Build(h.Env.Engine, h.Env.MaterialName, input)
	if err != nil {
		h.Env.Fail(w, "report", err)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, rep); err != nil {
		h.Env.Log.Errorw("render report", "error", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	h.Env.Metrics.Calculation("report", rep.Method)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"fatigue_report.pdf\"")
	w.Write(buf.Bytes())
}
