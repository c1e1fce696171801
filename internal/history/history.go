package history

import (
	"errors"
	"net/http"
	"strconv"

	"Fatigue/internal/auth"
	"Fatigue/internal/calc"
	"Fatigue/internal/repo"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Repo repo.AnalysisRepository
	Log  *zap.SugaredLogger
}

// List returns the caller's most recent analyses, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	list, err := h.Repo.ListAnalyses(r.Context(), userID, r.URL.Query().Get("tool"), limit)
	if err != nil {
		h.Log.Errorw("list analyses", "user_id", userID, "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	calc.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	a, err := h.Repo.GetAnalysis(r.Context(), userID, mux.Vars(r)["id"])
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Analysis not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Errorw("get analysis", "user_id", userID, "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	calc.WriteJSON(w, http.StatusOK, a)
}
