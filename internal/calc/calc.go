// Package calc holds what the fatigue tool handlers share: request decoding
// and validation, JSON encoding of infinite results, and saving analyses.
package calc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"Fatigue/internal/auth"
	"Fatigue/internal/fatigue"
	"Fatigue/internal/metrics"
	"Fatigue/internal/repo"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const infinity = "Infinity"

// Float is a float64 that survives JSON with +/-Inf, written as the
// strings "Infinity" and "-Infinity". NaN is written as null.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"` + infinity + `"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-` + infinity + `"`), nil
	case math.IsNaN(v):
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch strings.ToLower(s) {
		case "infinity", "inf", "+infinity":
			*f = Float(math.Inf(1))
		case "-infinity", "-inf":
			*f = Float(math.Inf(-1))
		default:
			return fmt.Errorf("invalid number %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

func Floats(in []float64) []Float {
	out := make([]Float, len(in))
	for i, v := range in {
		out[i] = Float(v)
	}
	return out
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrValidation wraps request payloads that fail struct validation.
var ErrValidation = errors.New("validation failed")

func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: %s %s", fe.Namespace(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Env is shared by every fatigue tool handler. Store and Metrics may be nil.
type Env struct {
	Engine       *fatigue.Engine
	MaterialName string
	Store        repo.AnalysisRepository
	Metrics      *metrics.Metrics
	Log          *zap.SugaredLogger
}

// Decode reads a JSON body into v and validates it.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request payload: %v", ErrValidation, err)
	}
	return Validate(v)
}

// Fail writes the error with a status chosen from its kind.
func (env *Env) Fail(w http.ResponseWriter, tool string, err error) {
	env.Metrics.Failure(tool)
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, fatigue.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, fatigue.ErrConfiguration):
		env.Log.Errorw("calculation rejected by material", "tool", tool, "error", err)
		http.Error(w, "Material configuration error", http.StatusInternalServerError)
	default:
		env.Log.Errorw("calculation failed", "tool", tool, "error", err)
		http.Error(w, "Calculation error", http.StatusInternalServerError)
	}
}

// Saved wraps a result with the id it was stored under.
type Saved struct {
	ID     string `json:"id,omitempty"`
	Result any    `json:"result"`
}

// Respond stores the analysis for the signed in user, if any, and writes it.
// A storage failure is logged and the result is still returned.
func (env *Env) Respond(w http.ResponseWriter, r *http.Request, tool, method string, input, result any) {
	out := Saved{Result: result}
	if userID := auth.UserID(r.Context()); userID != 0 && env.Store != nil {
		id, err := env.save(r, userID, tool, method, input, result)
		if err != nil {
			env.Log.Warnw("save analysis", "tool", tool, "user_id", userID, "error", err)
		} else {
			out.ID = id
		}
	}
	WriteJSON(w, http.StatusOK, out)
}

func (env *Env) save(r *http.Request, userID int, tool, method string, input, result any) (string, error) {
	in, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	res, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return env.Store.SaveAnalysis(r.Context(), repo.Analysis{
		UserID: userID,
		Tool:   tool,
		Method: method,
		Input:  in,
		Result: res,
	})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
