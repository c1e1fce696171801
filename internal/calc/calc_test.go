package calc

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Fatigue/internal/auth"
	"Fatigue/internal/fatigue"
	"Fatigue/internal/logging"
	"Fatigue/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat_MarshalJSON(t *testing.T) {
	b, err := json.Marshal([]Float{1.5, Float(math.Inf(1)), Float(math.Inf(-1)), Float(math.NaN())})
	require.NoError(t, err)
	assert.Equal(t, `[1.5,"Infinity","-Infinity",null]`, string(b))
}

func TestFloat_UnmarshalJSON(t *testing.T) {
	var got []Float
	require.NoError(t, json.Unmarshal([]byte(`[2, "Infinity", "-inf", null]`), &got))
	require.Len(t, got, 4)
	assert.Equal(t, Float(2), got[0])
	assert.True(t, math.IsInf(float64(got[1]), 1))
	assert.True(t, math.IsInf(float64(got[2]), -1))
	assert.True(t, math.IsNaN(float64(got[3])))

	var f Float
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &f))
}

type sample struct {
	N      int       `json:"n" validate:"min=2"`
	Blocks []float64 `json:"blocks" validate:"required,min=1"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(sample{N: 2, Blocks: []float64{1}}))

	err := Validate(sample{N: 1})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "sample.N")
	assert.Contains(t, err.Error(), "sample.Blocks")
}

func TestDecode(t *testing.T) {
	var s sample
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"n":3,"blocks":[1,2]}`))
	require.NoError(t, Decode(req, &s))
	assert.Equal(t, 3, s.N)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"n":`))
	assert.ErrorIs(t, Decode(req, &s), ErrValidation)
}

func newEnv(store repo.AnalysisRepository) *Env {
	return &Env{
		Engine: fatigue.NewEngine(fatigue.Material{
			UltimateStrength: 310, YieldStrength: 276, FatigueCoefficient: 420, FatigueExponent: -0.1, EnduranceLimit: 60,
		}),
		Store: store,
		Log:   logging.Nop(),
	}
}

func TestFail(t *testing.T) {
	env := newEnv(nil)
	tests := []struct {
		err  error
		code int
	}{
		{ErrValidation, http.StatusBadRequest},
		{fatigue.ErrInvalidArgument, http.StatusBadRequest},
		{fatigue.ErrConfiguration, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		env.Fail(rec, "life", tt.err)
		assert.Equal(t, tt.code, rec.Code, tt.err.Error())
	}
}

func TestRespond_SavesForUser(t *testing.T) {
	store := repo.NewMemory()
	env := newEnv(store)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 4))
	rec := httptest.NewRecorder()
	env.Respond(rec, req, "life", "goodman", map[string]float64{"smax_mpa": 100}, map[string]Float{"cycles": Float(math.Inf(1))})

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		ID     string          `json:"id"`
		Result json.RawMessage `json:"result"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	require.NotEmpty(t, out.ID)
	assert.JSONEq(t, `{"cycles":"Infinity"}`, string(out.Result))

	a, err := store.GetAnalysis(context.Background(), 4, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "goodman", a.Method)
	assert.JSONEq(t, `{"smax_mpa":100}`, string(a.Input))
}

func TestRespond_Anonymous(t *testing.T) {
	store := repo.NewMemory()
	env := newEnv(store)

	rec := httptest.NewRecorder()
	env.Respond(rec, httptest.NewRequest(http.MethodPost, "/", nil), "life", "", 1, 2)
	assert.JSONEq(t, `{"result":2}`, rec.Body.String())

	list, err := store.ListAnalyses(context.Background(), 0, "", 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}
