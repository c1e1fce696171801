package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Fatigue/internal/calc"
	"Fatigue/internal/calc/damage"
	"Fatigue/internal/fatigue"
	"Fatigue/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engine() *fatigue.Engine {
	return fatigue.NewEngine(fatigue.Material{
		UltimateStrength:   310,
		YieldStrength:      276,
		FatigueCoefficient: 420,
		FatigueExponent:    -0.1,
		EnduranceLimit:     60,
	})
}

func TestBuild(t *testing.T) {
	rep, err := Build(engine(), "Al 6061-T6", Input{
		Method: "gerber",
		LoadCases: []LoadCase{
			{Name: "LC1 reversed", SmaxMPa: 150, SminMPa: -150},
			{SmaxMPa: 80, SminMPa: 40},
		},
		Blocks: []damage.Block{{SmaxMPa: 150, SminMPa: -150, AppliedCycles: 1000}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Fatigue Assessment Report", rep.Title)
	require.Len(t, rep.Lives, 2)
	assert.Equal(t, fatigue.MethodGerber, rep.Lives[0].Method)
	assert.True(t, rep.Lives[1].InfiniteLife)
	require.NotNil(t, rep.Damage)
	assert.Len(t, rep.Damage.Blocks, 1)
}

func TestBuild_UnknownMethod(t *testing.T) {
	_, err := Build(engine(), "", Input{Method: "tresca", LoadCases: []LoadCase{{SmaxMPa: 100}}})
	assert.ErrorIs(t, err, fatigue.ErrInvalidArgument)

	_, err = Build(engine(), "", Input{Method: "tresca"})
	assert.ErrorIs(t, err, fatigue.ErrInvalidArgument)
}

func TestBuild_NormalisesMethod(t *testing.T) {
	rep, err := Build(engine(), "", Input{})
	require.NoError(t, err)
	assert.Equal(t, "goodman", rep.Method)

	rep, err = Build(engine(), "", Input{Method: "GERBER"})
	require.NoError(t, err)
	assert.Equal(t, "gerber", rep.Method)
}

func TestRender(t *testing.T) {
	rep, err := Build(engine(), "Al 6061-T6", Input{
		Project:   "Bracket",
		Notes:     "Checked against the vibration spectrum.",
		LoadCases: []LoadCase{{SmaxMPa: 100, SminMPa: 100}},
		Blocks:    []damage.Block{{SmaxMPa: 80, SminMPa: 40, AppliedCycles: 1}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rep))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestHandler(t *testing.T) {
	h := &Handler{Env: &calc.Env{Engine: engine(), MaterialName: "Al", Log: logging.Nop()}}

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"project":"P","load_cases":[{"smax_mpa":150,"smin_mpa":-150}]}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"method":"tresca","load_cases":[{"smax_mpa":1}]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
