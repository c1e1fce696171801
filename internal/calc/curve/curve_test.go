package curve

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"Fatigue/internal/calc"
	"Fatigue/internal/fatigue"
	"Fatigue/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func engine() *fatigue.Engine {
	return fatigue.NewEngine(fatigue.Material{
		UltimateStrength:   310,
		YieldStrength:      276,
		FatigueCoefficient: 420,
		FatigueExponent:    -0.1,
		EnduranceLimit:     90,
	})
}

func TestCalculate_Defaults(t *testing.T) {
	data, err := Calculate(engine(), Input{})
	require.NoError(t, err)
	assert.Len(t, data.Cycles, defaultPoints)
	assert.Len(t, data.StressR0, defaultPoints)

	off := false
	data, err = Calculate(engine(), Input{Points: 10, MeanStress: &off})
	require.NoError(t, err)
	assert.Len(t, data.Cycles, 10)
	assert.Nil(t, data.StressR0)
}

func TestHandler(t *testing.T) {
	h := &Handler{Env: &calc.Env{Engine: engine(), Log: logging.Nop()}}

	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"n_points":5}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Cycles         []float64 `json:"cycles"`
		StressR0       []float64 `json:"stress_r0"`
		EnduranceLimit float64   `json:"endurance_limit"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Len(t, out.Cycles, 5)
	assert.Len(t, out.StressR0, 5)
	assert.Equal(t, 90.0, out.EnduranceLimit)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"n_points":1}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteWorkbook(t *testing.T) {
	data, err := engine().Curve(4, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, "Al 6061-T6", data))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"cycles", "stress_fully_reversed_mpa", "stress_r0_mpa"}, rows[0][:3])

	n, err := strconv.ParseFloat(rows[1][0], 64)
	require.NoError(t, err)
	assert.InDelta(t, 1000, n, 1e-6)

	name, err := f.GetCellValue(sheetName, "G1")
	require.NoError(t, err)
	assert.Equal(t, "Al 6061-T6", name)
}

func TestExportHandler(t *testing.T) {
	h := &Handler{Env: &calc.Env{Engine: engine(), MaterialName: "steel", Log: logging.Nop()}}
	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"n_points":3,"include_mean_stress":false}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, "stress_fully_reversed_mpa", rows[0][1])
}
