package fatigue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurve(t *testing.T) {
	e := NewEngine(testMaterial())
	data, err := e.Curve(50, false)
	require.NoError(t, err)

	require.Len(t, data.Cycles, 50)
	require.Len(t, data.StressFullyReversed, 50)
	assert.Nil(t, data.StressR0)
	assert.Equal(t, 60.0, data.EnduranceLimit)

	assert.InDelta(t, 1e3, data.Cycles[0], 1e-9)
	assert.InDelta(t, 1e8, data.Cycles[49], 1e-3)
	for i := 1; i < len(data.Cycles); i++ {
		assert.Greater(t, data.Cycles[i], data.Cycles[i-1])
	}
	for i, s := range data.StressFullyReversed {
		assert.GreaterOrEqual(t, s, data.EnduranceLimit)
		assert.LessOrEqual(t, s, e.Material().FatigueCoefficient, "point %d", i)
	}
}

func TestCurve_EndurancePlateau(t *testing.T) {
	mat := testMaterial()
	mat.EnduranceLimit = 90
	data, err := NewEngine(mat).Curve(50, true)
	require.NoError(t, err)

	// 420 * (2e8)^-0.1 is about 62 MPa, well under the limit
	assert.Equal(t, 90.0, data.StressFullyReversed[49])
	assert.InDelta(t, 90/(1+90/mat.UltimateStrength), data.StressR0[49], 1e-12)
	for i := 1; i < len(data.StressFullyReversed); i++ {
		assert.LessOrEqual(t, data.StressFullyReversed[i], data.StressFullyReversed[i-1])
	}
}

func TestCurve_MeanStress(t *testing.T) {
	mat := testMaterial()
	e := NewEngine(mat)
	data, err := e.Curve(20, true)
	require.NoError(t, err)
	require.Len(t, data.StressR0, 20)

	for i, sa := range data.StressR0 {
		seq := data.StressFullyReversed[i]
		assert.Less(t, sa, seq)
		// Sa = Sm lies on the Goodman line for Seq
		assert.InDelta(t, seq, sa/(1-sa/mat.UltimateStrength), 1e-9)
	}
}

func TestCurve_MatchesBasquin(t *testing.T) {
	mat := testMaterial()
	e := NewEngine(mat)
	data, err := e.Curve(11, false)
	require.NoError(t, err)
	for i, n := range data.Cycles {
		s := data.StressFullyReversed[i]
		if s > mat.EnduranceLimit && n > MinCycles {
			assert.InDelta(t, n, Cycles(mat, s), 1e-6*n)
		}
	}
}

func TestCurve_InvalidPoints(t *testing.T) {
	e := NewEngine(testMaterial())
	_, err := e.Curve(0, true)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLogspace(t *testing.T) {
	got := logspace(3, 8, 6)
	for i, want := range []float64{1e3, 1e4, 1e5, 1e6, 1e7, 1e8} {
		assert.InDelta(t, want, got[i], want*1e-12)
	}
	assert.Equal(t, []float64{1000}, logspace(3, 8, 1))
	assert.False(t, math.IsNaN(logspace(3, 8, 2)[1]))
}
