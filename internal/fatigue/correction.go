package fatigue

import (
	"fmt"
	"math"
	"strings"
)

// Method selects the mean stress correction.
type Method string

const (
	MethodGoodman   Method = "goodman"
	MethodGerber    Method = "gerber"
	MethodSoderberg Method = "soderberg"
)

// Methods lists the supported corrections in report order.
var Methods = []Method{MethodGoodman, MethodGerber, MethodSoderberg}

// ParseMethod accepts a tag case-insensitively. An empty tag means Goodman.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return MethodGoodman, nil
	}
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown method: %s", ErrInvalidArgument, s)
	}
	return m, nil
}

func (m Method) Valid() bool {
	switch m {
	case MethodGoodman, MethodGerber, MethodSoderberg:
		return true
	}
	return false
}

// EquivalentStress converts the cycle into a fully reversed amplitude.
func EquivalentStress(method Method, c StressCycle, mat Material) (float64, error) {
	sa := c.Amplitude()
	sm := c.MeanStress()

	switch method {
	case MethodGoodman:
		// Sa/Se + Sm/Su = 1
		if sm >= mat.UltimateStrength {
			return math.Inf(1), nil
		}
		return sa / (1 - sm/mat.UltimateStrength), nil
	case MethodGerber:
		// Sa/Se + (Sm/Su)^2 = 1
		r := sm / mat.UltimateStrength
		return sa / (1 - r*r), nil
	case MethodSoderberg:
		// Sa/Se + Sm/Sy = 1
		return sa / (1 - sm/mat.YieldStrength), nil
	}
	return 0, fmt.Errorf("%w: unknown method: %s", ErrInvalidArgument, method)
}
