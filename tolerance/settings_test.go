package tolerance_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/ciplp/tolerance"
)

func TestNewSettings_Defaults(t *testing.T) {
	s := tolerance.NewSettings()

	assert.Equal(t, tolerance.DefaultInfinity, s.Infinity())
	assert.Equal(t, tolerance.DefaultEpsilon, s.Epsilon())
	assert.Equal(t, tolerance.DefaultFeasTol, s.FeasTol())
	assert.Equal(t, tolerance.DefaultDualFeasTol, s.DualFeasTol())
	assert.Equal(t, tolerance.DefaultSumEpsilon, s.SumEpsilon())
}

func TestNewSettings_OrderAndOverride(t *testing.T) {
	s := tolerance.NewSettings(
		tolerance.WithEpsilon(1e-3),
		tolerance.WithEpsilon(1e-4), // last wins
	)
	assert.Equal(t, 1e-4, s.Epsilon())
}

func TestIsZero(t *testing.T) {
	s := tolerance.NewSettings(tolerance.WithEpsilon(1e-6))

	assert.True(t, s.IsZero(0))
	assert.True(t, s.IsZero(5e-7))
	assert.False(t, s.IsZero(1e-5))
}

func TestIsEQ(t *testing.T) {
	s := tolerance.NewSettings()
	assert.True(t, s.IsEQ(1.0, 1.0+1e-12))
	assert.False(t, s.IsEQ(1.0, 1.1))
}

func TestIsLEAndGE(t *testing.T) {
	s := tolerance.NewSettings()
	assert.True(t, s.IsLE(1.0, 1.0))
	assert.True(t, s.IsLE(0.999999999, 1.0))
	assert.False(t, s.IsLE(1.1, 1.0))

	assert.True(t, s.IsGE(1.0, 1.0))
	assert.False(t, s.IsGE(0.9, 1.0))
}

func TestIsInfinity(t *testing.T) {
	s := tolerance.NewSettings()
	assert.True(t, s.IsInfinity(math.Inf(1)))
	assert.True(t, s.IsInfinity(s.Infinity()))
	assert.True(t, s.IsInfinity(-s.Infinity()))
	assert.False(t, s.IsInfinity(1000.0))
}

func TestIsIntegral(t *testing.T) {
	s := tolerance.NewSettings()
	assert.True(t, s.IsIntegral(3.0))
	assert.True(t, s.IsIntegral(3.0+1e-12))
	assert.False(t, s.IsIntegral(3.5))
}

func TestFloorCeil(t *testing.T) {
	s := tolerance.NewSettings()

	assert.Equal(t, 3.0, s.Floor(3.0+1e-12))
	assert.Equal(t, 3.0, s.Floor(3.7))
	assert.Equal(t, 3.0, s.Ceil(3.0+1e-12))
	assert.Equal(t, 4.0, s.Ceil(3.2))
}

func TestIsSumLE(t *testing.T) {
	s := tolerance.NewSettings(tolerance.WithSumEpsilon(1e-3))
	assert.True(t, s.IsSumLE(1.0009, 1.0))
	assert.False(t, s.IsSumLE(1.01, 1.0))
}
