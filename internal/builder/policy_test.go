package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyFor_Dev(t *testing.T) {
	// Even with tests present the dev variant never runs them.
	p := PolicyFor(VariantDev, true)

	assert.Equal(t, VariantDev, p.Variant)
	assert.Equal(t, OptNone, p.OptimizationLevel)
	assert.True(t, p.DebugSymbols)
	assert.False(t, p.Deterministic)
	assert.False(t, p.RunTests)
	assert.Empty(t, p.EnvOverrides, "dev builds keep the ambient environment")
}

func TestPolicyFor_Release(t *testing.T) {
	tests := []struct {
		name     string
		hasTests bool
	}{
		{"with tests", true},
		{"without tests", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PolicyFor(VariantRelease, tt.hasTests)

			assert.Equal(t, OptMax, p.OptimizationLevel)
			assert.False(t, p.DebugSymbols)
			assert.True(t, p.Deterministic)
			assert.Equal(t, tt.hasTests, p.RunTests, "release runs tests exactly when the project has them")
			assert.Equal(t, "C", p.EnvOverrides["LC_ALL"])
			assert.Equal(t, "UTC", p.EnvOverrides["TZ"])
			assert.Equal(t, sourceDateEpoch, p.EnvOverrides["SOURCE_DATE_EPOCH"])
		})
	}
}

func TestPolicyFor_TestsIndependentOfOptimization(t *testing.T) {
	// RunTests is its own policy dimension, not a consequence of OptMax.
	withTests := PolicyFor(VariantRelease, true)
	withoutTests := PolicyFor(VariantRelease, false)

	assert.Equal(t, withTests.OptimizationLevel, withoutTests.OptimizationLevel)
	assert.Equal(t, withTests.Deterministic, withoutTests.Deterministic)
	assert.NotEqual(t, withTests.RunTests, withoutTests.RunTests)
}
