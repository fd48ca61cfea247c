package builder

// Variant is one of the two predefined build profiles.
type Variant string

const (
	// VariantDev favors iteration latency: no optimization, debug symbols,
	// ambient caches allowed, tests skipped.
	VariantDev Variant = "dev"

	// VariantRelease favors reproducibility: maximum optimization, stripped
	// symbols, pinned environment, frozen dependencies, tests run when the
	// project has them.
	VariantRelease Variant = "release"
)

// Variants lists the build variants in execution order.
var Variants = []Variant{VariantDev, VariantRelease}

// OptLevel abstracts per-language optimization settings.
type OptLevel string

const (
	OptNone OptLevel = "none"
	OptMax  OptLevel = "max"
)

// Policy is the resolved behavior of one build variant. Test-running is a
// policy dimension of its own: it is not derived from the optimization or
// determinism settings.
type Policy struct {
	Variant           Variant
	OptimizationLevel OptLevel
	DebugSymbols      bool
	Deterministic     bool
	RunTests          bool

	// EnvOverrides pin the process environment for deterministic builds
	EnvOverrides map[string]string
}

// sourceDateEpoch pins release build timestamps to 1980-01-01T00:00:00Z.
const sourceDateEpoch = "315532800"

// PolicyFor returns the variant policy for a project. The dev variant never
// runs tests; the release variant runs them exactly when the project has any.
func PolicyFor(v Variant, hasTests bool) Policy {
	switch v {
	case VariantRelease:
		return Policy{
			Variant:           VariantRelease,
			OptimizationLevel: OptMax,
			DebugSymbols:      false,
			Deterministic:     true,
			RunTests:          hasTests,
			EnvOverrides: map[string]string{
				"LC_ALL":            "C",
				"TZ":                "UTC",
				"SOURCE_DATE_EPOCH": sourceDateEpoch,
			},
		}
	default:
		return Policy{
			Variant:           VariantDev,
			OptimizationLevel: OptNone,
			DebugSymbols:      true,
			Deterministic:     false,
			RunTests:          false,
			EnvOverrides:      map[string]string{},
		}
	}
}
