package builder

import "fmt"

// Status is the uniform result code surfaced to callers.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusCompileFailure Status = "compile-failure"
	StatusTestFailure    Status = "test-failure"
)

// CompileError reports a native toolchain compile or install failure.
// It carries the full toolchain output and is never auto-retried.
type CompileError struct {
	Language string
	Variant  Variant
	Output   string
	Err      error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s %s build failed: %v", e.Language, e.Variant, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// TestError reports a test suite failure inside a release build whose
// compile step succeeded. The compiled artifact remains available.
type TestError struct {
	Language string
	Artifact string
	Output   string
	Err      error
}

func (e *TestError) Error() string {
	return fmt.Sprintf("%s tests failed (artifact preserved at %s): %v", e.Language, e.Artifact, e.Err)
}

func (e *TestError) Unwrap() error { return e.Err }
