// Package compilation compiles LaTeX markup into PDF documents, with a
// pdflatex primary path and a structural-extraction fallback.
package compilation

import "fmt"

// MarkupError represents markup rejected before any engine is invoked,
// such as a missing top-level document marker. It is a validation error,
// distinct from CompilationError.
type MarkupError struct {
	Message string
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("markup error: %s", e.Message)
}

// CompilationError represents a recoverable engine failure: pdflatex
// absent, nonzero exit, timeout, or missing output artifact. It triggers
// the fallback path and is fatal only when the fallback also fails.
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
