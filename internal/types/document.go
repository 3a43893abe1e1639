package types

// Engine identifiers recorded on compiled documents.
const (
	EnginePDFLaTeX = "pdflatex"
	EngineFallback = "fallback"
)

// CompiledDocument represents the binary result of compiling rendered markup.
// Invariant: Success == true implies len(PDF) > 0.
type CompiledDocument struct {
	PDF     []byte `json:"-"`
	Engine  string `json:"engine"`
	Success bool   `json:"success"`
	Log     string `json:"log,omitempty"`
}
