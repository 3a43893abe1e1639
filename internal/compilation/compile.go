package compilation

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-probe/internal/types"
)

const (
	// DefaultTimeout is the maximum time to wait for pdflatex
	DefaultTimeout = 30 * time.Second

	// documentMarker is the required top-level marker; markup without it is
	// rejected before any engine runs.
	documentMarker = `\documentclass`
)

// auxExtensions are the pdflatex auxiliary files removed unconditionally
// after either compilation path, success or failure.
var auxExtensions = []string{".aux", ".log", ".out", ".toc", ".lof", ".lot"}

// Options configures a single compile invocation
type Options struct {
	// WorkDir is the working directory; a temp dir is created when empty.
	WorkDir string
	// Timeout bounds the pdflatex subprocess; DefaultTimeout when zero.
	Timeout time.Duration
	// ForceFallback skips pdflatex and uses the structural fallback directly.
	ForceFallback bool
}

// Compile turns LaTeX markup into a PDF. The only error it returns is a
// *MarkupError for invalid markup, raised before any engine is invoked.
// Engine trouble never surfaces as an error: the result is exactly one of
// success with a non-empty PDF or failure with a non-empty diagnostic log.
// Auxiliary files are cleaned up on every exit path.
func Compile(ctx context.Context, markup, outputName string, opts Options) (*types.CompiledDocument, error) {
	if !strings.Contains(markup, documentMarker) {
		return nil, &MarkupError{
			Message: fmt.Sprintf("markup lacks required %s marker", documentMarker),
		}
	}

	var primaryLog string
	if !opts.ForceFallback {
		pdf, logOutput, err := compilePrimary(ctx, markup, outputName, opts)
		if err == nil && len(pdf) > 0 {
			return &types.CompiledDocument{
				PDF:     pdf,
				Engine:  types.EnginePDFLaTeX,
				Success: true,
				Log:     logOutput,
			}, nil
		}
		// Recoverable: fall through to the structural fallback.
		primaryLog = logOutput
		if err != nil {
			primaryLog += "\n" + err.Error()
		}
	}

	pdf, err := compileFallback(markup)
	if err != nil {
		return &types.CompiledDocument{
			Engine:  types.EngineFallback,
			Success: false,
			Log:     strings.TrimSpace(primaryLog + "\nfallback: " + err.Error()),
		}, nil
	}

	return &types.CompiledDocument{
		PDF:     pdf,
		Engine:  types.EngineFallback,
		Success: true,
		Log:     strings.TrimSpace(primaryLog),
	}, nil
}

// compilePrimary runs pdflatex against a uniquely-named working file so
// concurrent invocations never collide on disk.
func compilePrimary(ctx context.Context, markup, outputName string, opts Options) (pdf []byte, logOutput string, err error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return nil, "", &CompilationError{
			Message: "pdflatex not found in PATH",
			Cause:   err,
		}
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir, err = os.MkdirTemp("", "ats-probe-compile-*")
		if err != nil {
			return nil, "", &CompilationError{
				Message: "failed to create temporary working directory",
				Cause:   err,
			}
		}
		defer func() { _ = os.RemoveAll(workDir) }()
	} else {
		if err := os.MkdirAll(workDir, 0755); err != nil {
			return nil, "", &CompilationError{
				Message: fmt.Sprintf("failed to create working directory: %s", workDir),
				Cause:   err,
			}
		}
	}

	baseName := fmt.Sprintf("%s-%s", outputName, uuid.NewString())
	texPath := filepath.Join(workDir, baseName+".tex")
	if err := os.WriteFile(texPath, []byte(markup), 0644); err != nil {
		return nil, "", &CompilationError{
			Message: fmt.Sprintf("failed to write working file: %s", texPath),
			Cause:   err,
		}
	}
	defer cleanupArtifacts(workDir, baseName)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// -interaction=nonstopmode prevents interactive prompts;
	// -output-directory keeps all artifacts in the working directory.
	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-output-directory", workDir, texPath)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	logOutput = stdout.String() + stderr.String()

	pdfPath := filepath.Join(workDir, baseName+".pdf")
	data, readErr := os.ReadFile(pdfPath)
	if readErr != nil || len(data) == 0 {
		return nil, logOutput, &CompilationError{
			Message:   "pdflatex did not produce a PDF",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// pdflatex can exit nonzero yet still emit a usable PDF; a present,
	// non-empty artifact wins.
	return data, logOutput, nil
}

// cleanupArtifacts removes the working file and pdflatex auxiliary files by
// the fixed extension list. It runs after either path, even on failure.
func cleanupArtifacts(workDir, baseName string) {
	_ = os.Remove(filepath.Join(workDir, baseName+".tex"))
	_ = os.Remove(filepath.Join(workDir, baseName+".pdf"))
	for _, ext := range auxExtensions {
		_ = os.Remove(filepath.Join(workDir, baseName+ext))
	}
}
