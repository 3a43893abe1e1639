package pipeline

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/ats-probe/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintOutcome outputs a human-readable summary of one unit outcome.
func (p *Printer) PrintOutcome(outcome *types.TestOutcome) {
	if outcome == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target:   %s\n", outcome.Target))
	sb.WriteString(fmt.Sprintf("Layout:   %s\n", outcome.Variant))
	sb.WriteString(fmt.Sprintf("Stage:    %s\n", outcome.Stage))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", outcome.Duration.Round(time.Millisecond)))

	if outcome.Report != nil {
		sb.WriteString(fmt.Sprintf("Accuracy: %.1f%% (%d/%d fields)\n",
			outcome.Report.Accuracy, outcome.Report.Matched(), len(outcome.Report.Fields)))

		fields := make([]string, 0, len(outcome.Report.Fields))
		for field := range outcome.Report.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			mark := "✗"
			if outcome.Report.Fields[field] {
				mark = "✓"
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", mark, field))
		}
	}
	if outcome.Degraded {
		sb.WriteString("⚠ processing wait expired; scored partial data\n")
	}
	if outcome.Err != "" {
		sb.WriteString(fmt.Sprintf("Error:    %s\n", outcome.Err))
	}

	verdict := "FAILED"
	if outcome.Success {
		verdict = "PASSED"
	}
	p.printBox(fmt.Sprintf("%s / %s: %s", outcome.Target, outcome.Variant, verdict),
		strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs aggregate counts for a finished suite.
func (p *Printer) PrintSummary(outcomes []*types.TestOutcome, elapsed time.Duration) {
	passed, belowThreshold, failed := 0, 0, 0
	for _, outcome := range outcomes {
		switch {
		case outcome == nil:
			failed++
		case outcome.Success:
			passed++
		case outcome.Stage == types.StageReported:
			belowThreshold++
		default:
			failed++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Units run:        %d\n", len(outcomes)))
	sb.WriteString(fmt.Sprintf("Passed:           %d\n", passed))
	sb.WriteString(fmt.Sprintf("Below threshold:  %d\n", belowThreshold))
	sb.WriteString(fmt.Sprintf("Failed:           %d\n", failed))
	sb.WriteString(fmt.Sprintf("Elapsed:          %s", elapsed.Round(time.Millisecond)))

	p.printBox("SUITE SUMMARY", sb.String())
}

// PrintWarning outputs a single warning line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarning(msg string) {
	fmt.Fprintf(p.out, "⚠ %s\n", msg)
}
