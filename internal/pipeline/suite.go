package pipeline

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-probe/internal/telemetry"
	"github.com/jonathan/ats-probe/internal/types"
)

// DefaultConcurrency bounds how many units run at once.
const DefaultConcurrency = 4

// unit pairs a target with a layout variant. Units are independent; the
// only shared state between them is the read-only descriptor table.
type unit struct {
	target  *types.TargetDescriptor
	variant types.Variant
}

// RunSuite executes every (target, layout) unit, bounded by the configured
// concurrency, and returns all outcomes in unit order. Suite start/end
// events are emitted and the emitter is flushed before returning so no
// events are silently lost at process exit.
func RunSuite(ctx context.Context, targets []types.TargetDescriptor, opts *RunOptions) ([]*types.TestOutcome, error) {
	units := make([]unit, 0, len(targets)*2)
	for i := range targets {
		for _, variant := range types.Variants() {
			units = append(units, unit{target: &targets[i], variant: variant})
		}
	}

	if opts.Emitter != nil {
		opts.Emitter.Emit(telemetry.SuiteStarted(len(units), opts.Browser, opts.Environment))
	}

	start := time.Now()
	outcomes := make([]*types.TestOutcome, len(units))

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	printer := NewPrinter(os.Stdout)

	for i, un := range units {
		g.Go(func() error {
			outcome := RunUnit(gCtx, un.target, un.variant, opts)
			outcomes[i] = outcome
			if opts.Verbose {
				printer.PrintOutcome(outcome)
			}
			// Unit failures are outcomes, not suite errors.
			return nil
		})
	}

	// Units never return errors; Wait only propagates ctx cancellation.
	err := g.Wait()

	passed, failed := 0, 0
	for _, outcome := range outcomes {
		if outcome == nil {
			failed++
			continue
		}
		if outcome.Success {
			passed++
		} else {
			failed++
		}
	}

	if opts.Emitter != nil {
		opts.Emitter.Emit(telemetry.SuiteCompleted(len(units), passed, failed, time.Since(start), opts.Browser, opts.Environment))
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if flushErr := opts.Emitter.Flush(flushCtx); flushErr != nil {
			// Telemetry trouble never affects the suite result.
			printer.PrintWarning("telemetry flush incomplete: " + flushErr.Error())
		}
	}

	if opts.Verbose {
		printer.PrintSummary(outcomes, time.Since(start))
	}

	return outcomes, err
}
