// Package pipeline provides the high-level orchestration for round-trip testing.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-probe/internal/compilation"
	"github.com/jonathan/ats-probe/internal/generation"
	"github.com/jonathan/ats-probe/internal/rendering"
	"github.com/jonathan/ats-probe/internal/scoring"
	"github.com/jonathan/ats-probe/internal/submission"
	"github.com/jonathan/ats-probe/internal/telemetry"
	"github.com/jonathan/ats-probe/internal/types"
)

// DefaultUnitTimeout bounds one (target, layout) unit end-to-end.
const DefaultUnitTimeout = 3 * time.Minute

// RunOptions holds configuration shared by all units of a run
type RunOptions struct {
	Seed          int64
	Browser       string
	Environment   string
	WorkDir       string
	ForceFallback bool
	UnitTimeout   time.Duration
	Concurrency   int
	Verbose       bool
	BrowserOpts   submission.Options
	Emitter       *telemetry.Emitter
	// Generator optionally replaces seeded synthesis (e.g. LLM-backed).
	Generator func(ctx context.Context) (*generation.Result, error)
}

// unitRun tracks the state machine of one unit as it advances
type unitRun struct {
	opts    *RunOptions
	outcome *types.TestOutcome
}

// step executes one stage transition, recording its duration and outcome
// independent of the final verdict. On error the unit moves to the
// terminal Failed state, keeping the stage that failed and the raw error
// text for diagnostics.
func (u *unitRun) step(ctx context.Context, stage types.Stage, fn func() error) bool {
	start := time.Now()
	err := fn()
	if err == nil && ctx.Err() != nil {
		err = fmt.Errorf("unit timeout during %s: %w", stage, ctx.Err())
	}

	u.outcome.Timings = append(u.outcome.Timings, types.StageTiming{
		Stage:    stage,
		Duration: time.Since(start),
		Success:  err == nil,
	})

	if err != nil {
		u.outcome.Stage = types.StageFailed
		u.outcome.Err = fmt.Sprintf("%s: %v", stage, err)
		return false
	}
	u.outcome.Stage = stage
	return true
}

// RunUnit drives one (target, layout) unit through the full pipeline:
// generate, render, compile, submit, await, extract, score, report.
// It always returns an outcome; every unit ends in exactly one of
// Reported-success, Reported-below-threshold, or Failed-with-diagnostic.
func RunUnit(ctx context.Context, target *types.TargetDescriptor, variant types.Variant, opts *RunOptions) *types.TestOutcome {
	timeout := opts.UnitTimeout
	if timeout == 0 {
		timeout = DefaultUnitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	u := &unitRun{
		opts: opts,
		outcome: &types.TestOutcome{
			Target:  target.Name,
			Variant: variant,
			TestID:  uuid.NewString(),
			Stage:   types.StageInit,
		},
	}
	defer func() {
		u.outcome.Duration = time.Since(start)
		if opts.Emitter != nil {
			opts.Emitter.Emit(telemetry.TestCompleted(u.outcome, opts.Browser, opts.Environment))
		}
	}()

	// Generation + rendering: a pure transform, Init -> Rendered.
	var record *types.CandidateRecord
	var markup string
	ok := u.step(ctx, types.StageRendered, func() error {
		genStart := time.Now()
		result, err := u.generate(ctx)
		if opts.Emitter != nil {
			errText := ""
			if err != nil {
				errText = err.Error()
			}
			ev := telemetry.CVGenerated(variant, err == nil, time.Since(genStart), tokensOf(result), modelOf(result), errText)
			opts.Emitter.Emit(ev)
		}
		if err != nil {
			return err
		}
		record = result.Record

		markup, err = rendering.RenderLaTeX(record, variant)
		return err
	})
	if !ok {
		return u.outcome
	}

	// Compilation: terminal failure only when both engines fail.
	var doc *types.CompiledDocument
	ok = u.step(ctx, types.StageCompiled, func() error {
		compileStart := time.Now()
		compiled, err := compilation.Compile(ctx, markup, "cv-"+string(variant), compilation.Options{
			WorkDir:       opts.WorkDir,
			ForceFallback: opts.ForceFallback,
		})
		if err != nil {
			return err
		}
		doc = compiled
		if opts.Emitter != nil {
			errText := ""
			if !doc.Success {
				errText = doc.Log
			}
			opts.Emitter.Emit(telemetry.PDFCompiled(variant, doc.Engine, doc.Success, time.Since(compileStart), errText))
		}
		if !doc.Success {
			return fmt.Errorf("both compilation paths failed: %s", doc.Log)
		}
		return nil
	})
	if !ok {
		return u.outcome
	}

	// Submission: navigation and upload failures are hard failures for the
	// unit; the processing wait expiring is inconclusive, not fatal.
	var session *submission.Session
	ok = u.step(ctx, types.StageSubmitted, func() error {
		s, err := submission.NewSession(ctx, target, opts.BrowserOpts)
		if err != nil {
			return err
		}
		session = s
		if err := s.Navigate(ctx); err != nil {
			return err
		}
		return s.Upload(ctx, doc.PDF)
	})
	if session != nil {
		defer session.Close()
	}
	if !ok {
		return u.outcome
	}

	var extracted types.ExtractedFieldSet
	ok = u.step(ctx, types.StageExtracted, func() error {
		confirmed, err := session.AwaitProcessing(ctx)
		if err != nil {
			return err
		}
		if !confirmed {
			u.outcome.Degraded = true
		}
		extracted = session.ExtractFields(ctx)
		return nil
	})
	if !ok {
		return u.outcome
	}

	// Scoring never fails for any input.
	var report *types.FidelityReport
	u.step(ctx, types.StageScored, func() error {
		report = scoring.Score(rendering.ExpectedFields(record), extracted)
		u.outcome.Report = report
		return nil
	})
	if u.outcome.Stage == types.StageFailed {
		return u.outcome
	}

	// Reporting always succeeds; below-threshold is a normal assertion
	// failure, distinct from the infrastructure errors above.
	u.step(ctx, types.StageReported, func() error { return nil })
	threshold := target.Threshold(variant)
	if report.Accuracy >= threshold {
		u.outcome.Success = true
	} else {
		u.outcome.Err = fmt.Sprintf("accuracy %.1f%% below threshold %.1f%%", report.Accuracy, threshold)
	}

	return u.outcome
}

func (u *unitRun) generate(ctx context.Context) (*generation.Result, error) {
	if u.opts.Generator != nil {
		return u.opts.Generator(ctx)
	}
	return &generation.Result{Record: generation.Generate(u.opts.Seed)}, nil
}

func tokensOf(r *generation.Result) int {
	if r == nil {
		return 0
	}
	return r.TokensUsed
}

func modelOf(r *generation.Result) string {
	if r == nil {
		return ""
	}
	return r.Model
}
