package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultAccuracyThreshold applies when a descriptor omits a layout threshold.
	DefaultAccuracyThreshold = 70.0
	// DefaultProcessingWaitSeconds is the heuristic wait for target-side parsing
	// when a descriptor does not configure one. There is no deterministic
	// completion signal from the target; the wait is a documented heuristic.
	DefaultProcessingWaitSeconds = 10
)

// SelectorUpload is the selector key every descriptor must provide.
const SelectorUpload = "upload"

// TargetDescriptor describes one ATS target as pure configuration data.
// Descriptors are externally supplied and read-only: a single orchestrator
// drives every target, differences never appear as code branching.
type TargetDescriptor struct {
	Name                  string              `json:"name" validate:"required,min=1"`
	EntryURL              string              `json:"entry_url" validate:"required,url"`
	Selectors             map[string]string   `json:"selectors" validate:"required"`
	Thresholds            map[Variant]float64 `json:"thresholds,omitempty"`
	ConfirmationSelector  string              `json:"confirmation_selector,omitempty"`
	ProcessingWaitSeconds int                 `json:"processing_wait_seconds,omitempty"`
}

// Validate validates the TargetDescriptor using the validator,
// plus the structural rules the tag syntax cannot express.
func (d *TargetDescriptor) Validate() error {
	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return err
	}
	if _, ok := d.Selectors[SelectorUpload]; !ok {
		return fmt.Errorf("descriptor %s: selectors must include %q", d.Name, SelectorUpload)
	}
	for v, threshold := range d.Thresholds {
		if _, err := ParseVariant(string(v)); err != nil {
			return fmt.Errorf("descriptor %s: %w", d.Name, err)
		}
		if threshold < 0 || threshold > 100 {
			return fmt.Errorf("descriptor %s: threshold for %s must be in [0,100], got %v", d.Name, v, threshold)
		}
	}
	if d.ProcessingWaitSeconds < 0 {
		return fmt.Errorf("descriptor %s: processing_wait_seconds must be non-negative", d.Name)
	}
	return nil
}

// Threshold returns the minimum accuracy configured for a layout variant.
// The per-target configured value is authoritative; DefaultAccuracyThreshold
// applies only when the descriptor omits the variant.
func (d *TargetDescriptor) Threshold(v Variant) float64 {
	if t, ok := d.Thresholds[v]; ok {
		return t
	}
	return DefaultAccuracyThreshold
}

// ProcessingWait returns the configured processing wait as a duration.
func (d *TargetDescriptor) ProcessingWait() time.Duration {
	secs := d.ProcessingWaitSeconds
	if secs == 0 {
		secs = DefaultProcessingWaitSeconds
	}
	return time.Duration(secs) * time.Second
}

// FieldSelectors returns the selectors used for field extraction,
// excluding the upload control.
func (d *TargetDescriptor) FieldSelectors() map[string]string {
	fields := make(map[string]string, len(d.Selectors))
	for name, sel := range d.Selectors {
		if name == SelectorUpload {
			continue
		}
		fields[name] = sel
	}
	return fields
}
