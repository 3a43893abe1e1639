// Package submission drives one ATS target through a headless browser:
// navigate, upload, await processing, extract fields.
package submission

import "fmt"

// NavigationError represents a failure to reach or load the target entry
// point. Fatal for the unit; retry is left to the browser's own waiting.
type NavigationError struct {
	Target  string
	Message string
	Cause   error
}

func (e *NavigationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("navigation error (%s): %s: %v", e.Target, e.Message, e.Cause)
	}
	return fmt.Sprintf("navigation error (%s): %s", e.Target, e.Message)
}

func (e *NavigationError) Unwrap() error {
	return e.Cause
}

// UploadError represents a failure to deliver the document to the target's
// upload control. Fatal for the unit.
type UploadError struct {
	Target  string
	Message string
	Cause   error
}

func (e *UploadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upload error (%s): %s: %v", e.Target, e.Message, e.Cause)
	}
	return fmt.Sprintf("upload error (%s): %s", e.Target, e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}
