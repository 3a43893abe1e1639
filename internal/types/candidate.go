// Package types provides type definitions for structured data used throughout the ats-probe system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// CandidateRecord represents a synthesized candidate used for round-trip testing.
type CandidateRecord struct {
	Name       string            `json:"name" validate:"required,min=1"`
	Email      string            `json:"email" validate:"required,email"`
	Phone      string            `json:"phone" validate:"required,min=1"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
}

// ExperienceEntry represents a single work experience entry
type ExperienceEntry struct {
	Company   string   `json:"company"`
	Role      string   `json:"role"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Bullets   []string `json:"bullets"`
}

// EducationEntry represents a single education entry
type EducationEntry struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Validate validates the CandidateRecord using the validator.
// Name, email, and phone are required for every record.
func (r *CandidateRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// FirstName returns the first whitespace-separated token of the candidate name.
func (r *CandidateRecord) FirstName() string {
	return splitNamePart(r.Name, 0)
}

// LastName returns the last whitespace-separated token of the candidate name.
func (r *CandidateRecord) LastName() string {
	return splitNamePart(r.Name, -1)
}
