package usecase

import (
	"errors"

	"resume-builder/internal/model"
)

// ErrInvalidInput marks requests rejected before reaching storage.
var ErrInvalidInput = errors.New("invalid input")

const (
	MinPasswordLength = 6
	MaxPasswordLength = 64
)

type CreateInput struct {
	Name           string
	Slug           string
	Tags           []string
	WithSampleData bool
}

// UpdateInput is a full save. Nil fields keep their stored value.
type UpdateInput struct {
	Name     *string
	Slug     *string
	Tags     *[]string
	Data     *model.ResumeData
	IsPublic *bool
}

// DuplicateInput overrides the copied header fields. Empty values fall
// back to the source document, with "-copy" appended to its slug.
type DuplicateInput struct {
	Name string
	Slug string
	Tags []string
}
