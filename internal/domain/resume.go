package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/model"
)

// Resume is a stored resume document and its sharing state.
type Resume struct {
	ID               uuid.UUID         `json:"id"`
	UserID           uuid.UUID         `json:"userId"`
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	Tags             []string          `json:"tags"`
	Data             *model.ResumeData `json:"data"`
	IsPublic         bool              `json:"isPublic"`
	IsLocked         bool              `json:"isLocked"`
	PasswordHash     string            `json:"-"`
	Views            int64             `json:"-"`
	Downloads        int64             `json:"-"`
	LastViewedAt     *time.Time        `json:"-"`
	LastDownloadedAt *time.Time        `json:"-"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

func (r *Resume) HasPassword() bool { return r.PasswordHash != "" }

// Clone copies r including its data so callers can mutate the result freely.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return nil
	}
	out := *r
	out.Tags = append([]string{}, r.Tags...)
	if r.Data != nil {
		out.Data = r.Data.Clone()
	}
	if r.LastViewedAt != nil {
		t := *r.LastViewedAt
		out.LastViewedAt = &t
	}
	if r.LastDownloadedAt != nil {
		t := *r.LastDownloadedAt
		out.LastDownloadedAt = &t
	}
	return &out
}

// Statistics are the public counters of a resume.
type Statistics struct {
	Views            int64      `json:"views"`
	Downloads        int64      `json:"downloads"`
	LastViewedAt     *time.Time `json:"lastViewedAt"`
	LastDownloadedAt *time.Time `json:"lastDownloadedAt"`
}

func (r *Resume) Statistics() Statistics {
	return Statistics{
		Views:            r.Views,
		Downloads:        r.Downloads,
		LastViewedAt:     r.LastViewedAt,
		LastDownloadedAt: r.LastDownloadedAt,
	}
}

type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
}

// GuestUserID owns every document created without an identity.
var GuestUserID = uuid.Nil

const GuestUsername = "guest"

func Guest() User {
	return User{ID: GuestUserID, Username: GuestUsername, Name: "Guest"}
}

var (
	ErrNotFound         = errors.New("resume not found")
	ErrLocked           = errors.New("RESUME_LOCKED")
	ErrSlugExists       = errors.New("RESUME_SLUG_ALREADY_EXISTS")
	ErrPasswordRequired = errors.New("RESUME_PASSWORD_REQUIRED")
	ErrInvalidPassword  = errors.New("INVALID_PASSWORD")
)
