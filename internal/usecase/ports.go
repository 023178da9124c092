package usecase

import (
	"context"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/importer"
	"resume-builder/internal/model"
)

// ResumeRepo persists resume documents. Implementations return
// domain.ErrNotFound, domain.ErrLocked and domain.ErrSlugExists.
type ResumeRepo interface {
	EnsureUser(ctx context.Context, u domain.User) error
	Create(ctx context.Context, r *domain.Resume) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resume, error)
	GetBySlug(ctx context.Context, username, slug string) (*domain.Resume, error)
	List(ctx context.Context, userID uuid.UUID, f domain.ListFilter) ([]*domain.Resume, error)
	Update(ctx context.Context, userID, id uuid.UUID, p domain.Patch) (*domain.Resume, error)
	SetLocked(ctx context.Context, userID, id uuid.UUID, locked bool) (*domain.Resume, error)
	// SetPassword stores a bcrypt hash; an empty hash removes protection.
	SetPassword(ctx context.Context, userID, id uuid.UUID, hash string) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Tags(ctx context.Context, userID uuid.UUID) ([]string, error)
	IncrementStatistics(ctx context.Context, id uuid.UUID, views, downloads int64) error
}

// Renderer turns an HTML page into a PDF of the given page format.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string, format string) ([]byte, error)
}

// ContentGenerator produces section text from structured input.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, kind string, input any) (string, error)
}

// Importer converts a source document into resume data.
type Importer interface {
	Import(ctx context.Context, src importer.Source) (*model.ResumeData, error)
}
