package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/importer"
)

// countingRepo counts full saves.
type countingRepo struct {
	*repository.MemoryRepo
	updates int32
}

func (r *countingRepo) Update(ctx context.Context, userID, id uuid.UUID, p domain.Patch) (*domain.Resume, error) {
	atomic.AddInt32(&r.updates, 1)
	return r.MemoryRepo.Update(ctx, userID, id, p)
}

func (r *countingRepo) saves() int { return int(atomic.LoadInt32(&r.updates)) }

type fixture struct {
	repo     *countingRepo
	svc      *ResumeService
	sessions *Sessions
	intents  *Intents
	user     uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := &countingRepo{MemoryRepo: repository.NewMemoryRepo()}
	svc := NewResumeService(repo, zerolog.Nop())
	sessions := NewSessions(svc, time.Minute, zerolog.Nop())
	user := uuid.New()
	require.NoError(t, svc.EnsureUser(context.Background(), domain.User{ID: user, Username: "amorgan"}))
	return &fixture{
		repo:     repo,
		svc:      svc,
		sessions: sessions,
		intents:  NewIntents(svc, sessions, importer.NewRegistry(nil)),
		user:     user,
	}
}

func (f *fixture) create(t *testing.T, name string) *domain.Resume {
	t.Helper()
	res, err := f.svc.Create(context.Background(), f.user, CreateInput{Name: name})
	require.NoError(t, err)
	return res
}
