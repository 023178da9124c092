package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
)

// MemoryRepo keeps resumes in process memory. It copies documents on the
// way in and out so callers never share state with the store.
type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[uuid.UUID]*domain.Resume
	users   map[uuid.UUID]domain.User
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		resumes: map[uuid.UUID]*domain.Resume{},
		users:   map[uuid.UUID]domain.User{},
		now:     time.Now,
	}
}

func (r *MemoryRepo) EnsureUser(_ context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		r.users[u.ID] = u
	}
	return nil
}

func (r *MemoryRepo) slugTaken(userID, except uuid.UUID, slug string) bool {
	for _, res := range r.resumes {
		if res.UserID == userID && res.Slug == slug && res.ID != except {
			return true
		}
	}
	return false
}

func (r *MemoryRepo) Create(_ context.Context, res *domain.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slugTaken(res.UserID, uuid.Nil, res.Slug) {
		return domain.ErrSlugExists
	}
	now := r.now()
	res.CreatedAt, res.UpdatedAt = now, now
	r.resumes[res.ID] = res.Clone()
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resumes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return res.Clone(), nil
}

func (r *MemoryRepo) GetBySlug(_ context.Context, username, slug string) (*domain.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username != username {
			continue
		}
		for _, res := range r.resumes {
			if res.UserID == u.ID && res.Slug == slug {
				return res.Clone(), nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepo) List(_ context.Context, userID uuid.UUID, f domain.ListFilter) ([]*domain.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.Resume{}
	for _, res := range r.resumes {
		if res.UserID == userID && f.Match(res) {
			out = append(out, res.Clone())
		}
	}
	domain.SortResumes(out, f.Sort)
	return out, nil
}

// owned returns the stored resume when userID owns it.
func (r *MemoryRepo) owned(userID, id uuid.UUID) (*domain.Resume, error) {
	res, ok := r.resumes[id]
	if !ok || res.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return res, nil
}

func (r *MemoryRepo) Update(_ context.Context, userID, id uuid.UUID, p domain.Patch) (*domain.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, err := r.owned(userID, id)
	if err != nil {
		return nil, err
	}
	if res.IsLocked {
		return nil, domain.ErrLocked
	}
	if p.Slug != nil && r.slugTaken(userID, id, *p.Slug) {
		return nil, domain.ErrSlugExists
	}
	next := res.Clone()
	p.Apply(next)
	next.UpdatedAt = r.now()
	r.resumes[id] = next
	return next.Clone(), nil
}

func (r *MemoryRepo) SetLocked(_ context.Context, userID, id uuid.UUID, locked bool) (*domain.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, err := r.owned(userID, id)
	if err != nil {
		return nil, err
	}
	res.IsLocked = locked
	res.UpdatedAt = r.now()
	return res.Clone(), nil
}

func (r *MemoryRepo) SetPassword(_ context.Context, userID, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, err := r.owned(userID, id)
	if err != nil {
		return err
	}
	res.PasswordHash = hash
	res.UpdatedAt = r.now()
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, err := r.owned(userID, id)
	if err != nil {
		return err
	}
	if res.IsLocked {
		return domain.ErrLocked
	}
	delete(r.resumes, id)
	return nil
}

func (r *MemoryRepo) Tags(_ context.Context, userID uuid.UUID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]bool{}
	out := []string{}
	for _, res := range r.resumes {
		if res.UserID != userID {
			continue
		}
		for _, t := range res.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *MemoryRepo) IncrementStatistics(_ context.Context, id uuid.UUID, views, downloads int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resumes[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := r.now()
	if views > 0 {
		res.Views += views
		res.LastViewedAt = &now
	}
	if downloads > 0 {
		res.Downloads += downloads
		res.LastDownloadedAt = &now
	}
	return nil
}
