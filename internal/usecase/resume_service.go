package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/pkg/ident"
)

// ResumeService implements the document lifecycle: create, import, read,
// save, lock, password protection, duplicate and delete.
type ResumeService struct {
	repo ResumeRepo
	log  zerolog.Logger

	mu      sync.RWMutex
	onWrite []func(id uuid.UUID)
}

func NewResumeService(repo ResumeRepo, log zerolog.Logger) *ResumeService {
	return &ResumeService{repo: repo, log: log.With().Str("component", "resume_service").Logger()}
}

// OnWrite registers fn to run after a resume is changed outside the
// editor: updated, locked or unlocked, or deleted.
func (s *ResumeService) OnWrite(fn func(id uuid.UUID)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onWrite = append(s.onWrite, fn)
}

func (s *ResumeService) written(id uuid.UUID) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fn := range s.onWrite {
		fn(id)
	}
}

// EnsureUser registers u on first sight.
func (s *ResumeService) EnsureUser(ctx context.Context, u domain.User) error {
	return s.repo.EnsureUser(ctx, u)
}

func (s *ResumeService) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*domain.Resume, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	slug := ident.Slugify(in.Slug)
	if slug == "" {
		slug = ident.Slugify(name)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is empty", ErrInvalidInput)
	}

	data := model.Default()
	if in.WithSampleData {
		data = model.Sample()
	}
	res := &domain.Resume{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Slug:   slug,
		Tags:   cleanTags(in.Tags),
		Data:   data,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	s.log.Info().Str("resume_id", res.ID.String()).Str("slug", slug).Bool("sample", in.WithSampleData).Msg("resume created")
	return res, nil
}

// Import stores already converted data under a generated name.
func (s *ResumeService) Import(ctx context.Context, userID uuid.UUID, data *model.ResumeData) (*domain.Resume, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: no data", ErrInvalidInput)
	}
	if err := model.Validate(data); err != nil {
		return nil, err
	}
	name := ident.RandomName()
	res := &domain.Resume{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Slug:   ident.Slugify(name),
		Tags:   []string{},
		Data:   data.Clone(),
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	s.log.Info().Str("resume_id", res.ID.String()).Msg("resume imported")
	return res, nil
}

// Get returns a document owned by userID. Documents of other users are
// reported as not found.
func (s *ResumeService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Resume, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return res, nil
}

// GetBySlug serves the public view of a document. Owners always see their
// own documents; everyone else needs it to be public and, when protected,
// the right password. Views by non-owners are counted.
func (s *ResumeService) GetBySlug(ctx context.Context, username, slug string, viewer uuid.UUID, password string) (*domain.Resume, error) {
	res, err := s.repo.GetBySlug(ctx, username, slug)
	if err != nil {
		return nil, err
	}
	if res.UserID == viewer {
		return res, nil
	}
	if err := checkAccess(res, password); err != nil {
		return nil, err
	}
	if err := s.repo.IncrementStatistics(ctx, res.ID, 1, 0); err != nil {
		s.log.Warn().Err(err).Str("resume_id", res.ID.String()).Msg("unable to record view")
	}
	return res, nil
}

// GetForPrint returns a document the viewer may print: its own, or a
// public one without a password.
func (s *ResumeService) GetForPrint(ctx context.Context, viewer, id uuid.UUID) (*domain.Resume, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.UserID == viewer {
		return res, nil
	}
	if !res.IsPublic || res.HasPassword() {
		return nil, domain.ErrNotFound
	}
	return res, nil
}

func checkAccess(res *domain.Resume, password string) error {
	if !res.IsPublic {
		return domain.ErrNotFound
	}
	if !res.HasPassword() {
		return nil
	}
	if password == "" {
		return domain.ErrPasswordRequired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.PasswordHash), []byte(password)); err != nil {
		return domain.ErrInvalidPassword
	}
	return nil
}

func (s *ResumeService) List(ctx context.Context, userID uuid.UUID, f domain.ListFilter) ([]*domain.Resume, error) {
	if !f.Sort.Valid() {
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, f.Sort)
	}
	return s.repo.List(ctx, userID, f)
}

func (s *ResumeService) Tags(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.repo.Tags(ctx, userID)
}

// Update performs a full save. The whole data document replaces the stored
// one; concurrent saves resolve as last write wins.
func (s *ResumeService) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (*domain.Resume, error) {
	p := domain.Patch{IsPublic: in.IsPublic}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		p.Name = &name
	}
	if in.Slug != nil {
		slug := ident.Slugify(*in.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug is empty", ErrInvalidInput)
		}
		p.Slug = &slug
	}
	if in.Tags != nil {
		tags := cleanTags(*in.Tags)
		p.Tags = &tags
	}
	if in.Data != nil {
		if err := model.Validate(in.Data); err != nil {
			return nil, err
		}
		p.Data = in.Data
	}
	res, err := s.repo.Update(ctx, userID, id, p)
	if err != nil {
		return nil, err
	}
	s.written(id)
	return res, nil
}

// Save writes a draft snapshot produced by an editor session.
func (s *ResumeService) Save(ctx context.Context, userID, id uuid.UUID, data *model.ResumeData) error {
	_, err := s.repo.Update(ctx, userID, id, domain.Patch{Data: data})
	return err
}

func (s *ResumeService) SetLocked(ctx context.Context, userID, id uuid.UUID, locked bool) (*domain.Resume, error) {
	res, err := s.repo.SetLocked(ctx, userID, id, locked)
	if err != nil {
		return nil, err
	}
	s.written(id)
	return res, nil
}

func (s *ResumeService) SetPassword(ctx context.Context, userID, id uuid.UUID, password string) error {
	if n := len(password); n < MinPasswordLength || n > MaxPasswordLength {
		return fmt.Errorf("%w: password must be %d to %d characters", ErrInvalidInput, MinPasswordLength, MaxPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.SetPassword(ctx, userID, id, string(hash))
}

func (s *ResumeService) RemovePassword(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.SetPassword(ctx, userID, id, "")
}

// Duplicate copies a document's data into a new private, unlocked document.
func (s *ResumeService) Duplicate(ctx context.Context, userID, id uuid.UUID, in DuplicateInput) (*domain.Resume, error) {
	src, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = src.Name
	}
	slug := ident.Slugify(in.Slug)
	if slug == "" {
		slug = ident.Slugify(src.Slug + "-copy")
	}
	tags := src.Tags
	if in.Tags != nil {
		tags = in.Tags
	}

	res := &domain.Resume{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Slug:   slug,
		Tags:   cleanTags(tags),
		Data:   src.Data.Clone(),
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	s.log.Info().Str("resume_id", res.ID.String()).Str("source_id", src.ID.String()).Msg("resume duplicated")
	return res, nil
}

func (s *ResumeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.written(id)
	return nil
}

func (s *ResumeService) Statistics(ctx context.Context, userID, id uuid.UUID) (domain.Statistics, error) {
	res, err := s.Get(ctx, userID, id)
	if err != nil {
		return domain.Statistics{}, err
	}
	return res.Statistics(), nil
}

// RecordDownload counts one download. Failures are logged, never returned
// to the caller that already has the file.
func (s *ResumeService) RecordDownload(ctx context.Context, id uuid.UUID) {
	if err := s.repo.IncrementStatistics(ctx, id, 0, 1); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn().Err(err).Str("resume_id", id.String()).Msg("unable to record download")
	}
}

func cleanTags(tags []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
