package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

func TestCreateSlugifiesAndRejectsCollisions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.user, CreateInput{Name: "Senior Engineer", Tags: []string{"go", " go ", ""}})
	require.NoError(t, err)
	assert.Equal(t, "senior-engineer", res.Slug)
	assert.Equal(t, []string{"go"}, res.Tags)
	assert.Empty(t, res.Data.Sections.Experience.Items)

	_, err = f.svc.Create(ctx, f.user, CreateInput{Name: "Other", Slug: "Senior  Engineer!"})
	assert.ErrorIs(t, err, domain.ErrSlugExists)

	sample, err := f.svc.Create(ctx, f.user, CreateInput{Name: "Sample", WithSampleData: true})
	require.NoError(t, err)
	assert.NotEmpty(t, sample.Data.Sections.Experience.Items)

	_, err = f.svc.Create(ctx, f.user, CreateInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDuplicateDefaultsAndDeepCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	src, err := f.svc.Create(ctx, f.user, CreateInput{Name: "CV", Tags: []string{"a"}, WithSampleData: true})
	require.NoError(t, err)

	dup, err := f.svc.Duplicate(ctx, f.user, src.ID, DuplicateInput{})
	require.NoError(t, err)
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "CV", dup.Name)
	assert.Equal(t, "cv-copy", dup.Slug)
	assert.Equal(t, []string{"a"}, dup.Tags)
	assert.Equal(t, src.Data.Basics.Name, dup.Data.Basics.Name)

	// editing the copy leaves the source alone
	name := "Changed"
	changed := dup.Data.Clone()
	changed.Basics.Name = name
	_, err = f.svc.Update(ctx, f.user, dup.ID, UpdateInput{Data: changed})
	require.NoError(t, err)
	again, _ := f.svc.Get(ctx, f.user, src.ID)
	assert.NotEqual(t, name, again.Data.Basics.Name)

	_, err = f.svc.Duplicate(ctx, f.user, src.ID, DuplicateInput{})
	assert.ErrorIs(t, err, domain.ErrSlugExists)

	_, err = f.svc.Duplicate(ctx, uuid.New(), src.ID, DuplicateInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLockedResumeRejectsWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, "CV")

	_, err := f.svc.SetLocked(ctx, f.user, res.ID, true)
	require.NoError(t, err)

	name := "New"
	_, err = f.svc.Update(ctx, f.user, res.ID, UpdateInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrLocked)
	assert.ErrorIs(t, f.svc.Delete(ctx, f.user, res.ID), domain.ErrLocked)

	_, err = f.svc.SetLocked(ctx, f.user, res.ID, false)
	require.NoError(t, err)
	assert.NoError(t, f.svc.Delete(ctx, f.user, res.ID))
}

func TestUpdateValidatesData(t *testing.T) {
	f := newFixture(t)
	res := f.create(t, "CV")
	bad := model.Default()
	bad.Metadata.Page.Format = "tabloid"
	_, err := f.svc.Update(context.Background(), f.user, res.ID, UpdateInput{Data: bad})
	assert.ErrorIs(t, err, model.ErrInvalid)
}

func TestPublicAccessAndPasswords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, "CV")
	stranger := uuid.New()

	_, err := f.svc.GetBySlug(ctx, "amorgan", res.Slug, stranger, "")
	assert.ErrorIs(t, err, domain.ErrNotFound, "private resumes are hidden")

	public := true
	_, err = f.svc.Update(ctx, f.user, res.ID, UpdateInput{IsPublic: &public})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.SetPassword(ctx, f.user, res.ID, "short"), ErrInvalidInput)
	require.NoError(t, f.svc.SetPassword(ctx, f.user, res.ID, "hunter22"))

	_, err = f.svc.GetBySlug(ctx, "amorgan", res.Slug, stranger, "")
	assert.ErrorIs(t, err, domain.ErrPasswordRequired)
	_, err = f.svc.GetBySlug(ctx, "amorgan", res.Slug, stranger, "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	got, err := f.svc.GetBySlug(ctx, "amorgan", res.Slug, stranger, "hunter22")
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)

	// owners skip the password and are not counted
	_, err = f.svc.GetBySlug(ctx, "amorgan", res.Slug, f.user, "")
	require.NoError(t, err)

	stats, err := f.svc.Statistics(ctx, f.user, res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Views)

	require.NoError(t, f.svc.RemovePassword(ctx, f.user, res.ID))
	_, err = f.svc.GetBySlug(ctx, "amorgan", res.Slug, stranger, "")
	assert.NoError(t, err)
}

func TestImportUsesGeneratedName(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Import(context.Background(), f.user, model.Sample())
	require.NoError(t, err)
	assert.Len(t, strings.Fields(res.Name), 3)
	assert.NotEmpty(t, res.Slug)
	assert.Equal(t, "Alex Morgan", res.Data.Basics.Name)
}

func TestListRejectsUnknownSort(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.List(context.Background(), f.user, domain.ListFilter{Sort: "views"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
