package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/dialog"
	"resume-builder/internal/editor"
	"resume-builder/internal/model"
)

type fakeAI struct {
	text   string
	err    error
	calls  int
	during func()
}

func (f *fakeAI) GenerateContent(_ context.Context, _ string, _ any) (string, error) {
	f.calls++
	if f.during != nil {
		f.during()
	}
	return f.text, f.err
}

func TestSuggestWritesSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, "CV")
	ai := &fakeAI{text: "<p>Generated</p>"}
	gen := NewGenerator(ai, f.sessions, zerolog.Nop())

	out, err := gen.Suggest(ctx, f.user, res.ID, 0, SuggestTarget{}, GenerateSummary, map[string]any{"text": "x"})
	require.NoError(t, err)
	assert.Equal(t, "applied", out.Result)
	assert.Equal(t, uint64(1), out.Version)

	stored, err := f.svc.Get(ctx, f.user, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "<p>Generated</p>", stored.Data.Summary.Content)
}

func TestSuggestWritesItemBody(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, "CV")
	_, err := f.intents.Run(ctx, f.user, res.ID, dialog.CreateItem{
		Kind: model.KindProjects,
		Item: &model.ProjectItem{Base: model.Base{ID: "p1"}, Name: "Ledger"},
	})
	require.NoError(t, err)

	gen := NewGenerator(&fakeAI{text: "<ul><li>Shipped</li></ul>"}, f.sessions, zerolog.Nop())
	out, err := gen.Suggest(ctx, f.user, res.ID, 1, SuggestTarget{Kind: model.KindProjects, ItemID: "p1"}, GenerateProjects, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), out.Version)

	stored, err := f.svc.Get(ctx, f.user, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>Shipped</li></ul>", stored.Data.Sections.Projects.Items[0].Description)

	out, err = gen.Suggest(ctx, f.user, res.ID, 2, SuggestTarget{Kind: model.KindProjects, ItemID: "gone"}, GenerateProjects, nil)
	require.NoError(t, err)
	assert.Equal(t, "not-found", out.Result)
	assert.Equal(t, uint64(2), out.Version)
}

func TestSuggestFailureLeavesDocumentUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, "CV")
	boom := errors.New("provider down")
	gen := NewGenerator(&fakeAI{err: boom}, f.sessions, zerolog.Nop())
	before := f.repo.saves()

	_, err := gen.Suggest(ctx, f.user, res.ID, 0, SuggestTarget{}, GenerateSummary, nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, f.repo.saves())

	sess, err := f.sessions.Open(ctx, f.user, res.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), sess.Store.Version())
}

func TestSuggestRejectsStaleVersions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, "CV")

	ai := &fakeAI{text: "late"}
	gen := NewGenerator(ai, f.sessions, zerolog.Nop())
	_, err := gen.Suggest(ctx, f.user, res.ID, 7, SuggestTarget{}, GenerateSummary, nil)
	assert.ErrorIs(t, err, editor.ErrStale)
	assert.Zero(t, ai.calls, "stale requests never reach the provider")

	// the user edits while generation is in flight
	ai.during = func() {
		_, err := f.intents.Run(ctx, f.user, res.ID, dialog.TemplateGallery{Template: "onyx"})
		require.NoError(t, err)
	}
	_, err = gen.Suggest(ctx, f.user, res.ID, 0, SuggestTarget{}, GenerateSummary, nil)
	assert.ErrorIs(t, err, editor.ErrStale)

	sess, err := f.sessions.Open(ctx, f.user, res.ID)
	require.NoError(t, err)
	snap := sess.Store.Snapshot()
	assert.Equal(t, "onyx", snap.Data.Metadata.Template)
	assert.NotEqual(t, "late", snap.Data.Summary.Content)
}

func TestGenerateRejectsUnknownKind(t *testing.T) {
	gen := NewGenerator(&fakeAI{}, nil, zerolog.Nop())
	_, err := gen.Generate(context.Background(), "poem", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
