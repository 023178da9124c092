package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/crud"
	"resume-builder/internal/dialog"
	"resume-builder/internal/model"
)

func TestDraftOps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, "CV")
	skills := crud.Target{Kind: model.KindSkills}

	for _, id := range []string{"a", "b", "c"} {
		_, err := f.intents.Run(ctx, f.user, res.ID, dialog.CreateItem{
			Kind: model.KindSkills,
			Item: &model.SkillItem{Base: model.Base{ID: id}, Name: id, Keywords: []string{}},
		})
		require.NoError(t, err)
	}

	out, err := f.intents.Edit(ctx, f.user, res.ID, MoveItem(skills, "c", 0))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), out.Version)

	out, err = f.intents.Edit(ctx, f.user, res.ID, SetItemHidden(skills, "a", true))
	require.NoError(t, err)
	assert.Equal(t, "applied", out.Result)

	out, err = f.intents.Edit(ctx, f.user, res.ID, RemoveItem(skills, "b"))
	require.NoError(t, err)
	assert.Equal(t, uint64(6), out.Version)

	out, err = f.intents.Edit(ctx, f.user, res.ID, RemoveItem(skills, "b"))
	require.NoError(t, err)
	assert.Equal(t, "not-found", out.Result)
	assert.Equal(t, uint64(6), out.Version)

	_, err = f.intents.Edit(ctx, f.user, res.ID, MoveItem(skills, "a", 9))
	assert.ErrorIs(t, err, crud.ErrBadIndex)

	stored, err := f.svc.Get(ctx, f.user, res.ID)
	require.NoError(t, err)
	items := stored.Data.Sections.Skills.Items
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.True(t, items[1].Hidden)
}

func TestRemoveCustomSection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, "CV")
	_, err := f.intents.Run(ctx, f.user, res.ID, dialog.CreateCustomSection{
		Section: &model.CustomSection{ID: "x", Title: "Extra", Type: model.KindAwards, Columns: 1, Items: []model.Item{}},
	})
	require.NoError(t, err)

	out, err := f.intents.Edit(ctx, f.user, res.ID, RemoveCustomSection("x"))
	require.NoError(t, err)
	assert.Equal(t, "applied", out.Result)

	stored, err := f.svc.Get(ctx, f.user, res.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Data.CustomSections)
}
