package dialog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/model"
)

type recorder struct {
	calls []string
	last  Intent
	err   error
}

func (r *recorder) hit(name string, in Intent) error {
	r.calls = append(r.calls, name)
	r.last = in
	return r.err
}

func (r *recorder) CreateResume(in CreateResume) error       { return r.hit("CreateResume", in) }
func (r *recorder) UpdateResume(in UpdateResume) error       { return r.hit("UpdateResume", in) }
func (r *recorder) DuplicateResume(in DuplicateResume) error { return r.hit("DuplicateResume", in) }
func (r *recorder) ImportResume(in ImportResume) error       { return r.hit("ImportResume", in) }
func (r *recorder) TemplateGallery(in TemplateGallery) error { return r.hit("TemplateGallery", in) }
func (r *recorder) CreateItem(in CreateItem) error           { return r.hit("CreateItem:"+string(in.Kind), in) }
func (r *recorder) UpdateItem(in UpdateItem) error           { return r.hit("UpdateItem:"+string(in.Kind), in) }
func (r *recorder) CreateCustomSection(in CreateCustomSection) error {
	return r.hit("CreateCustomSection", in)
}
func (r *recorder) UpdateCustomSection(in UpdateCustomSection) error {
	return r.hit("UpdateCustomSection", in)
}

// minimal payload that satisfies every tag's required fields
func payloadFor(t Type) json.RawMessage {
	switch t {
	case TypeUpdateResume, TypeDuplicateResume:
		return json.RawMessage(`{"id":"r1","name":"CV","slug":"cv"}`)
	case TypeUpdateCustomSection:
		return json.RawMessage(`{"id":"c1","title":"Extra","type":"skills","items":[]}`)
	}
	for _, k := range model.AllKinds() {
		if t == ItemUpdateType(k) {
			return json.RawMessage(`{"item":{"id":"i1"}}`)
		}
	}
	return nil
}

func TestEveryTypeDispatchesToADistinctMethod(t *testing.T) {
	types := Types()
	require.Len(t, types, 5+2*len(model.AllKinds())+2)

	seen := map[string]Type{}
	for _, typ := range types {
		in, err := Parse(typ, payloadFor(typ))
		require.NoError(t, err, typ)
		assert.Equal(t, typ, in.Type())

		r := &recorder{}
		handled, err := Dispatch(in, r)
		require.NoError(t, err)
		assert.True(t, handled)
		require.Len(t, r.calls, 1, typ)

		prev, dup := seen[r.calls[0]]
		assert.False(t, dup, "%s and %s share handler %s", prev, typ, r.calls[0])
		seen[r.calls[0]] = typ
	}
}

func TestNilIntentIsNotHandled(t *testing.T) {
	r := &recorder{}
	handled, err := Dispatch(nil, r)
	assert.NoError(t, err)
	assert.False(t, handled)
	assert.Empty(t, r.calls)
}

func TestDispatchReturnsHandlerError(t *testing.T) {
	boom := errors.New("boom")
	r := &recorder{err: boom}
	handled, err := Dispatch(TemplateGallery{}, r)
	assert.True(t, handled)
	assert.ErrorIs(t, err, boom)
}

func TestParseUnknownTypes(t *testing.T) {
	for _, typ := range []Type{
		"resume.delete",
		"resume.sections.hobbies.create",
		"resume.sections.skills.remove",
		"resume.sections.skills",
		"",
	} {
		_, err := Parse(typ, nil)
		assert.ErrorIs(t, err, ErrUnknownIntent, typ)
	}
}

func TestParseItemCarriesCustomSectionID(t *testing.T) {
	in, err := Parse("resume.sections.experience.update",
		json.RawMessage(`{"item":{"id":"e1","company":"Acme"},"customSectionId":"c9"}`))
	require.NoError(t, err)

	upd, ok := in.(UpdateItem)
	require.True(t, ok)
	assert.Equal(t, model.KindExperience, upd.Kind)
	assert.Equal(t, "c9", upd.CustomSectionID)
	exp, ok := upd.Item.(*model.ExperienceItem)
	require.True(t, ok)
	assert.Equal(t, "Acme", exp.Company)
}

func TestParseCreateItemWithoutPrefill(t *testing.T) {
	in, err := Parse(ItemCreateType(model.KindCoverLetter), nil)
	require.NoError(t, err)
	c := in.(CreateItem)
	assert.Equal(t, model.KindCoverLetter, c.Kind)
	assert.Nil(t, c.Item)
	assert.Empty(t, c.CustomSectionID)
}

func TestParseRequiresData(t *testing.T) {
	_, err := Parse(TypeUpdateResume, nil)
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = Parse(TypeDuplicateResume, json.RawMessage(`{"name":"x"}`))
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = Parse(ItemUpdateType(model.KindSkills), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = Parse(TypeUpdateCustomSection, nil)
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = Parse(TypeCreateResume, json.RawMessage(`{"name":`))
	assert.ErrorIs(t, err, ErrInvalidData)
}
