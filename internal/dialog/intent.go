// Package dialog maps the closed set of editor intents to the handler
// that performs them.
package dialog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resume-builder/internal/model"
)

// Type is the wire tag of an intent, e.g. "resume.sections.experience.create".
type Type string

const (
	TypeCreateResume        Type = "resume.create"
	TypeUpdateResume        Type = "resume.update"
	TypeDuplicateResume     Type = "resume.duplicate"
	TypeImportResume        Type = "resume.import"
	TypeTemplateGallery     Type = "resume.template.gallery"
	TypeCreateCustomSection Type = "resume.sections.custom.create"
	TypeUpdateCustomSection Type = "resume.sections.custom.update"

	sectionPrefix = "resume.sections."
)

var (
	ErrUnknownIntent = errors.New("unknown intent")
	ErrInvalidData   = errors.New("invalid intent data")
)

// ItemCreateType returns the create tag for an item kind.
func ItemCreateType(k model.Kind) Type { return Type(sectionPrefix + string(k) + ".create") }

// ItemUpdateType returns the update tag for an item kind.
func ItemUpdateType(k model.Kind) Type { return Type(sectionPrefix + string(k) + ".update") }

// Types lists every intent tag.
func Types() []Type {
	out := []Type{TypeCreateResume, TypeUpdateResume, TypeDuplicateResume, TypeImportResume, TypeTemplateGallery}
	for _, k := range model.AllKinds() {
		out = append(out, ItemCreateType(k), ItemUpdateType(k))
	}
	return append(out, TypeCreateCustomSection, TypeUpdateCustomSection)
}

// Intent is a request to run one create/update flow. The set of
// implementations is closed: only this package can add one, and each must
// route itself to a Handler method.
type Intent interface {
	Type() Type
	dispatch(h Handler) error
}

// ResumeRef identifies an existing document together with the editable
// header fields the update and duplicate flows start from.
type ResumeRef struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Tags           []string `json:"tags"`
	ShouldRedirect bool     `json:"shouldRedirect,omitempty"`
}

type CreateResume struct {
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Tags           []string `json:"tags"`
	WithSampleData bool     `json:"withSampleData"`
}

type UpdateResume struct{ ResumeRef }

type DuplicateResume struct{ ResumeRef }

// ImportResume carries a source document in one of the importer formats.
type ImportResume struct {
	Format string `json:"format"`
	Name   string `json:"name"`
	Data   []byte `json:"data"`
}

type TemplateGallery struct {
	Template string `json:"template"`
}

// CreateItem opens the create flow of one item kind. Item is an optional
// prefill; it is nil when the flow starts empty.
type CreateItem struct {
	Kind            model.Kind
	Item            model.Item
	CustomSectionID string
}

// UpdateItem always carries the existing item it edits.
type UpdateItem struct {
	Kind            model.Kind
	Item            model.Item
	CustomSectionID string
}

type CreateCustomSection struct {
	Section *model.CustomSection
}

type UpdateCustomSection struct {
	Section *model.CustomSection
}

func (CreateResume) Type() Type        { return TypeCreateResume }
func (UpdateResume) Type() Type        { return TypeUpdateResume }
func (DuplicateResume) Type() Type     { return TypeDuplicateResume }
func (ImportResume) Type() Type        { return TypeImportResume }
func (TemplateGallery) Type() Type     { return TypeTemplateGallery }
func (i CreateItem) Type() Type        { return ItemCreateType(i.Kind) }
func (i UpdateItem) Type() Type        { return ItemUpdateType(i.Kind) }
func (CreateCustomSection) Type() Type { return TypeCreateCustomSection }
func (UpdateCustomSection) Type() Type { return TypeUpdateCustomSection }

type itemData struct {
	Item            json.RawMessage `json:"item"`
	CustomSectionID string          `json:"customSectionId"`
}

// Parse builds the intent for a wire tag and its JSON data.
func Parse(t Type, data json.RawMessage) (Intent, error) {
	empty := len(data) == 0 || string(data) == "null"

	switch t {
	case TypeCreateResume:
		var in CreateResume
		if err := decode(t, data, empty, &in); err != nil {
			return nil, err
		}
		return in, nil
	case TypeUpdateResume, TypeDuplicateResume:
		if empty {
			return nil, fmt.Errorf("%w: %s requires data", ErrInvalidData, t)
		}
		var ref ResumeRef
		if err := decode(t, data, false, &ref); err != nil {
			return nil, err
		}
		if ref.ID == "" {
			return nil, fmt.Errorf("%w: %s requires id", ErrInvalidData, t)
		}
		if t == TypeUpdateResume {
			return UpdateResume{ref}, nil
		}
		return DuplicateResume{ref}, nil
	case TypeImportResume:
		var in ImportResume
		if err := decode(t, data, empty, &in); err != nil {
			return nil, err
		}
		return in, nil
	case TypeTemplateGallery:
		var in TemplateGallery
		if err := decode(t, data, empty, &in); err != nil {
			return nil, err
		}
		return in, nil
	case TypeCreateCustomSection, TypeUpdateCustomSection:
		if empty {
			if t == TypeUpdateCustomSection {
				return nil, fmt.Errorf("%w: %s requires data", ErrInvalidData, t)
			}
			return CreateCustomSection{}, nil
		}
		cs := &model.CustomSection{}
		if err := decode(t, data, false, cs); err != nil {
			return nil, err
		}
		if t == TypeCreateCustomSection {
			return CreateCustomSection{Section: cs}, nil
		}
		return UpdateCustomSection{Section: cs}, nil
	}

	return parseItem(t, data, empty)
}

func parseItem(t Type, data json.RawMessage, empty bool) (Intent, error) {
	rest, ok := strings.CutPrefix(string(t), sectionPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, t)
	}
	dot := strings.LastIndexByte(rest, '.')
	if dot < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, t)
	}
	kind, action := model.Kind(rest[:dot]), rest[dot+1:]
	if !kind.Valid() || (action != "create" && action != "update") {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, t)
	}

	var d itemData
	if err := decode(t, data, empty, &d); err != nil {
		return nil, err
	}
	var item model.Item
	if len(d.Item) > 0 && string(d.Item) != "null" {
		it, err := model.DecodeItem(kind, d.Item)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		item = it
	}

	if action == "create" {
		return CreateItem{Kind: kind, Item: item, CustomSectionID: d.CustomSectionID}, nil
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s requires an item", ErrInvalidData, t)
	}
	return UpdateItem{Kind: kind, Item: item, CustomSectionID: d.CustomSectionID}, nil
}

func decode(t Type, data json.RawMessage, empty bool, v any) error {
	if empty {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidData, t, err)
	}
	return nil
}
