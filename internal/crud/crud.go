// Package crud implements the create/update contract shared by every
// section kind, and the rule that decides whether an operation targets a
// built-in section or a custom section.
package crud

import (
	"errors"
	"fmt"

	"resume-builder/internal/model"
)

// Result tells callers whether an operation changed the document.
type Result int

const (
	// NotFound means the target item or custom section does not exist; the
	// document is left untouched.
	NotFound Result = iota
	Applied
)

func (r Result) String() string {
	if r == Applied {
		return "applied"
	}
	return "not-found"
}

var (
	ErrNilItem   = errors.New("item is nil")
	ErrMissingID = errors.New("item id is required")
	ErrBadIndex  = errors.New("index out of range")
	ErrDuplicate = errors.New("id already exists")
)

// Target addresses the list an item operation works on. A non-empty
// CustomSectionID always selects the custom section path; there is no
// fallback to the built-in section of the same kind.
type Target struct {
	Kind            model.Kind
	CustomSectionID string
}

// Custom reports whether t addresses a custom section.
func (t Target) Custom() bool {
	return t.CustomSectionID != ""
}

// Resolve returns the list t addresses, or nil when it does not exist.
func Resolve(d *model.ResumeData, t Target) model.ItemList {
	if t.Custom() {
		if cs := d.CustomSection(t.CustomSectionID); cs != nil {
			return cs
		}
		return nil
	}
	list, ok := d.Sections.List(t.Kind)
	if !ok {
		return nil
	}
	return list
}

func check(t Target, it model.Item) error {
	if it == nil {
		return ErrNilItem
	}
	if it.ItemID() == "" {
		return ErrMissingID
	}
	if it.ItemKind() != t.Kind {
		return fmt.Errorf("%w: target %s, item %s", model.ErrKindMismatch, t.Kind, it.ItemKind())
	}
	return nil
}

// Create appends it to the end of the target list. Ids are unique per
// list; items with equal content but distinct ids are both kept.
func Create(d *model.ResumeData, t Target, it model.Item) (Result, error) {
	if err := check(t, it); err != nil {
		return NotFound, err
	}
	list := Resolve(d, t)
	if list == nil {
		return NotFound, nil
	}
	if list.Index(it.ItemID()) >= 0 {
		return NotFound, fmt.Errorf("%w: item %s in %s", ErrDuplicate, it.ItemID(), t.Kind)
	}
	if err := list.Append(it); err != nil {
		return NotFound, err
	}
	return Applied, nil
}

// Update replaces the item whose id matches it.ItemID() in place. A miss
// is a no-op, never an insert.
func Update(d *model.ResumeData, t Target, it model.Item) (Result, error) {
	if err := check(t, it); err != nil {
		return NotFound, err
	}
	list := Resolve(d, t)
	if list == nil {
		return NotFound, nil
	}
	i := list.Index(it.ItemID())
	if i < 0 {
		return NotFound, nil
	}
	if err := list.Set(i, it); err != nil {
		return NotFound, err
	}
	return Applied, nil
}

// Remove deletes the item with the given id.
func Remove(d *model.ResumeData, t Target, id string) Result {
	list := Resolve(d, t)
	if list == nil {
		return NotFound
	}
	i := list.Index(id)
	if i < 0 {
		return NotFound
	}
	list.Remove(i)
	return Applied
}

// Move repositions the item with the given id to index to. Reordering is
// only ever done here, never as a side effect of Update.
func Move(d *model.ResumeData, t Target, id string, to int) (Result, error) {
	list := Resolve(d, t)
	if list == nil {
		return NotFound, nil
	}
	from := list.Index(id)
	if from < 0 {
		return NotFound, nil
	}
	if to < 0 || to >= list.Len() {
		return NotFound, fmt.Errorf("%w: %d", ErrBadIndex, to)
	}
	list.Move(from, to)
	return Applied, nil
}

// SetHidden toggles the visibility of one item.
func SetHidden(d *model.ResumeData, t Target, id string, hidden bool) Result {
	list := Resolve(d, t)
	if list == nil {
		return NotFound
	}
	i := list.Index(id)
	if i < 0 {
		return NotFound
	}
	list.At(i).SetHidden(hidden)
	return Applied
}
