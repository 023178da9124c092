package crud

import (
	"fmt"

	"resume-builder/internal/model"
)

// CreateSection appends a new custom section. Its id must be set by the
// caller and its items must all match the declared type.
func CreateSection(d *model.ResumeData, cs *model.CustomSection) error {
	if err := checkSection(cs); err != nil {
		return err
	}
	if d.CustomSection(cs.ID) != nil {
		return fmt.Errorf("%w: custom section %s", ErrDuplicate, cs.ID)
	}
	if cs.Columns < 1 {
		cs.Columns = 1
	}
	if cs.Items == nil {
		cs.Items = []model.Item{}
	}
	d.CustomSections = append(d.CustomSections, cs)
	return nil
}

// UpdateSection replaces the title, columns and visibility of the custom
// section with the same id. Items and the declared type are kept so that
// the per-section kind invariant cannot be broken by a header edit.
func UpdateSection(d *model.ResumeData, cs *model.CustomSection) (Result, error) {
	if cs == nil {
		return NotFound, ErrNilItem
	}
	if cs.ID == "" {
		return NotFound, ErrMissingID
	}
	cur := d.CustomSection(cs.ID)
	if cur == nil {
		return NotFound, nil
	}
	cur.Title = cs.Title
	cur.Hidden = cs.Hidden
	if cs.Columns > 0 {
		cur.Columns = cs.Columns
	}
	return Applied, nil
}

// RemoveSection deletes the custom section with the given id.
func RemoveSection(d *model.ResumeData, id string) Result {
	for i, cs := range d.CustomSections {
		if cs.ID == id {
			d.CustomSections = append(d.CustomSections[:i], d.CustomSections[i+1:]...)
			return Applied
		}
	}
	return NotFound
}

func checkSection(cs *model.CustomSection) error {
	if cs == nil {
		return ErrNilItem
	}
	if cs.ID == "" {
		return ErrMissingID
	}
	if !cs.Type.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownKind, cs.Type)
	}
	for _, it := range cs.Items {
		if it.ItemKind() != cs.Type {
			return fmt.Errorf("%w: section %s, item %s", model.ErrKindMismatch, cs.Type, it.ItemKind())
		}
	}
	return nil
}
