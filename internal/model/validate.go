package model

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON []byte

// ErrInvalid wraps every schema violation returned by Validate.
var ErrInvalid = errors.New("resume data failed schema validation")

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Schema returns the raw JSON schema, e.g. for prompting the AI service.
func Schema() []byte {
	return schemaJSON
}

// Validate checks d against resume.schema.json. It also enforces the
// invariants a schema cannot express: item ids are unique within their
// list, custom section ids are unique, and custom section items match the
// declared type.
func Validate(d *ResumeData) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load resume schema: %w", err)
	}

	res, err := s.Validate(gojsonschema.NewGoLoader(d))
	if err != nil {
		return err
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}

	for _, k := range BuiltinKinds() {
		list, _ := d.Sections.List(k)
		if err := uniqueIDs(string(k), list); err != nil {
			return err
		}
	}
	seen := map[string]bool{}
	for _, cs := range d.CustomSections {
		if seen[cs.ID] {
			return fmt.Errorf("%w: duplicate custom section id %q", ErrInvalid, cs.ID)
		}
		seen[cs.ID] = true
		for _, it := range cs.Items {
			if it.ItemKind() != cs.Type {
				return fmt.Errorf("%w: custom section %q holds %s item", ErrInvalid, cs.ID, it.ItemKind())
			}
		}
		if err := uniqueIDs("custom section "+cs.ID, cs); err != nil {
			return err
		}
	}
	return nil
}

func uniqueIDs(name string, list ItemList) error {
	seen := make(map[string]bool, list.Len())
	for i := 0; i < list.Len(); i++ {
		id := list.At(i).ItemID()
		if seen[id] {
			return fmt.Errorf("%w: duplicate item id %q in %s", ErrInvalid, id, name)
		}
		seen[id] = true
	}
	return nil
}
