// Package importer converts documents from other formats into resume data.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"resume-builder/internal/model"
	"resume-builder/pkg/ident"
)

type Format string

const (
	FormatNative     Format = "resume-builder-json"
	FormatJSONResume Format = "json-resume"
	FormatPDF        Format = "pdf"
	FormatDOCX       Format = "docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported import format")
	ErrEmptySource       = errors.New("import source is empty")
)

// Source is one uploaded document.
type Source struct {
	Format Format
	Name   string
	Data   []byte
}

type Importer interface {
	Import(ctx context.Context, src Source) (*model.ResumeData, error)
}

// ImporterFunc adapts a function to Importer.
type ImporterFunc func(ctx context.Context, src Source) (*model.ResumeData, error)

func (f ImporterFunc) Import(ctx context.Context, src Source) (*model.ResumeData, error) {
	return f(ctx, src)
}

// Registry picks an importer by source format.
type Registry struct {
	importers map[Format]Importer
}

// NewRegistry registers the JSON formats, plus pdf and docx when a
// document parser is available.
func NewRegistry(parser DocumentParser) *Registry {
	r := &Registry{importers: map[Format]Importer{}}
	r.Register(FormatNative, ImporterFunc(importNative))
	r.Register(FormatJSONResume, ImporterFunc(importJSONResume))
	if parser != nil {
		r.Register(FormatPDF, NewDocumentImporter(parser, "application/pdf"))
		r.Register(FormatDOCX, NewDocumentImporter(parser, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	}
	return r
}

func (r *Registry) Register(f Format, imp Importer) {
	r.importers[f] = imp
}

func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.importers))
	for f := range r.importers {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) Import(ctx context.Context, src Source) (*model.ResumeData, error) {
	imp, ok := r.importers[src.Format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, src.Format)
	}
	if len(src.Data) == 0 {
		return nil, ErrEmptySource
	}
	return imp.Import(ctx, src)
}

// finish gives missing ids fresh values and validates the result.
func finish(d *model.ResumeData) (*model.ResumeData, error) {
	d.Normalize()
	d.AssignMissingIDs(ident.NewID)
	if err := model.Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

func importNative(_ context.Context, src Source) (*model.ResumeData, error) {
	d, err := model.Parse(src.Data)
	if err != nil {
		return nil, err
	}
	return finish(d)
}
