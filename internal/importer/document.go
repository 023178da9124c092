package importer

import (
	"context"

	"resume-builder/internal/model"
)

// DocumentParser extracts resume data from a binary document, e.g. the
// content-generation service.
type DocumentParser interface {
	ParseDocument(ctx context.Context, name, mediaType string, data []byte) (*model.ResumeData, error)
}

// DocumentImporter routes pdf and docx files through a DocumentParser.
type DocumentImporter struct {
	parser    DocumentParser
	mediaType string
}

func NewDocumentImporter(parser DocumentParser, mediaType string) *DocumentImporter {
	return &DocumentImporter{parser: parser, mediaType: mediaType}
}

// Import keeps the parsed content but never trusts parsed presentation
// state: custom sections, picture and metadata start from defaults.
func (i *DocumentImporter) Import(ctx context.Context, src Source) (*model.ResumeData, error) {
	d, err := i.parser.ParseDocument(ctx, src.Name, i.mediaType, src.Data)
	if err != nil {
		return nil, err
	}
	fresh := model.Default()
	d.CustomSections = fresh.CustomSections
	d.Metadata = fresh.Metadata
	d.Basics.Picture = fresh.Basics.Picture
	return finish(d)
}
