package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/model"
)

const jsonResumeDoc = `{
	"basics": {
		"name": "Alex Morgan",
		"label": "Backend Engineer",
		"email": "alex@example.com",
		"url": "https://alexmorgan.dev",
		"summary": "Builds <reliable> services.",
		"location": {"city": "Portland", "region": "OR"},
		"profiles": [{"network": "GitHub", "username": "amorgan", "url": "https://github.com/amorgan"}]
	},
	"work": [{
		"name": "Acme",
		"position": "Staff Engineer",
		"startDate": "2020-01",
		"summary": "Led the platform team.",
		"highlights": ["Cut p99 latency by 40%", ""]
	}],
	"skills": [{"name": "Go", "level": "Expert"}],
	"languages": [{"language": "English", "fluency": "Native"}],
	"projects": [{"name": "pgqueue", "startDate": "2021", "endDate": "2022", "highlights": ["SKIP LOCKED"]}]
}`

func TestJSONResumeMapping(t *testing.T) {
	r := NewRegistry(nil)
	d, err := r.Import(context.Background(), Source{Format: FormatJSONResume, Data: []byte(jsonResumeDoc)})
	require.NoError(t, err)

	assert.Equal(t, "Alex Morgan", d.Basics.Name)
	assert.Equal(t, "Backend Engineer", d.Basics.Headline)
	assert.Equal(t, "Portland, OR", d.Basics.Location)
	assert.Equal(t, "<p>Builds &lt;reliable&gt; services.</p>", d.Summary.Content)

	require.Len(t, d.Sections.Profiles.Items, 1)
	assert.Equal(t, "github", d.Sections.Profiles.Items[0].Icon)

	require.Len(t, d.Sections.Experience.Items, 1)
	exp := d.Sections.Experience.Items[0]
	assert.Equal(t, "Acme", exp.Company)
	assert.Equal(t, "2020-01 - Present", exp.Period)
	assert.Equal(t, "<p>Led the platform team.</p><ul><li>Cut p99 latency by 40%</li></ul>", exp.Description)
	assert.NotEmpty(t, exp.ID)

	require.Len(t, d.Sections.Skills.Items, 1)
	assert.Equal(t, []string{}, d.Sections.Skills.Items[0].Keywords)
	assert.Equal(t, "2021 - 2022", d.Sections.Projects.Items[0].Period)
	assert.Equal(t, model.DefaultTemplate, d.Metadata.Template)
}

func TestNativeImportAssignsMissingIDs(t *testing.T) {
	raw := `{"basics":{"name":"A"},"sections":{"awards":{"items":[{"title":"Best"},{"id":"keep","title":"Other"}]}},
		"customSections":[{"title":"Extra","type":"summary","items":[{"content":"x"}]}]}`
	d, err := NewRegistry(nil).Import(context.Background(), Source{Format: FormatNative, Data: []byte(raw)})
	require.NoError(t, err)

	require.Len(t, d.Sections.Awards.Items, 2)
	assert.NotEmpty(t, d.Sections.Awards.Items[0].ID)
	assert.Equal(t, "keep", d.Sections.Awards.Items[1].ID)
	require.Len(t, d.CustomSections, 1)
	assert.NotEmpty(t, d.CustomSections[0].ID)
	assert.NotEmpty(t, d.CustomSections[0].Items[0].ItemID())
}

func TestNativeImportRejectsInvalid(t *testing.T) {
	raw := `{"basics":{"name":"A"},"metadata":{"page":{"format":"tabloid"}}}`
	_, err := NewRegistry(nil).Import(context.Background(), Source{Format: FormatNative, Data: []byte(raw)})
	assert.ErrorIs(t, err, model.ErrInvalid)
}

func TestUnsupportedAndEmptySources(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Import(context.Background(), Source{Format: FormatPDF, Data: []byte("%PDF")})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = r.Import(context.Background(), Source{Format: FormatNative})
	assert.ErrorIs(t, err, ErrEmptySource)

	assert.Equal(t, []Format{FormatJSONResume, FormatNative}, r.Formats())
}

type fakeParser struct {
	gotName, gotType string
	out              *model.ResumeData
	err              error
}

func (f *fakeParser) ParseDocument(_ context.Context, name, mediaType string, _ []byte) (*model.ResumeData, error) {
	f.gotName, f.gotType = name, mediaType
	return f.out, f.err
}

func TestDocumentImportResetsPresentation(t *testing.T) {
	parsed := model.Sample()
	parsed.Metadata.Template = "from-ai"
	parsed.Metadata.Page.Format = "tabloid"
	parsed.CustomSections = []*model.CustomSection{{ID: "c1", Type: model.KindSummary, Items: []model.Item{}}}
	parsed.Sections.Experience.Items[0].ID = ""

	p := &fakeParser{out: parsed}
	r := NewRegistry(p)
	d, err := r.Import(context.Background(), Source{Format: FormatDOCX, Name: "cv.docx", Data: []byte("PK")})
	require.NoError(t, err)

	assert.Equal(t, "cv.docx", p.gotName)
	assert.Contains(t, p.gotType, "wordprocessingml")
	assert.Equal(t, model.DefaultTemplate, d.Metadata.Template)
	assert.Equal(t, model.PageFormatA4, d.Metadata.Page.Format)
	assert.Empty(t, d.CustomSections)
	assert.NotEmpty(t, d.Sections.Experience.Items[0].ID)
	assert.Equal(t, "Alex Morgan", d.Basics.Name)
}

func TestDocumentImportPropagatesParserError(t *testing.T) {
	boom := errors.New("provider down")
	r := NewRegistry(&fakeParser{err: boom})
	_, err := r.Import(context.Background(), Source{Format: FormatPDF, Data: []byte("%PDF")})
	assert.ErrorIs(t, err, boom)
}
