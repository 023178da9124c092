package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

type fakeRenderer struct {
	html   string
	format string
}

func (r *fakeRenderer) RenderHTMLToPDF(_ context.Context, html, format string) ([]byte, error) {
	r.html, r.format = html, format
	return []byte("%PDF-1.7"), nil
}

func TestRenderHTMLSkipsHiddenContent(t *testing.T) {
	d := model.Sample()
	d.Sections.Experience.Items[1].Hidden = true
	d.Sections.Education.Hidden = true
	d.Metadata.Page.Format = model.PageFormatLetter

	out, err := RenderHTML(d)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "Alex Morgan")
	assert.Contains(t, html, "Northwind Logistics")
	assert.NotContains(t, html, "Blue Harbor Labs")
	assert.NotContains(t, html, "Oregon State University")
	assert.Contains(t, html, "size: letter")
	// rich text is emitted as markup
	assert.Contains(t, html, "<li>Cut p99 API latency")
}

func TestRenderHTMLIncludesCustomSections(t *testing.T) {
	d := model.Default()
	d.Basics.Name = "Sam <Lee>"
	d.CustomSections = []*model.CustomSection{{
		ID: "letters", Title: "Letters", Type: model.KindCoverLetter, Columns: 1,
		Items: []model.Item{&model.CoverLetterItem{Base: model.Base{ID: "l1"}, Recipient: "Hiring Team", Content: "<p>Hello</p>"}},
	}}

	out, err := RenderHTML(d)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "Hiring Team")
	assert.Contains(t, html, "<p>Hello</p>")
	assert.Contains(t, html, "Sam &lt;Lee&gt;")
	assert.Contains(t, html, "size: A4")
}

func TestPrinterAccessAndDownloads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.svc.Create(ctx, f.user, CreateInput{Name: "CV", WithSampleData: true})
	require.NoError(t, err)

	r := &fakeRenderer{}
	p := NewPrinter(f.svc, r)

	pdf, err := p.PDF(ctx, f.user, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(pdf))
	assert.Equal(t, model.PageFormatA4, r.format)
	assert.Contains(t, r.html, "Alex Morgan")

	stats, err := f.svc.Statistics(ctx, f.user, res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Downloads)

	stranger := uuid.New()
	_, err = p.HTML(ctx, stranger, res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	public := true
	_, err = f.svc.Update(ctx, f.user, res.ID, UpdateInput{IsPublic: &public})
	require.NoError(t, err)
	_, err = p.HTML(ctx, stranger, res.ID)
	assert.NoError(t, err)

	require.NoError(t, f.svc.SetPassword(ctx, f.user, res.ID, "hunter22"))
	_, err = p.HTML(ctx, stranger, res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRenderHTMLSanitizesUserMarkup(t *testing.T) {
	d := model.Default()
	d.Summary.Content = `<p>About me</p><script>alert("summary")</script>`
	d.Sections.Experience.Items = append(d.Sections.Experience.Items, &model.ExperienceItem{
		Base:        model.Base{ID: "e1"},
		Company:     "Acme",
		Description: `<ul><li>Shipped</li></ul><img src="x" onerror="alert(1)"><a href="javascript:alert(2)">link</a>`,
	})
	d.Metadata.CSS.Enabled = true
	d.Metadata.CSS.Value = `h1 { color: red; }</style><script>alert("css")</script>`

	out, err := RenderHTML(d)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<p>About me</p>")
	assert.Contains(t, html, "<li>Shipped</li>")
	assert.Contains(t, html, "h1 { color: red; }")
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "</style><")
	assert.NotContains(t, html, "onerror")
	assert.NotContains(t, html, "javascript:")
}
