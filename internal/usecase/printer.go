package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"resume-builder/internal/model"
)

//go:embed templates/resume.html
var resumeTemplate string

var pageTemplate = template.Must(template.New("resume").Parse(resumeTemplate))

// richText keeps the formatting the editor produces and drops anything
// that can run script.
var richText = bluemonday.UGCPolicy()

// cssEscaper keeps custom CSS inside its <style> element.
var cssEscaper = strings.NewReplacer("<", `\3c `)

func safeHTML(s string) template.HTML {
	return template.HTML(richText.Sanitize(s))
}

func safeCSS(s string) template.CSS {
	return template.CSS(cssEscaper.Replace(s))
}

// Printer renders resumes to HTML and PDF.
type Printer struct {
	svc      *ResumeService
	renderer Renderer
}

func NewPrinter(svc *ResumeService, renderer Renderer) *Printer {
	return &Printer{svc: svc, renderer: renderer}
}

// HTML renders a resume the viewer may print.
func (p *Printer) HTML(ctx context.Context, viewer, id uuid.UUID) ([]byte, error) {
	res, err := p.svc.GetForPrint(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	return RenderHTML(res.Data)
}

// PDF renders a resume through the browser and counts a download.
func (p *Printer) PDF(ctx context.Context, viewer, id uuid.UUID) ([]byte, error) {
	res, err := p.svc.GetForPrint(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	pdf, err := RenderPDF(ctx, p.renderer, res.Data)
	if err != nil {
		return nil, err
	}
	p.svc.RecordDownload(ctx, id)
	return pdf, nil
}

// RenderPDF renders d to HTML and prints it with r.
func RenderPDF(ctx context.Context, r Renderer, d *model.ResumeData) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf renderer is not configured")
	}
	html, err := RenderHTML(d)
	if err != nil {
		return nil, err
	}
	return r.RenderHTMLToPDF(ctx, string(html), d.Metadata.Page.Format)
}

// RenderHTML renders d as a standalone HTML page.
func RenderHTML(d *model.ResumeData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, newPageView(d)); err != nil {
		return nil, fmt.Errorf("render resume: %w", err)
	}
	return buf.Bytes(), nil
}

type pageView struct {
	Locale       string
	PageSize     string
	MarginX      float64
	MarginY      float64
	GapX         float64
	GapY         float64
	SidebarWidth int
	Colors       model.Colors
	Body         model.Font
	Heading      model.Font
	CustomCSS    template.CSS
	Basics       model.Basics
	Main         []sectionView
	Sidebar      []sectionView
}

type sectionView struct {
	Key     string
	Title   string
	Columns int
	Body    template.HTML
	Items   []itemView
}

type itemView struct {
	Title    string
	Subtitle string
	Meta     string
	Level    string
	URL      model.URL
	Body     template.HTML
	Keywords []string
}

func newPageView(d *model.ResumeData) pageView {
	m := d.Metadata
	v := pageView{
		Locale:       m.Page.Locale,
		PageSize:     "A4",
		MarginX:      m.Page.MarginX,
		MarginY:      m.Page.MarginY,
		GapX:         m.Page.GapX,
		GapY:         m.Page.GapY,
		SidebarWidth: m.Layout.SidebarWidth,
		Colors:       m.Design.Colors,
		Body:         m.Typography.Body,
		Heading:      m.Typography.Heading,
		Basics:       d.Basics,
	}
	if m.Page.Format == model.PageFormatLetter {
		v.PageSize = "letter"
	}
	if m.CSS.Enabled {
		v.CustomCSS = safeCSS(m.CSS.Value)
	}

	placed := map[string]bool{}
	for _, page := range m.Layout.Pages {
		for _, key := range page.Main {
			placed[key] = true
			if s, ok := sectionFor(d, key); ok {
				v.Main = append(v.Main, s)
			}
		}
		for _, key := range page.Sidebar {
			placed[key] = true
			if s, ok := sectionFor(d, key); ok {
				v.Sidebar = append(v.Sidebar, s)
			}
		}
	}
	// sections missing from the layout still print, after the main column
	for _, k := range append([]string{string(model.KindSummary)}, kindKeys()...) {
		if !placed[k] {
			if s, ok := sectionFor(d, k); ok {
				v.Main = append(v.Main, s)
			}
		}
	}
	for _, cs := range d.CustomSections {
		if !placed[cs.ID] && !placed["custom."+cs.ID] {
			if s, ok := sectionFor(d, cs.ID); ok {
				v.Main = append(v.Main, s)
			}
		}
	}
	return v
}

func kindKeys() []string {
	out := []string{}
	for _, k := range model.BuiltinKinds() {
		out = append(out, string(k))
	}
	return out
}

// sectionFor builds the view of a layout key: "summary", a built-in kind,
// or a custom section id with an optional "custom." prefix. Hidden and
// empty sections are skipped.
func sectionFor(d *model.ResumeData, key string) (sectionView, bool) {
	if key == string(model.KindSummary) {
		if d.Summary.Hidden || strings.TrimSpace(d.Summary.Content) == "" {
			return sectionView{}, false
		}
		return sectionView{Key: key, Title: d.Summary.Title, Columns: 1, Body: safeHTML(d.Summary.Content)}, true
	}

	var (
		list    model.ItemList
		title   string
		columns int
	)
	if builtin, ok := d.Sections.List(model.Kind(key)); ok {
		meta := sectionMeta(&d.Sections, model.Kind(key))
		if meta.Hidden {
			return sectionView{}, false
		}
		list, title, columns = builtin, meta.Title, meta.Columns
	} else if cs := d.CustomSection(strings.TrimPrefix(key, "custom.")); cs != nil {
		if cs.Hidden {
			return sectionView{}, false
		}
		list, title, columns = cs, cs.Title, cs.Columns
	} else {
		return sectionView{}, false
	}

	s := sectionView{Key: key, Title: title, Columns: max(columns, 1)}
	for i := 0; i < list.Len(); i++ {
		if it := list.At(i); !it.IsHidden() {
			s.Items = append(s.Items, viewItem(it))
		}
	}
	if len(s.Items) == 0 {
		return sectionView{}, false
	}
	return s, true
}

type sectionHeader struct {
	Title   string
	Columns int
	Hidden  bool
}

func sectionMeta(s *model.Sections, k model.Kind) sectionHeader {
	switch k {
	case model.KindProfiles:
		return header(&s.Profiles)
	case model.KindExperience:
		return header(&s.Experience)
	case model.KindEducation:
		return header(&s.Education)
	case model.KindSkills:
		return header(&s.Skills)
	case model.KindProjects:
		return header(&s.Projects)
	case model.KindCertifications:
		return header(&s.Certifications)
	case model.KindLanguages:
		return header(&s.Languages)
	case model.KindPublications:
		return header(&s.Publications)
	case model.KindAwards:
		return header(&s.Awards)
	case model.KindInterests:
		return header(&s.Interests)
	case model.KindVolunteer:
		return header(&s.Volunteer)
	case model.KindReferences:
		return header(&s.References)
	}
	return sectionHeader{Hidden: true}
}

func header[T model.Item](s *model.Section[T]) sectionHeader {
	return sectionHeader{Title: s.Title, Columns: s.Columns, Hidden: s.Hidden}
}

func level(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("●", min(n, 5)) + strings.Repeat("○", 5-min(n, 5))
}

func viewItem(it model.Item) itemView {
	switch v := it.(type) {
	case *model.ProfileItem:
		return itemView{Title: v.Network, Subtitle: v.Username, URL: v.Website}
	case *model.ExperienceItem:
		return itemView{Title: v.Company, Subtitle: v.Position, Meta: joinMeta(v.Period, v.Location), URL: v.Website, Body: safeHTML(v.Description)}
	case *model.EducationItem:
		return itemView{Title: v.School, Subtitle: joinMeta(v.Degree, v.Area), Meta: joinMeta(v.Period, v.Grade), URL: v.Website, Body: safeHTML(v.Description)}
	case *model.SkillItem:
		return itemView{Title: v.Name, Subtitle: v.Proficiency, Level: level(v.Level), Keywords: v.Keywords}
	case *model.ProjectItem:
		return itemView{Title: v.Name, Meta: v.Period, URL: v.Website, Body: safeHTML(v.Description)}
	case *model.CertificationItem:
		return itemView{Title: v.Title, Subtitle: v.Issuer, Meta: v.Date, URL: v.Website, Body: safeHTML(v.Description)}
	case *model.LanguageItem:
		return itemView{Title: v.Language, Subtitle: v.Fluency, Level: level(v.Level)}
	case *model.PublicationItem:
		return itemView{Title: v.Title, Subtitle: v.Publisher, Meta: v.Date, URL: v.Website, Body: safeHTML(v.Description)}
	case *model.AwardItem:
		return itemView{Title: v.Title, Subtitle: v.Awarder, Meta: v.Date, URL: v.Website, Body: safeHTML(v.Description)}
	case *model.InterestItem:
		return itemView{Title: v.Name, Keywords: v.Keywords}
	case *model.VolunteerItem:
		return itemView{Title: v.Organization, Meta: joinMeta(v.Period, v.Location), URL: v.Website, Body: safeHTML(v.Description)}
	case *model.ReferenceItem:
		return itemView{Title: v.Name, Subtitle: v.Position, Meta: v.Phone, URL: v.Website, Body: safeHTML(v.Description)}
	case *model.SummaryItem:
		return itemView{Body: safeHTML(v.Content)}
	case *model.CoverLetterItem:
		return itemView{Title: v.Recipient, Body: safeHTML(v.Content)}
	}
	return itemView{}
}

func joinMeta(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " · ")
}
