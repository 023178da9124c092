package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"resume-builder/internal/model"
)

// jsonResume is the subset of the jsonresume.org v1 schema that maps onto
// resume data.
type jsonResume struct {
	Basics struct {
		Name     string `json:"name"`
		Label    string `json:"label"`
		Image    string `json:"image"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		URL      string `json:"url"`
		Summary  string `json:"summary"`
		Location struct {
			City        string `json:"city"`
			Region      string `json:"region"`
			CountryCode string `json:"countryCode"`
		} `json:"location"`
		Profiles []struct {
			Network  string `json:"network"`
			Username string `json:"username"`
			URL      string `json:"url"`
		} `json:"profiles"`
	} `json:"basics"`
	Work []struct {
		Name       string   `json:"name"`
		Position   string   `json:"position"`
		Location   string   `json:"location"`
		URL        string   `json:"url"`
		StartDate  string   `json:"startDate"`
		EndDate    string   `json:"endDate"`
		Summary    string   `json:"summary"`
		Highlights []string `json:"highlights"`
	} `json:"work"`
	Volunteer []struct {
		Organization string   `json:"organization"`
		Position     string   `json:"position"`
		URL          string   `json:"url"`
		StartDate    string   `json:"startDate"`
		EndDate      string   `json:"endDate"`
		Summary      string   `json:"summary"`
		Highlights   []string `json:"highlights"`
	} `json:"volunteer"`
	Education []struct {
		Institution string   `json:"institution"`
		URL         string   `json:"url"`
		Area        string   `json:"area"`
		StudyType   string   `json:"studyType"`
		StartDate   string   `json:"startDate"`
		EndDate     string   `json:"endDate"`
		Score       string   `json:"score"`
		Courses     []string `json:"courses"`
	} `json:"education"`
	Awards []struct {
		Title   string `json:"title"`
		Date    string `json:"date"`
		Awarder string `json:"awarder"`
		Summary string `json:"summary"`
	} `json:"awards"`
	Certificates []struct {
		Name   string `json:"name"`
		Date   string `json:"date"`
		Issuer string `json:"issuer"`
		URL    string `json:"url"`
	} `json:"certificates"`
	Publications []struct {
		Name        string `json:"name"`
		Publisher   string `json:"publisher"`
		ReleaseDate string `json:"releaseDate"`
		URL         string `json:"url"`
		Summary     string `json:"summary"`
	} `json:"publications"`
	Skills []struct {
		Name     string   `json:"name"`
		Level    string   `json:"level"`
		Keywords []string `json:"keywords"`
	} `json:"skills"`
	Languages []struct {
		Language string `json:"language"`
		Fluency  string `json:"fluency"`
	} `json:"languages"`
	Interests []struct {
		Name     string   `json:"name"`
		Keywords []string `json:"keywords"`
	} `json:"interests"`
	References []struct {
		Name      string `json:"name"`
		Reference string `json:"reference"`
	} `json:"references"`
	Projects []struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Highlights  []string `json:"highlights"`
		StartDate   string   `json:"startDate"`
		EndDate     string   `json:"endDate"`
		URL         string   `json:"url"`
	} `json:"projects"`
}

func importJSONResume(_ context.Context, src Source) (*model.ResumeData, error) {
	var in jsonResume
	if err := json.Unmarshal(src.Data, &in); err != nil {
		return nil, fmt.Errorf("parse json resume: %w", err)
	}

	d := model.Default()
	b := in.Basics
	d.Basics.Name = b.Name
	d.Basics.Headline = b.Label
	d.Basics.Email = b.Email
	d.Basics.Phone = b.Phone
	d.Basics.Website = link(b.URL)
	d.Basics.Location = joinNonEmpty(", ", b.Location.City, b.Location.Region, b.Location.CountryCode)
	d.Basics.Picture.URL = b.Image
	d.Summary.Content = richText(b.Summary, nil)

	s := &d.Sections
	for _, p := range b.Profiles {
		s.Profiles.Items = append(s.Profiles.Items, &model.ProfileItem{
			Network: p.Network, Username: p.Username, Website: link(p.URL), Icon: strings.ToLower(p.Network),
		})
	}
	for _, w := range in.Work {
		s.Experience.Items = append(s.Experience.Items, &model.ExperienceItem{
			Company: w.Name, Position: w.Position, Location: w.Location, Website: link(w.URL),
			Period: period(w.StartDate, w.EndDate), Description: richText(w.Summary, w.Highlights),
		})
	}
	for _, v := range in.Volunteer {
		s.Volunteer.Items = append(s.Volunteer.Items, &model.VolunteerItem{
			Organization: v.Organization, Website: link(v.URL), Period: period(v.StartDate, v.EndDate),
			Description: richText(joinNonEmpty(". ", v.Position, v.Summary), v.Highlights),
		})
	}
	for _, e := range in.Education {
		s.Education.Items = append(s.Education.Items, &model.EducationItem{
			School: e.Institution, Degree: e.StudyType, Area: e.Area, Grade: e.Score, Website: link(e.URL),
			Period: period(e.StartDate, e.EndDate), Description: richText("", e.Courses),
		})
	}
	for _, a := range in.Awards {
		s.Awards.Items = append(s.Awards.Items, &model.AwardItem{
			Title: a.Title, Awarder: a.Awarder, Date: a.Date, Description: richText(a.Summary, nil),
		})
	}
	for _, c := range in.Certificates {
		s.Certifications.Items = append(s.Certifications.Items, &model.CertificationItem{
			Title: c.Name, Issuer: c.Issuer, Date: c.Date, Website: link(c.URL),
		})
	}
	for _, p := range in.Publications {
		s.Publications.Items = append(s.Publications.Items, &model.PublicationItem{
			Title: p.Name, Publisher: p.Publisher, Date: p.ReleaseDate, Website: link(p.URL),
			Description: richText(p.Summary, nil),
		})
	}
	for _, sk := range in.Skills {
		s.Skills.Items = append(s.Skills.Items, &model.SkillItem{
			Name: sk.Name, Proficiency: sk.Level, Keywords: nonNil(sk.Keywords),
		})
	}
	for _, l := range in.Languages {
		s.Languages.Items = append(s.Languages.Items, &model.LanguageItem{Language: l.Language, Fluency: l.Fluency})
	}
	for _, it := range in.Interests {
		s.Interests.Items = append(s.Interests.Items, &model.InterestItem{Name: it.Name, Keywords: nonNil(it.Keywords)})
	}
	for _, r := range in.References {
		s.References.Items = append(s.References.Items, &model.ReferenceItem{Name: r.Name, Description: richText(r.Reference, nil)})
	}
	for _, p := range in.Projects {
		s.Projects.Items = append(s.Projects.Items, &model.ProjectItem{
			Name: p.Name, Website: link(p.URL), Period: period(p.StartDate, p.EndDate),
			Description: richText(p.Description, p.Highlights),
		})
	}
	return finish(d)
}

// richText renders a paragraph followed by a bullet list, escaping both.
func richText(paragraph string, bullets []string) string {
	var sb strings.Builder
	if p := strings.TrimSpace(paragraph); p != "" {
		sb.WriteString("<p>" + html.EscapeString(p) + "</p>")
	}
	items := 0
	for _, b := range bullets {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if items == 0 {
			sb.WriteString("<ul>")
		}
		sb.WriteString("<li>" + html.EscapeString(b) + "</li>")
		items++
	}
	if items > 0 {
		sb.WriteString("</ul>")
	}
	return sb.String()
}

func period(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " - Present"
	case start == "":
		return end
	}
	return start + " - " + end
}

func link(u string) model.URL {
	return model.URL{URL: u}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
