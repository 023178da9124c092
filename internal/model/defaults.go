package model

import "resume-builder/pkg/ident"

// DefaultTemplate is the template assigned to new documents.
const DefaultTemplate = "azurill"

func defaultMetadata() Metadata {
	return Metadata{
		Template: DefaultTemplate,
		Layout: Layout{
			SidebarWidth: 35,
			Pages: []LayoutPage{{
				Main: []string{
					string(KindProfiles), string(KindSummary), string(KindEducation), string(KindExperience),
					string(KindProjects), string(KindVolunteer), string(KindReferences),
				},
				Sidebar: []string{
					string(KindSkills), string(KindInterests), string(KindCertifications), string(KindAwards),
					string(KindPublications), string(KindLanguages),
				},
			}},
		},
		Page: Page{
			Format:  PageFormatA4,
			Locale:  "en-US",
			MarginX: 14,
			MarginY: 12,
			GapX:    4,
			GapY:    6,
		},
		Design: Design{Colors: Colors{Primary: "#dc2626", Text: "#000000", Background: "#ffffff"}},
		Typography: Typography{
			Body:    Font{Family: "IBM Plex Serif", Weights: []string{"400", "500"}, Size: 10, LineHeight: 1.5},
			Heading: Font{Family: "IBM Plex Serif", Weights: []string{"600"}, Size: 14, LineHeight: 1.5},
		},
	}
}

// Default returns an empty document with every section present.
func Default() *ResumeData {
	return &ResumeData{
		Basics:         Basics{CustomFields: []CustomField{}},
		Summary:        Summary{Title: "Summary"},
		Sections:       defaultSections(),
		CustomSections: []*CustomSection{},
		Metadata:       defaultMetadata(),
	}
}

// Sample returns a populated document for "create with sample data".
func Sample() *ResumeData {
	d := Default()
	d.Basics = Basics{
		Name:         "Alex Morgan",
		Headline:     "Senior Backend Engineer",
		Email:        "alex.morgan@example.com",
		Phone:        "+1 (555) 010-2030",
		Location:     "Portland, OR",
		Website:      URL{URL: "https://alexmorgan.dev", Label: "alexmorgan.dev"},
		CustomFields: []CustomField{},
	}
	d.Summary.Content = "<p>Backend engineer with nine years of experience building reliable data services in Go and PostgreSQL. " +
		"Focused on clear APIs, observability and teams that ship calmly.</p>"

	d.Sections.Profiles.Items = []*ProfileItem{
		{Base: Base{ID: ident.NewID()}, Icon: "github-logo", Network: "GitHub", Username: "amorgan",
			Website: URL{URL: "https://github.com/amorgan", Label: "github.com/amorgan"}},
		{Base: Base{ID: ident.NewID()}, Icon: "linkedin-logo", Network: "LinkedIn", Username: "alex-morgan",
			Website: URL{URL: "https://linkedin.com/in/alex-morgan", Label: "linkedin.com/in/alex-morgan"}},
	}
	d.Sections.Experience.Items = []*ExperienceItem{
		{
			Base: Base{ID: ident.NewID()}, Company: "Northwind Logistics", Position: "Senior Backend Engineer",
			Location: "Remote", Period: "2021 - Present",
			Website:     URL{URL: "https://northwind.example.com"},
			Description: "<ul><li>Led the migration of the shipment tracking pipeline to event-driven Go services.</li><li>Cut p99 API latency from 900ms to 120ms.</li></ul>",
		},
		{
			Base: Base{ID: ident.NewID()}, Company: "Blue Harbor Labs", Position: "Software Engineer",
			Location: "Seattle, WA", Period: "2016 - 2021",
			Description: "<ul><li>Built the billing ledger on PostgreSQL with exactly-once settlement.</li></ul>",
		},
	}
	d.Sections.Education.Items = []*EducationItem{
		{Base: Base{ID: ident.NewID()}, School: "Oregon State University", Degree: "B.Sc.", Area: "Computer Science",
			Period: "2012 - 2016"},
	}
	d.Sections.Skills.Items = []*SkillItem{
		{Base: Base{ID: ident.NewID()}, Name: "Go", Proficiency: "Expert", Level: 5, Keywords: []string{"concurrency", "gRPC", "profiling"}},
		{Base: Base{ID: ident.NewID()}, Name: "PostgreSQL", Proficiency: "Advanced", Level: 4, Keywords: []string{"indexing", "replication"}},
	}
	d.Sections.Projects.Items = []*ProjectItem{
		{Base: Base{ID: ident.NewID()}, Name: "pgqueue", Period: "2022",
			Website:     URL{URL: "https://github.com/amorgan/pgqueue", Label: "pgqueue"},
			Description: "<p>A transactional job queue on top of PostgreSQL SKIP LOCKED.</p>"},
	}
	d.Sections.Languages.Items = []*LanguageItem{
		{Base: Base{ID: ident.NewID()}, Language: "English", Fluency: "Native", Level: 5},
		{Base: Base{ID: ident.NewID()}, Language: "Spanish", Fluency: "Conversational", Level: 3},
	}
	d.Sections.Interests.Items = []*InterestItem{
		{Base: Base{ID: ident.NewID()}, Name: "Trail running", Keywords: []string{}},
	}
	return d
}
