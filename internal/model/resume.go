package model

import (
	"encoding/json"
	"fmt"
)

// Go models matching resume.schema.json, used for validation, editing and
// rendering.

type Picture struct {
	URL    string `json:"url"`
	Size   int    `json:"size"`
	Hidden bool   `json:"hidden"`
}

type CustomField struct {
	ID   string `json:"id"`
	Icon string `json:"icon"`
	Text string `json:"text"`
	Link string `json:"link"`
}

type Basics struct {
	Name         string        `json:"name"`
	Headline     string        `json:"headline"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Location     string        `json:"location"`
	Website      URL           `json:"website"`
	Picture      Picture       `json:"picture"`
	CustomFields []CustomField `json:"customFields"`
}

type Summary struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Hidden  bool   `json:"hidden"`
}

type LayoutPage struct {
	FullWidth bool     `json:"fullWidth"`
	Main      []string `json:"main"`
	Sidebar   []string `json:"sidebar"`
}

type Layout struct {
	SidebarWidth int          `json:"sidebarWidth"`
	Pages        []LayoutPage `json:"pages"`
}

type CSS struct {
	Enabled bool   `json:"enabled"`
	Value   string `json:"value"`
}

const (
	PageFormatA4     = "a4"
	PageFormatLetter = "letter"
)

type Page struct {
	Format    string  `json:"format"`
	Locale    string  `json:"locale"`
	MarginX   float64 `json:"marginX"`
	MarginY   float64 `json:"marginY"`
	GapX      float64 `json:"gapX"`
	GapY      float64 `json:"gapY"`
	HideIcons bool    `json:"hideIcons"`
}

type Colors struct {
	Primary    string `json:"primary"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

type Design struct {
	Colors Colors `json:"colors"`
}

type Font struct {
	Family     string   `json:"fontFamily"`
	Weights    []string `json:"fontWeights"`
	Size       float64  `json:"fontSize"`
	LineHeight float64  `json:"lineHeight"`
}

type Typography struct {
	Body    Font `json:"body"`
	Heading Font `json:"heading"`
}

// Metadata is presentation state. It never takes part in item identity.
type Metadata struct {
	Template   string     `json:"template"`
	Layout     Layout     `json:"layout"`
	CSS        CSS        `json:"css"`
	Page       Page       `json:"page"`
	Design     Design     `json:"design"`
	Typography Typography `json:"typography"`
	Notes      string     `json:"notes"`
}

// ResumeData is the structured content of a resume document.
type ResumeData struct {
	Basics         Basics           `json:"basics"`
	Summary        Summary          `json:"summary"`
	Sections       Sections         `json:"sections"`
	CustomSections []*CustomSection `json:"customSections"`
	Metadata       Metadata         `json:"metadata"`
}

// UnmarshalJSON decodes and then normalizes so every built-in section is
// present with a non-nil item list.
func (d *ResumeData) UnmarshalJSON(b []byte) error {
	type plain ResumeData
	p := plain(*Default())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*d = ResumeData(p)
	d.Normalize()
	return nil
}

// Normalize replaces nil lists with empty ones.
func (d *ResumeData) Normalize() {
	d.Sections.normalize()
	custom := make([]*CustomSection, 0, len(d.CustomSections))
	for _, cs := range d.CustomSections {
		if cs == nil {
			continue
		}
		if cs.Items == nil {
			cs.Items = []Item{}
		}
		custom = append(custom, cs)
	}
	d.CustomSections = custom
	if d.Basics.CustomFields == nil {
		d.Basics.CustomFields = []CustomField{}
	}
}

// CustomSection returns the custom section with the given id, or nil.
func (d *ResumeData) CustomSection(id string) *CustomSection {
	for _, cs := range d.CustomSections {
		if cs.ID == id {
			return cs
		}
	}
	return nil
}

// Clone returns a deep copy sharing no slices, maps or items with d.
func (d *ResumeData) Clone() *ResumeData {
	b, err := json.Marshal(d)
	if err != nil {
		panic(fmt.Sprintf("model: marshal resume data: %v", err))
	}
	out := &ResumeData{}
	if err := json.Unmarshal(b, out); err != nil {
		panic(fmt.Sprintf("model: unmarshal resume data: %v", err))
	}
	return out
}

// Parse decodes a ResumeData document from JSON.
func Parse(b []byte) (*ResumeData, error) {
	out := &ResumeData{}
	if err := json.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("parse resume data: %w", err)
	}
	return out, nil
}

// AssignMissingIDs gives every custom section and item without an id a
// fresh one from gen. It returns how many ids were assigned.
func (d *ResumeData) AssignMissingIDs(gen func() string) int {
	n := 0
	fill := func(list ItemList) {
		for i := 0; i < list.Len(); i++ {
			if b, ok := list.At(i).(interface{ base() *Base }); ok && b.base().ID == "" {
				b.base().ID = gen()
				n++
			}
		}
	}
	for _, k := range BuiltinKinds() {
		list, _ := d.Sections.List(k)
		fill(list)
	}
	for _, cs := range d.CustomSections {
		if cs.ID == "" {
			cs.ID = gen()
			n++
		}
		fill(cs)
	}
	for i := range d.Basics.CustomFields {
		if d.Basics.CustomFields[i].ID == "" {
			d.Basics.CustomFields[i].ID = gen()
			n++
		}
	}
	return n
}
