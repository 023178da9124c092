package model

import (
	"encoding/json"
	"fmt"
)

// ItemList is the uniform view over a built-in Section or a CustomSection
// that the CRUD contract works against.
type ItemList interface {
	Kind() Kind
	Len() int
	At(i int) Item
	Index(id string) int
	Append(it Item) error
	Set(i int, it Item) error
	Remove(i int)
	Move(from, to int)
}

// Section is a built-in, fixed-kind container of items.
type Section[T Item] struct {
	Title   string `json:"title"`
	Columns int    `json:"columns"`
	Hidden  bool   `json:"hidden"`
	Items   []T    `json:"items"`
}

func newSection[T Item](title string) Section[T] {
	return Section[T]{Title: title, Columns: 1, Items: []T{}}
}

// Kind is derived from the element type; item kinds never dereference
// their receiver.
func (s *Section[T]) Kind() Kind {
	var zero T
	return zero.ItemKind()
}

func (s *Section[T]) Len() int      { return len(s.Items) }
func (s *Section[T]) At(i int) Item { return s.Items[i] }

func (s *Section[T]) Index(id string) int {
	for i, it := range s.Items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

func (s *Section[T]) Append(it Item) error {
	v, ok := it.(T)
	if !ok {
		return fmt.Errorf("%w: %s section cannot hold %s", ErrKindMismatch, s.Kind(), it.ItemKind())
	}
	s.Items = append(s.Items, v)
	return nil
}

func (s *Section[T]) Set(i int, it Item) error {
	v, ok := it.(T)
	if !ok {
		return fmt.Errorf("%w: %s section cannot hold %s", ErrKindMismatch, s.Kind(), it.ItemKind())
	}
	s.Items[i] = v
	return nil
}

func (s *Section[T]) Remove(i int) {
	s.Items = append(s.Items[:i], s.Items[i+1:]...)
}

func (s *Section[T]) Move(from, to int) {
	s.Items = move(s.Items, from, to)
}

func move[T any](items []T, from, to int) []T {
	if from == to {
		return items
	}
	v := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items[:to], append([]T{v}, items[to:]...)...)
	return items
}

// Sections holds one section per built-in kind. Every key is always
// present, even when its items are empty.
type Sections struct {
	Profiles       Section[*ProfileItem]       `json:"profiles"`
	Experience     Section[*ExperienceItem]    `json:"experience"`
	Education      Section[*EducationItem]     `json:"education"`
	Skills         Section[*SkillItem]         `json:"skills"`
	Projects       Section[*ProjectItem]       `json:"projects"`
	Certifications Section[*CertificationItem] `json:"certifications"`
	Languages      Section[*LanguageItem]      `json:"languages"`
	Publications   Section[*PublicationItem]   `json:"publications"`
	Awards         Section[*AwardItem]         `json:"awards"`
	Interests      Section[*InterestItem]      `json:"interests"`
	Volunteer      Section[*VolunteerItem]     `json:"volunteer"`
	References     Section[*ReferenceItem]     `json:"references"`
}

func defaultSections() Sections {
	return Sections{
		Profiles:       newSection[*ProfileItem]("Profiles"),
		Experience:     newSection[*ExperienceItem]("Experience"),
		Education:      newSection[*EducationItem]("Education"),
		Skills:         newSection[*SkillItem]("Skills"),
		Projects:       newSection[*ProjectItem]("Projects"),
		Certifications: newSection[*CertificationItem]("Certifications"),
		Languages:      newSection[*LanguageItem]("Languages"),
		Publications:   newSection[*PublicationItem]("Publications"),
		Awards:         newSection[*AwardItem]("Awards"),
		Interests:      newSection[*InterestItem]("Interests"),
		Volunteer:      newSection[*VolunteerItem]("Volunteer"),
		References:     newSection[*ReferenceItem]("References"),
	}
}

// List returns the built-in section for kind. Custom-only kinds have no
// built-in section.
func (s *Sections) List(kind Kind) (ItemList, bool) {
	switch kind {
	case KindProfiles:
		return &s.Profiles, true
	case KindExperience:
		return &s.Experience, true
	case KindEducation:
		return &s.Education, true
	case KindSkills:
		return &s.Skills, true
	case KindProjects:
		return &s.Projects, true
	case KindCertifications:
		return &s.Certifications, true
	case KindLanguages:
		return &s.Languages, true
	case KindPublications:
		return &s.Publications, true
	case KindAwards:
		return &s.Awards, true
	case KindInterests:
		return &s.Interests, true
	case KindVolunteer:
		return &s.Volunteer, true
	case KindReferences:
		return &s.References, true
	}
	return nil, false
}

// normalize replaces nil item slices so every section serializes as a
// list.
func (s *Sections) normalize() {
	normalizeSection(&s.Profiles)
	normalizeSection(&s.Experience)
	normalizeSection(&s.Education)
	normalizeSection(&s.Skills)
	normalizeSection(&s.Projects)
	normalizeSection(&s.Certifications)
	normalizeSection(&s.Languages)
	normalizeSection(&s.Publications)
	normalizeSection(&s.Awards)
	normalizeSection(&s.Interests)
	normalizeSection(&s.Volunteer)
	normalizeSection(&s.References)
}

func normalizeSection[T Item](s *Section[T]) {
	if s.Items == nil {
		s.Items = []T{}
	}
	if s.Columns < 1 {
		s.Columns = 1
	}
}

// CustomSection is a user-defined container whose items all share Type.
type CustomSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Type    Kind   `json:"type"`
	Columns int    `json:"columns"`
	Hidden  bool   `json:"hidden"`
	Items   []Item `json:"items"`
}

func (c *CustomSection) Kind() Kind    { return c.Type }
func (c *CustomSection) Len() int      { return len(c.Items) }
func (c *CustomSection) At(i int) Item { return c.Items[i] }

func (c *CustomSection) Index(id string) int {
	for i, it := range c.Items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

func (c *CustomSection) Append(it Item) error {
	if it.ItemKind() != c.Type {
		return fmt.Errorf("%w: custom section %s holds %s, got %s", ErrKindMismatch, c.ID, c.Type, it.ItemKind())
	}
	c.Items = append(c.Items, it)
	return nil
}

func (c *CustomSection) Set(i int, it Item) error {
	if it.ItemKind() != c.Type {
		return fmt.Errorf("%w: custom section %s holds %s, got %s", ErrKindMismatch, c.ID, c.Type, it.ItemKind())
	}
	c.Items[i] = it
	return nil
}

func (c *CustomSection) Remove(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

func (c *CustomSection) Move(from, to int) {
	c.Items = move(c.Items, from, to)
}

// UnmarshalJSON decodes items according to the declared section type.
func (c *CustomSection) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID      string            `json:"id"`
		Title   string            `json:"title"`
		Type    Kind              `json:"type"`
		Columns int               `json:"columns"`
		Hidden  bool              `json:"hidden"`
		Items   []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if !raw.Type.Valid() {
		return fmt.Errorf("custom section %s: %w: %q", raw.ID, ErrUnknownKind, raw.Type)
	}

	items := make([]Item, 0, len(raw.Items))
	for _, r := range raw.Items {
		it, err := DecodeItem(raw.Type, r)
		if err != nil {
			return fmt.Errorf("custom section %s: %w", raw.ID, err)
		}
		items = append(items, it)
	}

	*c = CustomSection{
		ID:      raw.ID,
		Title:   raw.Title,
		Type:    raw.Type,
		Columns: raw.Columns,
		Hidden:  raw.Hidden,
		Items:   items,
	}
	if c.Columns < 1 {
		c.Columns = 1
	}
	return nil
}
