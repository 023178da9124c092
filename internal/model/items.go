package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind names an item shape. Built-in kinds double as the key of their
// section in Sections; summary and cover-letter items only live in
// custom sections.
type Kind string

const (
	KindProfiles       Kind = "profiles"
	KindExperience     Kind = "experience"
	KindEducation      Kind = "education"
	KindSkills         Kind = "skills"
	KindProjects       Kind = "projects"
	KindCertifications Kind = "certifications"
	KindLanguages      Kind = "languages"
	KindPublications   Kind = "publications"
	KindAwards         Kind = "awards"
	KindInterests      Kind = "interests"
	KindVolunteer      Kind = "volunteer"
	KindReferences     Kind = "references"
	KindSummary        Kind = "summary"
	KindCoverLetter    Kind = "cover-letter"
)

var (
	ErrUnknownKind  = errors.New("unknown item kind")
	ErrKindMismatch = errors.New("item kind does not match target")
)

var builtinKinds = []Kind{
	KindProfiles, KindExperience, KindEducation, KindSkills, KindProjects, KindCertifications,
	KindLanguages, KindPublications, KindAwards, KindInterests, KindVolunteer, KindReferences,
}

// BuiltinKinds lists the kinds that have a fixed section, in sidebar order.
func BuiltinKinds() []Kind {
	return append([]Kind(nil), builtinKinds...)
}

// AllKinds lists every item kind, built-in first.
func AllKinds() []Kind {
	return append(BuiltinKinds(), KindSummary, KindCoverLetter)
}

// Builtin reports whether k has its own section in Sections.
func (k Kind) Builtin() bool {
	for _, b := range builtinKinds {
		if b == k {
			return true
		}
	}
	return false
}

// Valid reports whether k is part of the closed kind set.
func (k Kind) Valid() bool {
	return k.Builtin() || k == KindSummary || k == KindCoverLetter
}

// Item is one entry of a Section or CustomSection.
type Item interface {
	ItemID() string
	ItemKind() Kind
	IsHidden() bool
	SetHidden(hidden bool)
}

// Base carries the fields every item shares.
type Base struct {
	ID     string `json:"id"`
	Hidden bool   `json:"hidden"`
}

func (b *Base) ItemID() string        { return b.ID }
func (b *Base) IsHidden() bool        { return b.Hidden }
func (b *Base) SetHidden(hidden bool) { b.Hidden = hidden }
func (b *Base) base() *Base           { return b }

// URL is a link with an optional display label.
type URL struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

type ProfileItem struct {
	Base
	Icon     string `json:"icon"`
	Network  string `json:"network"`
	Username string `json:"username"`
	Website  URL    `json:"website"`
}

type ExperienceItem struct {
	Base
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	Period      string `json:"period"`
	Website     URL    `json:"website"`
	Description string `json:"description"`
}

type EducationItem struct {
	Base
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Area        string `json:"area"`
	Grade       string `json:"grade"`
	Location    string `json:"location"`
	Period      string `json:"period"`
	Website     URL    `json:"website"`
	Description string `json:"description"`
}

type SkillItem struct {
	Base
	Icon        string   `json:"icon"`
	Name        string   `json:"name"`
	Proficiency string   `json:"proficiency"`
	Level       int      `json:"level"`
	Keywords    []string `json:"keywords"`
}

type ProjectOptions struct {
	ShowLinkInTitle bool `json:"showLinkInTitle"`
}

type ProjectItem struct {
	Base
	Options     ProjectOptions `json:"options"`
	Name        string         `json:"name"`
	Period      string         `json:"period"`
	Website     URL            `json:"website"`
	Description string         `json:"description"`
}

type CertificationItem struct {
	Base
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Website     URL    `json:"website"`
	Description string `json:"description"`
}

type LanguageItem struct {
	Base
	Language string `json:"language"`
	Fluency  string `json:"fluency"`
	Level    int    `json:"level"`
}

type PublicationItem struct {
	Base
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Date        string `json:"date"`
	Website     URL    `json:"website"`
	Description string `json:"description"`
}

type AwardItem struct {
	Base
	Title       string `json:"title"`
	Awarder     string `json:"awarder"`
	Date        string `json:"date"`
	Website     URL    `json:"website"`
	Description string `json:"description"`
}

type InterestItem struct {
	Base
	Icon     string   `json:"icon"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

type VolunteerItem struct {
	Base
	Organization string `json:"organization"`
	Location     string `json:"location"`
	Period       string `json:"period"`
	Website      URL    `json:"website"`
	Description  string `json:"description"`
}

type ReferenceItem struct {
	Base
	Name        string `json:"name"`
	Position    string `json:"position"`
	Website     URL    `json:"website"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

// SummaryItem is a rich-text block inside a custom summary section.
type SummaryItem struct {
	Base
	Content string `json:"content"`
}

type CoverLetterItem struct {
	Base
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
}

func (*ProfileItem) ItemKind() Kind       { return KindProfiles }
func (*ExperienceItem) ItemKind() Kind    { return KindExperience }
func (*EducationItem) ItemKind() Kind     { return KindEducation }
func (*SkillItem) ItemKind() Kind         { return KindSkills }
func (*ProjectItem) ItemKind() Kind       { return KindProjects }
func (*CertificationItem) ItemKind() Kind { return KindCertifications }
func (*LanguageItem) ItemKind() Kind      { return KindLanguages }
func (*PublicationItem) ItemKind() Kind   { return KindPublications }
func (*AwardItem) ItemKind() Kind         { return KindAwards }
func (*InterestItem) ItemKind() Kind      { return KindInterests }
func (*VolunteerItem) ItemKind() Kind     { return KindVolunteer }
func (*ReferenceItem) ItemKind() Kind     { return KindReferences }
func (*SummaryItem) ItemKind() Kind       { return KindSummary }
func (*CoverLetterItem) ItemKind() Kind   { return KindCoverLetter }

// NewItem returns a zero item of the given kind.
func NewItem(kind Kind) (Item, error) {
	switch kind {
	case KindProfiles:
		return &ProfileItem{}, nil
	case KindExperience:
		return &ExperienceItem{}, nil
	case KindEducation:
		return &EducationItem{}, nil
	case KindSkills:
		return &SkillItem{Keywords: []string{}}, nil
	case KindProjects:
		return &ProjectItem{}, nil
	case KindCertifications:
		return &CertificationItem{}, nil
	case KindLanguages:
		return &LanguageItem{}, nil
	case KindPublications:
		return &PublicationItem{}, nil
	case KindAwards:
		return &AwardItem{}, nil
	case KindInterests:
		return &InterestItem{Keywords: []string{}}, nil
	case KindVolunteer:
		return &VolunteerItem{}, nil
	case KindReferences:
		return &ReferenceItem{}, nil
	case KindSummary:
		return &SummaryItem{}, nil
	case KindCoverLetter:
		return &CoverLetterItem{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// DecodeItem unmarshals raw into an item of the given kind.
func DecodeItem(kind Kind, raw []byte) (Item, error) {
	it, err := NewItem(kind)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, it); err != nil {
		return nil, fmt.Errorf("decode %s item: %w", kind, err)
	}
	return it, nil
}

// A kind without a factory would make custom sections of that kind
// undecodable, so refuse to start.
func init() {
	for _, k := range AllKinds() {
		it, err := NewItem(k)
		if err != nil {
			panic(err)
		}
		if it.ItemKind() != k {
			panic(fmt.Sprintf("model: factory for %q builds %q", k, it.ItemKind()))
		}
	}
}

// SetItemID overwrites the id of it.
func SetItemID(it Item, id string) {
	if b, ok := it.(interface{ base() *Base }); ok {
		b.base().ID = id
	}
}
