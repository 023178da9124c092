package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"resume-builder/internal/crud"
	"resume-builder/internal/editor"
	"resume-builder/internal/metrics"
	"resume-builder/internal/model"
)

// Generation kinds accepted by Generate.
const (
	GenerateExperience = "experience"
	GenerateProjects   = "projects"
	GenerateSummary    = "summary"
	GenerateCustom     = "custom"
)

func validGenerateKind(k string) bool {
	switch k {
	case GenerateExperience, GenerateProjects, GenerateSummary, GenerateCustom:
		return true
	}
	return false
}

// SuggestTarget addresses the text a suggestion replaces: the document
// summary when ItemID is empty, otherwise the rich-text body of one item.
type SuggestTarget struct {
	Kind            model.Kind
	ItemID          string
	CustomSectionID string
}

// Generator runs content generation and writes results into open drafts.
type Generator struct {
	ai       ContentGenerator
	sessions *Sessions
	log      zerolog.Logger
}

func NewGenerator(ai ContentGenerator, sessions *Sessions, log zerolog.Logger) *Generator {
	return &Generator{ai: ai, sessions: sessions, log: log.With().Str("component", "generator").Logger()}
}

// Generate returns generated content without touching any document.
func (g *Generator) Generate(ctx context.Context, kind string, input any) (string, error) {
	if !validGenerateKind(kind) {
		return "", fmt.Errorf("%w: unknown content kind %q", ErrInvalidInput, kind)
	}
	out, err := g.ai.GenerateContent(ctx, kind, input)
	if err != nil {
		metrics.Generations.WithLabelValues(kind, "error").Inc()
		g.log.Warn().Err(err).Str("kind", kind).Msg("generation failed")
		return "", err
	}
	metrics.Generations.WithLabelValues(kind, "ok").Inc()
	return out, nil
}

// Suggest generates content and writes it into the draft, but only if the
// draft is still at version. A failed generation, a stale version or a
// missing target leaves the document untouched.
func (g *Generator) Suggest(ctx context.Context, userID, resumeID uuid.UUID, version uint64, target SuggestTarget, kind string, input any) (Outcome, error) {
	sess, err := g.sessions.Open(ctx, userID, resumeID)
	if err != nil {
		return Outcome{}, err
	}
	if v := sess.Store.Version(); v != version {
		return Outcome{}, fmt.Errorf("%w: expected %d, current %d", editor.ErrStale, version, v)
	}

	text, err := g.Generate(ctx, kind, input)
	if err != nil {
		return Outcome{}, err
	}

	result := crud.NotFound
	snap, _, err := sess.Store.EditAt(version, func(d *model.ResumeData) (bool, error) {
		result = writeSuggestion(d, target, text)
		return result == crud.Applied, nil
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Result: result.String(), Version: snap.Version, ResumeID: resumeID.String()}, nil
}

func writeSuggestion(d *model.ResumeData, t SuggestTarget, text string) crud.Result {
	if t.ItemID == "" {
		d.Summary.Content = text
		return crud.Applied
	}
	list := crud.Resolve(d, crud.Target{Kind: t.Kind, CustomSectionID: t.CustomSectionID})
	if list == nil {
		return crud.NotFound
	}
	i := list.Index(t.ItemID)
	if i < 0 {
		return crud.NotFound
	}
	if !setBody(list.At(i), text) {
		return crud.NotFound
	}
	return crud.Applied
}

// setBody writes text into the rich-text field of it, if it has one.
func setBody(it model.Item, text string) bool {
	switch v := it.(type) {
	case *model.ExperienceItem:
		v.Description = text
	case *model.EducationItem:
		v.Description = text
	case *model.ProjectItem:
		v.Description = text
	case *model.CertificationItem:
		v.Description = text
	case *model.PublicationItem:
		v.Description = text
	case *model.AwardItem:
		v.Description = text
	case *model.VolunteerItem:
		v.Description = text
	case *model.ReferenceItem:
		v.Description = text
	case *model.SummaryItem:
		v.Content = text
	case *model.CoverLetterItem:
		v.Content = text
	default:
		return false
	}
	return true
}
