package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"resume-builder/internal/crud"
	"resume-builder/internal/dialog"
	"resume-builder/internal/importer"
	"resume-builder/internal/metrics"
	"resume-builder/internal/model"
	"resume-builder/pkg/ident"
)

// ErrNoIntent is returned when there is no intent to run.
var ErrNoIntent = errors.New("no intent")

// Outcome reports what an intent did. Version is the editor version after
// the intent; it is zero for intents that do not touch the open document.
type Outcome struct {
	Intent   dialog.Type `json:"intent"`
	Result   string      `json:"result"`
	Version  uint64      `json:"version"`
	ResumeID string      `json:"resumeId"`
}

// Intents runs dialog intents against resumes.
type Intents struct {
	svc      *ResumeService
	sessions *Sessions
	importer Importer
}

func NewIntents(svc *ResumeService, sessions *Sessions, imp Importer) *Intents {
	return &Intents{svc: svc, sessions: sessions, importer: imp}
}

// Run dispatches in for userID on the resume resumeID.
func (x *Intents) Run(ctx context.Context, userID, resumeID uuid.UUID, in dialog.Intent) (Outcome, error) {
	h := NewIntentHandler(ctx, x, userID, resumeID)
	handled, err := dialog.Dispatch(in, h)
	if !handled {
		return Outcome{}, ErrNoIntent
	}
	result := h.outcome.Result
	if err != nil {
		result = "error"
	}
	metrics.Intents.WithLabelValues(string(in.Type()), result).Inc()
	if err != nil {
		return Outcome{}, err
	}
	return h.outcome, nil
}

// IntentHandler performs one intent. Item and custom section intents edit
// the resume's open session; document intents go through the resume
// service.
type IntentHandler struct {
	ctx      context.Context
	deps     *Intents
	userID   uuid.UUID
	resumeID uuid.UUID
	outcome  Outcome
}

var _ dialog.Handler = (*IntentHandler)(nil)

func NewIntentHandler(ctx context.Context, deps *Intents, userID, resumeID uuid.UUID) *IntentHandler {
	return &IntentHandler{ctx: ctx, deps: deps, userID: userID, resumeID: resumeID}
}

func (h *IntentHandler) Outcome() Outcome { return h.outcome }

func (h *IntentHandler) CreateResume(in dialog.CreateResume) error {
	res, err := h.deps.svc.Create(h.ctx, h.userID, CreateInput{
		Name: in.Name, Slug: in.Slug, Tags: in.Tags, WithSampleData: in.WithSampleData,
	})
	if err != nil {
		return err
	}
	h.done(in, crud.Applied, 0, res.ID)
	return nil
}

func (h *IntentHandler) UpdateResume(in dialog.UpdateResume) error {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return fmt.Errorf("%w: resume id", ErrInvalidInput)
	}
	tags := in.Tags
	res, err := h.deps.svc.Update(h.ctx, h.userID, id, UpdateInput{Name: &in.Name, Slug: &in.Slug, Tags: &tags})
	if err != nil {
		return err
	}
	h.done(in, crud.Applied, 0, res.ID)
	return nil
}

func (h *IntentHandler) DuplicateResume(in dialog.DuplicateResume) error {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return fmt.Errorf("%w: resume id", ErrInvalidInput)
	}
	res, err := h.deps.svc.Duplicate(h.ctx, h.userID, id, DuplicateInput{Name: in.Name, Slug: in.Slug, Tags: in.Tags})
	if err != nil {
		return err
	}
	h.done(in, crud.Applied, 0, res.ID)
	return nil
}

func (h *IntentHandler) ImportResume(in dialog.ImportResume) error {
	if h.deps.importer == nil {
		return fmt.Errorf("%w: import is not configured", importer.ErrUnsupportedFormat)
	}
	data, err := h.deps.importer.Import(h.ctx, importer.Source{Format: importer.Format(in.Format), Name: in.Name, Data: in.Data})
	if err != nil {
		return err
	}
	res, err := h.deps.svc.Import(h.ctx, h.userID, data)
	if err != nil {
		return err
	}
	h.done(in, crud.Applied, 0, res.ID)
	return nil
}

func (h *IntentHandler) TemplateGallery(in dialog.TemplateGallery) error {
	if in.Template == "" {
		return fmt.Errorf("%w: template is required", ErrInvalidInput)
	}
	return h.edit(in, func(d *model.ResumeData) (crud.Result, error) {
		d.Metadata.Template = in.Template
		return crud.Applied, nil
	})
}

func (h *IntentHandler) CreateItem(in dialog.CreateItem) error {
	it := in.Item
	if it == nil {
		fresh, err := model.NewItem(in.Kind)
		if err != nil {
			return err
		}
		it = fresh
	}
	if it.ItemID() == "" {
		model.SetItemID(it, ident.NewID())
	}
	target := crud.Target{Kind: in.Kind, CustomSectionID: in.CustomSectionID}
	return h.edit(in, func(d *model.ResumeData) (crud.Result, error) {
		return crud.Create(d, target, it)
	})
}

func (h *IntentHandler) UpdateItem(in dialog.UpdateItem) error {
	target := crud.Target{Kind: in.Kind, CustomSectionID: in.CustomSectionID}
	return h.edit(in, func(d *model.ResumeData) (crud.Result, error) {
		return crud.Update(d, target, in.Item)
	})
}

func (h *IntentHandler) CreateCustomSection(in dialog.CreateCustomSection) error {
	cs := in.Section
	if cs == nil {
		return fmt.Errorf("%w: section is required", ErrInvalidInput)
	}
	if cs.ID == "" {
		cs.ID = ident.NewID()
	}
	return h.edit(in, func(d *model.ResumeData) (crud.Result, error) {
		if err := crud.CreateSection(d, cs); err != nil {
			return crud.NotFound, err
		}
		return crud.Applied, nil
	})
}

func (h *IntentHandler) UpdateCustomSection(in dialog.UpdateCustomSection) error {
	return h.edit(in, func(d *model.ResumeData) (crud.Result, error) {
		return crud.UpdateSection(d, in.Section)
	})
}

// edit applies fn to the open session. A NotFound result publishes
// nothing.
func (h *IntentHandler) edit(in dialog.Intent, fn DraftOp) error {
	sess, err := h.deps.sessions.Open(h.ctx, h.userID, h.resumeID)
	if err != nil {
		return err
	}
	snap, result, err := applyOp(sess, fn)
	if err != nil {
		return err
	}
	h.done(in, result, snap.Version, h.resumeID)
	return nil
}

func (h *IntentHandler) done(in dialog.Intent, r crud.Result, version uint64, id uuid.UUID) {
	h.outcome = Outcome{Intent: in.Type(), Result: r.String(), Version: version, ResumeID: id.String()}
}
