package usecase

import (
	"context"

	"github.com/google/uuid"

	"resume-builder/internal/crud"
	"resume-builder/internal/editor"
	"resume-builder/internal/model"
)

// DraftOp is an edit outside the intent table: removing, moving or hiding
// items, and removing custom sections.
type DraftOp func(d *model.ResumeData) (crud.Result, error)

func RemoveItem(t crud.Target, id string) DraftOp {
	return func(d *model.ResumeData) (crud.Result, error) {
		return crud.Remove(d, t, id), nil
	}
}

func MoveItem(t crud.Target, id string, to int) DraftOp {
	return func(d *model.ResumeData) (crud.Result, error) {
		return crud.Move(d, t, id, to)
	}
}

func SetItemHidden(t crud.Target, id string, hidden bool) DraftOp {
	return func(d *model.ResumeData) (crud.Result, error) {
		return crud.SetHidden(d, t, id, hidden), nil
	}
}

func RemoveCustomSection(id string) DraftOp {
	return func(d *model.ResumeData) (crud.Result, error) {
		return crud.RemoveSection(d, id), nil
	}
}

// Edit runs op on the open session of a resume. A NotFound result leaves
// the draft and its version unchanged.
func (x *Intents) Edit(ctx context.Context, userID, resumeID uuid.UUID, op DraftOp) (Outcome, error) {
	sess, err := x.sessions.Open(ctx, userID, resumeID)
	if err != nil {
		return Outcome{}, err
	}
	snap, result, err := applyOp(sess, op)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Result: result.String(), Version: snap.Version, ResumeID: resumeID.String()}, nil
}

func applyOp(sess *Session, op DraftOp) (editor.Snapshot, crud.Result, error) {
	result := crud.NotFound
	snap, _, err := sess.Store.Edit(func(d *model.ResumeData) (bool, error) {
		r, err := op(d)
		result = r
		return r == crud.Applied, err
	})
	return snap, result, err
}
