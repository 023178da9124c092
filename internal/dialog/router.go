package dialog

// Handler runs the flow behind each intent. Every intent type maps to
// exactly one method, so adding an intent without a handler method does
// not compile.
type Handler interface {
	CreateResume(in CreateResume) error
	UpdateResume(in UpdateResume) error
	DuplicateResume(in DuplicateResume) error
	ImportResume(in ImportResume) error
	TemplateGallery(in TemplateGallery) error
	CreateItem(in CreateItem) error
	UpdateItem(in UpdateItem) error
	CreateCustomSection(in CreateCustomSection) error
	UpdateCustomSection(in UpdateCustomSection) error
}

func (i CreateResume) dispatch(h Handler) error        { return h.CreateResume(i) }
func (i UpdateResume) dispatch(h Handler) error        { return h.UpdateResume(i) }
func (i DuplicateResume) dispatch(h Handler) error     { return h.DuplicateResume(i) }
func (i ImportResume) dispatch(h Handler) error        { return h.ImportResume(i) }
func (i TemplateGallery) dispatch(h Handler) error     { return h.TemplateGallery(i) }
func (i CreateItem) dispatch(h Handler) error          { return h.CreateItem(i) }
func (i UpdateItem) dispatch(h Handler) error          { return h.UpdateItem(i) }
func (i CreateCustomSection) dispatch(h Handler) error { return h.CreateCustomSection(i) }
func (i UpdateCustomSection) dispatch(h Handler) error { return h.UpdateCustomSection(i) }

// Dispatch runs the handler method for in. A nil intent means no dialog
// is open: nothing runs and handled is false.
func Dispatch(in Intent, h Handler) (handled bool, err error) {
	if in == nil {
		return false, nil
	}
	return true, in.dispatch(h)
}
