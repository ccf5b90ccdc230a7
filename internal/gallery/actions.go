package gallery

import (
	"gallery-backend/internal/domains/author/model"
	"gallery-backend/pkg/identity"
)

// Action is an event Reduce understands.
type Action interface {
	action()
}

type (
	LoadStarted   struct{}
	AuthorsLoaded struct{ Authors []model.Author }
	LoadFailed    struct{ Err error }

	LoggedIn  struct{ Session *identity.Session }
	LoggedOut struct{}

	ToggleAdmin  struct{}
	ShowGallery  struct{}
	SelectAuthor struct{ Author model.Author }

	OpenCreate struct{}
	OpenEdit   struct{ Author model.Author }
	EditField  struct {
		Field Field
		Value string
	}
	ImageEncoded struct{ DataURI string }
	CloseForm    struct{}

	SubmitStarted   struct{}
	SubmitSucceeded struct{}
	SubmitFailed    struct{ Err error }

	Deleted struct{ ID string }

	Notify struct {
		Kind    NoticeKind
		Message string
	}
	DismissNotice struct{ Seq uint64 }
)

func (LoadStarted) action()     {}
func (AuthorsLoaded) action()   {}
func (LoadFailed) action()      {}
func (LoggedIn) action()        {}
func (LoggedOut) action()       {}
func (ToggleAdmin) action()     {}
func (ShowGallery) action()     {}
func (SelectAuthor) action()    {}
func (OpenCreate) action()      {}
func (OpenEdit) action()        {}
func (EditField) action()       {}
func (ImageEncoded) action()    {}
func (CloseForm) action()       {}
func (SubmitStarted) action()   {}
func (SubmitSucceeded) action() {}
func (SubmitFailed) action()    {}
func (Deleted) action()         {}
func (Notify) action()          {}
func (DismissNotice) action()   {}
