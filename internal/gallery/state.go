// Package gallery is the client side of the authors catalog: a single state
// value changed only by Reduce, and a Controller that runs the network side
// effects and feeds their outcome back in as actions.
package gallery

import (
	"gallery-backend/internal/domains/author/model"
	"gallery-backend/pkg/identity"
)

type View string

const (
	ViewGallery View = "gallery"
	ViewAdmin   View = "admin"
	ViewDetail  View = "detail"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient message. Seq identifies it so a late dismissal
// cannot clear a newer notice.
type Notice struct {
	Kind    NoticeKind
	Message string
	Seq     uint64
}

type Form struct {
	Open         bool
	IsEditing    bool
	IsSubmitting bool
	Data         FormData
}

type State struct {
	View     View
	Authors  []model.Author
	Loading  bool
	Selected *model.Author
	Session  *identity.Session
	Form     Form
	Notice   *Notice

	noticeSeq uint64
}

// InitialState is the gallery view, waiting for the first list.
func InitialState() State {
	return State{
		View:    ViewGallery,
		Authors: []model.Author{},
		Loading: true,
	}
}

// SignedIn reports whether admin actions are available.
func (s State) SignedIn() bool {
	return s.Session != nil
}

// Reduce returns the state after a. It has no side effects; actions that do
// not apply in the current state leave it unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoadStarted:
		s.Loading = true

	case AuthorsLoaded:
		s.Loading = false
		s.Authors = a.Authors
		if s.Authors == nil {
			s.Authors = []model.Author{}
		}

	case LoadFailed:
		// keep whatever collection is already shown
		s.Loading = false

	case LoggedIn:
		s.Session = a.Session

	case LoggedOut:
		s.Session = nil
		s.View = ViewGallery
		s.Selected = nil
		s.Form = Form{}

	case ToggleAdmin:
		if !s.SignedIn() {
			return s
		}
		if s.View == ViewAdmin {
			s.View = ViewGallery
		} else {
			s.View = ViewAdmin
			s.Selected = nil
		}

	case ShowGallery:
		s.View = ViewGallery
		s.Selected = nil

	case SelectAuthor:
		// detail is entered from the gallery only
		if s.View != ViewGallery {
			return s
		}
		author := a.Author
		s.Selected = &author
		s.View = ViewDetail

	case OpenCreate:
		if !s.SignedIn() || s.Form.IsSubmitting {
			return s
		}
		s.Form = Form{Open: true}

	case OpenEdit:
		if !s.SignedIn() || s.Form.IsSubmitting {
			return s
		}
		s.Form = Form{Open: true, IsEditing: true, Data: FormFromAuthor(a.Author)}

	case EditField:
		if !s.Form.Open || s.Form.IsSubmitting {
			return s
		}
		s.Form.Data = s.Form.Data.With(a.Field, a.Value)

	case ImageEncoded:
		if !s.Form.Open || s.Form.IsSubmitting {
			return s
		}
		s.Form.Data.ImageURL = a.DataURI

	case CloseForm:
		if s.Form.IsSubmitting {
			return s
		}
		s.Form = Form{}

	case SubmitStarted:
		if !s.Form.Open {
			return s
		}
		s.Form.IsSubmitting = true

	case SubmitSucceeded:
		s.Form = Form{}

	case SubmitFailed:
		// input stays as typed so the user can retry
		s.Form.IsSubmitting = false

	case Deleted:
		if s.Selected != nil && s.Selected.ID.String() == a.ID {
			s.Selected = nil
			if s.View == ViewDetail {
				s.View = ViewGallery
			}
		}

	case Notify:
		s.noticeSeq++
		s.Notice = &Notice{Kind: a.Kind, Message: a.Message, Seq: s.noticeSeq}

	case DismissNotice:
		if s.Notice != nil && s.Notice.Seq == a.Seq {
			s.Notice = nil
		}
	}

	return s
}
