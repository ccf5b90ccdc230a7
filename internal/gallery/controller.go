package gallery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/pkg/identity"
)

// NoticeTTL is how long a notice stays before it is dismissed.
const NoticeTTL = 3 * time.Second

var (
	ErrNotSignedIn     = errors.New("sign in to manage authors")
	ErrFormClosed      = errors.New("no form is open")
	ErrSubmitInFlight  = errors.New("a save is already in progress")
	ErrDeleteCancelled = errors.New("delete cancelled")
)

// API is the authors endpoint as the client sees it; *client.Client.
type API interface {
	List(ctx context.Context) ([]model.Author, error)
	Create(ctx context.Context, payload interface{}) (*model.Author, error)
	Update(ctx context.Context, payload interface{}) (*model.Author, error)
	Delete(ctx context.Context, id string) error
}

// Identity is the login provider; *identity.Provider.
type Identity interface {
	Current() (*identity.Session, error)
	Login(ctx context.Context, email, password string) (*identity.Session, error)
	Logout(ctx context.Context) error
}

// Controller owns the State. Every change goes through Dispatch, so the
// state is only ever produced by Reduce.
type Controller struct {
	api      API
	identity Identity

	// Confirm is asked before a delete; nil refuses every delete.
	Confirm func(prompt string) bool
	// OnChange, when set, receives every new state.
	OnChange func(State)

	noticeTTL time.Duration

	mu    sync.Mutex
	state State
}

type ControllerOption func(*Controller)

// WithNoticeTTL overrides NoticeTTL.
func WithNoticeTTL(d time.Duration) ControllerOption {
	return func(c *Controller) { c.noticeTTL = d }
}

func NewController(api API, id Identity, opts ...ControllerOption) *Controller {
	c := &Controller{
		api:       api,
		identity:  id,
		noticeTTL: NoticeTTL,
		state:     InitialState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AccessToken is the bearer token of the current session, or "".
func (c *Controller) AccessToken() string {
	if s := c.State().Session; s != nil {
		return s.AccessToken
	}
	return ""
}

func (c *Controller) Dispatch(a Action) {
	c.apply(a)
}

func (c *Controller) apply(a Action) State {
	c.mu.Lock()
	c.state = Reduce(c.state, a)
	next := c.state
	c.mu.Unlock()

	if c.OnChange != nil {
		c.OnChange(next)
	}
	return next
}

// Init restores a previous session and loads the collection once. The
// state stays Loading until the list request resolves.
func (c *Controller) Init(ctx context.Context) error {
	c.Dispatch(LoadStarted{})

	var (
		session *identity.Session
		authors []model.Author
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.identity.Current()
		if err != nil && !errors.Is(err, identity.ErrNoSession) {
			// a broken session file only means starting signed out
			log.Warn().Err(err).Msg("could not restore session")
			return nil
		}
		session = s
		return nil
	})
	g.Go(func() error {
		list, err := c.api.List(gctx)
		if err != nil {
			return err
		}
		authors = list
		return nil
	})
	err := g.Wait()

	if session != nil {
		c.Dispatch(LoggedIn{Session: session})
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load authors")
		c.Dispatch(LoadFailed{Err: err})
		return err
	}
	c.Dispatch(AuthorsLoaded{Authors: authors})
	return nil
}

// Reload replaces the collection with a fresh list. Failures are logged and
// leave the current collection in place.
func (c *Controller) Reload(ctx context.Context) error {
	authors, err := c.api.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload authors")
		c.Dispatch(LoadFailed{Err: err})
		return err
	}
	c.Dispatch(AuthorsLoaded{Authors: authors})
	return nil
}

func (c *Controller) Login(ctx context.Context, email, password string) error {
	s, err := c.identity.Login(ctx, email, password)
	if err != nil {
		c.notify(NoticeError, err.Error())
		return err
	}
	c.Dispatch(LoggedIn{Session: s})
	return nil
}

func (c *Controller) Logout(ctx context.Context) error {
	err := c.identity.Logout(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("logout did not complete cleanly")
	}
	c.Dispatch(LoggedOut{})
	return err
}

// Submit saves the open form: create without id, or edit with the full
// record. On success the form closes and the collection is reloaded; on
// failure the form stays open with its input.
func (c *Controller) Submit(ctx context.Context) error {
	st := c.State()
	switch {
	case !st.SignedIn():
		return ErrNotSignedIn
	case !st.Form.Open:
		return ErrFormClosed
	case st.Form.IsSubmitting:
		return ErrSubmitInFlight
	}

	if err := st.Form.Data.Validate(); err != nil {
		c.notify(NoticeError, err.Error())
		return err
	}

	c.Dispatch(SubmitStarted{})

	var err error
	if st.Form.IsEditing {
		_, err = c.api.Update(ctx, st.Form.Data.UpdatePayload())
	} else {
		_, err = c.api.Create(ctx, st.Form.Data.CreatePayload())
	}
	if err != nil {
		log.Error().Err(err).Bool("editing", st.Form.IsEditing).Msg("save failed")
		c.Dispatch(SubmitFailed{Err: err})
		c.notify(NoticeError, err.Error())
		return err
	}

	c.Dispatch(SubmitSucceeded{})
	if st.Form.IsEditing {
		c.notify(NoticeSuccess, "Updated")
	} else {
		c.notify(NoticeSuccess, "Added")
	}
	_ = c.Reload(ctx)
	return nil
}

// Delete removes the author after Confirm agrees. The outcome of the request
// is not inspected: the success notice and reload follow regardless.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if !c.State().SignedIn() {
		return ErrNotSignedIn
	}
	if c.Confirm == nil || !c.Confirm("Delete this author?") {
		return ErrDeleteCancelled
	}

	if err := c.api.Delete(ctx, id); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("delete request reported an error")
	}

	c.Dispatch(Deleted{ID: id})
	c.notify(NoticeSuccess, "Deleted")
	_ = c.Reload(ctx)
	return nil
}

// AttachImage encodes a local file into the form's imageUrl.
func (c *Controller) AttachImage(path string) error {
	if !c.State().Form.Open {
		return ErrFormClosed
	}
	uri, err := EncodeImageFile(path)
	if err != nil {
		c.notify(NoticeError, err.Error())
		return err
	}
	c.Dispatch(ImageEncoded{DataURI: uri})
	return nil
}

// notify shows a notice and schedules its dismissal.
func (c *Controller) notify(kind NoticeKind, msg string) {
	seq := c.apply(Notify{Kind: kind, Message: msg}).Notice.Seq
	time.AfterFunc(c.noticeTTL, func() {
		c.Dispatch(DismissNotice{Seq: seq})
	})
}
