package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gallery-backend/pkg/jwt"
)

var (
	ErrNoSession          = errors.New("not logged in")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Session is a logged in identity as returned by the provider's token
// endpoint, plus the identity fields read from the access token.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
}

// Expired reports whether the access token is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// tokenResponse is the GoTrue /token answer.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

// Provider logs in against a GoTrue compatible identity service
// (Netlify Identity exposes one at <site>/.netlify/identity).
type Provider struct {
	baseURL    string
	httpClient *http.Client
	store      Store
	now        func() time.Time
}

type Option func(*Provider)

func WithHTTPClient(hc *http.Client) Option {
	return func(p *Provider) { p.httpClient = hc }
}

func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func NewProvider(baseURL string, store Store, opts ...Option) *Provider {
	p := &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      store,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Current restores the persisted session. An expired session is discarded
// and reported as ErrNoSession.
func (p *Provider) Current() (*Session, error) {
	s, err := p.store.Load()
	if err != nil {
		return nil, err
	}
	if s.Expired(p.now()) {
		_ = p.store.Clear()
		return nil, ErrNoSession
	}
	return s, nil
}

// Login exchanges email and password for a session and persists it.
func (p *Provider) Login(ctx context.Context, email, password string) (*Session, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity login: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("identity login: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, loginError(resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	claims, err := jwt.Inspect(tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}

	s := &Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		UserID:       claims.Subject,
		Email:        claims.Email,
	}
	switch {
	case claims.ExpiresAt != nil:
		s.ExpiresAt = claims.ExpiresAt.Time
	case tok.ExpiresIn > 0:
		s.ExpiresAt = p.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	if s.Email == "" {
		s.Email = email
	}

	if err := p.store.Save(s); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return s, nil
}

// Logout forgets the local session and tells the provider, best effort.
func (p *Provider) Logout(ctx context.Context) error {
	s, err := p.store.Load()
	if err == nil && s.AccessToken != "" {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/logout", nil)
		if reqErr == nil {
			req.Header.Set("Authorization", "Bearer "+s.AccessToken)
			if resp, doErr := p.httpClient.Do(req); doErr == nil {
				resp.Body.Close()
			}
		}
	}
	return p.store.Clear()
}

func loginError(status int, body []byte) error {
	var e errorResponse
	_ = json.Unmarshal(body, &e)

	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		if e.ErrorDescription != "" {
			return fmt.Errorf("%w: %s", ErrInvalidCredentials, e.ErrorDescription)
		}
		return ErrInvalidCredentials
	}

	msg := e.ErrorDescription
	if msg == "" {
		msg = e.Msg
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("identity login failed (%d): %s", status, msg)
}
