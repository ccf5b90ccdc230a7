package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gallery-backend/internal/gallery"
	"gallery-backend/pkg/client"
	"gallery-backend/pkg/identity"
	"gallery-backend/pkg/logger"
)

const defaultAPIURL = "http://localhost:8080/api/authors"

var errNoIdentity = errors.New("identity provider not configured, set --identity-url or IDENTITY_URL")

type options struct {
	apiURL      string
	identityURL string
	sessionFile string
	timeout     time.Duration
}

func main() {
	_ = godotenv.Load()
	logger.Init(getEnv("APP_ENV", "development"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "gallery",
		Short:        "Browse and manage the authors gallery",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := opts.controller()
			if err != nil {
				return err
			}
			return newREPL(ctrl, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api", getEnv("GALLERY_API_URL", defaultAPIURL), "authors endpoint")
	flags.StringVar(&opts.identityURL, "identity-url", os.Getenv("IDENTITY_URL"), "identity provider base URL")
	flags.StringVar(&opts.sessionFile, "session-file", "", "where the signed-in session is kept (default: user config dir)")
	flags.DurationVar(&opts.timeout, "timeout", 15*time.Second, "per-request timeout")

	root.AddCommand(newListCommand(opts), newLoginCommand(opts), newLogoutCommand(opts))
	return root
}

func newListCommand(opts *options) *cobra.Command {
	var admin bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the collection and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			authors, err := opts.api(nil).List(cmd.Context())
			if err != nil {
				return err
			}
			if admin {
				renderAdmin(cmd.OutOrStdout(), authors)
			} else {
				renderGallery(cmd.OutOrStdout(), authors)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "include dates and ids")
	return cmd
}

func newLoginCommand(opts *options) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := opts.provider()
			if err != nil {
				return err
			}
			r := &repl{
				in:         bufio.NewScanner(cmd.InOrStdin()),
				out:        cmd.OutOrStdout(),
				readSecret: terminalSecretReader(cmd.InOrStdin()),
			}
			if email == "" {
				var ok bool
				if email, ok = r.prompt("Email: "); !ok {
					return errors.New("no email given")
				}
			}
			password, ok := r.promptSecret("Password: ")
			if !ok {
				return errors.New("no password given")
			}
			s, err := provider.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", s.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newLogoutCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := opts.provider()
			if err != nil {
				return err
			}
			if err := provider.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func (o *options) httpClient() *http.Client {
	return &http.Client{Timeout: o.timeout}
}

func (o *options) api(token client.TokenSource) *client.Client {
	opts := []client.Option{client.WithHTTPClient(o.httpClient())}
	if token != nil {
		opts = append(opts, client.WithTokenSource(token))
	}
	return client.New(o.apiURL, opts...)
}

func (o *options) provider() (*identity.Provider, error) {
	if o.identityURL == "" {
		return nil, errNoIdentity
	}
	path := o.sessionFile
	if path == "" {
		p, err := identity.DefaultSessionPath()
		if err != nil {
			return nil, fmt.Errorf("session file: %w", err)
		}
		path = p
	}
	return identity.NewProvider(o.identityURL, identity.NewFileStore(path), identity.WithHTTPClient(o.httpClient())), nil
}

// controller wires the API client's bearer token to the controller's
// session, so writes carry whoever is signed in at the time.
func (o *options) controller() (*gallery.Controller, error) {
	var ids gallery.Identity = anonymous{}
	p, err := o.provider()
	switch {
	case err == nil:
		ids = p
	case !errors.Is(err, errNoIdentity):
		return nil, err
	}

	var ctrl *gallery.Controller
	api := o.api(func() string { return ctrl.AccessToken() })
	ctrl = gallery.NewController(api, ids)
	return ctrl, nil
}

// anonymous stands in when no identity provider is configured: the gallery
// is browsable but nobody can sign in.
type anonymous struct{}

func (anonymous) Current() (*identity.Session, error) { return nil, identity.ErrNoSession }

func (anonymous) Login(context.Context, string, string) (*identity.Session, error) {
	return nil, errNoIdentity
}

func (anonymous) Logout(context.Context) error { return nil }

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
