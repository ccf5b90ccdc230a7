package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/internal/gallery"
)

const helpText = `Commands:
  list            show the gallery
  show N          open author N
  back            return to the gallery
  admin           toggle the admin view (signed in)
  new             add an author (signed in)
  edit N          edit author N (signed in)
  rm N            delete author N (signed in)
  reload          fetch the collection again
  login | logout
  help | quit`

// repl is the interactive front end over a gallery.Controller.
type repl struct {
	ctrl *gallery.Controller
	in   *bufio.Scanner
	out  io.Writer

	// readSecret reads a password without echo; nil falls back to a plain line.
	readSecret func() (string, error)

	mu         sync.Mutex
	shownOnSeq uint64
}

func newREPL(ctrl *gallery.Controller, in io.Reader, out io.Writer) *repl {
	r := &repl{ctrl: ctrl, in: bufio.NewScanner(in), out: out, readSecret: terminalSecretReader(in)}
	ctrl.Confirm = r.confirm
	ctrl.OnChange = r.onChange
	return r
}

// onChange prints each notice once, as it appears.
func (r *repl) onChange(s gallery.State) {
	if s.Notice == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.Notice.Seq == r.shownOnSeq {
		return
	}
	r.shownOnSeq = s.Notice.Seq
	renderNotice(r.out, s.Notice)
}

func (r *repl) prompt(label string) (string, bool) {
	fmt.Fprint(r.out, label)
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

// promptSecret is prompt without echo when a terminal is attached.
func (r *repl) promptSecret(label string) (string, bool) {
	if r.readSecret == nil {
		return r.prompt(label)
	}
	fmt.Fprint(r.out, label)
	secret, err := r.readSecret()
	fmt.Fprintln(r.out)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(secret), true
}

// terminalSecretReader returns a no-echo reader when in is an interactive
// terminal, and nil for pipes and files.
func terminalSecretReader(in io.Reader) func() (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return func() (string, error) {
		b, err := term.ReadPassword(int(f.Fd()))
		return string(b), err
	}
}

func (r *repl) confirm(question string) bool {
	answer, ok := r.prompt(question + " [y/N] ")
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// Run loads the collection and reads commands until quit or end of input.
func (r *repl) Run(ctx context.Context) error {
	if err := r.ctrl.Init(ctx); err != nil {
		errorColor.Fprintf(r.out, "✗ %v\n", err)
	}
	render(r.out, r.ctrl.State())

	for {
		line, ok := r.prompt(r.promptLabel())
		if !ok {
			return r.in.Err()
		}
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		if err := r.exec(ctx, cmd, strings.TrimSpace(arg)); err != nil {
			errorColor.Fprintf(r.out, "✗ %v\n", err)
		}
	}
}

func (r *repl) promptLabel() string {
	s := r.ctrl.State()
	if s.SignedIn() {
		who := s.Session.Email
		if who == "" {
			who = s.Session.UserID
		}
		return fmt.Sprintf("gallery[%s]> ", who)
	}
	return "gallery> "
}

func (r *repl) exec(ctx context.Context, cmd, arg string) error {
	switch cmd {
	case "help", "?":
		fmt.Fprintln(r.out, helpText)
		return nil
	case "list", "ls":
		r.ctrl.Dispatch(gallery.ShowGallery{})
	case "back":
		r.ctrl.Dispatch(gallery.ShowGallery{})
	case "reload":
		if err := r.ctrl.Reload(ctx); err != nil {
			return err
		}
	case "show":
		a, err := r.pick(arg)
		if err != nil {
			return err
		}
		r.ctrl.Dispatch(gallery.SelectAuthor{Author: a})
	case "admin":
		if !r.ctrl.State().SignedIn() {
			return gallery.ErrNotSignedIn
		}
		r.ctrl.Dispatch(gallery.ToggleAdmin{})
	case "new":
		if !r.ctrl.State().SignedIn() {
			return gallery.ErrNotSignedIn
		}
		r.ctrl.Dispatch(gallery.OpenCreate{})
		return r.fillForm(ctx)
	case "edit":
		if !r.ctrl.State().SignedIn() {
			return gallery.ErrNotSignedIn
		}
		a, err := r.pick(arg)
		if err != nil {
			return err
		}
		r.ctrl.Dispatch(gallery.OpenEdit{Author: a})
		return r.fillForm(ctx)
	case "rm", "delete":
		a, err := r.pick(arg)
		if err != nil {
			return err
		}
		err = r.ctrl.Delete(ctx, a.ID.String())
		if errors.Is(err, gallery.ErrDeleteCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
	case "login":
		return r.login(ctx)
	case "logout":
		return r.ctrl.Logout(ctx)
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}

	render(r.out, r.ctrl.State())
	return nil
}

// pick resolves a 1-based position in the shown collection.
func (r *repl) pick(arg string) (model.Author, error) {
	authors := r.ctrl.State().Authors
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(authors) {
		return model.Author{}, fmt.Errorf("pick an author between 1 and %d", len(authors))
	}
	return authors[n-1], nil
}

func (r *repl) login(ctx context.Context) error {
	email, ok := r.prompt("Email: ")
	if !ok {
		return io.EOF
	}
	password, ok := r.promptSecret("Password: ")
	if !ok {
		return io.EOF
	}
	if err := r.ctrl.Login(ctx, email, password); err != nil {
		// already shown as a notice
		return nil
	}
	successColor.Fprintln(r.out, "Signed in")
	return nil
}

// fillForm asks for each input, then submits. Enter keeps a value, "-"
// clears it and "@path" attaches an image file as the portrait. A failed
// save leaves the input in place and offers another attempt.
func (r *repl) fillForm(ctx context.Context) error {
	renderForm(r.out, r.ctrl.State().Form)

	for {
		for _, field := range gallery.FormFields {
			current := r.ctrl.State().Form.Data.Get(field)
			shown := current
			if field == gallery.FieldImageURL {
				shown = portraitLabel(&current)
			}
			line, ok := r.prompt(fmt.Sprintf("%s [%s]: ", field, shown))
			if !ok {
				r.ctrl.Dispatch(gallery.CloseForm{})
				return io.EOF
			}
			switch {
			case line == "":
			case line == "-":
				r.ctrl.Dispatch(gallery.EditField{Field: field, Value: ""})
			case field == gallery.FieldImageURL && strings.HasPrefix(line, "@"):
				// the error is already shown as a notice; the field keeps its value
				_ = r.ctrl.AttachImage(strings.TrimPrefix(line, "@"))
			default:
				r.ctrl.Dispatch(gallery.EditField{Field: field, Value: line})
			}
		}

		if err := r.ctrl.Submit(ctx); err == nil {
			render(r.out, r.ctrl.State())
			return nil
		}
		if !r.confirm("Try again?") {
			r.ctrl.Dispatch(gallery.CloseForm{})
			render(r.out, r.ctrl.State())
			return nil
		}
	}
}
