package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/internal/gallery"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headingColor = color.New(color.FgCyan, color.Bold)
	dimColor     = color.New(color.Faint)
)

// render writes the current view.
func render(w io.Writer, s gallery.State) {
	switch {
	case s.Loading:
		dimColor.Fprintln(w, "Loading...")
		return
	case s.View == gallery.ViewDetail && s.Selected != nil:
		renderDetail(w, *s.Selected)
	case s.View == gallery.ViewAdmin:
		renderAdmin(w, s.Authors)
	default:
		renderGallery(w, s.Authors)
	}
}

func renderGallery(w io.Writer, authors []model.Author) {
	headingColor.Fprintln(w, "Authors")
	if len(authors) == 0 {
		dimColor.Fprintln(w, "No authors yet.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Name", "Years", "Portrait"})
	table.SetAutoWrapText(false)
	for i, a := range authors {
		table.Append([]string{
			fmt.Sprint(i + 1),
			a.Name,
			lifespan(a),
			portraitLabel(a.ImageURL),
		})
	}
	table.Render()
}

func renderAdmin(w io.Writer, authors []model.Author) {
	headingColor.Fprintln(w, "Manage authors")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Name", "Born", "Died", "ID"})
	table.SetAutoWrapText(false)
	for i, a := range authors {
		table.Append([]string{
			fmt.Sprint(i + 1),
			a.Name,
			orDash(a.BirthDate),
			orDash(a.DeathDate),
			a.ID.String(),
		})
	}
	table.Render()
	dimColor.Fprintln(w, "new | edit N | rm N | admin to leave")
}

func renderDetail(w io.Writer, a model.Author) {
	headingColor.Fprintln(w, a.Name)
	if years := lifespan(a); years != "" {
		fmt.Fprintln(w, years)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.Biography)
	if a.ImageURL != nil && *a.ImageURL != "" {
		fmt.Fprintln(w)
		dimColor.Fprintf(w, "Portrait: %s\n", portraitLabel(a.ImageURL))
	}
	dimColor.Fprintln(w, "back to return")
}

// renderForm lists the form's current values.
func renderForm(w io.Writer, f gallery.Form) {
	title := "New author"
	if f.IsEditing {
		title = "Edit author"
	}
	headingColor.Fprintln(w, title)
	for _, field := range gallery.FormFields {
		value := f.Data.Get(field)
		if field == gallery.FieldImageURL {
			value = portraitLabel(&value)
		}
		fmt.Fprintf(w, "  %-10s %s\n", field+":", value)
	}
}

func renderNotice(w io.Writer, n *gallery.Notice) {
	if n == nil {
		return
	}
	switch n.Kind {
	case gallery.NoticeError:
		errorColor.Fprintf(w, "✗ %s\n", n.Message)
	default:
		successColor.Fprintf(w, "✓ %s\n", n.Message)
	}
}

// lifespan is "1845 - 1904", one side alone when the other is unknown, or "".
func lifespan(a model.Author) string {
	born, died := strings.TrimSpace(deref(a.BirthDate)), strings.TrimSpace(deref(a.DeathDate))
	switch {
	case born == "" && died == "":
		return ""
	case died == "":
		return "b. " + born
	case born == "":
		return "d. " + died
	}
	return born + " - " + died
}

// portraitLabel keeps inline images from flooding the terminal.
func portraitLabel(u *string) string {
	if u == nil || *u == "" {
		return ""
	}
	if strings.HasPrefix(*u, "data:") {
		mime, _, _ := strings.Cut(strings.TrimPrefix(*u, "data:"), ";")
		return fmt.Sprintf("inline %s (%d bytes)", mime, len(*u))
	}
	return *u
}

func orDash(s *string) string {
	if v := deref(s); v != "" {
		return v
	}
	return "-"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
