// Package view renders the board UI. Pages and fragments are html/template
// definitions exposed as templ components so handlers can render them
// directly or patch them over datastar SSE.
package view

import (
	"embed"
	"html/template"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/msomdec/wish-tracker/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"next":      nextStatus,
	"nextLabel": nextLabel,
	"date":      formatDate,
}).ParseFS(templateFS, "templates/*.html"))

// Column is one workflow stage of the board.
type Column struct {
	Status domain.WishStatus
	Label  string
	Wishes []domain.Wish
}

// BoardView is everything the board page and fragment need.
type BoardView struct {
	UserName   string
	Board      *domain.Board
	Categories []domain.Category
	CategoryID *int64
	Flash      Flash
}

// Columns lists the board columns in workflow order.
func (v BoardView) Columns() []Column {
	cols := make([]Column, 0, len(domain.WishStatuses))
	for _, s := range domain.WishStatuses {
		col := Column{Status: s, Label: s.Label()}
		if v.Board != nil {
			col.Wishes = v.Board.Column(s)
		}
		cols = append(cols, col)
	}
	return cols
}

// Selected reports whether id is the active category filter.
func (v BoardView) Selected(id int64) bool {
	return v.CategoryID != nil && *v.CategoryID == id
}

// Query is the filter query string carried by board actions.
func (v BoardView) Query() string {
	if v.CategoryID == nil {
		return ""
	}
	return "?categoryId=" + strconv.FormatInt(*v.CategoryID, 10)
}

// Flash is a one-line status message shown above the board.
type Flash struct {
	Kind    string // "ok" or "error"
	Message string
}

// BoardPage renders the full board page.
func BoardPage(v BoardView) templ.Component {
	return templ.FromGoHTML(templates.Lookup("page"), v)
}

// BoardFragment renders the element with id "board".
func BoardFragment(v BoardView) templ.Component {
	return templ.FromGoHTML(templates.Lookup("board"), v)
}

// FlashFragment renders the element with id "flash".
func FlashFragment(f Flash) templ.Component {
	return templ.FromGoHTML(templates.Lookup("flash"), f)
}

func nextStatus(s domain.WishStatus) string {
	next, ok := s.Next()
	if !ok {
		return ""
	}
	return string(next)
}

func nextLabel(s domain.WishStatus) string {
	switch s {
	case domain.StatusWish:
		return "Start"
	case domain.StatusInProgress:
		return "Mark achieved"
	}
	return ""
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
