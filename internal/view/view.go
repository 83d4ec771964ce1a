// Package view renders the mobile screens from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/unclebandit/gapgrabber-web/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Screen names.
const (
	PageSlots     = "slots.html"
	PageWorkflows = "workflows.html"
	PageWorkflow  = "workflow.html"
	PageMessages  = "messages.html"
	PageCancel    = "cancel.html"
	PageNotFound  = "notfound.html"
	PageError     = "error.html"
)

// Bottom navigation tabs.
const (
	TabSlots = "slots"
	TabGaps  = "gaps"
)

type Page struct {
	Title string
	Tab   string
	Flash *Flash
	Data  any
}

type Renderer struct {
	pages map[string]*template.Template
	Loc   *time.Location
	Now   func() time.Time
}

func New(loc *time.Location, now func() time.Time) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	r := &Renderer{pages: map[string]*template.Template{}, Loc: loc, Now: now}

	funcs := template.FuncMap{
		"slotRange":    func(s model.Slot) string { return SlotRange(s.StartTime, s.EndTime, r.Loc) },
		"clock":        func(t time.Time) string { return Clock(t, r.Loc) },
		"messageTime":  func(t time.Time) string { return MessageTime(t, r.Loc) },
		"timeAgo":      func(t *time.Time) string { return FormatTimeAgo(*t, r.Now()) },
		"timeUntil":    func(t *time.Time) string { return FormatTimeUntil(*t, r.Now()) },
		"isFuture":     func(t *time.Time) bool { return t != nil && t.After(r.Now()) },
		"blank":        func(s string) bool { return strings.TrimSpace(s) == "" },
		"statusLabel":  func(s any) string { return model.StatusLabel(fmt.Sprint(s)) },
		"statusClass":  func(s any) string { return StatusClass(fmt.Sprint(s)) },
		"discountHint": DiscountHint,
		"waitHint":     WaitHint,
	}

	for _, page := range []string{PageSlots, PageWorkflows, PageWorkflow, PageMessages, PageCancel, PageNotFound, PageError} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes the page into a buffer first so a template failure never
// produces a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, p Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %s", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// CancelForm is the cancel/launch screen's state.
type CancelForm struct {
	Slot           *model.Slot
	Reason         string
	Discount       int
	WaitingMinutes int
	Error          string
}

// Thread is the customer conversation screen's state.
type Thread struct {
	WorkflowKey string
	Messages    *model.CustomerMessages
}
