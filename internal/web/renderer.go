// Package web renders the HTML dashboard.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/service"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// DashboardPage is everything one render of the dashboard needs.
type DashboardPage struct {
	Projects []*repository.Project
	Stats    *service.Stats
	Query    service.Query
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type row struct {
	ID            int64
	Name          string
	Status        string
	StatusColor   string
	Deadline      string
	TeamName      string
	Badges        []string
	Overflow      int
	Progress      int
	ProgressColor string
	Priority      string
	Category      string
}

type pageData struct {
	Lang       string
	Rows       []row
	Stats      *service.Stats
	Search     string
	Statuses   []option
	Priorities []option
	Categories []option
	SortFields []option
	SortOrders []option
	Teams      []string
	Members    []string
}

type Renderer struct {
	locale *Locale
	tmpl   *template.Template
}

func NewRenderer(locale *Locale) (*Renderer, error) {
	tmpl, err := template.New("dashboard.html").
		Funcs(template.FuncMap{"t": locale.T}).
		ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return &Renderer{locale: locale, tmpl: tmpl}, nil
}

// Render writes the dashboard for page to w.
func (r *Renderer) Render(w io.Writer, page DashboardPage) error {
	return r.tmpl.Execute(w, r.pageData(page))
}

func (r *Renderer) pageData(page DashboardPage) pageData {
	loc := r.locale
	data := pageData{
		Lang:    loc.Tag().String(),
		Rows:    make([]row, 0, len(page.Projects)),
		Stats:   page.Stats,
		Search:  page.Query.Search,
		Teams:   types.TeamOptions,
		Members: types.MemberOptions,
	}

	for _, p := range page.Projects {
		badges, overflow := MemberBadges(p.Team.Members)
		data.Rows = append(data.Rows, row{
			ID:            p.ID,
			Name:          p.Name,
			Status:        loc.Status(p.Status),
			StatusColor:   StatusColor(p.Status),
			Deadline:      loc.Date(p.Deadline),
			TeamName:      p.Team.Name,
			Badges:        badges,
			Overflow:      overflow,
			Progress:      p.Progress,
			ProgressColor: ProgressColor(p.Progress),
			Priority:      loc.Priority(p.Priority),
			Category:      loc.Category(p.Category),
		})
	}

	data.Statuses = filterOptions(loc, page.Query.Status, types.ValidStatuses, loc.Status)
	data.Priorities = filterOptions(loc, page.Query.Priority, types.ValidPriorities, loc.Priority)
	data.Categories = filterOptions(loc, page.Query.Category, types.ValidCategories, loc.Category)

	for _, f := range types.ValidSortFields {
		data.SortFields = append(data.SortFields, option{
			Value:    string(f),
			Label:    loc.SortField(f),
			Selected: f == page.Query.SortBy,
		})
	}
	data.SortOrders = []option{
		{Value: string(types.SortAsc), Label: loc.T("page.asc"), Selected: page.Query.Order != types.SortDesc},
		{Value: string(types.SortDesc), Label: loc.T("page.desc"), Selected: page.Query.Order == types.SortDesc},
	}
	return data
}

// filterOptions builds a select whose first entry is the unconstrained one.
func filterOptions[T ~string](loc *Locale, current service.Filter[T], values []T, label func(T) string) []option {
	selected, set := current.Value()
	out := []option{{Value: types.FilterAll, Label: loc.T("page.all"), Selected: !set}}
	for _, v := range values {
		out = append(out, option{
			Value:    string(v),
			Label:    label(v),
			Selected: set && v == selected,
		})
	}
	return out
}
