package web

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

var (
	romanian = language.MustParse("ro-RO")
	english  = language.AmericanEnglish

	// The first entry is the fallback for unmatched locales.
	supportedTags = []language.Tag{romanian, english}
	matcher       = language.NewMatcher(supportedTags)

	dateLayouts = map[language.Tag]string{
		romanian: "02.01.2006",
		english:  "1/2/2006",
	}
)

// messages holds the dashboard labels keyed by message key, per locale.
var messages = map[language.Tag]map[string]string{
	romanian: {
		"page.title":           "Manager Proiecte",
		"page.new_project":     "Proiect Nou",
		"page.search":          "Caută proiecte sau echipe",
		"page.all":             "Toate",
		"page.apply":           "Aplică",
		"page.empty":           "Nu există proiecte care să corespundă filtrelor.",
		"page.sort_by":         "Sortează după",
		"page.asc":             "Crescător",
		"page.desc":            "Descrescător",
		"stats.total":          "Total Proiecte",
		"stats.completed":      "Finalizate",
		"stats.ongoing":        "În Desfășurare",
		"stats.pending":        "În Așteptare",
		"stats.members":        "Membri Echipă",
		"stats.average":        "Progres Mediu",
		"col.project":          "Proiect",
		"col.status":           "Status",
		"col.deadline":         "Deadline",
		"col.team":             "Echipă",
		"col.progress":         "Progres",
		"col.priority":         "Prioritate",
		"col.category":         "Categorie",
		"form.name":            "Nume Proiect",
		"form.team_name":       "Nume Echipă",
		"form.members":         "Membri Echipă",
		"form.member_hint":     "Apasă Enter pentru a adăuga un membru",
		"form.cancel":          "Anulează",
		"form.submit":          "Creează Proiect",
		"sort.name":            "Nume",
		"sort.status":          "Status",
		"sort.deadline":        "Deadline",
		"sort.progress":        "Progres",
		"sort.priority":        "Prioritate",
		"sort.category":        "Categorie",
		"sort.team":            "Echipă",
		"status.Ongoing":       "În desfășurare",
		"status.Completed":     "Finalizat",
		"status.Pending":       "În așteptare",
		"priority.High":        "Ridicată",
		"priority.Medium":      "Medie",
		"priority.Low":         "Scăzută",
		"category.Design":      "Design",
		"category.Development": "Dezvoltare",
		"category.Backend":     "Backend",
		"category.Frontend":    "Frontend",
	},
	english: {
		"page.title":           "Project Manager",
		"page.new_project":     "New Project",
		"page.search":          "Search projects or teams",
		"page.all":             "All",
		"page.apply":           "Apply",
		"page.empty":           "No projects match the current filters.",
		"page.sort_by":         "Sort by",
		"page.asc":             "Ascending",
		"page.desc":            "Descending",
		"stats.total":          "Total Projects",
		"stats.completed":      "Completed",
		"stats.ongoing":        "Ongoing",
		"stats.pending":        "Pending",
		"stats.members":        "Team Members",
		"stats.average":        "Average Progress",
		"col.project":          "Project",
		"col.status":           "Status",
		"col.deadline":         "Deadline",
		"col.team":             "Team",
		"col.progress":         "Progress",
		"col.priority":         "Priority",
		"col.category":         "Category",
		"form.name":            "Project Name",
		"form.team_name":       "Team Name",
		"form.members":         "Team Members",
		"form.member_hint":     "Press Enter to add a member",
		"form.cancel":          "Cancel",
		"form.submit":          "Create Project",
		"sort.name":            "Name",
		"sort.status":          "Status",
		"sort.deadline":        "Deadline",
		"sort.progress":        "Progress",
		"sort.priority":        "Priority",
		"sort.category":        "Category",
		"sort.team":            "Team",
		"status.Ongoing":       "Ongoing",
		"status.Completed":     "Completed",
		"status.Pending":       "Pending",
		"priority.High":        "High",
		"priority.Medium":      "Medium",
		"priority.Low":         "Low",
		"category.Design":      "Design",
		"category.Development": "Development",
		"category.Backend":     "Backend",
		"category.Frontend":    "Frontend",
	},
}

// Locale renders labels and dates for one display language.
type Locale struct {
	tag        language.Tag
	printer    *message.Printer
	dateLayout string
}

// NewLocale matches name against the supported locales. Unknown names fall
// back to Romanian with matched set to false.
func NewLocale(name string) (loc *Locale, matched bool, err error) {
	requested, err := language.Parse(strings.TrimSpace(name))
	if err != nil {
		return nil, false, fmt.Errorf("invalid locale %q: %w", name, err)
	}

	_, idx, confidence := matcher.Match(requested)
	tag := supportedTags[idx]

	builder := catalog.NewBuilder(catalog.Fallback(romanian))
	for t, msgs := range messages {
		for key, msg := range msgs {
			if err := builder.SetString(t, key, msg); err != nil {
				return nil, false, fmt.Errorf("register message %q: %w", key, err)
			}
		}
	}

	return &Locale{
		tag:        tag,
		printer:    message.NewPrinter(tag, message.Catalog(builder)),
		dateLayout: dateLayouts[tag],
	}, confidence != language.No, nil
}

func (l *Locale) Tag() language.Tag { return l.tag }

// T returns the label for key, or the key itself when none is registered.
func (l *Locale) T(key string) string {
	return l.printer.Sprintf(key)
}

func (l *Locale) Status(s types.Status) string       { return l.T("status." + string(s)) }
func (l *Locale) Priority(p types.Priority) string   { return l.T("priority." + string(p)) }
func (l *Locale) Category(c types.Category) string   { return l.T("category." + string(c)) }
func (l *Locale) SortField(f types.SortField) string { return l.T("sort." + string(f)) }

// Date formats an ISO calendar date. Values that do not parse are returned
// unchanged.
func (l *Locale) Date(iso string) string {
	d, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return iso
	}
	return d.Format(l.dateLayout)
}
