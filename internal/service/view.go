package service

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

// Filter constrains one categorical field. The zero value matches anything.
type Filter[T comparable] struct {
	value T
	set   bool
}

func Any[T comparable]() Filter[T] { return Filter[T]{} }

func Exactly[T comparable](v T) Filter[T] { return Filter[T]{value: v, set: true} }

func (f Filter[T]) Matches(v T) bool { return !f.set || f.value == v }

// Value reports the constrained value, if any.
func (f Filter[T]) Value() (T, bool) { return f.value, f.set }

func (f Filter[T]) String() string {
	if !f.set {
		return types.FilterAll
	}
	return fmt.Sprint(f.value)
}

// Query is everything a derived project view depends on besides the store.
type Query struct {
	Search   string
	Status   Filter[types.Status]
	Priority Filter[types.Priority]
	Category Filter[types.Category]
	SortBy   types.SortField
	Order    types.SortOrder
}

func DefaultQuery() Query {
	return Query{SortBy: types.SortByDeadline, Order: types.SortAsc}
}

// Key identifies the query inside a cache namespace.
func (q Query) Key() string {
	return fmt.Sprintf("s=%q|st=%s|pr=%s|ca=%s|by=%s|o=%s",
		q.Search, q.Status, q.Priority, q.Category, q.SortBy, q.Order)
}

// QueryParams are the raw selector values as they arrive from a request.
type QueryParams struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	Priority  string `form:"priority"`
	Category  string `form:"category"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// ParseQuery validates raw selector values. Empty values and "all" mean no
// constraint; empty sort values fall back to deadline ascending.
func ParseQuery(p QueryParams) (Query, error) {
	q := DefaultQuery()
	q.Search = p.Search

	if isAll(p.Status) {
		q.Status = Any[types.Status]()
	} else if s, ok := types.ParseStatus(p.Status); ok {
		q.Status = Exactly(s)
	} else {
		return Query{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, p.Status)
	}

	if isAll(p.Priority) {
		q.Priority = Any[types.Priority]()
	} else if pr, ok := types.ParsePriority(p.Priority); ok {
		q.Priority = Exactly(pr)
	} else {
		return Query{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, p.Priority)
	}

	if isAll(p.Category) {
		q.Category = Any[types.Category]()
	} else if c, ok := types.ParseCategory(p.Category); ok {
		q.Category = Exactly(c)
	} else {
		return Query{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, p.Category)
	}

	if p.SortBy != "" {
		field, ok := types.ParseSortField(p.SortBy)
		if !ok {
			return Query{}, fmt.Errorf("%w: unknown sort field %q", ErrInvalidInput, p.SortBy)
		}
		q.SortBy = field
	}
	if p.SortOrder != "" {
		order, ok := types.ParseSortOrder(p.SortOrder)
		if !ok {
			return Query{}, fmt.Errorf("%w: unknown sort order %q", ErrInvalidInput, p.SortOrder)
		}
		q.Order = order
	}

	return q, nil
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, types.FilterAll)
}

// Derive returns the projects matching q, ordered by q. The input slice is
// never modified and equal sort keys keep their store order.
func Derive(projects []*repository.Project, q Query) []*repository.Project {
	fold := cases.Fold()
	needle := fold.String(q.Search)

	out := make([]*repository.Project, 0, len(projects))
	for _, p := range projects {
		if !q.Status.Matches(p.Status) ||
			!q.Priority.Matches(p.Priority) ||
			!q.Category.Matches(p.Category) {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(p.Name), needle) &&
			!strings.Contains(fold.String(p.Team.Name), needle) {
			continue
		}
		out = append(out, p)
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = types.SortByDeadline
	}
	desc := q.Order == types.SortDesc

	slices.SortStableFunc(out, func(a, b *repository.Project) int {
		c := compareBy(sortBy, a, b)
		if desc {
			return -c
		}
		return c
	})
	return out
}

func compareBy(field types.SortField, a, b *repository.Project) int {
	switch field {
	case types.SortByName:
		return cmp.Compare(a.Name, b.Name)
	case types.SortByStatus:
		return cmp.Compare(a.Status, b.Status)
	case types.SortByProgress:
		return cmp.Compare(a.Progress, b.Progress)
	case types.SortByPriority:
		return cmp.Compare(a.Priority, b.Priority)
	case types.SortByCategory:
		return cmp.Compare(a.Category, b.Category)
	case types.SortByTeam:
		return cmp.Compare(a.Team.Name, b.Team.Name)
	default:
		// ISO dates order correctly as strings
		return cmp.Compare(a.Deadline, b.Deadline)
	}
}
