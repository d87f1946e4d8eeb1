package types

import "strings"

// Status is the lifecycle state of a project.
type Status string

// Project Status values
const (
	StatusOngoing   Status = "Ongoing"
	StatusCompleted Status = "Completed"
	StatusPending   Status = "Pending"
)

// Priority of a project.
type Priority string

// Project Priority values
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Category groups projects by kind of work.
type Category string

// Project Category values
const (
	CategoryDesign      Category = "Design"
	CategoryDevelopment Category = "Development"
	CategoryBackend     Category = "Backend"
	CategoryFrontend    Category = "Frontend"
)

// SortField names the project field a view is ordered by.
type SortField string

// Sortable fields
const (
	SortByName     SortField = "name"
	SortByStatus   SortField = "status"
	SortByDeadline SortField = "deadline"
	SortByProgress SortField = "progress"
	SortByPriority SortField = "priority"
	SortByCategory SortField = "category"
	SortByTeam     SortField = "team"
)

// SortOrder is the direction of a view's ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FormState is the state of a project creation form.
type FormState string

const (
	FormClosed FormState = "closed"
	FormOpen   FormState = "open"
)

// FilterAll is the selector value that places no constraint on a field.
const FilterAll = "all"

// KeyEnter commits the team-member scratch field.
const KeyEnter = "Enter"

// Valid values for validation
var ValidStatuses = []Status{
	StatusOngoing, StatusCompleted, StatusPending,
}

var ValidPriorities = []Priority{
	PriorityHigh, PriorityMedium, PriorityLow,
}

var ValidCategories = []Category{
	CategoryDesign, CategoryDevelopment, CategoryBackend, CategoryFrontend,
}

var ValidSortFields = []SortField{
	SortByName, SortByStatus, SortByDeadline, SortByProgress,
	SortByPriority, SortByCategory, SortByTeam,
}

// TeamOptions is the fixed option list offered by the team name selector.
var TeamOptions = []string{
	"Echipa Design",
	"Echipa Mobile",
	"Echipa Backend",
	"Echipa Frontend",
}

// MemberOptions is the fixed option list offered by the member multi-select.
var MemberOptions = []string{
	"Maria P.",
	"Alex D.",
	"Ioan M.",
	"Elena R.",
	"Andrei S.",
	"Dan M.",
	"Ana P.",
}

// Helper functions for validation
func IsValidStatus(status Status) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPriority(priority Priority) bool {
	for _, p := range ValidPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

func IsValidCategory(category Category) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ParseStatus resolves a status ignoring case.
func ParseStatus(value string) (Status, bool) {
	for _, s := range ValidStatuses {
		if strings.EqualFold(string(s), value) {
			return s, true
		}
	}
	return "", false
}

// ParsePriority resolves a priority ignoring case.
func ParsePriority(value string) (Priority, bool) {
	for _, p := range ValidPriorities {
		if strings.EqualFold(string(p), value) {
			return p, true
		}
	}
	return "", false
}

// ParseCategory resolves a category ignoring case.
func ParseCategory(value string) (Category, bool) {
	for _, c := range ValidCategories {
		if strings.EqualFold(string(c), value) {
			return c, true
		}
	}
	return "", false
}

// ParseSortField resolves a sort field ignoring case.
func ParseSortField(value string) (SortField, bool) {
	for _, f := range ValidSortFields {
		if strings.EqualFold(string(f), value) {
			return f, true
		}
	}
	return "", false
}

// ParseSortOrder resolves a sort order ignoring case.
func ParseSortOrder(value string) (SortOrder, bool) {
	switch strings.ToLower(value) {
	case string(SortAsc):
		return SortAsc, true
	case string(SortDesc):
		return SortDesc, true
	}
	return "", false
}
