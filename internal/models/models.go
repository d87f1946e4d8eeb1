package models

import "time"

// ============================================
// Form DTOs
// ============================================

type UpdateFormRequest struct {
	Name     *string `json:"name,omitempty"`
	Status   *string `json:"status,omitempty"`
	Deadline *string `json:"deadline,omitempty"`
	Progress *int    `json:"progress,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Category *string `json:"category,omitempty"`
	TeamName *string `json:"team_name,omitempty"`
}

type ScratchRequest struct {
	Text string `json:"text"`
}

type KeyRequest struct {
	Key string `json:"key" binding:"required"`
}

type FormResponse struct {
	ID        string        `json:"id"`
	State     string        `json:"state"`
	Draft     DraftResponse `json:"draft"`
	Scratch   string        `json:"scratch"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type DraftResponse struct {
	Name     string       `json:"name"`
	Status   string       `json:"status"`
	Deadline string       `json:"deadline"`
	Progress int          `json:"progress"`
	Priority string       `json:"priority"`
	Category string       `json:"category"`
	Team     TeamResponse `json:"team"`
}

type KeyResponse struct {
	Handled bool         `json:"handled"`
	Form    FormResponse `json:"form"`
}

type SubmitResponse struct {
	Project ProjectResponse `json:"project"`
	Form    FormResponse    `json:"form"`
}

// ============================================
// Option DTOs
// ============================================

type OptionsResponse struct {
	Statuses   []string `json:"statuses"`
	Priorities []string `json:"priorities"`
	Categories []string `json:"categories"`
	Teams      []string `json:"teams"`
	Members    []string `json:"members"`
	SortFields []string `json:"sort_fields"`
	SortOrders []string `json:"sort_orders"`
}
