// ============================================
// FILE: internal/models/project_model.go
// ============================================
package models

// Request models
type TeamRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type CreateProjectRequest struct {
	Name     string      `json:"name" binding:"required"`
	Status   string      `json:"status" binding:"required"`
	Deadline string      `json:"deadline" binding:"required"`
	Progress int         `json:"progress"`
	Priority string      `json:"priority" binding:"required"`
	Category string      `json:"category" binding:"required"`
	Team     TeamRequest `json:"team"`
}

// Response models
type TeamResponse struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type ProjectResponse struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Status   string       `json:"status"`
	Deadline string       `json:"deadline"`
	Progress int          `json:"progress"`
	Priority string       `json:"priority"`
	Category string       `json:"category"`
	Team     TeamResponse `json:"team"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
	Query    QueryResponse     `json:"query"`
}

// QueryResponse echoes the selectors a view was derived with.
type QueryResponse struct {
	Search    string `json:"search"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
	Category  string `json:"category"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type StatsResponse struct {
	Total           int    `json:"total"`
	Completed       int    `json:"completed"`
	Ongoing         int    `json:"ongoing"`
	Pending         int    `json:"pending"`
	TeamMembers     int    `json:"team_members"`
	AverageProgress string `json:"average_progress"`
}
