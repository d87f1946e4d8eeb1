package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/models"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/seed"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/service"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/web"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.NewRepositories(nil, time.Minute)
	require.NoError(t, seed.SeedData(context.Background(), repos))

	n := 0
	services := service.NewServices(&service.ServiceDeps{
		Repos:    repos,
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC) },
		NewSessionID: func() string {
			n++
			return fmt.Sprintf("form-%d", n)
		},
	})

	locale, _, err := web.NewLocale("ro-RO")
	require.NoError(t, err)
	renderer, err := web.NewRenderer(locale)
	require.NoError(t, err)

	h := NewHandlers(services, renderer)

	r := gin.New()
	r.GET("/", h.Dashboard.Show)
	api := r.Group("/api")
	api.GET("/options", h.Option.List)
	api.GET("/projects", h.Project.List)
	api.POST("/projects", h.Project.Create)
	api.GET("/projects/stats", h.Project.Stats)
	api.POST("/forms", h.Form.Create)
	api.GET("/forms/:id", h.Form.Get)
	api.PATCH("/forms/:id", h.Form.Update)
	api.DELETE("/forms/:id", h.Form.Discard)
	api.POST("/forms/:id/open", h.Form.Open)
	api.PUT("/forms/:id/scratch", h.Form.SetScratch)
	api.POST("/forms/:id/keys", h.Form.PressKey)
	api.DELETE("/forms/:id/members/:index", h.Form.RemoveMember)
	api.POST("/forms/:id/submit", h.Form.Submit)
	api.POST("/forms/:id/cancel", h.Form.Cancel)
	return r
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func projectIDs(list models.ProjectListResponse) []int64 {
	ids := make([]int64, len(list.Projects))
	for i, p := range list.Projects {
		ids[i] = p.ID
	}
	return ids
}

func TestProjectHandler_List(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"default sort by deadline", "", []int64{3, 1, 2}},
		{"search team", "?search=mobile", []int64{2}},
		{"status filter", "?status=Ongoing", []int64{1}},
		{"all means no filter", "?status=all&priority=all&category=all", []int64{3, 1, 2}},
		{"progress descending", "?sort_by=progress&sort_order=desc", []int64{3, 1, 2}},
		{"name ascending", "?sort_by=name", []int64{2, 3, 1}},
		{"no match", "?search=zzz", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, "/api/projects"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)

			list := decode[models.ProjectListResponse](t, w)
			assert.Equal(t, tt.want, projectIDs(list))
			assert.Equal(t, len(tt.want), list.Total)
		})
	}
}

func TestProjectHandler_ListRejectsUnknownSelectors(t *testing.T) {
	r := setupRouter(t)

	for _, q := range []string{"?status=Done", "?sort_by=owner", "?sort_order=up"} {
		w := do(r, http.MethodGet, "/api/projects"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestProjectHandler_CreateAndStats(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/projects", models.CreateProjectRequest{
		Name:     "Portal Clienți",
		Status:   "Ongoing",
		Deadline: "2024-06-30",
		Progress: 40,
		Priority: "High",
		Category: "Frontend",
		Team:     models.TeamRequest{Name: "Echipa Design", Members: []string{"Maria P."}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.ProjectResponse](t, w)
	assert.Equal(t, int64(4), created.ID)
	assert.Equal(t, []string{"Maria P."}, created.Team.Members)

	w = do(r, http.MethodGet, "/api/projects/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.StatsResponse](t, w)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Ongoing)
	assert.Equal(t, 8, stats.TeamMembers)
	assert.Equal(t, "58.8", stats.AverageProgress)
}

func TestProjectHandler_CreateParsesEnumsIgnoringCase(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/projects", models.CreateProjectRequest{
		Name:     "Portal",
		Status:   "ongoing",
		Deadline: "2024-06-30",
		Priority: "HIGH",
		Category: "frontend",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.ProjectResponse](t, w)
	assert.Equal(t, "Ongoing", created.Status)
	assert.Equal(t, "High", created.Priority)
	assert.Equal(t, "Frontend", created.Category)

	w = do(r, http.MethodPost, "/api/projects", models.CreateProjectRequest{
		Name:     "Portal",
		Status:   "Archived",
		Deadline: "2024-06-30",
		Priority: "High",
		Category: "Frontend",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "unknown status")
}

func TestProjectHandler_CreateInvalid(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/projects", map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/projects", models.CreateProjectRequest{
		Name: "Portal", Status: "Ongoing", Deadline: "2024-06-30",
		Progress: 140, Priority: "High", Category: "Frontend",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/projects/stats", nil)
	assert.Equal(t, 3, decode[models.StatsResponse](t, w).Total)
}

func TestFormHandler_Flow(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/forms", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	form := decode[models.FormResponse](t, w)
	assert.Equal(t, "form-1", form.ID)
	assert.Equal(t, "open", form.State)
	assert.Equal(t, "2024-04-01", form.Draft.Deadline)
	assert.Equal(t, []string{}, form.Draft.Team.Members)

	name := "Portal Clienți"
	team := "Echipa Design"
	w = do(r, http.MethodPatch, "/api/forms/form-1", models.UpdateFormRequest{Name: &name, TeamName: &team})
	require.Equal(t, http.StatusOK, w.Code)

	for _, member := range []string{"Maria P.", "Alex D."} {
		w = do(r, http.MethodPut, "/api/forms/form-1/scratch", models.ScratchRequest{Text: member})
		require.Equal(t, http.StatusOK, w.Code)
		w = do(r, http.MethodPost, "/api/forms/form-1/keys", models.KeyRequest{Key: "Enter"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[models.KeyResponse](t, w).Handled)
	}

	w = do(r, http.MethodPost, "/api/forms/form-1/keys", models.KeyRequest{Key: "Tab"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[models.KeyResponse](t, w).Handled)

	w = do(r, http.MethodDelete, "/api/forms/form-1/members/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Alex D."}, decode[models.FormResponse](t, w).Draft.Team.Members)

	w = do(r, http.MethodPost, "/api/forms/form-1/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	submitted := decode[models.SubmitResponse](t, w)
	assert.Equal(t, int64(4), submitted.Project.ID)
	assert.Equal(t, "Portal Clienți", submitted.Project.Name)
	assert.Equal(t, "closed", submitted.Form.State)
	assert.Equal(t, "", submitted.Form.Draft.Name)

	w = do(r, http.MethodGet, "/api/projects?search=portal", nil)
	assert.Equal(t, []int64{4}, projectIDs(decode[models.ProjectListResponse](t, w)))
}

func TestFormHandler_Errors(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/api/forms/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Form not found", decode[map[string]string](t, w)["error"])

	do(r, http.MethodPost, "/api/forms", nil)

	w = do(r, http.MethodDelete, "/api/forms/form-1/members/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/api/forms/form-1/members/3", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	progress := 101
	w = do(r, http.MethodPatch, "/api/forms/form-1", models.UpdateFormRequest{Progress: &progress})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Empty name keeps the form open.
	w = do(r, http.MethodPost, "/api/forms/form-1/submit", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodGet, "/api/forms/form-1", nil)
	assert.Equal(t, "open", decode[models.FormResponse](t, w).State)

	w = do(r, http.MethodPost, "/api/forms/form-1/keys", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/forms/form-1/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "closed", decode[models.FormResponse](t, w).State)

	w = do(r, http.MethodPost, "/api/forms/form-1/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Form is closed", decode[map[string]string](t, w)["error"])

	w = do(r, http.MethodPost, "/api/forms/form-1/open", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "open", decode[models.FormResponse](t, w).State)

	w = do(r, http.MethodDelete, "/api/forms/form-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodDelete, "/api/forms/form-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOptionHandler_List(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/api/options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	opts := decode[models.OptionsResponse](t, w)
	assert.Equal(t, []string{"Ongoing", "Completed", "Pending"}, opts.Statuses)
	assert.Contains(t, opts.Categories, "Frontend")
	assert.Contains(t, opts.SortFields, "team")
	assert.Equal(t, []string{"asc", "desc"}, opts.SortOrders)
}

func TestDashboardHandler_Show(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/?status=Ongoing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, "Redesign Website")
	assert.Contains(t, body, "15.04.2024")
	assert.NotContains(t, body, "Integrare API")

	w = do(r, http.MethodGet, "/?sort_by=owner", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
