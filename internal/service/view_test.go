package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

func fixtureProjects() []*repository.Project {
	return []*repository.Project{
		{ID: 1, ProjectDraft: repository.ProjectDraft{
			Name: "Redesign Website", Status: types.StatusOngoing, Deadline: "2024-04-15", Progress: 65,
			Priority: types.PriorityHigh, Category: types.CategoryDesign,
			Team: repository.Team{Name: "Echipa Design", Members: []string{"Maria P.", "Alex D.", "Ioan M."}},
		}},
		{ID: 2, ProjectDraft: repository.ProjectDraft{
			Name: "Aplicație Mobilă", Status: types.StatusPending, Deadline: "2024-05-01", Progress: 30,
			Priority: types.PriorityMedium, Category: types.CategoryDevelopment,
			Team: repository.Team{Name: "Echipa Mobile", Members: []string{"Elena R.", "Andrei S."}},
		}},
		{ID: 3, ProjectDraft: repository.ProjectDraft{
			Name: "Integrare API", Status: types.StatusCompleted, Deadline: "2024-03-20", Progress: 100,
			Priority: types.PriorityLow, Category: types.CategoryBackend,
			Team: repository.Team{Name: "Echipa Backend", Members: []string{"Dan M.", "Ana P."}},
		}},
	}
}

func ids(projects []*repository.Project) []int64 {
	out := make([]int64, len(projects))
	for i, p := range projects {
		out[i] = p.ID
	}
	return out
}

func TestDerive_DefaultSortsByDeadlineAscending(t *testing.T) {
	got := Derive(fixtureProjects(), DefaultQuery())
	assert.Equal(t, []int64{3, 1, 2}, ids(got))
}

func TestDerive_Search(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []int64
	}{
		{"empty matches all", "", []int64{3, 1, 2}},
		{"case insensitive name", "api", []int64{3}},
		{"team name", "echipa mobile", []int64{2}},
		{"unicode case folding", "APLICAȚIE", []int64{2}},
		{"no match", "zzz", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := DefaultQuery()
			q.Search = tt.search
			assert.Equal(t, tt.want, ids(Derive(fixtureProjects(), q)))
		})
	}
}

func TestDerive_Filters(t *testing.T) {
	q := DefaultQuery()
	q.Status = Exactly(types.StatusPending)
	assert.Equal(t, []int64{2}, ids(Derive(fixtureProjects(), q)))

	q = DefaultQuery()
	q.Priority = Exactly(types.PriorityHigh)
	q.Category = Exactly(types.CategoryDesign)
	assert.Equal(t, []int64{1}, ids(Derive(fixtureProjects(), q)))

	q = DefaultQuery()
	q.Category = Exactly(types.CategoryFrontend)
	assert.Empty(t, Derive(fixtureProjects(), q))
}

func TestDerive_SortFields(t *testing.T) {
	tests := []struct {
		field types.SortField
		order types.SortOrder
		want  []int64
	}{
		{types.SortByName, types.SortAsc, []int64{2, 3, 1}},
		{types.SortByName, types.SortDesc, []int64{1, 3, 2}},
		{types.SortByProgress, types.SortAsc, []int64{2, 1, 3}},
		{types.SortByProgress, types.SortDesc, []int64{3, 1, 2}},
		{types.SortByDeadline, types.SortDesc, []int64{2, 1, 3}},
		{types.SortByStatus, types.SortAsc, []int64{3, 1, 2}},
		{types.SortByTeam, types.SortAsc, []int64{3, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"_"+string(tt.order), func(t *testing.T) {
			q := DefaultQuery()
			q.SortBy = tt.field
			q.Order = tt.order
			assert.Equal(t, tt.want, ids(Derive(fixtureProjects(), q)))
		})
	}
}

func TestDerive_StableForEqualKeys(t *testing.T) {
	projects := []*repository.Project{
		{ID: 1, ProjectDraft: repository.ProjectDraft{Name: "a", Progress: 50}},
		{ID: 2, ProjectDraft: repository.ProjectDraft{Name: "b", Progress: 10}},
		{ID: 3, ProjectDraft: repository.ProjectDraft{Name: "c", Progress: 50}},
		{ID: 4, ProjectDraft: repository.ProjectDraft{Name: "d", Progress: 50}},
	}

	q := DefaultQuery()
	q.SortBy = types.SortByProgress

	q.Order = types.SortAsc
	assert.Equal(t, []int64{2, 1, 3, 4}, ids(Derive(projects, q)))

	q.Order = types.SortDesc
	assert.Equal(t, []int64{1, 3, 4, 2}, ids(Derive(projects, q)))
}

func TestDerive_IsPure(t *testing.T) {
	projects := fixtureProjects()
	q := DefaultQuery()
	q.SortBy = types.SortByName

	first := Derive(projects, q)
	second := Derive(projects, q)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, []int64{1, 2, 3}, ids(projects), "input order must not change")

	first[0] = nil
	assert.NotNil(t, second[0])
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(QueryParams{})
	require.NoError(t, err)
	assert.Equal(t, DefaultQuery(), q)

	q, err = ParseQuery(QueryParams{Status: "all", Priority: "ALL", Category: "all"})
	require.NoError(t, err)
	_, set := q.Status.Value()
	assert.False(t, set)

	q, err = ParseQuery(QueryParams{
		Search:    "web",
		Status:    "ongoing",
		Priority:  "High",
		Category:  "Design",
		SortBy:    "progress",
		SortOrder: "desc",
	})
	require.NoError(t, err)
	status, set := q.Status.Value()
	assert.True(t, set)
	assert.Equal(t, types.StatusOngoing, status)
	assert.Equal(t, types.SortByProgress, q.SortBy)
	assert.Equal(t, types.SortDesc, q.Order)
	assert.Equal(t, "web", q.Search)

	invalid := []QueryParams{
		{Status: "Archived"},
		{Priority: "Urgent"},
		{Category: "Marketing"},
		{SortBy: "owner"},
		{SortOrder: "sideways"},
	}
	for _, p := range invalid {
		_, err := ParseQuery(p)
		assert.True(t, errors.Is(err, ErrInvalidInput), "%+v", p)
	}
}

func TestQueryKey_DistinguishesQueries(t *testing.T) {
	a := DefaultQuery()
	b := DefaultQuery()
	b.Status = Exactly(types.StatusOngoing)
	c := DefaultQuery()
	c.Order = types.SortDesc

	assert.Equal(t, a.Key(), DefaultQuery().Key())
	assert.NotEqual(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Contains(t, a.Key(), "st=all")
}
