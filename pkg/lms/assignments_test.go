package lms

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/assert/v2"

	"courseload/internal/model"
)

func TestGetUpcomingAssignmentsPartialFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/courses":
			assert.Equal(t, "active", r.URL.Query().Get("enrollment_state"))
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{"id": 1, "name": "BIO 110"},
				{"id": 2, "name": "CHEM 201"},
				{"id": 3, "name": "HIST 310"},
			})
		case "/api/v1/courses/1/assignments":
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{"id": 11, "name": "Lab Report", "due_at": "2026-09-10T23:59:00Z"},
			})
		case "/api/v1/courses/2/assignments":
			http.Error(w, "course unpublished", http.StatusForbidden)
		case "/api/v1/courses/3/assignments":
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{"id": 31, "name": "Reading Response", "due_at": "2026-09-08T23:59:00Z"},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	items, err := client.GetUpcomingAssignments()

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(items))

	// Course 2 is skipped; the rest is sorted by due date.
	assert.Equal(t, "31", items[0].ID)
	assert.Equal(t, "HIST 310", items[0].CourseName)
	assert.Equal(t, "11", items[1].ID)
	assert.Equal(t, "BIO 110", items[1].CourseName)
}

func TestGetUpcomingAssignmentsCourseListFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server error", http.StatusInternalServerError)
	}))

	_, err := client.GetUpcomingAssignments()

	assert.NotEqual(t, nil, err)
}

func TestGetUpcomingAssignmentsMapsFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/courses" {
			json.NewEncoder(w).Encode([]map[string]interface{}{{"id": 4, "name": "ENGL 101"}})
			return
		}
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id":               41,
				"name":             "Persuasive Essay",
				"due_at":           "2026-09-15T23:59:00Z",
				"points_possible":  50,
				"submission_types": []string{"online_upload"},
				"description":      "<p>Write an essay.</p>",
				"html_url":         "https://canvas.example.edu/courses/4/assignments/41",
			},
		})
	}))

	items, err := client.GetUpcomingAssignments()

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(items))

	item := items[0]
	assert.Equal(t, "41", item.ID)
	assert.Equal(t, model.CategoryEssay, item.Category)
	assert.Equal(t, "ENGL 101", item.CourseName)
	assert.Equal(t, int64(4), item.CourseID)
	assert.Equal(t, 50.0, *item.PointsPossible)
	assert.Equal(t, []string{"online_upload"}, item.SubmissionTypes)
}

func TestSortByDueDateUndatedLast(t *testing.T) {
	items := []model.WorkItem{
		{ID: "a", DueAt: ""},
		{ID: "b", DueAt: "2026-09-10T00:00:00Z"},
		{ID: "c", DueAt: "not-a-date"},
		{ID: "d", DueAt: "2026-09-01T00:00:00Z"},
	}

	sortByDueDate(items)

	assert.Equal(t, "d", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	// Undated and unparseable items keep their relative order at the end.
	assert.Equal(t, "a", items[2].ID)
	assert.Equal(t, "c", items[3].ID)
}

func TestSortByDueDateDeterministic(t *testing.T) {
	build := func() []model.WorkItem {
		var items []model.WorkItem
		for i := 0; i < 5; i++ {
			items = append(items, model.WorkItem{ID: fmt.Sprintf("u%d", i)})
		}
		items = append(items, model.WorkItem{ID: "dated", DueAt: "2026-09-01T00:00:00Z"})
		return items
	}

	first := build()
	second := build()
	sortByDueDate(first)
	sortByDueDate(second)

	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
	assert.Equal(t, "dated", first[0].ID)
}
