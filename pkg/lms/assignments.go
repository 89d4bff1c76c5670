package lms

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"courseload/internal/model"
)

type course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type assignment struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DueAt           string   `json:"due_at"`
	PointsPossible  *float64 `json:"points_possible"`
	SubmissionTypes []string `json:"submission_types"`
	Description     string   `json:"description"`
	HTMLURL         string   `json:"html_url"`
}

// GetUpcomingAssignments lists active courses and aggregates each course's
// upcoming assignments. A failed per-course fetch is logged and skipped, so
// the result may be partial. The result is sorted ascending by due date;
// items without a parseable due date sort last, in fetch order.
func (c *Client) GetUpcomingAssignments() ([]model.WorkItem, error) {
	var courses []course
	if err := c.get("/courses?enrollment_state=active&per_page=50", &courses); err != nil {
		return nil, err
	}

	var items []model.WorkItem
	for _, crs := range courses {
		path := fmt.Sprintf("/courses/%d/assignments?order_by=due_at&bucket=upcoming&per_page=50", crs.ID)

		var assignments []assignment
		if err := c.get(path, &assignments); err != nil {
			slog.Error("error fetching course assignments", "course_id", crs.ID, "course", crs.Name, "error", err)
			continue
		}

		for _, a := range assignments {
			items = append(items, mapAssignment(a, crs))
		}
	}

	sortByDueDate(items)
	return items, nil
}

func mapAssignment(a assignment, crs course) model.WorkItem {
	return model.WorkItem{
		ID:              strconv.FormatInt(a.ID, 10),
		Title:           a.Name,
		Type:            "assignment",
		Category:        model.ResolveCategory(a.Name, "assignment"),
		CourseName:      crs.Name,
		CourseID:        crs.ID,
		DueAt:           a.DueAt,
		PointsPossible:  a.PointsPossible,
		SubmissionTypes: a.SubmissionTypes,
		Description:     a.Description,
		URL:             a.HTMLURL,
	}
}

func sortByDueDate(items []model.WorkItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, okI := parseDue(items[i].DueAt)
		tj, okJ := parseDue(items[j].DueAt)
		if okI && okJ {
			return ti.Before(tj)
		}
		// Dated items come before undated ones; undated keep fetch order.
		return okI && !okJ
	})
}

func parseDue(due string) (time.Time, bool) {
	if due == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, due)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
