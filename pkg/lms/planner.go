package lms

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"courseload/internal/model"
)

type plannerItem struct {
	PlannableID   int64  `json:"plannable_id"`
	PlannableType string `json:"plannable_type"`
	Plannable     struct {
		Title          string   `json:"title"`
		DueAt          string   `json:"due_at"`
		PointsPossible *float64 `json:"points_possible"`
	} `json:"plannable"`
	ContextName     string `json:"context_name"`
	CourseID        int64  `json:"course_id"`
	HTMLURL         string `json:"html_url"`
	PlannerOverride *struct {
		MarkedComplete bool `json:"marked_complete"`
	} `json:"planner_override"`
}

type todoItem struct {
	Type       string `json:"type"`
	Assignment struct {
		ID              int64    `json:"id"`
		Name            string   `json:"name"`
		DueAt           string   `json:"due_at"`
		PointsPossible  *float64 `json:"points_possible"`
		SubmissionTypes []string `json:"submission_types"`
		Description     string   `json:"description"`
		HTMLURL         string   `json:"html_url"`
		CourseID        int64    `json:"course_id"`
	} `json:"assignment"`
	ContextName string `json:"context_name"`
	CourseID    int64  `json:"course_id"`
}

// GetTodoItems returns upcoming coursework inside the lookahead window. The
// richer planner endpoint is tried first; if that endpoint fails for any
// reason other than auth, the plainer todo endpoint is used instead.
func (c *Client) GetTodoItems(lookaheadDays int) ([]model.WorkItem, error) {
	if lookaheadDays <= 0 {
		lookaheadDays = model.DefaultLookaheadDays
	}

	start := time.Now()
	end := start.AddDate(0, 0, lookaheadDays)
	path := fmt.Sprintf("/planner/items?start_date=%s&end_date=%s&per_page=50",
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	var planner []plannerItem
	err := c.get(path, &planner)
	if err == nil {
		items := make([]model.WorkItem, 0, len(planner))
		for _, p := range planner {
			items = append(items, mapPlannerItem(p))
		}
		return items, nil
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) && upstream.Status == 401 {
		return nil, err
	}
	if errors.Is(err, ErrNotConfigured) {
		return nil, err
	}

	var todos []todoItem
	if err := c.get("/users/self/todo", &todos); err != nil {
		return nil, err
	}

	items := make([]model.WorkItem, 0, len(todos))
	for _, t := range todos {
		items = append(items, mapTodoItem(t))
	}
	return items, nil
}

func mapPlannerItem(p plannerItem) model.WorkItem {
	item := model.WorkItem{
		ID:             strconv.FormatInt(p.PlannableID, 10),
		Title:          p.Plannable.Title,
		Type:           p.PlannableType,
		Category:       model.ResolveCategory(p.Plannable.Title, p.PlannableType),
		CourseName:     p.ContextName,
		CourseID:       p.CourseID,
		DueAt:          p.Plannable.DueAt,
		PointsPossible: p.Plannable.PointsPossible,
		URL:            p.HTMLURL,
	}
	if p.PlannerOverride != nil {
		item.Completed = p.PlannerOverride.MarkedComplete
	}
	return item
}

// Todo items carry no completion marker, so they always map to incomplete.
func mapTodoItem(t todoItem) model.WorkItem {
	a := t.Assignment
	courseID := t.CourseID
	if courseID == 0 {
		courseID = a.CourseID
	}
	return model.WorkItem{
		ID:              strconv.FormatInt(a.ID, 10),
		Title:           a.Name,
		Type:            t.Type,
		Category:        model.ResolveCategory(a.Name, t.Type),
		CourseName:      t.ContextName,
		CourseID:        courseID,
		DueAt:           a.DueAt,
		PointsPossible:  a.PointsPossible,
		SubmissionTypes: a.SubmissionTypes,
		Description:     a.Description,
		URL:             a.HTMLURL,
		Completed:       false,
	}
}
