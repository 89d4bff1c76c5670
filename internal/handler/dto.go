package handler

import (
	"time"

	"courseload/internal/model"
)

type AssignmentsResponse struct {
	Items     []ItemResponse `json:"items"`
	Total     int            `json:"total"`
	UpdatedAt string         `json:"updated_at"`
}

type ItemResponse struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Category         string   `json:"category"`
	CourseName       string   `json:"course_name"`
	CourseID         int64    `json:"course_id"`
	DueAt            string   `json:"due_at"`
	PointsPossible   *float64 `json:"points_possible,omitempty"`
	SubmissionTypes  []string `json:"submission_types"`
	URL              string   `json:"url"`
	Completed        bool     `json:"completed"`
	EstimatedMinutes int      `json:"estimated_minutes"`
	Method           string   `json:"method"`
	Reasoning        string   `json:"reasoning,omitempty"`
	EstimatedAt      string   `json:"estimated_at"`
}

type UpcomingResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

type ItemRequest struct {
	ID              string   `json:"id"`
	Title           string   `json:"title" binding:"required"`
	Type            string   `json:"type"`
	Category        string   `json:"category"`
	CourseName      string   `json:"course_name"`
	CourseID        int64    `json:"course_id"`
	DueAt           string   `json:"due_at"`
	PointsPossible  *float64 `json:"points_possible"`
	SubmissionTypes []string `json:"submission_types"`
	Description     string   `json:"description"`
	URL             string   `json:"url"`
}

type NotificationResponse struct {
	DueSoonCount int    `json:"due_soon_count"`
	Message      string `json:"message"`
	CreatedAt    string `json:"created_at"`
}

func toItemResponse(item model.EnrichedItem) ItemResponse {
	return ItemResponse{
		ID:               item.ID,
		Title:            item.Title,
		Category:         item.Category,
		CourseName:       item.CourseName,
		CourseID:         item.CourseID,
		DueAt:            item.DueAt,
		PointsPossible:   item.PointsPossible,
		SubmissionTypes:  item.SubmissionTypes,
		URL:              item.URL,
		Completed:        item.Completed,
		EstimatedMinutes: item.EstimatedMinutes,
		Method:           item.Method,
		Reasoning:        item.Reasoning,
		EstimatedAt:      item.EstimatedAt.Format(time.RFC3339),
	}
}

func toAssignmentsResponse(snapshot *model.Snapshot) AssignmentsResponse {
	items := make([]ItemResponse, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, toItemResponse(item))
	}
	return AssignmentsResponse{
		Items:     items,
		Total:     len(items),
		UpdatedAt: snapshot.UpdatedAt.Format(time.RFC3339),
	}
}

func toWorkItem(req ItemRequest) model.WorkItem {
	return model.WorkItem{
		ID:              req.ID,
		Title:           req.Title,
		Type:            req.Type,
		Category:        req.Category,
		CourseName:      req.CourseName,
		CourseID:        req.CourseID,
		DueAt:           req.DueAt,
		PointsPossible:  req.PointsPossible,
		SubmissionTypes: req.SubmissionTypes,
		Description:     req.Description,
		URL:             req.URL,
	}
}
