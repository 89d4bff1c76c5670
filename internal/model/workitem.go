package model

import "time"

const (
	CategoryQuiz       = "quiz"
	CategoryDiscussion = "discussion"
	CategoryEssay      = "essay"
	CategoryProject    = "project"
	CategoryExam       = "exam"
	CategoryReading    = "reading"
	CategoryAssignment = "assignment"
	CategoryOther      = "other"
)

const (
	MethodAI        = "ai"
	MethodHeuristic = "heuristic"
)

// WorkItem is the canonical representation of one piece of coursework,
// independent of which LMS endpoint produced it.
type WorkItem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Type            string   `json:"type"`
	Category        string   `json:"category"`
	CourseName      string   `json:"course_name"`
	CourseID        int64    `json:"course_id"`
	DueAt           string   `json:"due_at"`
	PointsPossible  *float64 `json:"points_possible,omitempty"`
	SubmissionTypes []string `json:"submission_types"`
	Description     string   `json:"description,omitempty"`
	URL             string   `json:"url"`
	Completed       bool     `json:"completed"`
}

type EstimateResult struct {
	EstimatedMinutes int       `json:"estimated_minutes"`
	Method           string    `json:"method"`
	Reasoning        string    `json:"reasoning,omitempty"`
	EstimatedAt      time.Time `json:"estimated_at"`
}

// EnrichedItem is a WorkItem plus its estimate. Built fresh on every
// estimation pass and replaced wholesale, never mutated in place.
type EnrichedItem struct {
	WorkItem
	EstimateResult
}

type Snapshot struct {
	Items     []EnrichedItem `json:"items"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type Notification struct {
	DueSoonCount int       `json:"due_soon_count"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}
