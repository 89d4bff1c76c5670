package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"courseload/internal/model"
	"courseload/internal/orchestrator"
	"courseload/pkg/lms"
)

type Pipeline interface {
	GetAssignments() (*model.Snapshot, error)
	RefreshPass() (*model.Snapshot, error)
	Cached() (*model.Snapshot, error)
	UpcomingAssignments() ([]model.EnrichedItem, error)
	EstimateOne(item model.WorkItem) model.EnrichedItem
	TestConnection() bool
}

type NotificationStore interface {
	LatestNotification() (*model.Notification, error)
}

type AssignmentsHandler struct {
	pipeline      Pipeline
	notifications NotificationStore
}

func NewAssignmentsHandler(pipeline Pipeline, notifications NotificationStore) *AssignmentsHandler {
	return &AssignmentsHandler{pipeline: pipeline, notifications: notifications}
}

// GetAssignments serves the cached snapshot when fresh, refreshing first
// when it is stale or absent.
func (h *AssignmentsHandler) GetAssignments(c *gin.Context) {
	snapshot, err := h.pipeline.GetAssignments()
	if err != nil {
		h.writeRefreshError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAssignmentsResponse(snapshot))
}

// Refresh forces a full fetch-and-estimate pass regardless of cache age.
func (h *AssignmentsHandler) Refresh(c *gin.Context) {
	snapshot, err := h.pipeline.RefreshPass()
	if err != nil {
		h.writeRefreshError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAssignmentsResponse(snapshot))
}

func (h *AssignmentsHandler) GetCached(c *gin.Context) {
	snapshot, err := h.pipeline.Cached()
	if err != nil {
		slog.Error("error reading cached snapshot", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cache error"})
		return
	}

	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cached assignments"})
		return
	}

	c.JSON(http.StatusOK, toAssignmentsResponse(snapshot))
}

// GetUpcoming serves the per-course upcoming-assignments aggregation. It
// hits the LMS on every call rather than going through the snapshot cache.
func (h *AssignmentsHandler) GetUpcoming(c *gin.Context) {
	items, err := h.pipeline.UpcomingAssignments()
	if err != nil {
		h.writeRefreshError(c, err)
		return
	}

	res := UpcomingResponse{Items: make([]ItemResponse, 0, len(items))}
	for _, item := range items {
		res.Items = append(res.Items, toItemResponse(item))
	}
	res.Total = len(res.Items)
	c.JSON(http.StatusOK, res)
}

func (h *AssignmentsHandler) TestConnection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"connected": h.pipeline.TestConnection()})
}

func (h *AssignmentsHandler) GetLatestNotification(c *gin.Context) {
	n, err := h.notifications.LatestNotification()
	if err != nil {
		slog.Error("error reading notification", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cache error"})
		return
	}

	if n == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No notification"})
		return
	}

	c.JSON(http.StatusOK, NotificationResponse{
		DueSoonCount: n.DueSoonCount,
		Message:      n.Message,
		CreatedAt:    n.CreatedAt.Format(time.RFC3339),
	})
}

func (h *AssignmentsHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeRefreshError maps the error taxonomy onto responses: missing setup
// is the client's to fix, an upstream status is relayed verbatim, anything
// else is a plain server error.
func (h *AssignmentsHandler) writeRefreshError(c *gin.Context, err error) {
	if errors.Is(err, orchestrator.ErrSetupRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Setup required"})
		return
	}

	var upstream *lms.UpstreamError
	if errors.As(err, &upstream) {
		slog.Error("upstream lms error", "status", upstream.Status, "body", upstream.Body)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":           "LMS error",
			"upstream_status": upstream.Status,
			"upstream_body":   upstream.Body,
		})
		return
	}

	slog.Error("refresh failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh failed"})
}
