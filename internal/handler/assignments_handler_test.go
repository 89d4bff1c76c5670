package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"courseload/internal/model"
	"courseload/internal/orchestrator"
	"courseload/pkg/lms"
)

type fakePipeline struct {
	snapshot     *model.Snapshot
	err          error
	connected    bool
	refreshCalls int
}

func (f *fakePipeline) GetAssignments() (*model.Snapshot, error) {
	return f.snapshot, f.err
}

func (f *fakePipeline) RefreshPass() (*model.Snapshot, error) {
	f.refreshCalls++
	return f.snapshot, f.err
}

func (f *fakePipeline) Cached() (*model.Snapshot, error) {
	return f.snapshot, f.err
}

func (f *fakePipeline) UpcomingAssignments() ([]model.EnrichedItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.snapshot == nil {
		return []model.EnrichedItem{}, nil
	}
	return f.snapshot.Items, nil
}

func (f *fakePipeline) EstimateOne(item model.WorkItem) model.EnrichedItem {
	return model.EnrichedItem{
		WorkItem:       item,
		EstimateResult: model.EstimateResult{EstimatedMinutes: 45, Method: model.MethodHeuristic},
	}
}

func (f *fakePipeline) TestConnection() bool {
	return f.connected
}

type fakeNotifications struct {
	notification *model.Notification
	err          error
}

func (f *fakeNotifications) LatestNotification() (*model.Notification, error) {
	return f.notification, f.err
}

func newTestRouter(pipeline Pipeline, notifications NotificationStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAssignmentsHandler(pipeline, notifications)
	r.GET("/assignments", h.GetAssignments)
	r.POST("/assignments/refresh", h.Refresh)
	r.GET("/assignments/cached", h.GetCached)
	r.GET("/assignments/upcoming", h.GetUpcoming)
	r.GET("/connection/test", h.TestConnection)
	r.GET("/notifications/latest", h.GetLatestNotification)
	return r
}

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Items: []model.EnrichedItem{
			{
				WorkItem:       model.WorkItem{ID: "1", Title: "Quiz 1", Category: model.CategoryQuiz},
				EstimateResult: model.EstimateResult{EstimatedMinutes: 30, Method: model.MethodHeuristic, EstimatedAt: time.Now()},
			},
		},
		UpdatedAt: time.Now(),
	}
}

func TestGetAssignments(t *testing.T) {
	r := newTestRouter(&fakePipeline{snapshot: testSnapshot()}, &fakeNotifications{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res AssignmentsResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "Quiz 1", res.Items[0].Title)
	assert.Equal(t, 30, res.Items[0].EstimatedMinutes)
	assert.Equal(t, model.MethodHeuristic, res.Items[0].Method)
}

func TestGetAssignmentsSetupRequired(t *testing.T) {
	r := newTestRouter(&fakePipeline{err: orchestrator.ErrSetupRequired}, &fakeNotifications{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAssignmentsUpstreamError(t *testing.T) {
	upstream := &lms.UpstreamError{Status: 401, Body: "invalid token"}
	r := newTestRouter(&fakePipeline{err: upstream}, &fakeNotifications{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var res map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, float64(401), res["upstream_status"])
	assert.Equal(t, "invalid token", res["upstream_body"])
}

func TestRefreshForcesPass(t *testing.T) {
	pipeline := &fakePipeline{snapshot: testSnapshot()}
	r := newTestRouter(pipeline, &fakeNotifications{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments/refresh", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, pipeline.refreshCalls)
}

func TestGetUpcoming(t *testing.T) {
	r := newTestRouter(&fakePipeline{snapshot: testSnapshot()}, &fakeNotifications{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments/upcoming", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res UpcomingResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "Quiz 1", res.Items[0].Title)
}

func TestGetCachedEmpty(t *testing.T) {
	r := newTestRouter(&fakePipeline{}, &fakeNotifications{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments/cached", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCachedError(t *testing.T) {
	r := newTestRouter(&fakePipeline{err: errors.New("redis down")}, &fakeNotifications{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments/cached", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestConnectionEndpoint(t *testing.T) {
	r := newTestRouter(&fakePipeline{connected: true}, &fakeNotifications{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/connection/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]bool
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, true, res["connected"])
}

func TestLatestNotification(t *testing.T) {
	n := &model.Notification{DueSoonCount: 2, Message: "2 assignments due in the next 24 hours", CreatedAt: time.Now()}
	r := newTestRouter(&fakePipeline{}, &fakeNotifications{notification: n})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/notifications/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res NotificationResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, res.DueSoonCount)
}

func TestLatestNotificationEmpty(t *testing.T) {
	r := newTestRouter(&fakePipeline{}, &fakeNotifications{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/notifications/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
