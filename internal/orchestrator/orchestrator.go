package orchestrator

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"courseload/internal/model"
)

// ErrSetupRequired signals missing LMS credentials. The UI shows this as
// "setup required"; it is never retried automatically.
var ErrSetupRequired = errors.New("setup required: lms base url or token missing")

const (
	freshnessWindow = 5 * time.Minute
	dueSoonWindow   = 24 * time.Hour
)

type Source interface {
	Configure(baseURL, token string)
	TestConnection() bool
	GetTodoItems(lookaheadDays int) ([]model.WorkItem, error)
	GetUpcomingAssignments() ([]model.WorkItem, error)
}

type Estimator interface {
	EstimateSingle(item model.WorkItem) model.EnrichedItem
	EstimateAll(items []model.WorkItem) []model.EnrichedItem
}

type SnapshotStore interface {
	Save(snapshot *model.Snapshot) error
	Latest() (*model.Snapshot, error)
	SaveNotification(n *model.Notification) error
}

type SettingsSource interface {
	LoadSettings() (*model.Settings, error)
}

// Orchestrator drives the pipeline: fetch items, estimate each one, persist
// the enriched set wholesale, and answer on-demand reads from the cache.
type Orchestrator struct {
	source    Source
	engine    Estimator
	snapshots SnapshotStore
	settings  SettingsSource
	now       func() time.Time
}

func New(source Source, engine Estimator, snapshots SnapshotStore, settings SettingsSource) *Orchestrator {
	return &Orchestrator{
		source:    source,
		engine:    engine,
		snapshots: snapshots,
		settings:  settings,
		now:       time.Now,
	}
}

// RefreshPass fetches, estimates, and persists a full snapshot. A total
// fetch failure returns the error without touching the prior cache.
func (o *Orchestrator) RefreshPass() (*model.Snapshot, error) {
	settings, err := o.settings.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	if settings.LMSBaseURL == "" || settings.LMSToken == "" {
		return nil, ErrSetupRequired
	}

	o.source.Configure(settings.LMSBaseURL, settings.LMSToken)

	items, err := o.source.GetTodoItems(settings.LookaheadDays)
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}

	enriched := o.engine.EstimateAll(items)

	snapshot := &model.Snapshot{
		Items:     enriched,
		UpdatedAt: o.now(),
	}
	if err := o.snapshots.Save(snapshot); err != nil {
		return snapshot, fmt.Errorf("saving snapshot: %w", err)
	}

	o.notifyDueSoon(snapshot, settings)

	slog.Info("refresh complete", "items", len(enriched))
	return snapshot, nil
}

// notifyDueSoon raises one aggregate notification counting incomplete items
// due inside the next 24 hours.
func (o *Orchestrator) notifyDueSoon(snapshot *model.Snapshot, settings *model.Settings) {
	if !settings.NotificationsEnabled {
		return
	}

	now := o.now()
	count := 0
	for _, item := range snapshot.Items {
		if item.Completed {
			continue
		}
		due, err := time.Parse(time.RFC3339, item.DueAt)
		if err != nil {
			continue
		}
		if due.After(now) && due.Sub(now) <= dueSoonWindow {
			count++
		}
	}

	if count == 0 {
		return
	}

	n := &model.Notification{
		DueSoonCount: count,
		Message:      fmt.Sprintf("%d assignments due in the next 24 hours", count),
		CreatedAt:    now,
	}
	if err := o.snapshots.SaveNotification(n); err != nil {
		slog.Error("error saving notification", "error", err)
		return
	}
	slog.Info("due-soon notification raised", "count", count)
}

// GetAssignments returns the cached snapshot when it is younger than five
// minutes, otherwise runs a full refresh pass first. A failed refresh falls
// back to whatever cache exists.
func (o *Orchestrator) GetAssignments() (*model.Snapshot, error) {
	cached, err := o.snapshots.Latest()
	if err != nil {
		slog.Error("error reading cached snapshot", "error", err)
	}

	if cached != nil && o.now().Sub(cached.UpdatedAt) < freshnessWindow {
		return cached, nil
	}

	fresh, err := o.RefreshPass()
	if err != nil {
		if cached != nil {
			slog.Warn("refresh failed, serving stale snapshot", "error", err)
			return cached, nil
		}
		return nil, err
	}
	return fresh, nil
}

func (o *Orchestrator) Cached() (*model.Snapshot, error) {
	return o.snapshots.Latest()
}

// UpcomingAssignments aggregates each active course's upcoming assignment
// list and estimates it. The result is served directly, not cached, since
// the course-by-course view is an on-demand drill-down.
func (o *Orchestrator) UpcomingAssignments() ([]model.EnrichedItem, error) {
	settings, err := o.settings.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	if settings.LMSBaseURL == "" || settings.LMSToken == "" {
		return nil, ErrSetupRequired
	}

	o.source.Configure(settings.LMSBaseURL, settings.LMSToken)

	items, err := o.source.GetUpcomingAssignments()
	if err != nil {
		return nil, fmt.Errorf("fetching assignments: %w", err)
	}

	return o.engine.EstimateAll(items), nil
}

// EstimateOne estimates an ad-hoc item without consulting or updating the
// cache. Used for page-injected badges.
func (o *Orchestrator) EstimateOne(item model.WorkItem) model.EnrichedItem {
	return o.engine.EstimateSingle(item)
}

func (o *Orchestrator) TestConnection() bool {
	settings, err := o.settings.LoadSettings()
	if err != nil {
		slog.Error("error loading settings", "error", err)
		return false
	}
	if settings.LMSBaseURL == "" || settings.LMSToken == "" {
		return false
	}
	o.source.Configure(settings.LMSBaseURL, settings.LMSToken)
	return o.source.TestConnection()
}
