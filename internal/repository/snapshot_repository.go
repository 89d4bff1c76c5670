package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"courseload/db"
	"courseload/internal/model"
)

var ctx = context.Background()

// SnapshotRepository holds the latest enriched result set in Redis. Each
// save replaces the whole snapshot, so readers always see either the old or
// the new set, never a mix.
type SnapshotRepository struct {
	client *redis.Client
}

func NewSnapshotRepository(client *redis.Client) *SnapshotRepository {
	return &SnapshotRepository{client: client}
}

func (r *SnapshotRepository) Save(snapshot *model.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, db.SnapshotKey, data, 0).Err()
}

// Latest returns nil with no error when no snapshot has been stored yet.
func (r *SnapshotRepository) Latest() (*model.Snapshot, error) {
	data, err := r.client.Get(ctx, db.SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *SnapshotRepository) SaveNotification(n *model.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, db.NotificationKey, data, 0).Err()
}

func (r *SnapshotRepository) LatestNotification() (*model.Notification, error) {
	data, err := r.client.Get(ctx, db.NotificationKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var n model.Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
