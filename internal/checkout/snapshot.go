package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotTTL = time.Hour

var ErrSnapshotNotFound = errors.New("checkout snapshot not found")

// SnapshotStore stashes a half-filled shipping form while the visitor is
// bounced through login, so the form comes back intact afterwards. A
// snapshot is consumed on restore.
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client, ttl: snapshotTTL}
}

func (s *SnapshotStore) Save(ctx context.Context, sessionID string, form ShippingForm) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("marshal snapshot failed: %w", err)
	}

	if err := s.client.Set(ctx, snapshotKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Restore returns the stashed form and deletes it in the same round trip.
func (s *SnapshotStore) Restore(ctx context.Context, sessionID string) (*ShippingForm, error) {
	data, err := s.client.GetDel(ctx, snapshotKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel failed: %w", err)
	}

	var form ShippingForm
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot failed: %w", err)
	}
	return &form, nil
}

func snapshotKey(sessionID string) string {
	return fmt.Sprintf("checkout:snapshot:%s", sessionID)
}
