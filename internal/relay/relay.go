// Package relay carries payment handoff state across the redirect to the
// hosted payment frame and back. A record is written once before the
// redirect and consumed exactly once on return; a second redeem fails.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = time.Hour

var (
	ErrNotFound      = errors.New("transfer record not found or already consumed")
	ErrAlreadyExists = errors.New("transfer record already stashed")
)

// TransferRecord is the state that must survive the round trip through the
// gateway's domain.
type TransferRecord struct {
	OrderID    uint      `json:"order_id"`
	PaymentID  uint      `json:"payment_id"`
	PaymentKey string    `json:"payment_key"`
	StashedAt  time.Time `json:"stashed_at"`
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client, ttl: defaultTTL}
}

// Stash writes the record for a session. Write-once: stashing over a live
// record fails rather than silently replacing it.
func (s *Store) Stash(ctx context.Context, sessionID string, record TransferRecord) error {
	record.StashedAt = time.Now()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal transfer record failed: %w", err)
	}

	ok, err := s.client.SetNX(ctx, relayKey(sessionID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis setnx failed: %w", err)
	}
	if !ok {
		return ErrAlreadyExists
	}
	return nil
}

// Redeem returns the record and deletes it atomically. The second redeem of
// a session reports ErrNotFound.
func (s *Store) Redeem(ctx context.Context, sessionID string) (*TransferRecord, error) {
	data, err := s.client.GetDel(ctx, relayKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel failed: %w", err)
	}

	var record TransferRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal transfer record failed: %w", err)
	}
	return &record, nil
}

func relayKey(sessionID string) string {
	return fmt.Sprintf("payment:relay:%s", sessionID)
}
