// Package notify queues outbid notices for the external mailer. Nothing here
// sends mail; consumers drain the queue on their own schedule.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultOutboxKey = "notifications:outbid"

// OutbidNotice tells a dethroned leader that someone took the lot from them
type OutbidNotice struct {
	LotID           string    `json:"lot_id"`
	UserID          string    `json:"user_id"`
	NewHighBidderID string    `json:"new_high_bidder_id"`
	Price           int64     `json:"price"`
	At              time.Time `json:"at"`
}

// Outbox accepts notices for later delivery
type Outbox interface {
	Enqueue(ctx context.Context, n OutbidNotice) error
}

// MemoryOutbox keeps notices in process
type MemoryOutbox struct {
	mu      sync.Mutex
	notices []OutbidNotice
}

func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{}
}

func (o *MemoryOutbox) Enqueue(_ context.Context, n OutbidNotice) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notices = append(o.notices, n)
	return nil
}

// Drain returns and clears every queued notice
func (o *MemoryOutbox) Drain() []OutbidNotice {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.notices
	o.notices = nil
	return out
}

// RedisOutbox pushes notices as JSON onto a Redis list; consumers pop from the other end
type RedisOutbox struct {
	Client *redis.Client
	Key    string
}

func NewRedisOutbox(client *redis.Client, key string) *RedisOutbox {
	if key == "" {
		key = DefaultOutboxKey
	}
	return &RedisOutbox{Client: client, Key: key}
}

func (o *RedisOutbox) Enqueue(ctx context.Context, n OutbidNotice) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode outbid notice: %w", err)
	}
	if err := o.Client.LPush(ctx, o.Key, payload).Err(); err != nil {
		return fmt.Errorf("queue outbid notice for %s: %w", n.UserID, err)
	}
	return nil
}

// Pop removes the oldest notice, returning false when the queue is empty
func (o *RedisOutbox) Pop(ctx context.Context) (OutbidNotice, bool, error) {
	raw, err := o.Client.RPop(ctx, o.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return OutbidNotice{}, false, nil
	}
	if err != nil {
		return OutbidNotice{}, false, err
	}
	var n OutbidNotice
	if err := json.Unmarshal(raw, &n); err != nil {
		return OutbidNotice{}, false, fmt.Errorf("decode outbid notice: %w", err)
	}
	return n, true, nil
}
