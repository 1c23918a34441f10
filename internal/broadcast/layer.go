package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"lot-bidding/utils"
)

const DefaultChannelPrefix = "lot"

// Layer carries envelopes between hubs. A single process can use LocalLayer;
// RedisLayer lets several processes share rooms.
type Layer interface {
	Publish(ctx context.Context, env Envelope) error
	// Start registers deliver and returns once the layer is receiving
	Start(ctx context.Context, deliver func(Envelope)) error
}

// LocalLayer delivers synchronously inside the publishing goroutine
type LocalLayer struct {
	mu       sync.RWMutex
	handlers []func(Envelope)
}

func NewLocalLayer() *LocalLayer {
	return &LocalLayer{}
}

func (l *LocalLayer) Publish(_ context.Context, env Envelope) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, h := range l.handlers {
		h(env)
	}
	return nil
}

func (l *LocalLayer) Start(_ context.Context, deliver func(Envelope)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers = append(l.handlers, deliver)
	return nil
}

// RedisLayer publishes each envelope on "<prefix>:<lot id>" and pattern
// subscribes to every lot channel.
type RedisLayer struct {
	Client *redis.Client
	Prefix string
}

func NewRedisLayer(client *redis.Client, prefix string) *RedisLayer {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisLayer{Client: client, Prefix: prefix}
}

func (l *RedisLayer) channel(lotID string) string {
	return l.Prefix + ":" + lotID
}

func (l *RedisLayer) Publish(ctx context.Context, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if err := l.Client.Publish(ctx, l.channel(env.LotID), payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", l.channel(env.LotID), err)
	}
	return nil
}

func (l *RedisLayer) Start(ctx context.Context, deliver func(Envelope)) error {
	pubsub := l.Client.PSubscribe(ctx, l.Prefix+":*")
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("subscribe to %s:*: %w", l.Prefix, err)
	}

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var env Envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					utils.Warn("broadcast: dropping malformed envelope", map[string]any{
						"channel": msg.Channel,
						"error":   err.Error(),
					})
					continue
				}
				deliver(env)
			}
		}
	}()
	return nil
}
