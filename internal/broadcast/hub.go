package broadcast

import (
	"context"
	"sync"
	"sync/atomic"

	bidding "lot-bidding/internal/biddingService"
	model "lot-bidding/internal/models"
	"lot-bidding/utils"
)

const (
	DefaultReplayLimit  = 200
	DefaultClientBuffer = 64
)

// HistorySource feeds replays on join and acknowledges the seller's reads on leave
type HistorySource interface {
	GetHistory(ctx context.Context, lotID string, limit int) ([]model.LotHistory, error)
	MarkSeen(ctx context.Context, lotID, userID string) (int64, error)
}

// Client is one connection watching one lot
type Client struct {
	LotID  string
	UserID string
	send   chan Message

	// live frames that arrive while the replay is being read wait here
	mu        sync.Mutex
	replaying bool
	pending   []Message
}

// Send yields frames for the client. It is closed when the client leaves.
func (c *Client) Send() <-chan Message {
	return c.send
}

// Hub keeps the rooms of connected clients, keyed by lot
type Hub struct {
	layer       Layer
	history     HistorySource
	replayLimit int
	buffer      int

	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	dropped uint64
}

// NewHub wires a hub to its layer. A nil layer falls back to LocalLayer.
func NewHub(layer Layer, history HistorySource, replayLimit, buffer int) *Hub {
	if layer == nil {
		layer = NewLocalLayer()
	}
	if replayLimit <= 0 {
		replayLimit = DefaultReplayLimit
	}
	if buffer <= 0 {
		buffer = DefaultClientBuffer
	}
	return &Hub{
		layer:       layer,
		history:     history,
		replayLimit: replayLimit,
		buffer:      buffer,
		rooms:       map[string]map[*Client]struct{}{},
	}
}

// Start subscribes the hub to its layer
func (h *Hub) Start(ctx context.Context) error {
	return h.layer.Start(ctx, h.deliver)
}

// Join adds a client to a lot's room and queues the lot's recent history,
// oldest first, flagged as replay. userID may be empty for anonymous viewers.
// The client is in the room before history is read, so frames published
// meanwhile follow the replay instead of being lost.
func (h *Hub) Join(ctx context.Context, lotID, userID string) (*Client, error) {
	size := h.buffer
	if h.history != nil {
		size += h.replayLimit
	}
	c := &Client{
		LotID:     lotID,
		UserID:    userID,
		send:      make(chan Message, size),
		replaying: h.history != nil,
	}
	h.add(c)

	var backlog []model.LotHistory
	if h.history != nil {
		entries, err := h.history.GetHistory(ctx, lotID, h.replayLimit)
		if err != nil {
			h.remove(c)
			return nil, err
		}
		backlog = entries
	}

	c.mu.Lock()
	replayed := make(map[string]struct{}, len(backlog))
	for _, e := range backlog {
		replayed[e.HistoryID] = struct{}{}
		c.push(FromHistory(e), &h.dropped)
	}
	for _, msg := range c.pending {
		if _, dup := replayed[msg.ID]; dup && msg.ID != "" {
			continue
		}
		c.push(msg, &h.dropped)
	}
	c.pending = nil
	c.replaying = false
	c.mu.Unlock()

	utils.Debug("broadcast: client joined", map[string]any{
		"lot_id":  lotID,
		"user_id": userID,
		"replay":  len(backlog),
	})
	return c, nil
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[c.LotID]
	if !ok {
		room = map[*Client]struct{}{}
		h.rooms[c.LotID] = room
	}
	room[c] = struct{}{}
}

// remove drops a client that never made it out of Join
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[c.LotID]
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.LotID)
	}
}

// offer queues a live frame, holding it back while the replay is pending
func (c *Client) offer(msg Message, dropped *uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.replaying {
		c.pending = append(c.pending, msg)
		return
	}
	c.push(msg, dropped)
}

func (c *Client) push(msg Message, dropped *uint64) {
	select {
	case c.send <- msg:
	default:
		atomic.AddUint64(dropped, 1)
	}
}

// Leave removes the client and closes its channel. A seller leaving their
// own lot marks its history as seen.
func (h *Hub) Leave(ctx context.Context, c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.LotID]
	if ok {
		if _, member := room[c]; member {
			delete(room, c)
			close(c.send)
		}
		if len(room) == 0 {
			delete(h.rooms, c.LotID)
		}
	}
	h.mu.Unlock()

	if h.history == nil || c.UserID == "" {
		return
	}
	if _, err := h.history.MarkSeen(ctx, c.LotID, c.UserID); err != nil {
		utils.Warn("broadcast: failed to mark history seen", map[string]any{
			"lot_id":  c.LotID,
			"user_id": c.UserID,
			"error":   err.Error(),
		})
	}
}

// Publish implements bidding.Publisher
func (h *Hub) Publish(ctx context.Context, o bidding.Outcome) {
	env, ok := envelopeFor(o)
	if !ok {
		return
	}
	if err := h.layer.Publish(ctx, env); err != nil {
		utils.Error("broadcast: publish failed", map[string]any{
			"lot_id": o.LotID,
			"type":   o.Kind.String(),
			"error":  err.Error(),
		})
	}
}

// deliver hands an envelope to every matching client in the room
func (h *Hub) deliver(env Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[env.LotID] {
		if env.Recipient != "" && c.UserID != env.Recipient {
			continue
		}
		c.offer(env.Message, &h.dropped)
	}
}

// RoomSize reports how many clients watch a lot
func (h *Hub) RoomSize(lotID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[lotID])
}

// Dropped reports how many frames were discarded for slow clients
func (h *Hub) Dropped() uint64 {
	return atomic.LoadUint64(&h.dropped)
}
