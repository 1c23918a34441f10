package broadcast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	bidding "lot-bidding/internal/biddingService"
	model "lot-bidding/internal/models"
)

var at = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

type fakeHistory struct {
	mu      sync.Mutex
	entries []model.LotHistory
	seen    []string
}

func (f *fakeHistory) GetHistory(_ context.Context, _ string, limit int) ([]model.LotHistory, error) {
	entries := f.entries
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func (f *fakeHistory) MarkSeen(_ context.Context, lotID, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, lotID+"/"+userID)
	return 1, nil
}

func drain(c *Client) []Message {
	var out []Message
	for {
		select {
		case m := <-c.Send():
			out = append(out, m)
		default:
			return out
		}
	}
}

func newLocalHub(t *testing.T, history HistorySource, buffer int) *Hub {
	t.Helper()
	h := NewHub(NewLocalLayer(), history, 0, buffer)
	require.NoError(t, h.Start(context.Background()))
	return h
}

func TestHub_PublicAndPrivateDelivery(t *testing.T) {
	t.Parallel()

	h := newLocalHub(t, nil, 8)
	ctx := context.Background()

	alice, err := h.Join(ctx, "lot1", "alice")
	require.NoError(t, err)
	bob, err := h.Join(ctx, "lot1", "bob")
	require.NoError(t, err)
	viewer, err := h.Join(ctx, "lot1", "")
	require.NoError(t, err)
	other, err := h.Join(ctx, "lot2", "alice")
	require.NoError(t, err)

	h.Publish(ctx, bidding.Outcome{
		Kind:         bidding.KindNewHighBidder,
		Audience:     bidding.AudienceEveryone,
		LotID:        "lot1",
		UserID:       "alice",
		HighBidderID: "alice",
		Price:        10,
		At:           at,
	})
	h.Publish(ctx, bidding.Outcome{
		Kind:     bidding.KindError,
		Audience: bidding.AudienceBidder,
		LotID:    "lot1",
		UserID:   "bob",
		Message:  "You can't bid less than $11",
		At:       at,
	})

	require.Len(t, drain(alice), 1)
	got := drain(bob)
	require.Len(t, got, 2)
	require.Equal(t, "NEW_HIGH_BIDDER", got[0].Type)
	require.Equal(t, "ERROR", got[1].Type)
	require.Equal(t, "You can't bid less than $11", got[1].Message)
	require.Len(t, drain(viewer), 1)
	require.Empty(t, drain(other))
}

func TestHub_PrivateWithoutUserIsDropped(t *testing.T) {
	t.Parallel()

	h := newLocalHub(t, nil, 8)
	viewer, err := h.Join(context.Background(), "lot1", "")
	require.NoError(t, err)

	h.Publish(context.Background(), bidding.Outcome{
		Kind:     bidding.KindError,
		Audience: bidding.AudienceBidder,
		LotID:    "lot1",
		Message:  "You must be signed in to bid",
	})
	require.Empty(t, drain(viewer))
}

func TestHub_JoinReplaysHistory(t *testing.T) {
	t.Parallel()

	author := "alice"
	price := int64(13)
	history := &fakeHistory{entries: []model.LotHistory{
		{LotID: "lot1", Message: "alice has placed the first bid on this lot", Timestamp: at, ChangedPrice: true},
		{LotID: "lot1", Message: "New high bid: $13", Timestamp: at.Add(time.Second), ChangedPrice: true, CurrentPrice: &price},
		{LotID: "lot1", UserID: &author, Message: "nice", Timestamp: at.Add(2 * time.Second)},
	}}
	h := NewHub(NewLocalLayer(), history, 2, 1)

	c, err := h.Join(context.Background(), "lot1", "bob")
	require.NoError(t, err)

	got := drain(c)
	require.Len(t, got, 2)
	require.Equal(t, "INFO", got[0].Type)
	require.Equal(t, int64(13), got[0].Price)
	require.True(t, got[0].Replay)
	require.Equal(t, "CHAT", got[1].Type)
	require.Equal(t, "alice", got[1].UserID)
}

func TestHub_LeaveClosesAndMarksSeen(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{}
	h := newLocalHub(t, history, 4)
	ctx := context.Background()

	seller, err := h.Join(ctx, "lot1", "seller")
	require.NoError(t, err)
	anon, err := h.Join(ctx, "lot1", "")
	require.NoError(t, err)
	require.Equal(t, 2, h.RoomSize("lot1"))

	h.Leave(ctx, seller)
	h.Leave(ctx, anon)
	require.Zero(t, h.RoomSize("lot1"))

	_, open := <-seller.Send()
	require.False(t, open)
	require.Equal(t, []string{"lot1/seller"}, history.seen)

	h.Leave(ctx, seller)
}

func TestHub_SlowClientDropsFrames(t *testing.T) {
	t.Parallel()

	h := newLocalHub(t, nil, 1)
	c, err := h.Join(context.Background(), "lot1", "alice")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		h.Publish(context.Background(), bidding.Outcome{
			Kind:     bidding.KindNewHighBid,
			Audience: bidding.AudienceEveryone,
			LotID:    "lot1",
			Price:    int64(10 + i),
		})
	}

	got := drain(c)
	require.Len(t, got, 1)
	require.Equal(t, int64(10), got[0].Price)
	require.Equal(t, uint64(2), h.Dropped())
}

func TestHub_RedisLayer(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := NewHub(NewRedisLayer(client, ""), nil, 0, 8)
	require.NoError(t, h.Start(ctx))

	c, err := h.Join(ctx, "lot1", "alice")
	require.NoError(t, err)

	end := at.Add(15 * time.Minute)
	h.Publish(ctx, bidding.Outcome{
		Kind:         bidding.KindNewHighBid,
		Audience:     bidding.AudienceEveryone,
		LotID:        "lot1",
		HighBidderID: "alice",
		Price:        21,
		EndTime:      &end,
		At:           at,
	})

	var got Message
	require.Eventually(t, func() bool {
		select {
		case got = <-c.Send():
			return true
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	require.Equal(t, "NEW_HIGH_BID", got.Type)
	require.Equal(t, int64(21), got.Price)
	require.NotNil(t, got.End)
	require.True(t, end.Equal(*got.End))
}

// publishingHistory publishes through the hub while a join reads history,
// the way a bid committed between the read and the room registration would.
type publishingHistory struct {
	hub      *Hub
	entries  []model.LotHistory
	outcomes []bidding.Outcome
}

func (p *publishingHistory) GetHistory(ctx context.Context, _ string, _ int) ([]model.LotHistory, error) {
	for _, o := range p.outcomes {
		p.hub.Publish(ctx, o)
	}
	return p.entries, nil
}

func (p *publishingHistory) MarkSeen(context.Context, string, string) (int64, error) {
	return 0, nil
}

func TestHub_JoinKeepsFramesPublishedDuringReplay(t *testing.T) {
	t.Parallel()

	first := int64(10)
	second := int64(13)

	tests := []struct {
		name     string
		entries  []model.LotHistory
		outcomes []bidding.Outcome
		prices   []int64
		replay   []bool
	}{
		{
			name: "frame_after_snapshot_follows_replay",
			entries: []model.LotHistory{
				{HistoryID: "h1", LotID: "lot1", Message: "alice has placed the first bid on this lot", Timestamp: at, ChangedPrice: true, CurrentPrice: &first},
			},
			outcomes: []bidding.Outcome{
				{Kind: bidding.KindNewHighBid, Audience: bidding.AudienceEveryone, LotID: "lot1", Price: 13, HistoryID: "h2", At: at.Add(time.Second)},
			},
			prices: []int64{10, 13},
			replay: []bool{true, false},
		},
		{
			name: "frame_inside_snapshot_is_not_repeated",
			entries: []model.LotHistory{
				{HistoryID: "h1", LotID: "lot1", Message: "alice has placed the first bid on this lot", Timestamp: at, ChangedPrice: true, CurrentPrice: &first},
				{HistoryID: "h2", LotID: "lot1", Message: "New high bid: $13", Timestamp: at.Add(time.Second), ChangedPrice: true, CurrentPrice: &second},
			},
			outcomes: []bidding.Outcome{
				{Kind: bidding.KindNewHighBid, Audience: bidding.AudienceEveryone, LotID: "lot1", Price: 13, HistoryID: "h2", At: at.Add(time.Second)},
			},
			prices: []int64{10, 13},
			replay: []bool{true, true},
		},
		{
			name: "frames_without_history_rows_are_kept",
			entries: []model.LotHistory{
				{HistoryID: "h1", LotID: "lot1", Message: "alice has placed the first bid on this lot", Timestamp: at, ChangedPrice: true, CurrentPrice: &first},
			},
			outcomes: []bidding.Outcome{
				{Kind: bidding.KindInfo, Audience: bidding.AudienceEveryone, LotID: "lot1", Price: 10, At: at.Add(time.Second)},
			},
			prices: []int64{10, 10},
			replay: []bool{true, false},
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			source := &publishingHistory{entries: tc.entries, outcomes: tc.outcomes}
			h := NewHub(NewLocalLayer(), source, 0, 4)
			source.hub = h
			require.NoError(t, h.Start(context.Background()))

			c, err := h.Join(context.Background(), "lot1", "bob")
			require.NoError(t, err)

			got := drain(c)
			require.Len(t, got, len(tc.prices))
			for i, m := range got {
				require.Equal(t, tc.prices[i], m.Price)
				require.Equal(t, tc.replay[i], m.Replay)
			}
			require.Zero(t, h.Dropped())
		})
	}
}

func TestHub_JoinHistoryErrorLeavesRoom(t *testing.T) {
	t.Parallel()

	h := NewHub(NewLocalLayer(), failingHistory{}, 0, 4)
	_, err := h.Join(context.Background(), "lot1", "bob")
	require.Error(t, err)
	require.Zero(t, h.RoomSize("lot1"))
}

type failingHistory struct{}

func (failingHistory) GetHistory(context.Context, string, int) ([]model.LotHistory, error) {
	return nil, errors.New("history unavailable")
}

func (failingHistory) MarkSeen(context.Context, string, string) (int64, error) {
	return 0, nil
}
