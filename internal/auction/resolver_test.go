package auction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	model "lot-bidding/internal/models"
)

var base = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func bid(user string, amount int64, offset time.Duration) model.Bid {
	return model.Bid{LotID: "lot1", UserID: user, Amount: amount, LastBidTime: base.Add(offset)}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	end := base.Add(time.Hour)
	open := model.Lot{LotID: "lot1", ReservePrice: 10}
	sealed := model.Lot{LotID: "lot1", ReservePrice: 10, SealedBid: true}

	tests := []struct {
		name      string
		lot       model.Lot
		bids      []model.Bid
		wantUser  string
		wantPrice int64
		wantCount int
	}{
		{name: "no_bids", lot: open, wantPrice: 10},
		{name: "below_reserve_ignored", lot: open, bids: []model.Bid{bid("a", 9, 0)}, wantPrice: 10},
		{name: "single_bid_pays_reserve", lot: open, bids: []model.Bid{bid("a", 50, 0)}, wantUser: "a", wantPrice: 10, wantCount: 1},
		{
			name:      "second_price_plus_one",
			lot:       open,
			bids:      []model.Bid{bid("a", 15, 0), bid("b", 12, time.Second)},
			wantUser:  "a",
			wantPrice: 13,
			wantCount: 2,
		},
		{
			name:      "tie_goes_to_earlier",
			lot:       open,
			bids:      []model.Bid{bid("b", 20, 2*time.Second), bid("a", 20, time.Second)},
			wantUser:  "a",
			wantPrice: 20,
			wantCount: 2,
		},
		{
			name:      "late_bid_ignored",
			lot:       open,
			bids:      []model.Bid{bid("a", 15, 0), bid("b", 90, 2*time.Hour)},
			wantUser:  "a",
			wantPrice: 10,
			wantCount: 1,
		},
		{
			name:      "sealed_shows_top_amount",
			lot:       sealed,
			bids:      []model.Bid{bid("a", 15, 0), bid("b", 40, 2*time.Hour)},
			wantUser:  "b",
			wantPrice: 40,
			wantCount: 2,
		},
		{
			name:      "three_bidders",
			lot:       open,
			bids:      []model.Bid{bid("a", 15, 0), bid("b", 30, time.Second), bid("c", 22, 2*time.Second)},
			wantUser:  "b",
			wantPrice: 23,
			wantCount: 3,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			before := append([]model.Bid(nil), tc.bids...)
			st := Resolve(tc.lot, tc.bids, end)

			require.Equal(t, tc.wantUser, st.HighBidderID)
			require.Equal(t, tc.wantPrice, st.Price)
			require.Equal(t, tc.wantCount, st.Qualifying)
			require.Equal(t, tc.wantUser != "", st.HasLeader())
			require.Equal(t, before, tc.bids, "Resolve must not reorder its input")
			require.Equal(t, st, Resolve(tc.lot, tc.bids, end))
		})
	}
}

func TestResolve_PriceNeverExceedsLeaderMax(t *testing.T) {
	t.Parallel()

	lot := model.Lot{ReservePrice: 1}
	for top := int64(1); top < 30; top++ {
		for second := int64(1); second <= top; second++ {
			st := Resolve(lot, []model.Bid{bid("a", top, 0), bid("b", second, time.Second)}, base.Add(time.Hour))
			require.LessOrEqual(t, st.Price, st.MaxBid, "top=%d second=%d", top, second)
		}
	}
}
