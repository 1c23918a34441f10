// Package auction holds the pure pieces of the live bidding engine: the proxy
// bid resolver, the lot clock and the permission gate. Nothing in here touches
// storage; callers load the records and pass them in.
package auction

import (
	"sort"
	"time"

	model "lot-bidding/internal/models"
)

// Standing is the resolver's view of who is winning a lot and at what price.
type Standing struct {
	// HighBidderID is empty when no qualifying bid exists
	HighBidderID string
	// Price is the display price: reserve, second price + 1, or the tied amount
	Price int64
	// MaxBid is the high bidder's own proxy amount
	MaxBid int64
	// Qualifying is the number of bids that met the reserve before the deadline
	Qualifying int
}

// HasLeader reports whether any qualifying bid exists.
func (s Standing) HasLeader() bool {
	return s.HighBidderID != ""
}

// Resolve computes the current standing of a lot from its bid ledger.
//
// Open lots use the second-price rule: the leader pays one unit more than the
// runner-up's proxy, or the runner-up's amount when the top two proxies tie
// (the earlier bid wins the tie). Sealed lots show the top amount outright.
//
// Resolve is pure: bids is not modified and repeated calls yield the same result.
func Resolve(lot model.Lot, bids []model.Bid, end time.Time) Standing {
	qualifying := make([]model.Bid, 0, len(bids))
	for _, b := range bids {
		if b.Amount < lot.ReservePrice {
			continue
		}
		if !lot.SealedBid && b.LastBidTime.After(end) {
			continue
		}
		qualifying = append(qualifying, b)
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		if qualifying[i].Amount != qualifying[j].Amount {
			return qualifying[i].Amount > qualifying[j].Amount
		}
		if !qualifying[i].LastBidTime.Equal(qualifying[j].LastBidTime) {
			return qualifying[i].LastBidTime.Before(qualifying[j].LastBidTime)
		}
		return qualifying[i].UserID < qualifying[j].UserID
	})

	st := Standing{Price: lot.ReservePrice, Qualifying: len(qualifying)}
	if len(qualifying) == 0 {
		return st
	}

	top := qualifying[0]
	st.HighBidderID = top.UserID
	st.MaxBid = top.Amount

	if lot.SealedBid {
		st.Price = top.Amount
		return st
	}
	if len(qualifying) == 1 {
		return st
	}

	second := qualifying[1]
	if second.Amount == top.Amount {
		st.Price = top.Amount
	} else {
		st.Price = second.Amount + 1
	}
	return st
}
