package biddingerrors

import "errors"

// Repository-level errors
var (
	ErrLotNotFound     = errors.New("lot not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAuctionNotFound = errors.New("auction not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrNoBids          = errors.New("no bids found for lot")
	ErrUserNoBids      = errors.New("user has not placed any bids")
)

// business logic errors
var (
	ErrInvalidBid      = errors.New("invalid bid")
	ErrLotNotEnded     = errors.New("lot has not ended")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("not allowed")
)
