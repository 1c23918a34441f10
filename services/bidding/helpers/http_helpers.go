package helpers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"lot-bidding/internal/biddingerrors"
	"lot-bidding/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrLotNotFound):
		return http.StatusNotFound, "lot not found"
	case errors.Is(err, biddingerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, biddingerrors.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, biddingerrors.ErrForbidden):
		return http.StatusForbidden, "not allowed for this lot"
	case errors.Is(err, biddingerrors.ErrLotNotEnded):
		return http.StatusConflict, "bidding on this lot has not ended"
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusOK, "no bids found for lot"
	case errors.Is(err, biddingerrors.ErrUserNoBids):
		return http.StatusOK, "no lots found for user"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ParseAmount accepts a positive whole-dollar amount written as a JSON
// number or string, e.g. "12" or "12.0"
func ParseAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing amount", biddingerrors.ErrInvalidBid)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", biddingerrors.ErrInvalidBid, raw)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: amount must be a whole number", biddingerrors.ErrInvalidBid)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: amount must be positive", biddingerrors.ErrInvalidBid)
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, fmt.Errorf("%w: amount is too large", biddingerrors.ErrInvalidBid)
	}
	return d.IntPart(), nil
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
