package handler

//go:generate mockgen -source=bidding_handler.go -destination=mock_service.go -package=handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"lot-bidding/internal/auth"
	bidding "lot-bidding/internal/biddingService"
	"lot-bidding/internal/biddingerrors"
	model "lot-bidding/internal/models"
	"lot-bidding/services/bidding/helpers"
	"lot-bidding/utils"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 50

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, lotID, userID string, amount int64) (bidding.Outcome, error)
	PostChat(ctx context.Context, lotID, userID, text string) (bidding.Outcome, error)
	CloseLot(ctx context.Context, lotID, userID string) (bidding.Outcome, error)
	CurrentStanding(ctx context.Context, lotID string) (bidding.LotStanding, error)
	GetHistory(ctx context.Context, lotID string, limit int) ([]model.LotHistory, error)
	GetLotsByUser(ctx context.Context, userID string) ([]model.Lot, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// respondError maps a service error to its HTTP status and logs it
func respondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// respondOutcome writes 201 for accepted actions and 409 for refused ones
func respondOutcome(c *gin.Context, out bidding.Outcome) {
	status := http.StatusCreated
	if !out.Accepted() {
		status = http.StatusConflict
	}
	utils.JSONResponse(c, status, helpers.NewOutcomeResponse(out), out.Message)
}

// PlaceBidHandler handles POST /lots/:lot_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	userID := auth.UserID(c)

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}
	amount, err := helpers.ParseAmount(req.Amount.String())
	if err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	out, err := h.service.PlaceBid(c.Request.Context(), lotID, userID, amount)
	if err != nil {
		respondError(c, "PlaceBidHandler", err, map[string]any{"lot_id": lotID, "user_id": userID})
		return
	}

	respondOutcome(c, out)
	helpers.LogSuccess("PlaceBidHandler", "bid processed", map[string]any{
		"lot_id":  lotID,
		"user_id": userID,
		"amount":  amount,
		"outcome": out.Kind.String(),
		"price":   out.Price,
	})
}

// PostChatHandler handles POST /lots/:lot_id/chat
func (h *BiddingHandler) PostChatHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	userID := auth.UserID(c)

	var req helpers.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PostChatHandler", err)
		return
	}

	out, err := h.service.PostChat(c.Request.Context(), lotID, userID, req.Message)
	if err != nil {
		respondError(c, "PostChatHandler", err, map[string]any{"lot_id": lotID, "user_id": userID})
		return
	}

	respondOutcome(c, out)
	helpers.LogSuccess("PostChatHandler", "chat processed", map[string]any{
		"lot_id":  lotID,
		"user_id": userID,
		"outcome": out.Kind.String(),
	})
}

// GetStandingHandler handles GET /lots/:lot_id/standing
func (h *BiddingHandler) GetStandingHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	standing, err := h.service.CurrentStanding(c.Request.Context(), lotID)
	if err != nil {
		respondError(c, "GetStandingHandler", err, map[string]any{"lot_id": lotID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, standing, "standing retrieved successfully")
}

// GetHistoryHandler handles GET /lots/:lot_id/history?limit=N
func (h *BiddingHandler) GetHistoryHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			helpers.HandleBindError(c, "GetHistoryHandler", fmt.Errorf("limit must be a positive integer, got %q", raw))
			return
		}
		limit = n
	}

	entries, err := h.service.GetHistory(c.Request.Context(), lotID, limit)
	if err != nil {
		respondError(c, "GetHistoryHandler", err, map[string]any{"lot_id": lotID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewHistoryResponse(entries), "history retrieved successfully")
	helpers.LogSuccess("GetHistoryHandler", "history retrieved successfully", map[string]any{
		"lot_id": lotID,
		"count":  len(entries),
	})
}

// CloseLotHandler handles POST /lots/:lot_id/close. Only the seller or
// the auction owner may close a lot.
func (h *BiddingHandler) CloseLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	userID := auth.UserID(c)
	out, err := h.service.CloseLot(c.Request.Context(), lotID, userID)
	if err != nil {
		respondError(c, "CloseLotHandler", err, map[string]any{"lot_id": lotID, "user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewOutcomeResponse(out), out.Message)
	helpers.LogSuccess("CloseLotHandler", "lot closed", map[string]any{
		"lot_id":    lotID,
		"outcome":   out.Kind.String(),
		"winner_id": out.HighBidderID,
		"price":     out.Price,
	})
}

// GetLotsByUserHandler handles GET /users/:user_id/lots
func (h *BiddingHandler) GetLotsByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	lots, err := h.service.GetLotsByUser(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, biddingerrors.ErrUserNoBids) {
		respondError(c, "GetLotsByUserHandler", err, map[string]any{"user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewLotsResponse(lots), "lots retrieved successfully")
	helpers.LogSuccess("GetLotsByUserHandler", "lots retrieved successfully", map[string]any{
		"user_id":    userID,
		"lots_count": len(lots),
	})
}
