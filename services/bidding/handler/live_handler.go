package handler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"lot-bidding/internal/auth"
	bidding "lot-bidding/internal/biddingService"
	"lot-bidding/internal/broadcast"
	"lot-bidding/services/bidding/helpers"
	"lot-bidding/utils"
)

const (
	writeTimeout   = 10 * time.Second
	readLimit      = 16 << 10
	directBuffer   = 16
	genericFailure = "Something went wrong, please try again"
)

// Rooms is the part of the broadcast hub a live connection needs
type Rooms interface {
	Join(ctx context.Context, lotID, userID string) (*broadcast.Client, error)
	Leave(ctx context.Context, c *broadcast.Client)
}

// LiveHandler serves the per-lot websocket. Each connection joins the lot's
// room; frames from the client are bids or chat messages.
type LiveHandler struct {
	service BiddingServiceInterface
	rooms   Rooms
	origins []string
}

// NewLiveHandler builds the websocket handler. origins lists extra host
// patterns allowed to open connections from a browser.
func NewLiveHandler(service BiddingServiceInterface, rooms Rooms, origins []string) *LiveHandler {
	return &LiveHandler{service: service, rooms: rooms, origins: origins}
}

// ServeLot handles GET /ws/lots/:lot_id
func (h *LiveHandler) ServeLot(c *gin.Context) {
	lotID := c.Param("lot_id")
	userID := auth.UserID(c)

	if _, err := h.service.CurrentStanding(c.Request.Context(), lotID); err != nil {
		respondError(c, "ServeLot", err, map[string]any{"lot_id": lotID, "user_id": userID})
		return
	}

	// join before the handshake completes so nothing published after the
	// client sees the upgrade is missed
	client, err := h.rooms.Join(c.Request.Context(), lotID, userID)
	if err != nil {
		respondError(c, "ServeLot", err, map[string]any{"lot_id": lotID, "user_id": userID})
		return
	}
	defer h.rooms.Leave(context.Background(), client)

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		utils.Warn("ServeLot: websocket upgrade failed", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}
	conn.SetReadLimit(readLimit)
	defer conn.Close(websocket.StatusInternalError, "")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	direct := make(chan broadcast.Message, directBuffer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		h.writeLoop(ctx, conn, client, direct)
	}()

	utils.Info("ServeLot: connection opened", map[string]any{"lot_id": lotID, "user_id": userID})
	for {
		var raw json.RawMessage
		if err := wsjson.Read(ctx, conn, &raw); err != nil {
			if !errors.Is(err, context.Canceled) {
				utils.Debug("ServeLot: read ended", map[string]any{
					"lot_id":       lotID,
					"close_status": int(websocket.CloseStatus(err)),
					"error":        err.Error(),
				})
			}
			break
		}
		h.handleFrame(ctx, lotID, userID, raw, direct)
	}

	cancel()
	<-done
	conn.Close(websocket.StatusNormalClosure, "")
	utils.Info("ServeLot: connection closed", map[string]any{"lot_id": lotID, "user_id": userID})
}

// writeLoop is the only writer on conn
func (h *LiveHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *broadcast.Client, direct <-chan broadcast.Message) {
	for {
		var msg broadcast.Message
		select {
		case <-ctx.Done():
			return
		case m, ok := <-client.Send():
			if !ok {
				return
			}
			msg = m
		case m := <-direct:
			msg = m
		}

		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := wsjson.Write(wctx, conn, msg)
		cancel()
		if err != nil {
			return
		}
	}
}

// handleFrame runs one client frame. A panic here is contained to the frame
// and reported to the sender only.
func (h *LiveHandler) handleFrame(ctx context.Context, lotID, userID string, raw json.RawMessage, direct chan<- broadcast.Message) {
	defer func() {
		if r := recover(); r != nil {
			utils.Error("ServeLot: frame handler panicked", map[string]any{
				"lot_id":  lotID,
				"user_id": userID,
				"panic":   r,
			})
			sendDirect(direct, errorFrame(lotID, genericFailure))
		}
	}()

	var frame helpers.WSClientMessage
	if err := json.Unmarshal(raw, &frame); err != nil {
		sendDirect(direct, errorFrame(lotID, "Couldn't read that message"))
		return
	}

	var (
		out bidding.Outcome
		err error
	)
	switch {
	case frame.Bid != "":
		amount, perr := helpers.ParseAmount(frame.Bid.String())
		if perr != nil {
			sendDirect(direct, errorFrame(lotID, "Bid amount must be a positive whole number"))
			return
		}
		out, err = h.service.PlaceBid(ctx, lotID, userID, amount)
	case frame.Message != nil:
		out, err = h.service.PostChat(ctx, lotID, userID, *frame.Message)
	default:
		sendDirect(direct, errorFrame(lotID, "Send either a bid or a message"))
		return
	}

	if err != nil {
		utils.Error("ServeLot: action failed", map[string]any{
			"lot_id":  lotID,
			"user_id": userID,
			"error":   err.Error(),
		})
		sendDirect(direct, errorFrame(lotID, genericFailure))
		return
	}
	// anonymous outcomes have no private channel in the hub
	if out.UserID == "" && !out.Public() {
		sendDirect(direct, broadcast.FromOutcome(out))
	}
}

func errorFrame(lotID, message string) broadcast.Message {
	return broadcast.Message{
		Type:      bidding.KindError.String(),
		LotID:     lotID,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func sendDirect(direct chan<- broadcast.Message, m broadcast.Message) {
	select {
	case direct <- m:
	default:
	}
}
