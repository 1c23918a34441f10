package integrationtests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// PlaceBidHandler Tests
func TestPlaceBidHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		lotID      string
		userID     string
		request    any
		wantStatus int
		wantType   string
		wantPrice  float64
		wantMsg    string
	}{
		{
			name:       "Valid_Bid",
			lotID:      "lot1",
			userID:     "user1",
			request:    map[string]any{"amount": 150},
			wantStatus: http.StatusCreated,
			wantType:   "NEW_HIGH_BIDDER",
			wantPrice:  100,
		},
		{
			name:       "Below_Reserve",
			lotID:      "lot1",
			userID:     "user1",
			request:    map[string]any{"amount": 50},
			wantStatus: http.StatusConflict,
			wantType:   "ERROR",
			wantMsg:    "You can't bid less than $100",
		},
		{
			name:       "Own_Lot",
			lotID:      "lot1",
			userID:     "seller",
			request:    map[string]any{"amount": 150},
			wantStatus: http.StatusConflict,
			wantType:   "ERROR",
		},
		{
			name:       "Invalid_JSON",
			lotID:      "lot1",
			userID:     "user1",
			request:    []byte("{amount: 'missing quotes'}"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Fractional_Amount",
			lotID:      "lot1",
			userID:     "user1",
			request:    map[string]any{"amount": 150.5},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "No_Token",
			lotID:      "lot1",
			request:    map[string]any{"amount": 150},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Lot_Not_Found",
			lotID:      "missing",
			userID:     "user1",
			request:    map[string]any{"amount": 150},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := SetupTestEnv(t, NewLot("lot1", 100))
			resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/lots/"+tt.lotID+"/bids", tt.userID, tt.request)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantType == "" {
				return
			}
			data := Data(t, resp)
			require.Equal(t, tt.wantType, data["type"])
			require.Equal(t, tt.lotID, data["lot_id"])
			if tt.wantPrice != 0 {
				require.Equal(t, tt.wantPrice, data["price"])
				require.Equal(t, tt.userID, data["high_bidder_id"])
			}
			if tt.wantMsg != "" {
				require.Equal(t, tt.wantMsg, data["message"])
			}
			_, err := time.Parse(time.RFC3339, data["timestamp"].(string))
			require.NoError(t, err)
		})
	}
}

// Proxy bidding through the HTTP surface: the leader keeps the lot at one
// dollar over the runner-up
func TestProxyBiddingFlow(t *testing.T) {
	t.Parallel()

	env := SetupTestEnv(t, NewLot("lot1", 100))
	bid := func(userID string, amount int) map[string]any {
		resp, _ := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/lots/lot1/bids", userID, map[string]any{"amount": amount})
		env.Advance(time.Second)
		return Data(t, resp)
	}

	require.Equal(t, "NEW_HIGH_BIDDER", bid("user1", 150)["type"])

	out := bid("user2", 120)
	require.Equal(t, "NEW_HIGH_BID", out["type"])
	require.Equal(t, float64(121), out["price"])

	out = bid("user2", 110)
	require.Equal(t, "ERROR", out["type"])
	require.Equal(t, "Bid more than your proxy bid of $120", out["message"])

	// one dollar over the displayed price is accepted
	out = bid("user2", 122)
	require.Equal(t, "NEW_HIGH_BID", out["type"])
	require.Equal(t, "user1", out["high_bidder_id"])
	require.Equal(t, float64(123), out["price"])

	out = bid("user3", 200)
	require.Equal(t, "NEW_HIGH_BIDDER", out["type"])
	require.Equal(t, float64(151), out["price"])

	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/lots/lot1/standing", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	standing := Data(t, resp)
	require.Equal(t, "user3", standing["high_bidder_id"])
	require.Equal(t, float64(151), standing["price"])
	require.Equal(t, float64(3), standing["bid_count"])

	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/lots/lot1/history", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := resp["data"].([]any)
	require.Len(t, entries, 4)
	require.Equal(t, float64(123), entries[2].(map[string]any)["current_price"])
	last := entries[len(entries)-1].(map[string]any)
	require.Equal(t, true, last["changed_price"])
	require.Equal(t, float64(151), last["current_price"])

	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/lots/lot1/history?limit=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 1)
}

// CloseLotHandler Tests
func TestCloseLotHandler(t *testing.T) {
	t.Parallel()

	env := SetupTestEnv(t, NewLot("lot1", 100), NewLot("lot2", 100))
	_, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/lots/lot1/bids", "user1", map[string]any{"amount": 150})
	require.Equal(t, http.StatusCreated, w.Code)

	_, w = ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/lots/lot1/close", "seller", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	env.Advance(2 * time.Hour)

	// only the seller or the auction owner may close
	_, w = ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/lots/lot1/close", "user2", nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/lots/lot1/close", "seller", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := Data(t, resp)
	require.Equal(t, "LOT_END_WINNER", data["type"])
	require.Equal(t, "user1", data["high_bidder_id"])
	require.Equal(t, float64(100), data["price"])

	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/lots/lot2/close", "seller", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "INFO", Data(t, resp)["type"])

	// bids after the close are refused
	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/lots/lot1/bids", "user2", map[string]any{"amount": 500})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "ERROR", Data(t, resp)["type"])

	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/users/user1/lots", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	lots := resp["data"].([]any)
	require.Len(t, lots, 1)
	lot := lots[0].(map[string]any)
	require.Equal(t, "user1", lot["winner_id"])
	require.Equal(t, float64(100), lot["winning_price"])
}

// PostChatHandler Tests
func TestPostChatHandler(t *testing.T) {
	t.Parallel()

	lot := NewLot("lot1", 100)
	lot.ChatEnabled = true
	env := SetupTestEnv(t, lot)

	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/lots/lot1/chat", "user2", map[string]any{"message": "  is it signed?  "})
	require.Equal(t, http.StatusCreated, w.Code)
	data := Data(t, resp)
	require.Equal(t, "CHAT", data["type"])
	require.Equal(t, "is it signed?", data["message"])

	_, w = ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/lots/lot1/chat", "user2", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// GetLotsByUserHandler Tests
func TestGetLotsByUserHandler(t *testing.T) {
	t.Parallel()

	env := SetupTestEnv(t, NewLot("lot1", 10), NewLot("lot2", 10), NewLot("lot3", 10))
	for i, lotID := range []string{"lot1", "lot2"} {
		_, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, fmt.Sprintf("/lots/%s/bids", lotID), "user1", map[string]any{"amount": 20 + i})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	tests := []struct {
		name           string
		userID         string
		expectedLotIDs []string
	}{
		{name: "User_With_Lots", userID: "user1", expectedLotIDs: []string{"lot1", "lot2"}},
		{name: "User_Without_Lots", userID: "user2", expectedLotIDs: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/users/"+tt.userID+"/lots", "", nil)
			require.Equal(t, http.StatusOK, w.Code)

			lots := resp["data"].([]any)
			got := make([]string, 0, len(lots))
			for _, l := range lots {
				got = append(got, l.(map[string]any)["lot_id"].(string))
			}
			require.ElementsMatch(t, tt.expectedLotIDs, got)
		})
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	env := SetupTestEnv(t)
	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", resp["status"])
}
