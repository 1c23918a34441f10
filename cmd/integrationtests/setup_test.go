package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"lot-bidding/internal/auth"
	bidding "lot-bidding/internal/biddingService"
	"lot-bidding/internal/broadcast"
	model "lot-bidding/internal/models"
	"lot-bidding/internal/repository"
	"lot-bidding/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	testJWT = auth.JWT{Secret: []byte("integration-secret"), TokenTTL: time.Hour}
	start   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

// TestEnv bundles a router with the repository behind it and a clock the
// test can move
type TestEnv struct {
	Router *gin.Engine
	Repo   *repository.MemoryRepo

	mu  sync.Mutex
	now time.Time
}

func (e *TestEnv) Now() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

// Advance moves the service clock forward
func (e *TestEnv) Advance(d time.Duration) {
	e.mu.Lock()
	e.now = e.now.Add(d)
	e.mu.Unlock()
}

// NewLot builds an open lot with a reserve, ending an hour after start
func NewLot(lotID string, reserve int64) model.Lot {
	end := start.Add(time.Hour)
	return model.Lot{
		LotID:        lotID,
		SellerID:     "seller",
		Title:        lotID + " title",
		ReservePrice: reserve,
		DateCreated:  start.Add(-2 * time.Hour),
		DateEnd:      &end,
	}
}

// SetupTestEnv initializes the router with an in-memory repository seeded
// with the given lots and users seller, user1, user2 and user3
func SetupTestEnv(t *testing.T, lots ...model.Lot) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &TestEnv{Repo: repository.NewMemoryRepo(), now: start}
	for _, id := range []string{"seller", "user1", "user2", "user3"} {
		env.Repo.AddUser(model.User{UserID: id, Username: id})
	}
	for _, lot := range lots {
		env.Repo.AddLot(lot)
	}

	service := bidding.NewBiddingService(env.Repo, bidding.WithNow(env.Now))
	hub := broadcast.NewHub(broadcast.NewLocalLayer(), service, 0, 0)
	require.NoError(t, hub.Start(context.Background()))
	service.SetPublisher(hub)

	env.Router = server.SetupRouter(service, hub, testJWT, server.Options{})
	return env
}

// Token signs a bearer token for userID
func Token(t *testing.T, userID string) string {
	t.Helper()
	tok, _, err := testJWT.Sign(auth.Claims{UserID: userID, Username: userID})
	require.NoError(t, err)
	return tok
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the response. An empty userID sends no bearer token.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, userID string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err, "failed to marshal body")
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+Token(t, userID))
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to unmarshal response")
	}
	return resp, w
}

// Data returns the response's data object
func Data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", resp)
	return data
}
