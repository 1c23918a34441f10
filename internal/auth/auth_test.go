package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testJWT = JWT{Secret: []byte("secret"), TokenTTL: time.Hour}

func TestJWT_SignVerify(t *testing.T) {
	t.Parallel()

	tok, exp, err := testJWT.Sign(Claims{UserID: "user1", Username: "one"})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := testJWT.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user1", claims.UserID)
	require.Equal(t, "one", claims.Username)
	require.Equal(t, "user1", claims.Subject)
	require.Equal(t, issuer, claims.Issuer)
}

func TestJWT_VerifyRejects(t *testing.T) {
	t.Parallel()

	expired, _, err := testJWT.Sign(Claims{
		UserID:           "user1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	})
	require.NoError(t, err)

	otherKey, _, err := JWT{Secret: []byte("other"), TokenTTL: time.Hour}.Sign(Claims{UserID: "user1"})
	require.NoError(t, err)

	noUser, _, err := testJWT.Sign(Claims{})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expired},
		{name: "wrong_secret", token: otherKey},
		{name: "no_user", token: noUser},
		{name: "garbage", token: "not-a-token"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := testJWT.Verify(tc.token)
			require.Error(t, err)
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	tok, _, err := testJWT.Sign(Claims{UserID: "user1"})
	require.NoError(t, err)

	router := gin.New()
	router.Use(OptionalAuth(testJWT))
	router.GET("/open", func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) })
	router.GET("/closed", RequireAuth(), func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) })

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "anonymous_open", path: "/open", wantStatus: http.StatusOK, wantBody: ""},
		{name: "header_token", path: "/open", header: "Bearer " + tok, wantStatus: http.StatusOK, wantBody: "user1"},
		{name: "query_token", path: "/open?token=" + tok, wantStatus: http.StatusOK, wantBody: "user1"},
		{name: "lowercase_scheme", path: "/closed", header: "bearer " + tok, wantStatus: http.StatusOK, wantBody: "user1"},
		{name: "bad_token", path: "/open", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "anonymous_closed", path: "/closed", wantStatus: http.StatusUnauthorized},
		{name: "wrong_scheme", path: "/closed", header: "Basic " + tok, wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				require.Equal(t, tc.wantBody, w.Body.String())
			}
		})
	}
}
