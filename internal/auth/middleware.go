package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lot-bidding/internal/biddingerrors"
	"lot-bidding/utils"
)

const claimsKey = "auth.claims"

// ClaimsFrom returns the verified claims stored on the request, if any
func ClaimsFrom(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return Claims{}, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}

// UserID returns the authenticated user's id, or "" for anonymous requests
func UserID(c *gin.Context) string {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return ""
	}
	return claims.UserID
}

// OptionalAuth verifies a bearer token when one is sent. Anonymous requests
// pass through; a bad token is rejected. Browsers cannot set headers on a
// websocket handshake, so a "token" query parameter is accepted as well.
func OptionalAuth(j JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearerToken(c.GetHeader("Authorization"))
		if tok == "" {
			tok = strings.TrimSpace(c.Query("token"))
		}
		if tok == "" {
			c.Next()
			return
		}
		claims, err := j.Verify(tok)
		if err != nil {
			utils.AbortJSONError(c, http.StatusUnauthorized, biddingerrors.ErrUnauthenticated, "invalid token")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAuth rejects requests that OptionalAuth left anonymous
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := ClaimsFrom(c); !ok {
			utils.AbortJSONError(c, http.StatusUnauthorized, biddingerrors.ErrUnauthenticated, "missing bearer token")
			return
		}
		c.Next()
	}
}

func bearerToken(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	parts := strings.SplitN(v, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
