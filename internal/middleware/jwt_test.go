package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"contacts_system/internal/domain"
	"contacts_system/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// protectedRouter builds a router with a single protected probe route
func protectedRouter(t *testing.T) (*gin.Engine, *redis.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(testSecret, rdb), func(c *gin.Context) {
		userID := c.MustGet(ContextUserID).(uint)
		claims := c.MustGet(ContextClaims).(*utils.Claims)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": claims.Email})
	})
	return r, rdb
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func issueToken(t *testing.T, expiry time.Duration) string {
	t.Helper()
	user := &domain.User{ID: 7, Username: "alice", Email: "alice@x.com"}
	tok, err := utils.GenerateJWT(user, testSecret, expiry)
	require.NoError(t, err)
	return tok
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	r, _ := protectedRouter(t)

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header")
}

func TestJWTAuthMiddleware_WrongScheme(t *testing.T) {
	r, _ := protectedRouter(t)

	w := get(r, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_MalformedToken(t *testing.T) {
	r, _ := protectedRouter(t)

	w := get(r, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Malformed token")
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	r, _ := protectedRouter(t)

	w := get(r, "Bearer "+issueToken(t, -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestJWTAuthMiddleware_WrongSignature(t *testing.T) {
	r, _ := protectedRouter(t)

	user := &domain.User{ID: 7, Username: "alice", Email: "alice@x.com"}
	tok, err := utils.GenerateJWT(user, "another-secret", time.Hour)
	require.NoError(t, err)

	w := get(r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestJWTAuthMiddleware_ValidTokenAttachesIdentity(t *testing.T) {
	r, _ := protectedRouter(t)

	w := get(r, "Bearer "+issueToken(t, time.Hour))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), "alice@x.com")
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	r, rdb := protectedRouter(t)

	tok := issueToken(t, time.Hour)

	// Accepted before revocation
	w := get(r, "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)

	claims, err := utils.ParseJWT(tok, testSecret)
	require.NoError(t, err)
	require.NoError(t, utils.RevokeToken(context.Background(), rdb, claims.ID, time.Hour))

	// Rejected afterwards, even though signature and expiry still check out
	w = get(r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}
