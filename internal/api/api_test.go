package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"contacts_system/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// plainHasher stands in for bcrypt so tests skip the hashing cost
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "plain:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

// setupAPI builds a full router over an in-memory database and redis
func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// One shared in-memory database per test, named after the test so
	// parallel tests stay isolated
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Contact{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	r := gin.New()
	RegisterRoutes(r, db, rdb, plainHasher{}, testSecret, time.Hour)
	return r, db
}

// doJSON performs a JSON request against the router under test
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeJSON unmarshals a response body into out
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// registerAndLogin creates a user and returns its ID and a fresh token
func registerAndLogin(t *testing.T, r *gin.Engine, username, email, password string) (uint, string) {
	t.Helper()

	w := doJSON(t, r, "POST", "/users/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, 201, w.Code, "register: %s", w.Body.String())
	var reg struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, w, &reg)

	w = doJSON(t, r, "POST", "/users/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, 200, w.Code, "login: %s", w.Body.String())
	var auth AuthResponse
	decodeJSON(t, w, &auth)
	require.NotEmpty(t, auth.Token)

	return reg.ID, auth.Token
}
