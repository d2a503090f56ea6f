package token

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/boardlink/core/internal/middleware"
	"github.com/boardlink/core/internal/pkg/jwt"
	"github.com/boardlink/core/internal/store"
	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const tokenTestSecret = "token-handler-secret"

func signTokenCaller(t *testing.T, subject string) string {
	t.Helper()
	claims := jwtlib.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(tokenTestSecret))
	require.NoError(t, err)
	return signed
}

func newTokenRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	jwt.SetSecret(tokenTestSecret)
	ownerJWT := signTokenCaller(t, "user-a")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		rows := []map[string]interface{}{}
		if bearer == ownerJWT {
			rows = append(rows, map[string]interface{}{"id": "dev-1", "name": "Board", "owner_id": "user-a"})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}))
	t.Cleanup(srv.Close)

	st := store.New(srv.URL, "anon-key", "service-key", zap.NewNop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(NewService(st, 30), st).RegisterRoutes(api, middleware.Auth())
	return r, ownerJWT
}

func issueToken(t *testing.T, r *gin.Engine, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/devices/dev-1/token", body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeIssued parses the response envelope and verifies the signed token
// is a device credential for dev-1. Returns the advertised expiry.
func decodeIssued(t *testing.T, w *httptest.ResponseRecorder) time.Time {
	t.Helper()
	var body struct {
		OK    bool   `json:"ok"`
		Token string `json:"token"`
		Exp   string `json:"exp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)

	claims, err := jwt.ParseDeviceToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "dev-1", claims.DeviceID)
	assert.Equal(t, jwt.RoleDevice, claims.Role)

	exp, err := time.Parse(time.RFC3339, body.Exp)
	require.NoError(t, err)
	return exp
}

func TestIssueTokenRequiresAuth(t *testing.T) {
	r, _ := newTokenRouter(t)
	w := issueToken(t, r, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueTokenForeignDeviceIsForbidden(t *testing.T) {
	r, _ := newTokenRouter(t)
	stranger := signTokenCaller(t, "user-b")
	w := issueToken(t, r, stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIssueTokenDefaultTTL(t *testing.T) {
	r, owner := newTokenRouter(t)
	w := issueToken(t, r, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	exp := decodeIssued(t, w)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), exp, time.Minute)
}

func TestIssueTokenTTLOverride(t *testing.T) {
	r, owner := newTokenRouter(t)
	w := issueToken(t, r, owner, strings.NewReader(`{"ttl_days":7}`))
	require.Equal(t, http.StatusOK, w.Code)

	exp := decodeIssued(t, w)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)
}

func TestIssueTokenTTLOverrideWithoutContentLength(t *testing.T) {
	r, owner := newTokenRouter(t)
	// A chunked upload carries no Content-Length; the ttl_days override must
	// still be honored.
	w := issueToken(t, r, owner, io.NopCloser(strings.NewReader(`{"ttl_days":7}`)))
	require.Equal(t, http.StatusOK, w.Code)

	exp := decodeIssued(t, w)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)
}

func TestIssueTokenRejectsMalformedBody(t *testing.T) {
	r, owner := newTokenRouter(t)
	w := issueToken(t, r, owner, strings.NewReader(`{not json`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
