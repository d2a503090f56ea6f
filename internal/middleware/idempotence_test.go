package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotenceRouter(t *testing.T, rdb *redis.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Idempotence(rdb))
	r.POST("/apply", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/fail", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})
	r.GET("/list", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func idemRequest(r *gin.Engine, method, path, token, body string, hdr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if hdr != "" {
		req.Header.Set("x-idempotence", hdr)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotenceRejectsDuplicateWithinWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newIdempotenceRouter(t, rdb)

	first := idemRequest(r, http.MethodPost, "/apply", "caller-a", `{"timezone":"UTC"}`, "")
	require.Equal(t, http.StatusOK, first.Code)

	second := idemRequest(r, http.MethodPost, "/apply", "caller-a", `{"timezone":"UTC"}`, "")
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "already succeeded")
}

func TestIdempotenceWindowExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newIdempotenceRouter(t, rdb)

	require.Equal(t, http.StatusOK, idemRequest(r, http.MethodPost, "/apply", "caller-a", `{"timezone":"UTC"}`, "").Code)
	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, idemRequest(r, http.MethodPost, "/apply", "caller-a", `{"timezone":"UTC"}`, "").Code)
}

func TestIdempotenceDistinguishesBodyAndCaller(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newIdempotenceRouter(t, rdb)

	require.Equal(t, http.StatusOK, idemRequest(r, http.MethodPost, "/apply", "caller-a", `{"timezone":"UTC"}`, "").Code)

	// Different patch, same caller.
	assert.Equal(t, http.StatusOK, idemRequest(r, http.MethodPost, "/apply", "caller-a", `{"timezone":"America/Chicago"}`, "").Code)
	// Same patch, different caller.
	assert.Equal(t, http.StatusOK, idemRequest(r, http.MethodPost, "/apply", "caller-b", `{"timezone":"UTC"}`, "").Code)
}

func TestIdempotenceIgnoresReads(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newIdempotenceRouter(t, rdb)

	assert.Equal(t, http.StatusOK, idemRequest(r, http.MethodGet, "/list", "caller-a", "", "").Code)
	assert.Equal(t, http.StatusOK, idemRequest(r, http.MethodGet, "/list", "caller-a", "", "").Code)
}

func TestIdempotenceFailedRequestAllowsRetry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newIdempotenceRouter(t, rdb)

	// A non-2xx outcome releases the key so the caller can retry at once.
	assert.Equal(t, http.StatusInternalServerError, idemRequest(r, http.MethodPost, "/fail", "caller-a", `{}`, "").Code)
	assert.Equal(t, http.StatusInternalServerError, idemRequest(r, http.MethodPost, "/fail", "caller-a", `{}`, "").Code)
}

func TestIdempotenceHeaderOverridesDerivedKey(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newIdempotenceRouter(t, rdb)

	// Distinct bodies, but the client pinned the same explicit key.
	require.Equal(t, http.StatusOK, idemRequest(r, http.MethodPost, "/apply", "caller-a", `{"a":1}`, "pin-1").Code)
	assert.Equal(t, http.StatusConflict, idemRequest(r, http.MethodPost, "/apply", "caller-a", `{"b":2}`, "pin-1").Code)
}

func TestIdempotenceBestEffortWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()
	r := newIdempotenceRouter(t, rdb)

	// The guard protects against double clicks, never against redis outages.
	assert.Equal(t, http.StatusOK, idemRequest(r, http.MethodPost, "/apply", "caller-a", `{"timezone":"UTC"}`, "").Code)
	assert.Equal(t, http.StatusOK, idemRequest(r, http.MethodPost, "/apply", "caller-a", `{"timezone":"UTC"}`, "").Code)
}

func TestResolveIdempotenceKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	keyFor := func(method, path, body, token, hdr string) string {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if hdr != "" {
			req.Header.Set(idempotenceHeader, hdr)
		}
		c.Request = req
		key, err := resolveIdempotenceKey(c)
		require.NoError(t, err)
		return key
	}

	base := keyFor(http.MethodPost, "/apply", `{"a":1}`, "tok-1", "")
	assert.Equal(t, base, keyFor(http.MethodPost, "/apply", `{"a":1}`, "tok-1", ""), "identical requests must derive the same key")
	assert.NotEqual(t, base, keyFor(http.MethodPost, "/apply", `{"a":2}`, "tok-1", ""))
	assert.NotEqual(t, base, keyFor(http.MethodPost, "/apply", `{"a":1}`, "tok-2", ""))
	assert.NotEqual(t, base, keyFor(http.MethodPost, "/other", `{"a":1}`, "tok-1", ""))

	assert.Equal(t, "pinned", keyFor(http.MethodPost, "/apply", `{"a":1}`, "tok-1", "pinned"))
	assert.Empty(t, keyFor(http.MethodPost, "/apply", "", "", ""), "anonymous empty requests carry no key")
}
