package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	redisStore "payline-connector/internal/adapter/storage/redis"
	"payline-connector/internal/core/ports/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type idempotencyFixture struct {
	router *gin.Engine
	mr     *miniredis.Miniredis
	calls  atomic.Int32
	status int
}

func newIdempotencyFixture(t *testing.T) *idempotencyFixture {
	t.Helper()
	f := &idempotencyFixture{status: http.StatusOK}
	f.mr = miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: f.mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := redisStore.NewIdempotencyCache(client)
	f.router = gin.New()
	f.router.POST("/functions/:name", func(c *gin.Context) {
		c.Set(CtxMerchantID, "shop-1")
	}, Idempotency(cache, time.Hour, zerolog.Nop()), func(c *gin.Context) {
		n := f.calls.Add(1)
		c.JSON(f.status, gin.H{"call": n})
	})
	return f
}

func (f *idempotencyFixture) do(name, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/functions/"+name, nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	f := newIdempotencyFixture(t)

	first := f.do("doCapture", "key-1")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, `{"call":1}`, first.Body.String())

	second := f.do("doCapture", "key-1")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"call":1}`, second.Body.String())
	assert.Equal(t, "true", second.Header().Get(HeaderReplayed))
	assert.Equal(t, int32(1), f.calls.Load())

	assert.True(t, f.mr.Exists("payline:idempotency:shop-1:doCapture:key-1"))
	assert.False(t, f.mr.Exists("payline:idempotency:lock:shop-1:doCapture:key-1"), "reservation released")
}

func TestIdempotency_KeyScopedToFunction(t *testing.T) {
	f := newIdempotencyFixture(t)

	f.do("doCapture", "key-1")
	w := f.do("doRefund", "key-1")

	assert.JSONEq(t, `{"call":2}`, w.Body.String())
}

func TestIdempotency_WithoutHeaderPassesThrough(t *testing.T) {
	f := newIdempotencyFixture(t)

	f.do("doCapture", "")
	f.do("doCapture", "")

	assert.Equal(t, int32(2), f.calls.Load())
}

func TestIdempotency_ErrorsAreNotStored(t *testing.T) {
	f := newIdempotencyFixture(t)
	f.status = http.StatusPaymentRequired

	f.do("doAuthorization", "key-2")
	f.status = http.StatusOK
	w := f.do("doAuthorization", "key-2")

	assert.JSONEq(t, `{"call":2}`, w.Body.String())
	assert.Empty(t, w.Header().Get(HeaderReplayed))
}

func TestIdempotency_InFlightConflict(t *testing.T) {
	f := newIdempotencyFixture(t)
	f.mr.Set("payline:idempotency:lock:shop-1:doCapture:key-3", "1")

	w := f.do("doCapture", "key-3")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "IDEM_001")
	assert.Equal(t, int32(0), f.calls.Load())
}

func TestIdempotency_ClientGoneStillReleasesAndStores(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	router := gin.New()
	router.POST("/functions/:name", Idempotency(redisStore.NewIdempotencyCache(client), time.Hour, zerolog.Nop()), func(c *gin.Context) {
		cancel()
		c.JSON(http.StatusOK, gin.H{"captured": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/functions/doCapture", nil).WithContext(ctx)
	req.Header.Set(HeaderIdempotencyKey, "key-5")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, mr.Exists("payline:idempotency:lock:anonymous:doCapture:key-5"), "reservation released")
	assert.True(t, mr.Exists("payline:idempotency:anonymous:doCapture:key-5"))
}

func TestIdempotency_KeyTooLong(t *testing.T) {
	f := newIdempotencyFixture(t)

	long := make([]byte, maxIdempotencyKeyLen+1)
	for i := range long {
		long[i] = 'k'
	}
	w := f.do("doCapture", string(long))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIdempotency_CacheDownProcessesRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockIdempotencyCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "anonymous:getWallet:key-4").Return(nil, assert.AnError)

	router := gin.New()
	router.POST("/functions/:name", Idempotency(cache, time.Hour, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/functions/getWallet", nil)
	req.Header.Set(HeaderIdempotencyKey, "key-4")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
