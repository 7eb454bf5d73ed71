package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"payline-connector/internal/core/domain"
	"payline-connector/internal/core/ports"
	"payline-connector/pkg/apperror"
	"payline-connector/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 128
	reservationTTL       = time.Minute
)

// bodyCapture copies everything written to the client.
type bodyCapture struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a function call made again with
// the same Idempotency-Key. Only 200 responses are stored, so rejected calls
// can be retried. Requests without the header pass through.
func Idempotency(cache ports.IdempotencyCache, ttl time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := c.GetHeader(HeaderIdempotencyKey)
		if clientKey == "" {
			c.Next()
			return
		}
		if len(clientKey) > maxIdempotencyKeyLen {
			response.Error(c, apperror.Validation("Idempotency-Key is too long"))
			c.Abort()
			return
		}

		merchant := c.GetString(CtxMerchantID)
		if merchant == "" {
			merchant = "anonymous"
		}
		key := domain.BuildIdempotencyKey(merchant, c.Param("name"), clientKey)
		ctx := c.Request.Context()

		cached, err := cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Msg("idempotency lookup failed, processing request")
			c.Next()
			return
		}
		if cached != nil {
			c.Header(HeaderReplayed, "true")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		reserved, err := cache.Reserve(ctx, key, reservationTTL)
		if err != nil {
			log.Warn().Err(err).Msg("idempotency reservation failed, processing request")
			c.Next()
			return
		}
		if !reserved {
			response.Error(c, apperror.ErrRequestInProgress())
			c.Abort()
			return
		}
		// The outcome is recorded even if the client has gone away.
		ctx = context.WithoutCancel(ctx)
		defer func() {
			if err := cache.Release(ctx, key); err != nil {
				log.Warn().Err(err).Msg("releasing idempotency reservation")
			}
		}()

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture
		c.Next()

		if capture.Status() != http.StatusOK {
			return
		}
		if err := cache.Set(ctx, key, capture.body.Bytes(), ttl); err != nil {
			log.Warn().Err(err).Msg("storing idempotent response")
		}
	}
}
