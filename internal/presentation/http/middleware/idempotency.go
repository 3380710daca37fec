package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

const maxIdempotencyKeyLength = 255

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	// Now defaults to time.Now
	Now func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func hashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// replayOrReject answers a request whose key is already on record. A key that
// is still pending belongs to a request in flight, so the caller gets 409.
func replayOrReject(c *gin.Context, existing *entity.IdempotencyKey, requestHash string) {
	switch {
	case !existing.MatchesRequest(requestHash):
		response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used with a different request body")
	case existing.IsPending():
		response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is already being processed")
	default:
		c.Header("X-Idempotency-Replayed", "true")
		c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
	}
	c.Abort()
}

// IdempotencyRequired requires an Idempotency-Key on POST requests and
// replays the stored response when the same user retries the same key.
// The key is claimed with a pending row before the handler runs, so of two
// concurrent requests only one reaches the handler. Only 2xx responses are
// kept; anything else releases the key so a failed booking can be retried.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" || len(idempotencyKey) > maxIdempotencyKeyLength {
			response.BadRequest(c, "Idempotency-Key header is required for this request")
			c.Abort()
			return
		}

		userIDValue, exists := c.Get("user_id")
		userID, ok := userIDValue.(uuid.UUID)
		if !exists || !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Could not read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		requestHash := hashBody(body)

		ctx := c.Request.Context()
		existing, err := config.Repo.GetByKey(ctx, idempotencyKey, userID)
		if err != nil {
			response.InternalServerError(c, "Failed to check idempotency key")
			c.Abort()
			return
		}

		if existing != nil {
			if !existing.IsExpiredAt(now()) {
				replayOrReject(c, existing, requestHash)
				return
			}
			// The expired row still holds the unique index.
			if err := config.Repo.DeleteExpired(ctx, now()); err != nil {
				log.Printf("Failed to purge expired idempotency keys: %v", err)
			}
		}

		claim := &entity.IdempotencyKey{
			ID:          uuid.New(),
			Key:         idempotencyKey,
			UserID:      userID,
			Endpoint:    c.Request.Method + " " + c.FullPath(),
			RequestHash: requestHash,
			ExpiresAt:   now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(ctx, claim); err != nil {
			if !errors.Is(err, repository.ErrDuplicateKey) {
				log.Printf("Failed to claim idempotency key %s: %v", idempotencyKey, err)
				response.InternalServerError(c, "Failed to check idempotency key")
				c.Abort()
				return
			}
			// Lost the race to a concurrent request with the same key.
			winner, err := config.Repo.GetByKey(ctx, idempotencyKey, userID)
			if err != nil || winner == nil {
				response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is already being processed")
				c.Abort()
				return
			}
			replayOrReject(c, winner, requestHash)
			return
		}

		// The claim is settled even if the client goes away or the handler panics.
		settleCtx := context.WithoutCancel(ctx)
		settled := false
		defer func() {
			if !settled {
				if err := config.Repo.Delete(settleCtx, claim.ID); err != nil {
					log.Printf("Failed to release idempotency key %s: %v", idempotencyKey, err)
				}
			}
		}()

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		if err := config.Repo.Complete(settleCtx, claim.ID, status, blw.body.String(), now().Add(IdempotencyKeyTTL)); err != nil {
			log.Printf("Failed to store idempotency key %s: %v", idempotencyKey, err)
			return
		}
		settled = true
	}
}
