package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/Domenick1991/flightdesk/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ctxRequestID = "request_id"
	ctxUserID    = "user_id"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type IdempotencyStore interface {
	ClaimIdempotencyKey(ctx context.Context, key string, ttl time.Duration) (bool, error)
	IdempotentResponse(ctx context.Context, key string) ([]byte, bool, error)
	StoreIdempotentResponse(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	ReleaseIdempotencyKey(ctx context.Context, key string) error
}

// RequestID adds a unique request ID to each request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ctxRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestLogger logs every request once it completes, with any errors the
// handlers attached.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"request_id": c.GetString(ctxRequestID),
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.WithField("error", c.Errors.String()).Error("HTTP request failed")
			return
		}
		entry.Info("HTTP request")
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// RequireAuth accepts "Authorization: Bearer <token>" and stores the
// token subject as the request's user id.
func RequireAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		claims, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(ctxUserID, claims.Subject)
		c.Next()
	}
}

type savedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the first response for a repeated Idempotency-Key.
// Keys are scoped per user, so it must run after RequireAuth. When the store
// is unreachable the request proceeds without protection.
func Idempotency(store IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if store == nil || key == "" {
			c.Next()
			return
		}
		scoped := c.GetString(ctxUserID) + ":" + key
		ctx := c.Request.Context()

		claimed, err := store.ClaimIdempotencyKey(ctx, scoped, ttl)
		if err != nil {
			_ = c.Error(err)
			c.Next()
			return
		}
		if !claimed {
			replayOrConflict(c, store, scoped)
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		defer func() {
			if r := recover(); r != nil {
				_ = store.ReleaseIdempotencyKey(context.WithoutCancel(ctx), scoped)
				panic(r)
			}
		}()
		c.Next()

		status := rec.Status()
		if status >= http.StatusInternalServerError {
			_ = store.ReleaseIdempotencyKey(ctx, scoped)
			return
		}
		payload, err := json.Marshal(savedResponse{Status: status, Body: rec.body.Bytes()})
		if err != nil {
			_ = store.ReleaseIdempotencyKey(ctx, scoped)
			return
		}
		if err := store.StoreIdempotentResponse(ctx, scoped, payload, ttl); err != nil {
			_ = c.Error(err)
		}
	}
}

func replayOrConflict(c *gin.Context, store IdempotencyStore, key string) {
	payload, done, err := store.IdempotentResponse(c.Request.Context(), key)
	if err == nil && done {
		var saved savedResponse
		if json.Unmarshal(payload, &saved) == nil {
			c.Header("X-Idempotency-Hit", "true")
			c.Data(saved.Status, "application/json; charset=utf-8", saved.Body)
			c.Abort()
			return
		}
	}
	c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "A request with this Idempotency-Key is already in progress"})
}
