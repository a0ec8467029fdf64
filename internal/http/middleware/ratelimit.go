package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/rekabarchive/memorial-service/internal/ratelimit"
	"github.com/rekabarchive/memorial-service/internal/utils/response"
)

type RateLimitConfig struct {
	redisClient *redis.Client
	limiters    map[string]*ratelimit.TokenBucket
}

func NewRateLimitConfig(redisClient *redis.Client) *RateLimitConfig {
	config := &RateLimitConfig{
		redisClient: redisClient,
		limiters:    make(map[string]*ratelimit.TokenBucket),
	}

	// Configure rate limits for different actions
	// POST /api/tributes: 5/min per remote address (anonymous surface)
	config.limiters["tributes"] = ratelimit.NewTokenBucket(redisClient, 5, 5)

	// POST /api/gallery and /api/music: 20/min per admin
	config.limiters["uploads"] = ratelimit.NewTokenBucket(redisClient, 20, 20)

	return config
}

// callerKey identifies the bucket owner: the authenticated user when there is
// one, otherwise the remote address, so the public tribute form is limited
// per visitor.
func callerKey(r *http.Request) string {
	if userID, ok := GetUserIDFromContext(r.Context()); ok {
		return userID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rlc *RateLimitConfig) RateLimitMiddleware(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get the appropriate rate limiter
			limiter, exists := rlc.limiters[action]
			if !exists {
				// If no rate limiter configured for this action, allow the request
				next.ServeHTTP(w, r)
				return
			}

			key := callerKey(r)

			// Check if the caller is allowed to perform this action
			allowed, err := limiter.Allow(r.Context(), key, action)
			if err != nil {
				response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(
					fmt.Errorf("rate limit check failed: %w", err)))
				return
			}

			// Set rate limit headers
			remaining, _ := limiter.GetRemaining(r.Context(), key, action)
			w.Header().Set("X-RateLimit-Limit", getLimitForAction(action))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("X-RateLimit-Reset", "60") // 1 minute window

			if !allowed {
				response.WriteJSON(w, http.StatusTooManyRequests, response.GeneralError(
					errors.New("rate limit exceeded")))
				return
			}

			// Allow the request to proceed
			next.ServeHTTP(w, r)
		})
	}
}

// Helper function to get the limit for display in headers
func getLimitForAction(action string) string {
	switch action {
	case "tributes":
		return "5"
	case "uploads":
		return "20"
	default:
		return "100" // default fallback
	}
}
