package middleware

import (
	"net/http"
	"sync"
	"time"

	"stagetime/pkg/logger"
)

// ActorHeader identifies the caller on whose behalf a request is made.
// Handlers use it for owner checks; the rate limiter keys on it.
const ActorHeader = "X-Actor-ID"

type ActorExtractor func(r *http.Request) string

// ActorRateLimiter applies a sliding-window limit per actor.
type ActorRateLimiter struct {
	mu        sync.RWMutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor ActorExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewActorRateLimiter(limit int, window time.Duration, extractor ActorExtractor, log *logger.Logger) *ActorRateLimiter {
	limiter := &ActorRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *ActorRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for actor, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, actor)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *ActorRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *ActorRateLimiter) Allow(actor string) bool {
	if actor == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := make([]time.Time, 0, len(rl.requests[actor]))
	for _, ts := range rl.requests[actor] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[actor] = valid
		return false
	}

	rl.requests[actor] = append(valid, now)
	return true
}

func ActorRateLimit(limiter *ActorRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := DefaultActorExtractor(r)
			if limiter.extractor != nil {
				actor = limiter.extractor(r)
			}

			if actor == "" || limiter.Allow(actor) {
				next.ServeHTTP(w, r)
				return
			}

			rejectRateLimited(w, limiter.log, r, actor)
		})
	}
}

func rejectRateLimited(w http.ResponseWriter, log *logger.Logger, r *http.Request, actor string) {
	requestID := ""
	if rid := r.Context().Value(RequestIDKey); rid != nil {
		if id, ok := rid.(string); ok {
			requestID = id
		}
	}

	log.Warn("Rate limit exceeded",
		"request_id", requestID,
		"actor", actor,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
}

func DefaultActorExtractor(r *http.Request) string {
	return r.Header.Get(ActorHeader)
}
