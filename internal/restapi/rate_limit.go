package restapi

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
	"trajetviz.dev/internal/app"
	"trajetviz.dev/internal/clock"
	"trajetviz.dev/internal/logging"
	"trajetviz.dev/internal/models"
)

// Requests without a key share one bucket, so a flood of 401s is throttled
// like any other client.
const anonymousBucket = "-"

const (
	bucketIdleTTL = 10 * time.Minute
	sweepEvery    = 5 * time.Minute
)

type keyBucket struct {
	limiter  *rate.Limiter
	lastUsed atomic.Int64
}

// KeyRateLimiter gives each API key a token bucket holding perSecond
// requests and refilled at that rate. Exempt keys are never counted.
type KeyRateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*keyBucket

	limit  rate.Limit
	burst  int
	exempt map[string]struct{}
	clock  clock.Clock

	sweep    *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

// NewKeyRateLimiter starts a limiter and its idle bucket sweeper. A zero
// perSecond rejects everything; a negative one disables limiting.
func NewKeyRateLimiter(perSecond int, exemptKeys []string, c clock.Clock) *KeyRateLimiter {
	limit := rate.Limit(perSecond)
	switch {
	case perSecond < 0:
		limit = rate.Inf
	case perSecond == 0:
		limit = 0
	}

	exempt := make(map[string]struct{}, len(exemptKeys))
	for _, key := range exemptKeys {
		if key = strings.TrimSpace(key); key != "" {
			exempt[key] = struct{}{}
		}
	}

	rl := &KeyRateLimiter{
		buckets: make(map[string]*keyBucket),
		limit:   limit,
		burst:   perSecond,
		exempt:  exempt,
		clock:   c,
		sweep:   time.NewTicker(sweepEvery),
		done:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Limit wraps next so each key spends one token per request.
func (rl *KeyRateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := app.APIKey(r)
		if _, ok := rl.exempt[key]; ok {
			next.ServeHTTP(w, r)
			return
		}
		if key == "" {
			key = anonymousBucket
		}

		if !rl.allow(key) {
			rl.reject(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *KeyRateLimiter) allow(key string) bool {
	now := rl.clock.Now()
	return rl.bucket(key, now).limiter.AllowN(now, 1)
}

func (rl *KeyRateLimiter) bucket(key string, now time.Time) *keyBucket {
	rl.mu.RLock()
	b, ok := rl.buckets[key]
	rl.mu.RUnlock()

	if !ok {
		rl.mu.Lock()
		if b, ok = rl.buckets[key]; !ok {
			b = &keyBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
			rl.buckets[key] = b
		}
		rl.mu.Unlock()
	}
	b.lastUsed.Store(now.UnixNano())
	return b
}

// retryAfter is the wait, in whole seconds, until a bucket holds a token.
func (rl *KeyRateLimiter) retryAfter() int {
	switch rl.limit {
	case 0:
		return int(time.Hour / time.Second)
	case rate.Inf:
		return 1
	}
	return max(1, int(math.Ceil(1/float64(rl.limit))))
}

func (rl *KeyRateLimiter) reject(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", noStore)
	h.Set("Retry-After", strconv.Itoa(rl.retryAfter()))
	h.Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
	h.Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	err := json.NewEncoder(w).Encode(models.ResponseModel{
		Code:        http.StatusTooManyRequests,
		CurrentTime: models.ResponseCurrentTime(rl.clock),
		Text:        "rate limit exceeded",
		Version:     models.ResponseVersion,
	})
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode rate limit response", err)
	}
}

// evictIdle drops buckets unused for bucketIdleTTL. A returning client starts
// with a full bucket.
func (rl *KeyRateLimiter) evictIdle() {
	cutoff := rl.clock.Now().Add(-bucketIdleTTL).UnixNano()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, b := range rl.buckets {
		if b.lastUsed.Load() < cutoff {
			delete(rl.buckets, key)
		}
	}
}

func (rl *KeyRateLimiter) sweepLoop() {
	for {
		select {
		case <-rl.sweep.C:
			rl.evictIdle()
		case <-rl.done:
			return
		}
	}
}

// Stop ends the sweeper. In-flight requests are unaffected; safe to call
// more than once.
func (rl *KeyRateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.done)
		rl.sweep.Stop()
	})
}
