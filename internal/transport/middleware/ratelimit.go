package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/wordpractice/pkg/ctxutil"
)

const (
	rateLimitBody = `{"error":"rate limit exceeded"}` + "\n"
	bucketIdleTTL = 10 * time.Minute
)

// RateLimiter hands out per-caller token buckets. A caller is the signed-in
// user, or the client IP for guests. Every Limit call gets its own set of
// buckets, so routes limited at different rates do not share budgets.
type RateLimiter struct {
	now  func() time.Time
	stop chan struct{}

	mu     sync.Mutex
	groups []*limitGroup
}

type limitGroup struct {
	capacity float64
	perSec   float64

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter starts a limiter that drops idle buckets every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{now: time.Now, stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval)
	return rl
}

func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit allows each caller maxPerMinute requests, refilled continuously.
// A rejected request gets 429 with a Retry-After in whole seconds.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	g := &limitGroup{
		capacity: float64(maxPerMinute),
		perSec:   float64(maxPerMinute) / 60,
		buckets:  make(map[string]*bucket),
	}
	rl.mu.Lock()
	rl.groups = append(rl.groups, g)
	rl.mu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wait, ok := g.take(callerKey(r), rl.now())
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(rateLimitBody)) //nolint:errcheck
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func callerKey(r *http.Request) string {
	if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// take spends one token of key's bucket. When the bucket is empty it reports
// how long until the next token.
func (g *limitGroup) take(key string, now time.Time) (time.Duration, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	b, ok := g.buckets[key]
	if !ok {
		b = &bucket{tokens: g.capacity, last: now}
		g.buckets[key] = b
	}
	b.tokens = min(g.capacity, b.tokens+now.Sub(b.last).Seconds()*g.perSec)
	b.last = now

	if b.tokens < 1 {
		return time.Duration((1 - b.tokens) / g.perSec * float64(time.Second)), false
	}
	b.tokens--
	return 0, true
}

func (g *limitGroup) evictIdle(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for key, b := range g.buckets {
		if now.Sub(b.last) > bucketIdleTTL {
			delete(g.buckets, key)
		}
	}
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			groups := append([]*limitGroup(nil), rl.groups...)
			rl.mu.Unlock()
			now := rl.now()
			for _, g := range groups {
				g.evictIdle(now)
			}
		}
	}
}
