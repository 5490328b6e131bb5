package limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PerKey hands out one token bucket per key (client IP). Buckets idle for
// longer than ttl are dropped on the next sweep.
type PerKey struct {
	limit rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewPerHour allows perHour events per key, with bursts of up to burst.
func NewPerHour(perHour, burst int) *PerKey {
	if perHour <= 0 {
		perHour = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return New(rate.Every(time.Hour/time.Duration(perHour)), burst, 2*time.Hour)
}

func New(limit rate.Limit, burst int, ttl time.Duration) *PerKey {
	return &PerKey{
		limit:    limit,
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
		visitors: map[string]*visitor{},
	}
}

// Allow consumes a token for key.
func (l *PerKey) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.ttl {
		l.sweep(now)
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *PerKey) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

func (l *PerKey) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
