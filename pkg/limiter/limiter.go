package limiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultTTL replaces a non-positive ttl.
const DefaultTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Visitors keeps one token bucket per client IP and forgets clients idle
// for longer than ttl.
type Visitors struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

func NewVisitors(rps int, burst int, ttl time.Duration) *Visitors {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Visitors{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
	}
}

func (v *Visitors) Allow(ip string) bool {
	return v.getVisitor(ip, time.Now()).Allow()
}

func (v *Visitors) getVisitor(ip string, now time.Time) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	vis, ok := v.visitors[ip]
	if !ok {
		vis = &visitor{limiter: rate.NewLimiter(v.limit, v.burst)}
		v.visitors[ip] = vis
	}
	vis.lastSeen = now

	return vis.limiter
}

// Cleanup drops visitors not seen since now - ttl.
func (v *Visitors) Cleanup(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for ip, vis := range v.visitors {
		if now.Sub(vis.lastSeen) > v.ttl {
			delete(v.visitors, ip)
		}
	}
}

func (v *Visitors) TTL() time.Duration {
	return v.ttl
}

func (v *Visitors) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.visitors)
}

// Limit is a gin middleware answering 429 once a client IP exceeds rps
// with the given burst.
func Limit(rps int, burst int, ttl time.Duration) gin.HandlerFunc {
	visitors := NewVisitors(rps, burst, ttl)

	go func() {
		for now := range time.Tick(visitors.TTL()) {
			visitors.Cleanup(now)
		}
	}()

	return Middleware(visitors)
}

func Middleware(visitors *Visitors) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !visitors.Allow(c.ClientIP()) {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
