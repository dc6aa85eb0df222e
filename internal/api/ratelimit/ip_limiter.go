package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	DefaultIPRequestsPerMinute = 20
	DefaultIPWindowDuration    = time.Minute
)

type ipBucket struct {
	count     int64
	resetTime time.Time
}

// IPLimiter is a fixed-window request limiter keyed by client IP.
type IPLimiter struct {
	mu        sync.Mutex
	ipBuckets map[string]*ipBucket

	ipLimit  int64
	ipWindow time.Duration
	now      func() time.Time
}

// NewIPLimiter allows perWindow requests per IP per window. Non-positive
// arguments fall back to the defaults.
func NewIPLimiter(perWindow int, window time.Duration) *IPLimiter {
	if perWindow <= 0 {
		perWindow = DefaultIPRequestsPerMinute
	}
	if window <= 0 {
		window = DefaultIPWindowDuration
	}
	return &IPLimiter{
		ipBuckets: make(map[string]*ipBucket),
		ipLimit:   int64(perWindow),
		ipWindow:  window,
		now:       time.Now,
	}
}

func (l *IPLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !l.Allow(ip) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
			}

			return next(c)
		}
	}
}

// Allow records a request from ip and reports whether it is within budget.
func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	bucket, exists := l.ipBuckets[ip]
	if !exists || now.After(bucket.resetTime) {
		l.ipBuckets[ip] = &ipBucket{
			count:     1,
			resetTime: now.Add(l.ipWindow),
		}
		return true
	}

	if bucket.count >= l.ipLimit {
		return false
	}

	bucket.count++
	return true
}

// Cleanup drops expired buckets.
func (l *IPLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for ip, bucket := range l.ipBuckets {
		if now.After(bucket.resetTime) {
			delete(l.ipBuckets, ip)
		}
	}
}

// Len returns the number of tracked IPs.
func (l *IPLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ipBuckets)
}
