package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// loginThrottle blocks further login attempts from a client key once it
// accumulates too many recent failures. Stale failures age out lazily
// whenever the key is touched; a successful login clears the key.
type loginThrottle struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	failures map[string][]time.Time
}

func newLoginThrottle(limit int, window time.Duration) *loginThrottle {
	return &loginThrottle{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

func (throttle *loginThrottle) blocked(key string, now time.Time) bool {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	return len(throttle.recentLocked(key, now)) >= throttle.limit
}

func (throttle *loginThrottle) recordFailure(key string, now time.Time) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	throttle.failures[key] = append(throttle.recentLocked(key, now), now)
}

func (throttle *loginThrottle) clear(key string) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	delete(throttle.failures, key)
}

// recentLocked drops failures that fell out of the window and returns
// what is left. Callers hold the mutex.
func (throttle *loginThrottle) recentLocked(key string, now time.Time) []time.Time {
	recorded := throttle.failures[key]
	if len(recorded) == 0 {
		return nil
	}

	cutoff := now.Add(-throttle.window)
	kept := make([]time.Time, 0, len(recorded))
	for _, at := range recorded {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}

	if len(kept) == 0 {
		delete(throttle.failures, key)
		return nil
	}
	throttle.failures[key] = kept
	return kept
}

// clientKey identifies the caller for throttling. Fiber's resolved
// remote IP is enough for a single-instance deployment.
func clientKey(c *fiber.Ctx) string {
	if ip := strings.TrimSpace(c.IP()); ip != "" {
		return ip
	}
	return "unknown"
}
