// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/android-cat/ChordProgressShare/models"
)

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("request started",
			"method", r.Method,
			"path", r.URL.Path,
		)

		next(w, r)

		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// CORS allows cross-origin requests from allowedOrigin. "*" or an empty
// value reflects the request's Origin.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := allowedOrigin
			if origin == "" || origin == "*" {
				origin = r.Header.Get("Origin")
				if origin == "" {
					origin = "*"
				}
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Password")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetClientIP extracts the client IP address. With trustProxy it checks
// X-Forwarded-For, then X-Real-IP, before falling back to RemoteAddr.
// Without it the headers are ignored, since any client can set them.
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// Check X-Forwarded-For (load balancers)
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// Take first IP in chain
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}

		// Check X-Real-IP (nginx)
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// minIdleTTL bounds how soon an idle client's bucket may be dropped.
const minIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket.
// Buckets idle for longer than it takes them to refill are dropped.
type RateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*clientLimiter
	limit      rate.Limit
	burst      int
	trustProxy bool
	idleTTL    time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

// NewRateLimiter allows perMinute requests per minute per client, with
// bursts of up to burst requests. trustProxy is passed to GetClientIP.
func NewRateLimiter(perMinute float64, burst int, trustProxy bool) *RateLimiter {
	if burst < 1 {
		burst = 1
	}

	idle := minIdleTTL
	if perMinute > 0 {
		refill := time.Duration(float64(burst) / perMinute * float64(time.Minute))
		if refill > idle {
			idle = refill
		}
	}

	return &RateLimiter{
		limiters:   make(map[string]*clientLimiter),
		limit:      rate.Limit(perMinute / 60),
		burst:      burst,
		trustProxy: trustProxy,
		idleTTL:    idle,
		lastSweep:  time.Now(),
		now:        time.Now,
	}
}

// Allow reports whether a request from ip may proceed now.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	c, ok := rl.limiters[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = c
	}
	c.lastSeen = now
	rl.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// sweep drops idle buckets. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, c := range rl.limiters {
		if now.Sub(c.lastSeen) >= rl.idleTTL {
			delete(rl.limiters, ip)
		}
	}
	rl.lastSweep = now
}

// Len returns the number of clients currently tracked.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Wrap rejects requests over the limit with 429 Too Many Requests.
func (rl *RateLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(GetClientIP(r, rl.trustProxy)) {
			w.Header().Set("Retry-After", "60")
			ErrorResponse(w, http.StatusTooManyRequests, "Too many submissions, try again later")
			return
		}
		next(w, r)
	}
}
