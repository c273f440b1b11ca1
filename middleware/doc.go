// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs completion with method, path and duration_ms.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin)(mux),
	}

Allows methods GET, POST, DELETE, OPTIONS with headers Content-Type and
X-Admin-Password. An origin of "*" reflects the caller's Origin.

# Rate Limiting

Public write endpoints are throttled per client IP:

	limiter := middleware.NewRateLimiter(cfg.SubmitRate, cfg.SubmitBurst, cfg.TrustProxy)
	mux.HandleFunc("POST /api/progressions", limiter.Wrap(h.Create))

Requests over the limit get 429 Too Many Requests. Buckets of clients that
have been idle long enough to refill are dropped.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.ProgressionPayload
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r, cfg.TrustProxy)

With trustProxy it checks X-Forwarded-For, then X-Real-IP, then RemoteAddr;
without it only RemoteAddr is used. The result is the origin address checked
against the block list and the rate limiter key.
*/
package middleware
