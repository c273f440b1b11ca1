// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminPassword = errors.New("invalid admin password")
	ErrAdminNotConfigured   = errors.New("admin password not configured")
)

// AdminPasswordHeader carries the admin credential. The query parameter
// admin_password is accepted as well for the web client.
const AdminPasswordHeader = "X-Admin-Password"

// GenerateID returns a new random UUID string
func GenerateID() string {
	return uuid.NewString()
}

// ValidateAdminPassword compares the provided credential with the
// configured one in constant time
func ValidateAdminPassword(provided, expected string) error {
	if expected == "" {
		return ErrAdminNotConfigured
	}
	// Compare digests so the comparison does not leak the length
	a := sha256.Sum256([]byte(provided))
	b := sha256.Sum256([]byte(expected))
	if provided == "" || !hmac.Equal(a[:], b[:]) {
		return ErrInvalidAdminPassword
	}
	return nil
}

// AdminPasswordFromRequest extracts the admin credential from a request
func AdminPasswordFromRequest(r *http.Request) string {
	if p := r.Header.Get(AdminPasswordHeader); p != "" {
		return p
	}
	return r.URL.Query().Get("admin_password")
}

// HashIP creates a one-way hash of an IP address for log lines
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 8 bytes are enough to correlate requests
	return hex.EncodeToString(sum[:8])
}
