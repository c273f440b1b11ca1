// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("GenerateID() returned invalid UUID %q: %v", id, err)
	}

	// Test randomness - two IDs should be different
	if GenerateID() == GenerateID() {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestValidateAdminPassword(t *testing.T) {
	tests := []struct {
		name     string
		provided string
		expected string
		wantErr  error
	}{
		{"matching", "s3cret", "s3cret", nil},
		{"wrong password", "guess", "s3cret", ErrInvalidAdminPassword},
		{"prefix only", "s3c", "s3cret", ErrInvalidAdminPassword},
		{"empty provided", "", "s3cret", ErrInvalidAdminPassword},
		{"not configured", "anything", "", ErrAdminNotConfigured},
		{"both empty", "", "", ErrAdminNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminPassword(tt.provided, tt.expected)
			if err != tt.wantErr {
				t.Errorf("ValidateAdminPassword() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAdminPasswordFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/admin/pending", nil)
	req.Header.Set(AdminPasswordHeader, "from-header")
	if got := AdminPasswordFromRequest(req); got != "from-header" {
		t.Errorf("expected header value, got %q", got)
	}

	req = httptest.NewRequest("GET", "/api/admin/pending?admin_password=from-query", nil)
	if got := AdminPasswordFromRequest(req); got != "from-query" {
		t.Errorf("expected query value, got %q", got)
	}

	// Header wins over query
	req = httptest.NewRequest("GET", "/api/admin/pending?admin_password=from-query", nil)
	req.Header.Set(AdminPasswordHeader, "from-header")
	if got := AdminPasswordFromRequest(req); got != "from-header" {
		t.Errorf("expected header to take precedence, got %q", got)
	}

	req = httptest.NewRequest("GET", "/api/admin/pending", nil)
	if got := AdminPasswordFromRequest(req); got != "" {
		t.Errorf("expected empty credential, got %q", got)
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"IPv4", "192.168.1.1", "ip-salt"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334", "ip-salt"},
		{"localhost", "127.0.0.1", "ip-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			// Should not be empty
			if hash == "" {
				t.Error("HashIP() returned empty string")
			}

			// Should be 16 hex characters (8 bytes * 2)
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}

			// Should be valid hex
			for _, c := range hash {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("HashIP() contains invalid hex char: %c", c)
				}
			}

			// Should be deterministic
			hash2 := HashIP(tt.ip, tt.salt)
			if hash != hash2 {
				t.Error("HashIP() is not deterministic")
			}
		})
	}

	// Different IPs should produce different hashes
	hash1 := HashIP("192.168.1.1", "salt")
	hash2 := HashIP("192.168.1.2", "salt")
	if hash1 == hash2 {
		t.Error("HashIP() produced same hash for different IPs")
	}

	// Different salts should produce different hashes
	hash3 := HashIP("192.168.1.1", "salt1")
	hash4 := HashIP("192.168.1.1", "salt2")
	if hash3 == hash4 {
		t.Error("HashIP() produced same hash for different salts")
	}
}

// Benchmark tests
func BenchmarkValidateAdminPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ValidateAdminPassword("candidate", "expected-password")
	}
}

func BenchmarkHashIP(b *testing.B) {
	for i := 0; i < b.N; i++ {
		HashIP("192.168.1.1", "salt")
	}
}
