// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin credential check and ID generation.

# Admin Password

Moderation endpoints are guarded by a single shared secret configured with
ADMIN_PASSWORD. Clients send it in the X-Admin-Password header, or in the
admin_password query parameter:

	provided := auth.AdminPasswordFromRequest(r)
	err := auth.ValidateAdminPassword(provided, cfg.AdminPassword)

The comparison runs over SHA-256 digests with hmac.Equal so neither the
content nor the length of the secret leaks through timing. An empty
configured password rejects every request with ErrAdminNotConfigured.

# ID Generation

Records use random UUIDs:

	id := auth.GenerateID()

# IP Hashing

Request logs carry a hashed client address rather than the raw one:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
