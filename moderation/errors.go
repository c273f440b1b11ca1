// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package moderation

import "errors"

// Each condition is a distinct business outcome; callers match them with
// errors.Is. Wrapped errors carry the detail message.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrBlocked      = errors.New("submissions from this address are blocked")
	ErrConflict     = errors.New("conflict")
)
