// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package moderation implements the submission workflow: anonymous posts and
edit requests wait as pending submissions until an administrator approves
or rejects them.

# Lifecycle

	Submit  -> pending
	Process(approve) -> approved (published or original overwritten)
	Process(reject)  -> rejected

Each submission leaves pending exactly once. Concurrent Process calls for
the same ID race on a conditional update; the loser gets ErrNotFound.

# Errors

Every failure wraps one of the package sentinels, so callers can map them
with errors.Is:

  - ErrValidation: malformed payload or unknown action
  - ErrUnauthorized: missing or wrong admin credential
  - ErrNotFound: no pending submission, progression or block entry
  - ErrBlocked: the origin address is on the block list
  - ErrConflict: the address is already blocked

Admin operations check the credential before anything else; Submit checks
the block list before validating the payload.
*/
package moderation
