// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections and schema creation.

# Connecting

Open selects the driver from the configuration. PostgreSQL uses lib/pq;
SQLite uses modernc.org/sqlite with foreign keys enabled, a busy timeout,
and a single open connection:

	conn, err := db.Open(cfg)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The SQL is shared by both drivers, so timestamps are always supplied by the
application rather than column defaults.

# Tables

  - progression: Published progressions and their search string
  - pattern: 16-slot chord patterns (JSON array of token or null)
  - song: Songs that use a progression
  - submission: New posts and edit requests with moderation status
  - blocked_ip: Addresses whose submissions are refused
  - feedback: Free-form site feedback

# Relationships

	progression 1──* pattern
	progression 1──* song
	submission *──1 progression (original_id, lookup only)

Pattern and song rows cascade with their progression. submission.original_id
is a plain reference without a foreign key: a submission outlives the
progression it targets.
*/
package db
