// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseURL: connection string (default for sqlite: file:chordshare.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminPassword: Shared moderation secret (required)
  - CORSOrigin: Allowed browser origin (default: echo the request origin)
  - SubmitRate, SubmitBurst: Per-IP submission rate limit
  - LogLevel: debug, info, warn or error
  - TrustProxy: read client IPs from X-Forwarded-For / X-Real-IP (default: off)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-c               TOML config file
	--admin-password Admin password
	--cors-origin    Allowed CORS origin
	--submit-rate    Submissions per minute per IP
	--submit-burst   Submission burst per IP
	--log-level      Log level
	--trust-proxy    Trust proxy address headers

# Environment Variables

Flags fall back to environment variables:

	PORT                   → -p
	DATABASE_URL           → -d
	DATABASE_TYPE          → -t
	CONFIG_FILE            → -c
	ADMIN_PASSWORD         → --admin-password
	CORS_ORIGIN            → --cors-origin
	SUBMIT_RATE_PER_MINUTE → --submit-rate
	SUBMIT_BURST           → --submit-burst
	LOG_LEVEL              → --log-level
	TRUST_PROXY            → --trust-proxy

LoadEnvFile reads a .env file into the environment first; variables that
are already set win. Values from the TOML file are used last:

	port = 8000
	database_type = "postgres"
	database_url = "postgres://..."
	admin_password = "..."

# Validation

ParseFlags returns an error if:

  - ADMIN_PASSWORD is missing
  - DATABASE_TYPE is not sqlite or postgres
  - DATABASE_URL is missing for postgres
*/
package cliparse
