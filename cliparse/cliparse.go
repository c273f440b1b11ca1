package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

const (
	defaultPort        = 8000
	defaultSQLiteURL   = "file:chordshare.db"
	defaultSubmitRate  = 6.0 // submissions per minute per IP
	defaultSubmitBurst = 3
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	AdminPassword string
	CORSOrigin    string
	SubmitRate    float64
	SubmitBurst   int
	LogLevel      string
	ConfigFile    string

	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites those headers.
	TrustProxy bool
}

// FileConfig is the optional TOML configuration file. Flags and
// environment variables take precedence over it.
type FileConfig struct {
	Port          int     `toml:"port"`
	DatabaseURL   string  `toml:"database_url"`
	DatabaseType  string  `toml:"database_type"`
	AdminPassword string  `toml:"admin_password"`
	CORSOrigin    string  `toml:"cors_origin"`
	SubmitRate    float64 `toml:"submit_rate_per_minute"`
	SubmitBurst   int     `toml:"submit_burst"`
	LogLevel      string  `toml:"log_level"`
	TrustProxy    bool    `toml:"trust_proxy"`
}

// LoadEnvFile loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a TOML configuration file
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

// ParseFlags resolves configuration from flags, then environment
// variables, then the TOML file named by -c or CONFIG_FILE, then defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("chordshare", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", "", "Allowed CORS origin")
	fs.StringVar(&cfg.ConfigFile, "c", "", "Path to TOML config file")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.Float64Var(&cfg.SubmitRate, "submit-rate", 0, "Submissions per minute per IP")
	fs.IntVar(&cfg.SubmitBurst, "submit-burst", 0, "Submission burst per IP")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Take client IPs from proxy headers")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG_FILE")
	}
	var file FileConfig
	if cfg.ConfigFile != "" {
		var err error
		file, err = LoadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
	}

	// Fall back to environment variables, then the file
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = defaultPort
		}
	}

	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), file.DatabaseType, DatabaseSQLite)
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), file.DatabaseURL)
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLiteURL
	}

	cfg.CORSOrigin = firstNonEmpty(cfg.CORSOrigin, os.Getenv("CORS_ORIGIN"), file.CORSOrigin)
	cfg.LogLevel = firstNonEmpty(cfg.LogLevel, os.Getenv("LOG_LEVEL"), file.LogLevel, "info")

	if cfg.SubmitRate == 0 {
		if s := os.Getenv("SUBMIT_RATE_PER_MINUTE"); s != "" {
			rate, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Config{}, errors.New("invalid SUBMIT_RATE_PER_MINUTE env variable")
			}
			cfg.SubmitRate = rate
		} else if file.SubmitRate != 0 {
			cfg.SubmitRate = file.SubmitRate
		} else {
			cfg.SubmitRate = defaultSubmitRate
		}
	}
	if cfg.SubmitBurst == 0 {
		if s := os.Getenv("SUBMIT_BURST"); s != "" {
			burst, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid SUBMIT_BURST env variable")
			}
			cfg.SubmitBurst = burst
		} else if file.SubmitBurst != 0 {
			cfg.SubmitBurst = file.SubmitBurst
		} else {
			cfg.SubmitBurst = defaultSubmitBurst
		}
	}

	if !cfg.TrustProxy {
		if s := os.Getenv("TRUST_PROXY"); s != "" {
			trust, err := strconv.ParseBool(s)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = trust
		} else {
			cfg.TrustProxy = file.TrustProxy
		}
	}

	// Secrets - MUST be provided
	cfg.AdminPassword = firstNonEmpty(cfg.AdminPassword, os.Getenv("ADMIN_PASSWORD"), file.AdminPassword)
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
