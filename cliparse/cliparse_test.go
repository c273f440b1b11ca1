// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("ADMIN_PASSWORD", "test-password")
	os.Setenv("SUBMIT_RATE_PER_MINUTE", "12")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.SubmitRate != 12 {
		t.Errorf("expected submit rate 12, got %v", cfg.SubmitRate)
	}
	if cfg.AdminPassword != "test-password" {
		t.Errorf("expected admin password from env, got %q", cfg.AdminPassword)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ADMIN_PASSWORD", "env-password")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-password", "cli-password"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.AdminPassword != "cli-password" {
		t.Errorf("CLI should override env: got %q", cfg.AdminPassword)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-admin-password", "pw"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != defaultPort {
		t.Errorf("expected default port %d, got %d", defaultPort, cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected sqlite by default, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != defaultSQLiteURL {
		t.Errorf("expected default sqlite URL, got %s", cfg.DatabaseURL)
	}
	if cfg.SubmitBurst != defaultSubmitBurst {
		t.Errorf("expected default burst %d, got %d", defaultSubmitBurst, cfg.SubmitBurst)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %s", cfg.LogLevel)
	}
	if cfg.TrustProxy {
		t.Error("expected proxy headers to be untrusted by default")
	}
}

func TestParseFlags_TrustProxy(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-admin-password", "pw", "-trust-proxy"})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.TrustProxy {
		t.Error("expected -trust-proxy to enable proxy headers")
	}

	os.Setenv("TRUST_PROXY", "true")
	cfg, err = ParseFlags([]string{"-admin-password", "pw"})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.TrustProxy {
		t.Error("expected TRUST_PROXY to enable proxy headers")
	}

	os.Setenv("TRUST_PROXY", "sometimes")
	if _, err := ParseFlags([]string{"-admin-password", "pw"}); err == nil {
		t.Error("expected error for invalid TRUST_PROXY")
	}
}

func TestParseFlags_MissingAdminPassword(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when ADMIN_PASSWORD is missing")
	}
}

func TestParseFlags_PostgresRequiresURL(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	if _, err := ParseFlags([]string{"-t", "postgres", "-admin-password", "pw"}); err == nil {
		t.Error("expected error when postgres URL is missing")
	}
}

func TestParseFlags_InvalidDatabaseType(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	if _, err := ParseFlags([]string{"-t", "mysql", "-admin-password", "pw"}); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestParseFlags_ConfigFile(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
port = 7000
database_type = "postgres"
database_url = "postgres://file"
admin_password = "file-password"
cors_origin = "http://localhost:3000"
submit_burst = 9
trust_proxy = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// Env beats the file
	os.Setenv("PORT", "7100")

	cfg, err := ParseFlags([]string{"-c", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 7100 {
		t.Errorf("env should override file: expected 7100, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://file" {
		t.Errorf("expected database URL from file, got %s", cfg.DatabaseURL)
	}
	if cfg.AdminPassword != "file-password" {
		t.Errorf("expected admin password from file, got %q", cfg.AdminPassword)
	}
	if cfg.CORSOrigin != "http://localhost:3000" {
		t.Errorf("expected CORS origin from file, got %q", cfg.CORSOrigin)
	}
	if cfg.SubmitBurst != 9 {
		t.Errorf("expected burst 9 from file, got %d", cfg.SubmitBurst)
	}
	if !cfg.TrustProxy {
		t.Error("expected trust_proxy from file")
	}
}

func TestLoadEnvFile(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	// Missing file is fine
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should not be an error: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ADMIN_PASSWORD=from-dotenv\nPORT=8123\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Setenv("PORT", "9999")

	if err := LoadEnvFile(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("ADMIN_PASSWORD"); got != "from-dotenv" {
		t.Errorf("expected ADMIN_PASSWORD from .env, got %q", got)
	}
	// Existing variables are not overridden
	if got := os.Getenv("PORT"); got != "9999" {
		t.Errorf("expected PORT to stay 9999, got %q", got)
	}
}
