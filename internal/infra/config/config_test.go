package config

import (
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("ACCESS_TOKEN_TTL", "2m")
	t.Setenv("REFRESH_TOKEN_TTL", "3h")
	t.Setenv("JWT_LEEWAY", "1s")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("ALLOW_CREDENTIALS", "false")
	t.Setenv("HTTPS_CERT_FILE", "cert.pem")
	t.Setenv("HTTPS_KEY_FILE", "key.pem")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 2*time.Minute {
		t.Fatalf("AccessTokenTTL want 2m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 3*time.Hour {
		t.Fatalf("RefreshTokenTTL want 3h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.JWTLeeway != time.Second {
		t.Fatalf("JWTLeeway want 1s, got %v", cfg.JWTLeeway)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.AllowCredentials {
		t.Fatal("ALLOW_CREDENTIALS=false must be honoured")
	}
	if !cfg.TLSEnabled() {
		t.Fatal("TLS expected to be enabled")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("default access ttl want 30m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("default refresh ttl want 7d, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.JWTLeeway != 5*time.Second {
		t.Fatalf("default leeway want 5s, got %v", cfg.JWTLeeway)
	}
	if cfg.DatabaseDriver != DriverSQLite {
		t.Fatalf("default driver want sqlite, got %q", cfg.DatabaseDriver)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("default origins: %v", cfg.AllowedOrigins)
	}
	if cfg.TLSEnabled() {
		t.Fatal("TLS must be off by default")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing JWT_SECRET, got nil")
	}
}

func TestValidate_Rejects(t *testing.T) {
	base := Config{
		DatabaseDriver:  DriverSQLite,
		DatabaseURL:     "blog.db",
		JWTSecret:       "s",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}

	cases := map[string]func(c *Config){
		"leeway too large": func(c *Config) { c.JWTLeeway = time.Hour },
		"negative leeway":  func(c *Config) { c.JWTLeeway = -time.Second },
		"zero access ttl":  func(c *Config) { c.AccessTokenTTL = 0 },
		"unknown driver":   func(c *Config) { c.DatabaseDriver = "mysql" },
		"cert without key": func(c *Config) { c.HTTPSCertFile = "cert.pem" },
	}
	for name, mutate := range cases {
		c := base
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("base config must be valid: %v", err)
	}
}
