package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFile(t *testing.T) {
	path := write(t, "gofluid.ini", `
[physics]
gravity = 9.80665
default_fluid = seawater

[server]
addr = 127.0.0.1:9000
rate_limit = 2.5
token_ttl = 2h
allowed_origins = http://a.test, http://b.test

[history]
driver = postgres
dsn = postgres://localhost/gofluid

[log]
level = debug
`)
	cfg, err := Load(path, filepath.Join(t.TempDir(), "none.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.Gravity != 9.80665 || cfg.Physics.DefaultFluid != "seawater" {
		t.Errorf("physics = %+v", cfg.Physics)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.RateLimit != 2.5 || cfg.Server.TokenTTL != 2*time.Hour {
		t.Errorf("server = %+v", cfg.Server)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("origins = %q", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.RateBurst != 10 {
		t.Errorf("unset key lost its default: burst = %d", cfg.Server.RateBurst)
	}
	if cfg.History.Driver != "postgres" || cfg.Log.Level != "debug" {
		t.Errorf("history = %+v, log = %+v", cfg.History, cfg.Log)
	}
}

func TestExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.ini"), ""); err == nil {
		t.Error("missing explicit config accepted")
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := Default()
	env := map[string]string{
		"GOFLUID_SERVER_ADDR":     ":7000",
		"GOFLUID_GRAVITY":         "1.62",
		"GOFLUID_HISTORY_ENABLED": "false",
		"GOFLUID_TOKEN_KEY":       "secret",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":7000" || cfg.Physics.Gravity != 1.62 || cfg.History.Enabled || cfg.Server.TokenKey != "secret" {
		t.Errorf("cfg = %+v", cfg)
	}

	env["GOFLUID_GRAVITY"] = "fast"
	if err := cfg.applyEnv(lookup); err == nil {
		t.Error("non-numeric gravity accepted")
	}
}

func TestEnvFile(t *testing.T) {
	const key = "GOFLUID_REPORT_AUTHOR"
	if _, set := os.LookupEnv(key); set {
		t.Skip(key + " set in the environment")
	}
	t.Cleanup(func() { os.Unsetenv(key) })

	ini := write(t, "gofluid.ini", "[report]\nauthor = from-ini\n")
	env := write(t, ".env", key+"=from-env\n")
	cfg, err := Load(ini, env)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Report.Author != "from-env" {
		t.Errorf("author = %q, want the .env value", cfg.Report.Author)
	}
}

func TestValidate(t *testing.T) {
	mutations := map[string]func(*Config){
		"zero gravity":   func(c *Config) { c.Physics.Gravity = 0 },
		"unknown fluid":  func(c *Config) { c.Physics.DefaultFluid = "honey" },
		"zero burst":     func(c *Config) { c.Server.RateBurst = 0 },
		"negative rate":  func(c *Config) { c.Server.RateLimit = -1 },
		"bad driver":     func(c *Config) { c.History.Driver = "mysql" },
		"negative steps": func(c *Config) { c.Server.StreamSteps = -1 },
	}
	for name, mutate := range mutations {
		c := Default()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s accepted", name)
		}
	}

	c := Default()
	c.Server.RateLimit, c.Server.RateBurst = 0, 0
	if err := c.Validate(); err != nil {
		t.Errorf("disabled limiter rejected: %v", err)
	}
}
