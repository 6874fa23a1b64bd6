// Package config loads gofluid settings from an ini file, a .env file and
// GOFLUID_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"

	"github.com/alexiusacademia/gofluid/internal/fluid"
)

// DefaultFile is read from the working directory when no file is named
const DefaultFile = "gofluid.ini"

// DefaultEnvFile is loaded into the environment when present
const DefaultEnvFile = ".env"

// Physics holds defaults applied to calculator inputs
type Physics struct {
	Gravity      float64
	DefaultFluid string
}

// Server configures the HTTP API
type Server struct {
	Addr            string
	RateLimit       float64 // requests per second per client
	RateBurst       int
	TokenKey        string // empty disables the history token check
	TokenTTL        time.Duration
	StreamSteps     int
	StreamInterval  time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// History configures the calculation store
type History struct {
	Enabled bool
	Driver  string
	DSN     string
}

// Log configures logrus
type Log struct {
	Level  string
	Format string
}

// Report fills the PDF title block
type Report struct {
	Project string
	Author  string
}

// Config is the complete application configuration
type Config struct {
	Physics Physics
	Server  Server
	History History
	Log     Log
	Report  Report
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Physics: Physics{Gravity: fluid.Gravity, DefaultFluid: "water"},
		Server: Server{
			Addr:            ":8080",
			RateLimit:       5,
			RateBurst:       10,
			TokenTTL:        24 * time.Hour,
			StreamSteps:     20,
			StreamInterval:  25 * time.Millisecond,
			ShutdownTimeout: 10 * time.Second,
		},
		History: History{Enabled: true, Driver: "sqlite", DSN: "gofluid.db"},
		Log:     Log{Level: "warn", Format: "text"},
	}
}

// Load reads path (DefaultFile when empty) and envFile (DefaultEnvFile when
// empty) on top of Default. A missing default file is not an error; a
// missing file that was named explicitly is.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	file, err := ini.Load(path)
	switch {
	case err == nil:
		cfg.apply(file)
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return cfg, fmt.Errorf("read env file %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) apply(file *ini.File) {
	phys := file.Section("physics")
	c.Physics.Gravity = phys.Key("gravity").MustFloat64(c.Physics.Gravity)
	c.Physics.DefaultFluid = phys.Key("default_fluid").MustString(c.Physics.DefaultFluid)

	srv := file.Section("server")
	c.Server.Addr = srv.Key("addr").MustString(c.Server.Addr)
	c.Server.RateLimit = srv.Key("rate_limit").MustFloat64(c.Server.RateLimit)
	c.Server.RateBurst = srv.Key("rate_burst").MustInt(c.Server.RateBurst)
	c.Server.TokenKey = srv.Key("token_key").MustString(c.Server.TokenKey)
	c.Server.TokenTTL = srv.Key("token_ttl").MustDuration(c.Server.TokenTTL)
	c.Server.StreamSteps = srv.Key("stream_steps").MustInt(c.Server.StreamSteps)
	c.Server.StreamInterval = srv.Key("stream_interval").MustDuration(c.Server.StreamInterval)
	c.Server.ShutdownTimeout = srv.Key("shutdown_timeout").MustDuration(c.Server.ShutdownTimeout)
	if srv.HasKey("allowed_origins") {
		c.Server.AllowedOrigins = srv.Key("allowed_origins").Strings(",")
	}

	hist := file.Section("history")
	c.History.Enabled = hist.Key("enabled").MustBool(c.History.Enabled)
	c.History.Driver = hist.Key("driver").MustString(c.History.Driver)
	c.History.DSN = hist.Key("dsn").MustString(c.History.DSN)

	lg := file.Section("log")
	c.Log.Level = lg.Key("level").MustString(c.Log.Level)
	c.Log.Format = lg.Key("format").MustString(c.Log.Format)

	rep := file.Section("report")
	c.Report.Project = rep.Key("project").MustString(c.Report.Project)
	c.Report.Author = rep.Key("author").MustString(c.Report.Author)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *float64) error {
		if v, ok := lookup(name); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = f
		}
		return nil
	}

	str("GOFLUID_SERVER_ADDR", &c.Server.Addr)
	str("GOFLUID_TOKEN_KEY", &c.Server.TokenKey)
	str("GOFLUID_HISTORY_DRIVER", &c.History.Driver)
	str("GOFLUID_HISTORY_DSN", &c.History.DSN)
	str("GOFLUID_LOG_LEVEL", &c.Log.Level)
	str("GOFLUID_LOG_FORMAT", &c.Log.Format)
	str("GOFLUID_DEFAULT_FLUID", &c.Physics.DefaultFluid)
	str("GOFLUID_REPORT_AUTHOR", &c.Report.Author)
	if v, ok := lookup("GOFLUID_ALLOWED_ORIGINS"); ok && v != "" {
		c.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v, ok := lookup("GOFLUID_HISTORY_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GOFLUID_HISTORY_ENABLED: %w", err)
		}
		c.History.Enabled = b
	}
	if err := num("GOFLUID_GRAVITY", &c.Physics.Gravity); err != nil {
		return err
	}
	return num("GOFLUID_RATE_LIMIT", &c.Server.RateLimit)
}

// Validate checks values that would otherwise fail later at first use
func (c Config) Validate() error {
	if err := fluid.Positive("gravity", c.Physics.Gravity); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, ok := fluid.LookupFluid(c.Physics.DefaultFluid); !ok {
		return fmt.Errorf("config: unknown default fluid %q", c.Physics.DefaultFluid)
	}
	// a zero rate limit turns the limiter off
	if c.Server.RateLimit < 0 || (c.Server.RateLimit > 0 && c.Server.RateBurst <= 0) {
		return fmt.Errorf("config: rate limit %g/s burst %d must be positive", c.Server.RateLimit, c.Server.RateBurst)
	}
	if c.Server.StreamSteps < 0 {
		return fmt.Errorf("config: stream steps %d must not be negative", c.Server.StreamSteps)
	}
	switch c.History.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unsupported history driver %q", c.History.Driver)
	}
	return nil
}
