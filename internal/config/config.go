package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/bingohub/internal/bingo"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	WS      WSConfig      `mapstructure:"ws" yaml:"ws"`
	Game    GameConfig    `mapstructure:"game" yaml:"game"`
	Results ResultsConfig `mapstructure:"results" yaml:"results"`
}

// LogConfig selects logger verbosity and output format (console or json).
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// WSConfig tunes the WebSocket transport.
type WSConfig struct {
	MaxMessageBytes    int64    `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	RateLimitPerMinute int      `mapstructure:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`
	AllowedOrigins     []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	SendBuffer         int      `mapstructure:"send_buffer" yaml:"send_buffer"`
}

// GameConfig controls win arbitration and board dealing.
//
// VerifyClaims is the hardening option: when set, a claim must match a line
// of the room's canonical board. It is off by default because clients deal
// their own cards and the server cannot see them, so claims are trusted.
type GameConfig struct {
	VerifyClaims bool          `mapstructure:"verify_claims" yaml:"verify_claims"`
	Board        []string      `mapstructure:"board" yaml:"board"`
	ReserveTTL   time.Duration `mapstructure:"reserve_ttl" yaml:"reserve_ttl"`
}

// ResultsConfig enables the sqlite results journal when DBPath is set.
type ResultsConfig struct {
	DBPath    string `mapstructure:"db_path" yaml:"db_path"`
	QueueSize int    `mapstructure:"queue_size" yaml:"queue_size"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":3000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		WS: WSConfig{
			MaxMessageBytes:    64 << 10,
			RateLimitPerMinute: 120,
			AllowedOrigins:     []string{},
			SendBuffer:         32,
		},
		Game: GameConfig{
			VerifyClaims: false,
			Board:        []string{},
			ReserveTTL:   2 * time.Minute,
		},
		Results: ResultsConfig{
			QueueSize: 64,
		},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
	if other.Results.DBPath != "" {
		c.Results.DBPath = other.Results.DBPath
	}
}

// Validate checks values the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.WS.MaxMessageBytes <= 0 {
		errs = append(errs, errors.New("ws.max_message_bytes must be positive"))
	}
	if c.WS.RateLimitPerMinute < 0 {
		errs = append(errs, errors.New("ws.rate_limit_per_minute must not be negative"))
	}
	if n := len(c.Game.Board); n > 0 {
		if n < bingo.Cells {
			errs = append(errs, fmt.Errorf("game.board needs at least %d items, got %d", bingo.Cells, n))
		}
		seen := make(map[string]struct{}, n)
		for _, item := range c.Game.Board {
			if _, dup := seen[item]; dup {
				errs = append(errs, fmt.Errorf("game.board has duplicate item %q", item))
				break
			}
			seen[item] = struct{}{}
		}
	}
	return errors.Join(errs...)
}

// Catalog converts the configured board items.
func (c GameConfig) Catalog() []bingo.Item {
	items := make([]bingo.Item, 0, len(c.Board))
	for _, s := range c.Board {
		items = append(items, bingo.TextItem(s))
	}
	return items
}
