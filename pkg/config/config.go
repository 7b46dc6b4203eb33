// Package config loads the kaleido configuration file.
//
// Configuration lives in a TOML file (by default
// ~/.config/kaleido/config.toml) and covers everything outside the drawing
// core: history capacity, default brush and symmetry settings, the
// persistence backend, and the share server address. Every numeric setting
// follows the same policy as the drawing core: out-of-range values are
// clamped to their documented bounds, never rejected. A missing file yields
// the defaults; only a malformed file is an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	kerrors "github.com/kaleidodraw/kaleido/pkg/errors"
	"github.com/kaleidodraw/kaleido/pkg/history"
	"github.com/kaleidodraw/kaleido/pkg/stroke"
	"github.com/kaleidodraw/kaleido/pkg/symmetry"
)

// Brush size bounds, in canvas units.
const (
	MinBrushSize = 1.0
	MaxBrushSize = 64.0
)

// Store backend names accepted in [StoreConfig.Backend].
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the full application configuration.
type Config struct {
	// HistorySize bounds the undo buffer. Non-positive values fall back to
	// history.DefaultCapacity.
	HistorySize int `toml:"history_size"`

	// BrushSize is the default pen width in canvas units, clamped to
	// [MinBrushSize, MaxBrushSize].
	BrushSize float64 `toml:"brush_size"`

	// Symmetry holds the startup symmetry configuration.
	Symmetry SymmetryConfig `toml:"symmetry"`

	// Store selects and configures the drawing persistence backend.
	Store StoreConfig `toml:"store"`

	// Server configures the share server.
	Server ServerConfig `toml:"server"`
}

// SymmetryConfig mirrors symmetry.Config in TOML-friendly form.
type SymmetryConfig struct {
	Enabled bool    `toml:"enabled"`
	Axes    int     `toml:"axes"`
	CenterX float64 `toml:"center_x"`
	CenterY float64 `toml:"center_y"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string `toml:"backend"` // file, memory, redis, mongo

	// Path is the drawings directory for the file backend.
	// Empty means the default under ~/.config/kaleido.
	Path string `toml:"path"`

	// Redis settings.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// Mongo settings.
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig configures the share server.
type ServerConfig struct {
	Addr string `toml:"addr"` // listen address, host:port
}

// Default returns the configuration used when no file exists.
func Default() Config {
	center := symmetry.NewConfig().Center
	return Config{
		HistorySize: history.DefaultCapacity,
		BrushSize:   3,
		Symmetry: SymmetryConfig{
			Enabled: false,
			Axes:    symmetry.DefaultAxes,
			CenterX: center.X,
			CenterY: center.Y,
		},
		Store: StoreConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
		},
		Server: ServerConfig{
			Addr: "localhost:7331",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "kaleido", "config.toml"), nil
}

// Load reads the configuration from path. If path is empty the default
// location is used. A missing file returns the defaults; a file that fails
// to parse is an error. All values are clamped to their valid ranges.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	return cfg.clamped(), nil
}

// clamped applies the clamp-on-write policy to every bounded setting.
func (c Config) clamped() Config {
	if c.HistorySize <= 0 {
		c.HistorySize = history.DefaultCapacity
	}
	if c.BrushSize < MinBrushSize {
		c.BrushSize = MinBrushSize
	}
	if c.BrushSize > MaxBrushSize {
		c.BrushSize = MaxBrushSize
	}
	c.Symmetry.Axes = symmetry.ClampAxes(c.Symmetry.Axes)
	if c.Store.Backend == "" {
		c.Store.Backend = BackendFile
	}
	return c
}

// SymmetryDefaults converts the TOML symmetry section to a symmetry.Config.
func (c Config) SymmetryDefaults() symmetry.Config {
	return symmetry.Config{
		Enabled: c.Symmetry.Enabled,
		Axes:    symmetry.ClampAxes(c.Symmetry.Axes),
		Center:  stroke.Point{X: c.Symmetry.CenterX, Y: c.Symmetry.CenterY},
	}
}
