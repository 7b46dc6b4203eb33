package config

import (
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/kaleidodraw/kaleido/pkg/errors"
	"github.com/kaleidodraw/kaleido/pkg/history"
	"github.com/kaleidodraw/kaleido/pkg/symmetry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.HistorySize != history.DefaultCapacity {
		t.Errorf("HistorySize = %d, want %d", cfg.HistorySize, history.DefaultCapacity)
	}
	if cfg.Symmetry.Enabled {
		t.Error("symmetry enabled by default, want disabled")
	}
	if cfg.Symmetry.Axes != symmetry.DefaultAxes {
		t.Errorf("Axes = %d, want %d", cfg.Symmetry.Axes, symmetry.DefaultAxes)
	}
	if cfg.Symmetry.CenterX != 512 || cfg.Symmetry.CenterY != 512 {
		t.Errorf("center = (%g, %g), want (512, 512)", cfg.Symmetry.CenterX, cfg.Symmetry.CenterY)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", cfg.Store.Backend, BackendFile)
	}
	if cfg.Server.Addr != "localhost:7331" {
		t.Errorf("Server.Addr = %q, want localhost:7331", cfg.Server.Addr)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := writeConfig(t, `
history_size = 20
brush_size = 5.5

[symmetry]
enabled = true
axes = 8
center_x = 100
center_y = 200

[store]
backend = "redis"
redis_addr = "redis.local:6379"

[server]
addr = "0.0.0.0:8080"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HistorySize != 20 || cfg.BrushSize != 5.5 {
		t.Errorf("HistorySize/BrushSize = %d/%g, want 20/5.5", cfg.HistorySize, cfg.BrushSize)
	}
	sym := cfg.SymmetryDefaults()
	if !sym.Enabled || sym.Axes != 8 || sym.Center.X != 100 || sym.Center.Y != 200 {
		t.Errorf("SymmetryDefaults() = %+v, want enabled 8-fold at (100, 200)", sym)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Store.RedisAddr != "redis.local:6379" {
		t.Errorf("Store = %+v, want redis backend", cfg.Store)
	}
	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("Server.Addr = %q, want 0.0.0.0:8080", cfg.Server.Addr)
	}
}

func TestLoadClampsValues(t *testing.T) {
	path := writeConfig(t, `
history_size = -1
brush_size = 1000

[symmetry]
axes = 99
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HistorySize != history.DefaultCapacity {
		t.Errorf("HistorySize = %d, want fallback %d", cfg.HistorySize, history.DefaultCapacity)
	}
	if cfg.BrushSize != MaxBrushSize {
		t.Errorf("BrushSize = %g, want clamped to %g", cfg.BrushSize, MaxBrushSize)
	}
	if cfg.Symmetry.Axes != symmetry.MaxAxes {
		t.Errorf("Axes = %d, want clamped to %d", cfg.Symmetry.Axes, symmetry.MaxAxes)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "history_size = [this is not toml")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load(malformed) = nil error, want parse error")
	}
	if !kerrors.Is(err, kerrors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want ErrCodeInvalidConfig", kerrors.GetCode(err))
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `brush_size = 10`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BrushSize != 10 {
		t.Errorf("BrushSize = %g, want 10", cfg.BrushSize)
	}
	if cfg.HistorySize != history.DefaultCapacity {
		t.Errorf("HistorySize = %d, want untouched default", cfg.HistorySize)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("Backend = %q, want untouched default", cfg.Store.Backend)
	}
}
