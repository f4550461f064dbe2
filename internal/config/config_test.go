package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flightplots.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_addr: ":9090"
plot:
  width: 1000
flags:
  max_shown: 6
logging:
  level: debug
`)
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Server.ListenAddr != ":9090" || cfg.Plot.Width != 1000 || cfg.Flags.MaxShown != 6 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Flags.Threshold != 0.1 || cfg.Plot.XRangePadding != 0.05 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfig_ExplicitZeroKept(t *testing.T) {
	path := writeConfig(t, `
plot:
  max_points: 0
  x_range_padding: 0
flags:
  threshold: 0
`)
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Plot.MaxPoints != 0 || cfg.Plot.XRangePadding != 0 || cfg.Flags.Threshold != 0 {
		t.Errorf("explicit zeros overwritten: %+v", cfg)
	}
	if cfg.Plot.Width != 840 || cfg.Flags.MaxShown != 8 {
		t.Errorf("omitted keys lost their defaults: %+v", cfg)
	}
}

func TestLoadConfig_RejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "plot:\n  colour: red\n")
	if _, err := Load(path, ""); err == nil {
		t.Fatalf("expected validation error for unknown key")
	}
}

func TestLoadConfig_RejectsBadLevel(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")
	if _, err := Load(path, ""); err == nil {
		t.Fatalf("expected validation error for bad level")
	}
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Flags.MaxShown != 8 || cfg.Plot.Width != 840 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "localhost:4001")
	t.Setenv("FLIGHTPLOTS_LOGS_DIR", "/data/logs")
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Events.GreptimeEndpoint != "localhost:4001" || cfg.Server.LogsDir != "/data/logs" {
		t.Errorf("env not applied: %+v", cfg)
	}
}
