package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TelnetAddr != ":4000" {
		t.Fatalf("TelnetAddr = %q, want :4000", cfg.TelnetAddr)
	}
	if cfg.WorldFile != "data/world.json" {
		t.Fatalf("WorldFile = %q, want data/world.json", cfg.WorldFile)
	}
	if cfg.AmbienceInterval != 45*time.Second {
		t.Fatalf("AmbienceInterval = %v, want 45s", cfg.AmbienceInterval)
	}
}

func TestLoadConfigParsesFileAndDuration(t *testing.T) {
	path := writeConfigFile(t, strings.Join([]string{
		"telnet_addr: \":5000\"",
		"web_addr: \":5001\"",
		"world_file: other/world.json",
		"ambience_interval: 2m",
	}, "\n"))

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TelnetAddr != ":5000" || cfg.WebAddr != ":5001" {
		t.Fatalf("addresses = %q/%q, want :5000/:5001", cfg.TelnetAddr, cfg.WebAddr)
	}
	if cfg.WorldFile != "other/world.json" {
		t.Fatalf("WorldFile = %q, want other/world.json", cfg.WorldFile)
	}
	if cfg.AmbienceInterval != 2*time.Minute {
		t.Fatalf("AmbienceInterval = %v, want 2m", cfg.AmbienceInterval)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "telnet_addr: \":5000\"\n")
	t.Setenv("KEEP_TELNET_ADDR", ":6000")
	t.Setenv("KEEP_WORLD_FILE", "env/world.json")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TelnetAddr != ":6000" {
		t.Fatalf("TelnetAddr = %q, want the env override :6000", cfg.TelnetAddr)
	}
	if cfg.WorldFile != "env/world.json" {
		t.Fatalf("WorldFile = %q, want the env override", cfg.WorldFile)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	path := writeConfigFile(t, "ambience_interval: soon\n")
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "ambience_interval") {
		t.Fatalf("bad duration error = %v, want ambience_interval mention", err)
	}

	path = writeConfigFile(t, "world_file: \"\"\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("empty world_file accepted")
	}
}
