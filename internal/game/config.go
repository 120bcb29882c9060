package game

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds server startup settings, loaded from YAML with
// environment overrides applied afterwards.
type Config struct {
	TelnetAddr string `yaml:"telnet_addr"`
	WebAddr    string `yaml:"web_addr"`
	WorldFile  string `yaml:"world_file"`
	EventDir   string `yaml:"event_dir"`

	// AmbienceRaw is the broadcast period as written in the file
	// ("45s"); the parsed value lands in AmbienceInterval.
	AmbienceRaw      string        `yaml:"ambience_interval"`
	AmbienceInterval time.Duration `yaml:"-"`
}

func defaultConfig() Config {
	return Config{
		TelnetAddr:       ":4000",
		WorldFile:        "data/world.json",
		EventDir:         "data/events",
		AmbienceInterval: 45 * time.Second,
	}
}

// LoadConfig reads the config file at path. An empty path yields the
// defaults. KEEP_* environment variables override file values so
// deployments can adjust addresses without editing the file.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if addr := os.Getenv("KEEP_TELNET_ADDR"); addr != "" {
		cfg.TelnetAddr = addr
	}
	if addr := os.Getenv("KEEP_WEB_ADDR"); addr != "" {
		cfg.WebAddr = addr
	}
	if file := os.Getenv("KEEP_WORLD_FILE"); file != "" {
		cfg.WorldFile = file
	}
	if dir := os.Getenv("KEEP_EVENT_DIR"); dir != "" {
		cfg.EventDir = dir
	}
	if cfg.AmbienceRaw != "" {
		interval, err := time.ParseDuration(cfg.AmbienceRaw)
		if err != nil {
			return cfg, fmt.Errorf("ambience_interval: %w", err)
		}
		cfg.AmbienceInterval = interval
	}
	if cfg.TelnetAddr == "" {
		return cfg, fmt.Errorf("telnet_addr must not be empty")
	}
	if cfg.WorldFile == "" {
		return cfg, fmt.Errorf("world_file must not be empty")
	}
	return cfg, nil
}
