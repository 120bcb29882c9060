package main

import (
	"flag"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"AshenKeep/commands"
	"AshenKeep/internal/game"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML server configuration")
	addr := flag.String("addr", "", "TCP address to listen on (overrides the config)")
	webAddr := flag.String("web", "", "Optional websocket address to listen on (overrides the config)")
	worldFile := flag.String("world", "", "Path to the world data file (overrides the config)")
	flag.Parse()

	// A missing .env file is fine; deployments that use one get their
	// variables loaded before LoadConfig reads them.
	_ = godotenv.Load()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if trimmed := strings.TrimSpace(*addr); trimmed != "" {
		cfg.TelnetAddr = trimmed
	}
	if trimmed := strings.TrimSpace(*webAddr); trimmed != "" {
		cfg.WebAddr = trimmed
	}
	if trimmed := strings.TrimSpace(*worldFile); trimmed != "" {
		cfg.WorldFile = trimmed
	}

	graph, err := game.LoadWorldFile(cfg.WorldFile)
	if err != nil {
		log.Fatal(err)
	}

	events := game.NewEventLog(cfg.EventDir)
	defer events.Close()

	world := game.NewWorld(graph,
		game.WithAmbienceInterval(cfg.AmbienceInterval),
		game.WithEventLog(events),
		game.WithScripts(game.NewScriptEngine()),
	)
	defer world.Close()

	if cfg.WebAddr != "" {
		go func() {
			if err := game.ListenAndServeWeb(cfg.WebAddr, world, commands.Dispatch); err != nil {
				log.Fatal(err)
			}
		}()
	}

	if err := game.ListenAndServe(cfg.TelnetAddr, world, commands.Dispatch); err != nil {
		log.Fatal(err)
	}
}
