package commands

import (
	"io"
	"regexp"
	"sync"
	"testing"

	"AshenKeep/internal/game"
)

// fakeSession feeds scripted input lines and swallows writes, standing
// in for a live telnet connection.
type fakeSession struct {
	mu    sync.Mutex
	lines []string
	next  int
}

func newFakeSession(lines ...string) *fakeSession {
	return &fakeSession{lines: lines}
}

func (s *fakeSession) WriteString(msg string) error { return nil }

func (s *fakeSession) ReadLine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}

func (s *fakeSession) Close() error { return nil }

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func drainOutput(ch chan string) string {
	out := ""
	for {
		select {
		case msg := <-ch:
			out += ansiPattern.ReplaceAllString(msg, "")
		default:
			return out
		}
	}
}

const testWorld = `{
	"start": 1,
	"items": [
		{"id": 1, "name": "rusty sword", "weight": 5, "value": 8, "weapon": true, "weapon_type": "slow", "commands": ["take", "hold"]},
		{"id": 2, "name": "ashen loaf", "weight": 1, "value": 2, "consumable": true, "deltas": {"health": 15}, "commands": ["take", "eat"]},
		{"id": 3, "name": "leather cap", "weight": 2, "value": 6, "wearable": true, "slot": "head", "deltas": {"defense": 2}, "commands": ["take", "wear"]},
		{"id": 4, "name": "iron key", "weight": 1, "value": 3, "commands": ["take"]},
		{"id": 5, "name": "stone brazier", "weight": 200, "value": 0},
		{"id": 6, "name": "leaden helm", "weight": 40, "value": 4, "wearable": true, "slot": "head", "commands": ["take", "wear"]},
		{"id": 7, "name": "ore sack", "weight": 55, "value": 1, "commands": ["take"]}
	],
	"npcs": [
		{"id": 1, "name": "grey wolf", "health": 30, "faction": "wildlife", "min_strike": 95, "damage": 4},
		{"id": 2, "name": "Warden Alric", "health": 60, "faction": "ally", "quest": true}
	],
	"rooms": [
		{"id": 1, "name": "Gatehouse", "description": "Cold stone and old banners.",
			"items": [1, 2, 3, 4, 5, 6, 7], "npcs": [1, 2],
			"doors": [
				{"id": 1, "direction": "north", "to": 2},
				{"id": 2, "direction": "east", "to": 3, "locked": true, "has_key": true, "pick_dexterity": 35}
			]},
		{"id": 2, "name": "Inner Courtyard", "description": "Mud and drill posts."},
		{"id": 3, "name": "Treasury Vault", "description": "Dust over empty chests."}
	]
}`

func newTestWorld(t *testing.T) *game.World {
	t.Helper()
	graph, err := game.ParseWorld([]byte(testWorld))
	if err != nil {
		t.Fatalf("ParseWorld: %v", err)
	}
	world := game.NewWorld(graph, game.WithAmbienceInterval(0))
	t.Cleanup(world.Close)
	return world
}

func login(world *game.World, name string, lines ...string) *game.Player {
	p := game.NewPlayer(name, newFakeSession(lines...), world.Graph().StartID())
	world.AddPlayer(p)
	return p
}
