package game

import (
	"errors"
	"io"
	"sync"
	"testing"
)

// brokenWriteSession reads scripted lines but fails every write after
// the first, imitating a connection whose send side died mid-session.
type brokenWriteSession struct {
	mu     sync.Mutex
	lines  []string
	next   int
	writes int
}

func (s *brokenWriteSession) WriteString(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.writes > 1 {
		return errors.New("broken pipe")
	}
	return nil
}

func (s *brokenWriteSession) ReadLine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}

func (s *brokenWriteSession) Close() error { return nil }

func TestSessionEndsCleanlyWhenWritesFail(t *testing.T) {
	world := NewWorld(singleRoomGraph(), WithAmbienceInterval(0))
	defer world.Close()

	session := &brokenWriteSession{lines: []string{"Hero", "hello", "quit"}}
	dispatcher := func(w *World, p *Player, line string) bool { return false }

	handleSession(session, world, dispatcher)

	if got := world.PlayerCount(); got != 0 {
		t.Fatalf("PlayerCount() after session end = %d, want 0", got)
	}
}

func TestPromptForNameFallsBackToSomeone(t *testing.T) {
	name, err := promptForName(newScriptedSession("   "))
	if err != nil {
		t.Fatalf("promptForName: %v", err)
	}
	if name != "Someone" {
		t.Fatalf("name = %q, want Someone", name)
	}
}
