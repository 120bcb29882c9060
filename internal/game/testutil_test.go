package game

import (
	"io"
	"regexp"
	"sync"
)

// scriptedSession feeds a fixed sequence of input lines and records
// everything written back, standing in for a telnet connection.
type scriptedSession struct {
	mu     sync.Mutex
	lines  []string
	next   int
	wrote  []string
	closed bool
}

func newScriptedSession(lines ...string) *scriptedSession {
	return &scriptedSession{lines: lines}
}

func (s *scriptedSession) WriteString(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote = append(s.wrote, msg)
	return nil
}

func (s *scriptedSession) ReadLine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}

func (s *scriptedSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func drainOutput(ch chan string) []string {
	out := make([]string, 0)
	for {
		select {
		case msg := <-ch:
			cleaned := Trim(ansiPattern.ReplaceAllString(msg, ""))
			if cleaned != "" {
				out = append(out, cleaned)
			}
		default:
			return out
		}
	}
}

// sequenceRoller returns the given rolls in order and repeats the last
// one when the sequence runs out.
func sequenceRoller(rolls ...int) Roller {
	i := 0
	return func() int {
		if i >= len(rolls) {
			return rolls[len(rolls)-1]
		}
		roll := rolls[i]
		i++
		return roll
	}
}

func newTestPlayer(name string, room int) *Player {
	return NewPlayer(name, newScriptedSession(), room)
}

func singleRoomGraph() *RoomGraph {
	room := &Room{ID: 1, Name: "Test Chamber", Description: "Bare stone."}
	graph, err := NewRoomGraph(map[int]*Room{1: room}, 1)
	if err != nil {
		panic(err)
	}
	return graph
}
