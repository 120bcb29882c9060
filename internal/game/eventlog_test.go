package game

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
)

func TestEventLogWritesCompressedJSONL(t *testing.T) {
	dir := t.TempDir()
	log := NewEventLog(dir)

	if err := log.Write("login", "Hero", "room=1"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := log.Write("kill", "Hero", "npc=grey wolf room=1"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("log files = %d, want 1", len(entries))
	}
	name := entries[0].Name()
	hour := time.Now().UTC().Format("2006-01-02-15")
	if !strings.HasPrefix(name, "events-") || !strings.HasSuffix(name, ".jsonl.zst") {
		t.Fatalf("unexpected log file name %q", name)
	}
	if !strings.Contains(name, hour) {
		t.Fatalf("log file %q not stamped with the current hour %q", name, hour)
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd.NewReader: %v", err)
	}
	defer dec.Close()

	var events []Event
	scanner := bufio.NewScanner(dec)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("Unmarshal %q: %v", scanner.Text(), err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("decoded %d events, want 2", len(events))
	}
	if events[0].Kind != "login" || events[0].Actor != "Hero" {
		t.Fatalf("first event = %+v, want login by Hero", events[0])
	}
	if events[1].Kind != "kill" || events[1].Detail != "npc=grey wolf room=1" {
		t.Fatalf("second event = %+v, want the kill record", events[1])
	}
	if events[0].Time.IsZero() {
		t.Fatalf("event timestamp not recorded")
	}
}

func TestEventLogReopensAfterClose(t *testing.T) {
	dir := t.TempDir()
	log := NewEventLog(dir)

	if err := log.Write("login", "Hero", ""); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// A write landing after Close must rotate onto a fresh writer.
	if err := log.Write("logout", "Hero", ""); err != nil {
		t.Fatalf("Write after Close: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("log files = %d, want both frames appended to 1", len(entries))
	}

	f, err := os.Open(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd.NewReader: %v", err)
	}
	defer dec.Close()

	var kinds []string
	scanner := bufio.NewScanner(dec)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("Unmarshal %q: %v", scanner.Text(), err)
		}
		kinds = append(kinds, ev.Kind)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(kinds) != 2 || kinds[0] != "login" || kinds[1] != "logout" {
		t.Fatalf("decoded kinds = %v, want [login logout]", kinds)
	}
}

func TestEventLogCloseWithoutWrites(t *testing.T) {
	log := NewEventLog(t.TempDir())
	if err := log.Close(); err != nil {
		t.Fatalf("Close on idle log: %v", err)
	}
}
