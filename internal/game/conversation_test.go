package game

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestConversationMenuWalksEveryAction(t *testing.T) {
	world := NewWorld(singleRoomGraph(), WithAmbienceInterval(0))
	defer world.Close()

	npc := NewNPC(1, "Warden Alric", 60, FactionAlly)
	npc.Quest = true
	world.Graph().Start().AddNPC(npc)

	p := NewPlayer("Hero", newScriptedSession("who", "news", "dance", "quest", "bye"), 1)
	world.AddPlayer(p)

	conv, err := world.BeginConversation(p, npc)
	if err != nil {
		t.Fatalf("BeginConversation: %v", err)
	}

	if quit := conv.Run(); quit {
		t.Fatalf("Run() = true after a polite bye, want false")
	}
	if got := conv.State(); got != ConvEnded {
		t.Fatalf("State() = %v, want ConvEnded", got)
	}
	if npc.ConversationID() != uuid.Nil {
		t.Fatalf("npc conversation id not cleared")
	}
	if p.ConversationID() != uuid.Nil {
		t.Fatalf("player conversation id not cleared")
	}

	out := strings.Join(drainOutput(p.Output), "\n")
	for _, want := range []string{
		"sworn to the keep",
		"The roads grow worse",
		"Choose who, news, trade, quest, or bye.",
		"worn map",
		"Walk safely.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWildlifeTradeStaysFlavorOnly(t *testing.T) {
	world := NewWorld(singleRoomGraph(), WithAmbienceInterval(0))
	defer world.Close()

	npc := NewNPC(1, "grey wolf", 30, FactionWildlife)
	world.Graph().Start().AddNPC(npc)

	p := NewPlayer("Hero", newScriptedSession("trade", "quest", "bye"), 1)
	world.AddPlayer(p)

	conv, err := world.BeginConversation(p, npc)
	if err != nil {
		t.Fatalf("BeginConversation: %v", err)
	}
	conv.Run()

	out := strings.Join(drainOutput(p.Output), "\n")
	if !strings.Contains(out, "no interest in your goods") {
		t.Fatalf("output missing wildlife trade flavor:\n%s", out)
	}
	if strings.Contains(out, "add-own") {
		t.Fatalf("wildlife conversation opened the trade submenu:\n%s", out)
	}
	if strings.Contains(out, "worn map") {
		t.Fatalf("wildlife conversation produced a quest:\n%s", out)
	}
}

func TestConversationDisconnectActsAsBye(t *testing.T) {
	world := NewWorld(singleRoomGraph(), WithAmbienceInterval(0))
	defer world.Close()

	npc := NewNPC(1, "pedlar Mags", 30, FactionNeutral)
	world.Graph().Start().AddNPC(npc)

	p := NewPlayer("Hero", newScriptedSession(), 1)
	world.AddPlayer(p)

	conv, err := world.BeginConversation(p, npc)
	if err != nil {
		t.Fatalf("BeginConversation: %v", err)
	}

	if quit := conv.Run(); !quit {
		t.Fatalf("Run() = false after disconnect, want true")
	}
	if got := conv.State(); got != ConvEnded {
		t.Fatalf("State() = %v after disconnect, want ConvEnded", got)
	}
	if npc.ConversationID() != uuid.Nil {
		t.Fatalf("npc still marked busy after disconnect")
	}

	// The npc is free again for the next customer.
	next := NewPlayer("Other", newScriptedSession(), 1)
	world.AddPlayer(next)
	if _, err := world.BeginConversation(next, npc); err != nil {
		t.Fatalf("BeginConversation after disconnect: %v", err)
	}
}
