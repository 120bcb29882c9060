package game

import (
	"strings"
	"testing"
)

const greetScript = `
func OnEnter(ctx map[string]any) {
	say := ctx["say"].(func(string))
	speaker, _ := ctx["speaker"].(string)
	say("Fresh faces. Welcome, " + speaker + ".")
}
`

const questScript = `
import "strings"

func OnSay(ctx map[string]any) {
	message, _ := ctx["message"].(string)
	if !strings.Contains(strings.ToLower(message), "quest") {
		return
	}
	say := ctx["say"].(func(string))
	say("So you seek work, do you?")
}
`

func newScriptedWorld(t *testing.T, npc *NPC) (*World, *Player) {
	t.Helper()
	world := NewWorld(singleRoomGraph(), WithAmbienceInterval(0), WithScripts(NewScriptEngine()))
	t.Cleanup(world.Close)
	world.Graph().Start().AddNPC(npc)
	p := newTestPlayer("Hero", 1)
	world.AddPlayer(p)
	return world, p
}

func TestOnEnterScriptGreetsArrivals(t *testing.T) {
	npc := NewNPC(1, "pedlar Mags", 30, FactionNeutral)
	npc.Script = greetScript
	world, p := newScriptedWorld(t, npc)

	world.NotifyEnter(world.Graph().Start(), p)

	out := strings.Join(drainOutput(p.Output), "\n")
	if !strings.Contains(out, `pedlar Mags says, "Fresh faces. Welcome, Hero."`) {
		t.Fatalf("greeting not broadcast:\n%s", out)
	}
}

func TestOnSayScriptReactsToKeyword(t *testing.T) {
	npc := NewNPC(1, "Warden Alric", 60, FactionAlly)
	npc.Script = questScript
	world, p := newScriptedWorld(t, npc)
	room := world.Graph().Start()

	world.NotifySay(room, p, "any QUESTS going?")
	out := strings.Join(drainOutput(p.Output), "\n")
	if !strings.Contains(out, "So you seek work, do you?") {
		t.Fatalf("keyword reaction not broadcast:\n%s", out)
	}

	world.NotifySay(room, p, "lovely weather")
	if out := drainOutput(p.Output); len(out) != 0 {
		t.Fatalf("script reacted to an unrelated line: %v", out)
	}
}

func TestBrokenScriptIsContained(t *testing.T) {
	npc := NewNPC(1, "grey wolf", 30, FactionWildlife)
	npc.Script = "this is not go source"
	world, p := newScriptedWorld(t, npc)

	// A script that fails to compile must not take the connection down.
	world.NotifySay(world.Graph().Start(), p, "hello")
	if out := drainOutput(p.Output); len(out) != 0 {
		t.Fatalf("broken script produced output: %v", out)
	}
}

func TestScriptPanicIsContained(t *testing.T) {
	npc := NewNPC(1, "grey wolf", 30, FactionWildlife)
	npc.Script = `
func OnSay(ctx map[string]any) {
	panic("bad script")
}
`
	world, p := newScriptedWorld(t, npc)

	world.NotifySay(world.Graph().Start(), p, "hello")
	if out := drainOutput(p.Output); len(out) != 0 {
		t.Fatalf("panicking script produced output: %v", out)
	}
}

func TestScriptCacheKeysOnSource(t *testing.T) {
	engine := NewScriptEngine()

	first, err := engine.scriptFor(questScript)
	if err != nil {
		t.Fatalf("scriptFor: %v", err)
	}
	second, err := engine.scriptFor(questScript)
	if err != nil {
		t.Fatalf("scriptFor on cached source: %v", err)
	}
	if first != second {
		t.Fatalf("identical source compiled twice")
	}

	if script, err := engine.scriptFor("   "); err != nil || script != nil {
		t.Fatalf("blank source: script=%v err=%v, want nil, nil", script, err)
	}
}
