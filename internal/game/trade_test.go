package game

import (
	"strings"
	"testing"
)

func newTradeWorld(t *testing.T) (*World, *NPC) {
	t.Helper()
	world := NewWorld(singleRoomGraph(), WithAmbienceInterval(0))
	t.Cleanup(world.Close)
	npc := NewNPC(1, "pedlar Mags", 30, FactionNeutral)
	world.Graph().Start().AddNPC(npc)
	return world, npc
}

func TestTradeSubmitSwapsGoods(t *testing.T) {
	world, npc := newTradeWorld(t)

	pelt := &Item{Name: "wolf pelt", Weight: 2, Value: 10}
	key := &Item{Name: "iron key", Weight: 1, Value: 5}
	npc.Inventory().Add(key)

	p := NewPlayer("Hero", newScriptedSession("add-own pelt", "add-theirs key", "submit"), 1)
	world.AddPlayer(p)
	p.Inventory().Add(pelt)

	trade := newTrade(world, p, npc)
	if quit := trade.Run(); quit {
		t.Fatalf("Run() = true after a completed trade, want false")
	}

	if _, ok := p.Inventory().Find("iron key"); !ok {
		t.Fatalf("player did not receive the requested item")
	}
	if _, ok := p.Inventory().Find("wolf pelt"); ok {
		t.Fatalf("player kept the item they offered")
	}
	if _, ok := npc.Inventory().Find("wolf pelt"); !ok {
		t.Fatalf("npc did not receive the offered item")
	}
	if _, ok := npc.Inventory().Find("iron key"); ok {
		t.Fatalf("npc kept the item they gave up")
	}
	if p.Trading() {
		t.Fatalf("trading flag survived the trade")
	}

	out := strings.Join(drainOutput(p.Output), "\n")
	if !strings.Contains(out, "goods change owners") {
		t.Fatalf("output missing completion notice:\n%s", out)
	}
}

func TestTradeSubmitRejectsLowValueOffer(t *testing.T) {
	world, npc := newTradeWorld(t)

	pebble := &Item{Name: "dull pebble", Weight: 1, Value: 1}
	key := &Item{Name: "iron key", Weight: 1, Value: 5}
	npc.Inventory().Add(key)

	p := NewPlayer("Hero", newScriptedSession("add-own pebble", "add-theirs key", "submit", "cancel"), 1)
	world.AddPlayer(p)
	p.Inventory().Add(pebble)

	trade := newTrade(world, p, npc)
	trade.Run()

	out := strings.Join(drainOutput(p.Output), "\n")
	if !strings.Contains(out, "not worth that much") {
		t.Fatalf("output missing value rejection:\n%s", out)
	}
	// Cancelling after the refusal restores both pools.
	if _, ok := p.Inventory().Find("dull pebble"); !ok {
		t.Fatalf("offered item not returned to the player")
	}
	if _, ok := npc.Inventory().Find("iron key"); !ok {
		t.Fatalf("requested item not returned to the npc")
	}
}

func TestTradeSubmitRejectsOverweightRequest(t *testing.T) {
	world, npc := newTradeWorld(t)

	anvil := &Item{Name: "field anvil", Weight: 40, Value: 1}
	npc.Inventory().Add(anvil)

	p := NewPlayer("Hero", newScriptedSession("add-theirs anvil", "submit", "cancel"), 1)
	world.AddPlayer(p)
	// Leave the pack nearly full so the anvil cannot fit.
	p.Inventory().Add(&Item{Name: "ore sack", Weight: 55, Value: 100})

	trade := newTrade(world, p, npc)
	trade.Run()

	out := strings.Join(drainOutput(p.Output), "\n")
	if !strings.Contains(out, "You could not carry all of that.") {
		t.Fatalf("output missing capacity rejection:\n%s", out)
	}
	if _, ok := npc.Inventory().Find("field anvil"); !ok {
		t.Fatalf("requested item not returned to the npc after cancel")
	}
	if p.Inventory().Len() != 1 {
		t.Fatalf("player pack changed size, len = %d, want 1", p.Inventory().Len())
	}
}

func TestTradeRemoveOwnRefusedWhenPackIsFull(t *testing.T) {
	world, npc := newTradeWorld(t)

	p := NewPlayer("Hero", newScriptedSession(), 1)
	world.AddPlayer(p)
	p.Inventory().Add(&Item{Name: "ore sack", Weight: 55, Value: 1})

	// 55 of 60 carried leaves no room to take the anvil back.
	trade := newTrade(world, p, npc)
	trade.offered = []*Item{{Name: "field anvil", Weight: 40, Value: 1}}

	trade.removeOwn("anvil")

	out := strings.Join(drainOutput(p.Output), "\n")
	if !strings.Contains(out, "cannot take that back") {
		t.Fatalf("output missing capacity refusal:\n%s", out)
	}
	if got := len(trade.offered); got != 1 {
		t.Fatalf("offered pool len = %d, want the anvil left on the table", got)
	}
	if got := p.Inventory().CurrentCapacity(); got != 55 {
		t.Fatalf("pack weight = %d, want 55", got)
	}
}

func TestTradeDisconnectRestoresBothPools(t *testing.T) {
	world, npc := newTradeWorld(t)

	pelt := &Item{Name: "wolf pelt", Weight: 2, Value: 10}
	key := &Item{Name: "iron key", Weight: 1, Value: 5}
	npc.Inventory().Add(key)

	p := NewPlayer("Hero", newScriptedSession("add-own pelt", "add-theirs key"), 1)
	world.AddPlayer(p)
	p.Inventory().Add(pelt)

	trade := newTrade(world, p, npc)
	if quit := trade.Run(); !quit {
		t.Fatalf("Run() = false after disconnect, want true")
	}

	if _, ok := p.Inventory().Find("wolf pelt"); !ok {
		t.Fatalf("offered item not restored after disconnect")
	}
	if _, ok := npc.Inventory().Find("iron key"); !ok {
		t.Fatalf("requested item not restored after disconnect")
	}
}
