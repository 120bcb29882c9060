package game

import (
	"fmt"
	"strings"
)

// Trade is the embedded sub-protocol of a conversation. It maintains
// two transient pools — items the player offers and items the player
// requests — removed from their source inventories on add and restored
// on remove or cancel, so an item is never visible in two places.
type Trade struct {
	world     *World
	player    *Player
	npc       *NPC
	offered   []*Item
	requested []*Item
}

func newTrade(w *World, p *Player, npc *NPC) *Trade {
	return &Trade{world: w, player: p, npc: npc}
}

func findPoolItem(pool []*Item, name string) (int, bool) {
	return matchIndex(name, pool, itemName)
}

func poolWeight(pool []*Item) int {
	total := 0
	for _, item := range pool {
		total += item.Weight
	}
	return total
}

func poolValue(pool []*Item) int {
	total := 0
	for _, item := range pool {
		total += item.Value
	}
	return total
}

// Run drives the trade menu loop on the player's own goroutine.
// Returns true when the connection should terminate.
func (t *Trade) Run() bool {
	p := t.player
	p.SetTrading(true)
	defer p.SetTrading(false)

	for {
		p.Output <- Ansi(Style("\r\n[add-own, add-theirs, remove-own, remove-theirs, view, submit, cancel]: ", AnsiBold, AnsiYellow))
		line, err := p.Session.ReadLine()
		if err != nil {
			// Disconnect mid-trade: both pools return to their owners.
			t.restore()
			return true
		}
		fields := strings.SplitN(Trim(line), " ", 2)
		choice := strings.ToLower(fields[0])
		arg := ""
		if len(fields) > 1 {
			arg = strings.TrimSpace(fields[1])
		}

		switch choice {
		case "add-own", "add":
			t.addOwn(arg)
		case "add-theirs", "want":
			t.addTheirs(arg)
		case "remove-own", "remove":
			t.removeOwn(arg)
		case "remove-theirs", "decline":
			t.removeTheirs(arg)
		case "view", "v":
			t.view()
		case "submit":
			if t.submit() {
				return false
			}
		case "cancel", "":
			t.restore()
			p.Output <- Ansi("\r\nThe trade is called off.")
			return false
		default:
			p.Output <- Ansi(Style("\r\nChoose add-own, add-theirs, remove-own, remove-theirs, view, submit, or cancel.", AnsiYellow))
		}
	}
}

func (t *Trade) addOwn(name string) {
	p := t.player
	item, ok := p.Inventory().Find(name)
	if !ok {
		p.Output <- Ansi(Style("\r\nYou are not carrying that.", AnsiYellow))
		return
	}
	p.Inventory().Remove(item)
	t.offered = append(t.offered, item)
	p.Output <- Ansi(fmt.Sprintf("\r\nYou place %s on the table.", HighlightItemName(item.Name)))
}

func (t *Trade) addTheirs(name string) {
	p := t.player
	t.npc.Lock()
	item, ok := t.npc.Inventory().Find(name)
	if ok {
		t.npc.Inventory().Remove(item)
	}
	t.npc.Unlock()
	if !ok {
		p.Output <- Ansi(fmt.Sprintf("\r\n%s has no such thing.", HighlightNPCName(t.npc.Name)))
		return
	}
	t.requested = append(t.requested, item)
	p.Output <- Ansi(fmt.Sprintf("\r\nYou point at %s.", HighlightItemName(item.Name)))
}

func (t *Trade) removeOwn(name string) {
	p := t.player
	idx, ok := findPoolItem(t.offered, name)
	if !ok {
		p.Output <- Ansi(Style("\r\nThat is not part of your offer.", AnsiYellow))
		return
	}
	item := t.offered[idx]
	if !p.Inventory().Fits(item.Weight) {
		// Leave the item on the table; it still comes home on cancel.
		p.Output <- Ansi(Style("\r\nYour pack cannot take that back right now.", AnsiYellow))
		return
	}
	t.offered = append(t.offered[:idx], t.offered[idx+1:]...)
	p.Inventory().Add(item)
	p.Output <- Ansi(fmt.Sprintf("\r\nYou take back %s.", HighlightItemName(item.Name)))
}

func (t *Trade) removeTheirs(name string) {
	p := t.player
	idx, ok := findPoolItem(t.requested, name)
	if !ok {
		p.Output <- Ansi(Style("\r\nYou were not asking for that.", AnsiYellow))
		return
	}
	item := t.requested[idx]
	t.requested = append(t.requested[:idx], t.requested[idx+1:]...)
	t.npc.Lock()
	t.npc.Inventory().Add(item)
	t.npc.Unlock()
	p.Output <- Ansi(fmt.Sprintf("\r\nYou withdraw your interest in %s.", HighlightItemName(item.Name)))
}

func (t *Trade) view() {
	p := t.player
	var builder strings.Builder
	builder.WriteString("\r\nYou offer:")
	if len(t.offered) == 0 {
		builder.WriteString(" nothing")
	}
	for _, item := range t.offered {
		builder.WriteString(fmt.Sprintf("\r\n  %s (value %d, weight %d)", HighlightItemName(item.Name), item.Value, item.Weight))
	}
	builder.WriteString(fmt.Sprintf("\r\nYou ask of %s:", HighlightNPCName(t.npc.Name)))
	if len(t.requested) == 0 {
		builder.WriteString(" nothing")
	}
	for _, item := range t.requested {
		builder.WriteString(fmt.Sprintf("\r\n  %s (value %d, weight %d)", HighlightItemName(item.Name), item.Value, item.Weight))
	}
	builder.WriteString(fmt.Sprintf("\r\nOffered value %d against %d asked.", poolValue(t.offered), poolValue(t.requested)))
	p.Output <- Ansi(builder.String())
}

// submit validates and executes the exchange. On failure the player
// gets the specific reason and both pools are left intact for
// correction. On success the items move atomically under the NPC lock.
func (t *Trade) submit() bool {
	p := t.player
	if poolWeight(t.requested) > p.Inventory().Spare() {
		p.Output <- Ansi(Style("\r\nYou could not carry all of that.", AnsiYellow))
		return false
	}
	if poolValue(t.offered) < poolValue(t.requested) {
		p.Output <- Ansi(Style(fmt.Sprintf("\r\n%s scoffs. Your offer is not worth that much.", HighlightNPCName(t.npc.Name)), AnsiYellow))
		return false
	}

	t.npc.Lock()
	for _, item := range t.offered {
		t.npc.Inventory().Add(item)
	}
	t.npc.Unlock()
	for _, item := range t.requested {
		p.Inventory().Add(item)
	}
	t.world.LogEvent("trade", p.Name, fmt.Sprintf("npc=%s offered=%d requested=%d", t.npc.Name, len(t.offered), len(t.requested)))
	t.offered = nil
	t.requested = nil
	p.Output <- Ansi(Style("\r\nHands are shaken and goods change owners.", AnsiGreen))
	return true
}

// restore returns both pools to their original owners.
func (t *Trade) restore() {
	for _, item := range t.offered {
		t.player.Inventory().Add(item)
	}
	t.offered = nil
	if len(t.requested) > 0 {
		t.npc.Lock()
		for _, item := range t.requested {
			t.npc.Inventory().Add(item)
		}
		t.npc.Unlock()
	}
	t.requested = nil
}
