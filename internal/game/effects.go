package game

import (
	"fmt"
	"strings"
	"time"
)

// consumableEffectDuration bounds how long a consumable's non-health
// stat deltas last before they are reversed exactly.
var consumableEffectDuration = 60 * time.Second

// ConsumeItem resolves and consumes a consumable from the player's
// inventory. An empty name picks the first consumable carried. The
// command name, when non-empty, must appear in the item's capability
// tags. Health deltas apply instantly and permanently (clamped to max);
// every other delta expires and reverses after a fixed duration.
func ConsumeItem(w *World, p *Player, name string, command string) (*Item, error) {
	var item *Item
	if strings.TrimSpace(name) == "" {
		for _, carried := range p.Inventory().Items() {
			if carried.Consumable {
				item = carried
				break
			}
		}
		if item == nil {
			return nil, fmt.Errorf("you have nothing to consume")
		}
	} else {
		found, ok := p.Inventory().Find(name)
		if !ok {
			return nil, ErrItemNotCarried
		}
		item = found
	}
	if !item.Consumable {
		return nil, fmt.Errorf("you cannot consume %s", item.Name)
	}
	if command != "" && !item.Allows(command) {
		return nil, fmt.Errorf("you cannot %s %s", command, item.Name)
	}

	p.Inventory().Remove(item)
	for _, stat := range statOrder {
		delta, ok := item.Deltas[stat]
		if !ok {
			continue
		}
		applied := p.AdjustStat(stat, delta)
		if stat == StatHealth || stat == StatMaxHealth || applied == 0 {
			continue
		}
		stat := stat
		reversal := applied
		time.AfterFunc(consumableEffectDuration, func() {
			p.AdjustStat(stat, -reversal)
			// The player may have disconnected before the timer fired;
			// deliver drops the message once they leave the roster.
			w.deliver(p, Ansi(Style(fmt.Sprintf("\r\nThe effect of %s wears off.", item.Name), AnsiDim)))
		})
	}
	w.LogEvent("consume", p.Name, fmt.Sprintf("item=%s", item.Name))
	return item, nil
}
