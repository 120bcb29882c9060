package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxEquipped caps worn items: one per slot, six slots.
	MaxEquipped = 6
	// MaxHeld caps items carried in hand.
	MaxHeld = 2
)

// statOrder fixes the application order of item deltas so that
// MaxHealth adjustments land before Health clamping.
var statOrder = []Stat{
	StatMaxHealth, StatDefense, StatAccuracy, StatAgility, StatStrength,
	StatDexterity, StatKnowledge, StatLuck, StatCritAvoid, StatPresence,
	StatPerception, StatDamage, StatHealth,
}

// Player is one connected adventurer. Only the player's own goroutine
// mutates this state, with two exceptions guarded by mu: expiring
// consumable effects and revival at combat resolution.
type Player struct {
	Name     string
	Session  Session
	Output   chan string
	JoinedAt time.Time

	mu        sync.Mutex
	room      int
	stats     Stats
	equipped  map[Slot]*Item
	held      []*Item
	inventory *Inventory
	applied   map[*Item]map[Stat]int
	alive     bool
	dead      bool
	blocking  bool
	trading   bool
	combatID  uuid.UUID
	convID    uuid.UUID
}

// NewPlayer constructs a freshly logged-in player in the given room.
func NewPlayer(name string, session Session, room int) *Player {
	return &Player{
		Name:      name,
		Session:   session,
		Output:    make(chan string, 32),
		JoinedAt:  time.Now(),
		room:      room,
		stats:     DefaultStats(),
		equipped:  make(map[Slot]*Item),
		inventory: NewInventory(60),
		applied:   make(map[*Item]map[Stat]int),
		alive:     true,
	}
}

// Send queues a message without blocking; broadcasts from other
// goroutines drop rather than stall on a slow reader.
func (p *Player) Send(msg string) {
	select {
	case p.Output <- msg:
	default:
	}
}

// Room returns the player's current room id.
func (p *Player) Room() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.room
}

// SetRoom relocates the player.
func (p *Player) SetRoom(room int) {
	p.mu.Lock()
	p.room = room
	p.mu.Unlock()
}

// Alive reports whether the connection is still active.
func (p *Player) Alive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alive
}

// SetAlive flips the connection-active flag.
func (p *Player) SetAlive(alive bool) {
	p.mu.Lock()
	p.alive = alive
	p.mu.Unlock()
}

// Dead reports whether the player is awaiting revival.
func (p *Player) Dead() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dead
}

// SetDead marks or clears the awaiting-revival state.
func (p *Player) SetDead(dead bool) {
	p.mu.Lock()
	p.dead = dead
	p.mu.Unlock()
}

// Blocking reports whether the player braced for the next NPC blow.
func (p *Player) Blocking() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.blocking
}

// SetBlocking arms or clears the defend flag; it is consumed on the
// NPC's next strike only.
func (p *Player) SetBlocking(blocking bool) {
	p.mu.Lock()
	p.blocking = blocking
	p.mu.Unlock()
}

// Trading reports whether the player is inside a trade sub-protocol.
func (p *Player) Trading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trading
}

// SetTrading flips the trading flag.
func (p *Player) SetTrading(trading bool) {
	p.mu.Lock()
	p.trading = trading
	p.mu.Unlock()
}

// CombatID returns the player's combat back-reference, or uuid.Nil.
func (p *Player) CombatID() uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.combatID
}

// SetCombatID records or clears the combat back-reference.
func (p *Player) SetCombatID(id uuid.UUID) {
	p.mu.Lock()
	p.combatID = id
	p.mu.Unlock()
}

// ConversationID returns the player's conversation back-reference, or
// uuid.Nil.
func (p *Player) ConversationID() uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.convID
}

// SetConversationID records or clears the conversation back-reference.
func (p *Player) SetConversationID(id uuid.UUID) {
	p.mu.Lock()
	p.convID = id
	p.mu.Unlock()
}

// Stat reads one stat under the player lock.
func (p *Player) Stat(stat Stat) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats.Get(stat)
}

// SetStat writes one stat under the player lock.
func (p *Player) SetStat(stat Stat, v int) {
	p.mu.Lock()
	p.stats.Set(stat, v)
	p.mu.Unlock()
}

// AdjustStat adds a delta to one stat under the player lock and returns
// the effective change after clamping.
func (p *Player) AdjustStat(stat Stat, delta int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	before := p.stats.Get(stat)
	p.stats.Adjust(stat, delta)
	return p.stats.Get(stat) - before
}

// Stats returns a copy of the current stat block.
func (p *Player) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Inventory exposes the player's pack. Only the player's own goroutine
// mutates it outside of Trade, which holds the counterparty locks.
func (p *Player) Inventory() *Inventory {
	return p.inventory
}

// applyDeltasLocked applies an item's stat deltas in fixed order and
// records the effective per-stat change so reversal is exact even when
// clamping trimmed the application.
func (p *Player) applyDeltasLocked(item *Item) {
	if len(item.Deltas) == 0 {
		return
	}
	effective := make(map[Stat]int, len(item.Deltas))
	for _, stat := range statOrder {
		delta, ok := item.Deltas[stat]
		if !ok {
			continue
		}
		before := p.stats.Get(stat)
		p.stats.Adjust(stat, delta)
		effective[stat] = p.stats.Get(stat) - before
	}
	p.applied[item] = effective
}

// reverseDeltasLocked undoes exactly what applyDeltasLocked recorded.
func (p *Player) reverseDeltasLocked(item *Item) {
	effective, ok := p.applied[item]
	if !ok {
		return
	}
	for i := len(statOrder) - 1; i >= 0; i-- {
		stat := statOrder[i]
		delta, ok := effective[stat]
		if !ok {
			continue
		}
		p.stats.Adjust(stat, -delta)
	}
	delete(p.applied, item)
}

// Equip wears an item in its slot, applying its stat deltas. The item
// must already have been removed from its previous container.
func (p *Player) Equip(item *Item) error {
	if !item.Wearable {
		return fmt.Errorf("you cannot wear %s", item.Name)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.equipped) >= MaxEquipped {
		return fmt.Errorf("you cannot wear anything else")
	}
	if worn, ok := p.equipped[item.Slot]; ok {
		return fmt.Errorf("you are already wearing %s there", worn.Name)
	}
	p.equipped[item.Slot] = item
	p.applyDeltasLocked(item)
	return nil
}

// Unequip removes a worn item by name, reversing its deltas exactly.
func (p *Player) Unequip(name string) (*Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	slots := make([]Slot, 0, len(p.equipped))
	for _, slot := range EquipSlots {
		if _, ok := p.equipped[slot]; ok {
			slots = append(slots, slot)
		}
	}
	slot, ok := matchName(name, slots, func(s Slot) string { return p.equipped[s].Name })
	if !ok {
		return nil, ErrItemNotCarried
	}
	item := p.equipped[slot]
	delete(p.equipped, slot)
	p.reverseDeltasLocked(item)
	return item, nil
}

// Equipped returns a copy of the worn items in slot order.
func (p *Player) Equipped() []*Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Item, 0, len(p.equipped))
	for _, slot := range EquipSlots {
		if item, ok := p.equipped[slot]; ok {
			out = append(out, item)
		}
	}
	return out
}

// Hold grips an item in hand; two at most.
func (p *Player) Hold(item *Item) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.held) >= MaxHeld {
		return fmt.Errorf("your hands are full")
	}
	p.held = append(p.held, item)
	p.applyDeltasLocked(item)
	return nil
}

// Release lets go of a held item by name, reversing its deltas.
func (p *Player) Release(name string) (*Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx, ok := matchIndex(name, p.held, itemName)
	if !ok {
		return nil, ErrItemNotCarried
	}
	item := p.held[idx]
	p.held = append(p.held[:idx], p.held[idx+1:]...)
	p.reverseDeltasLocked(item)
	return item, nil
}

// Held returns a copy of the items in hand.
func (p *Player) Held() []*Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Item, len(p.held))
	copy(out, p.held)
	return out
}

// HeldWeapon returns the first held item tagged as a weapon. Exactly
// one weapon bonus applies per strike.
func (p *Player) HeldWeapon() (*Item, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range p.held {
		if item.Weapon {
			return item, true
		}
	}
	return nil, false
}

// FindCarried resolves an item by name against the most specific
// context first: inventory, then held items.
func (p *Player) FindCarried(name string) (*Item, bool) {
	if item, ok := p.inventory.Find(name); ok {
		return item, true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return matchName(name, p.held, itemName)
}

// HasKey reports whether any carried or held item generically matches a
// door key.
func (p *Player) HasKey() bool {
	for _, item := range p.inventory.Items() {
		if item.IsKey() {
			return true
		}
	}
	for _, item := range p.Held() {
		if item.IsKey() {
			return true
		}
	}
	return false
}

// SpillInventory empties the player's pack, held items, and worn items
// into the given room, reversing worn/held deltas. Used on death.
func (p *Player) SpillInventory(room *Room) {
	for _, item := range p.inventory.Items() {
		p.inventory.Remove(item)
		room.AddItem(item)
	}
	p.mu.Lock()
	held := p.held
	p.held = nil
	worn := make([]*Item, 0, len(p.equipped))
	for slot, item := range p.equipped {
		worn = append(worn, item)
		delete(p.equipped, slot)
	}
	for _, item := range held {
		p.reverseDeltasLocked(item)
	}
	for _, item := range worn {
		p.reverseDeltasLocked(item)
	}
	p.mu.Unlock()
	for _, item := range held {
		room.AddItem(item)
	}
	for _, item := range worn {
		room.AddItem(item)
	}
}
