package game

import (
	"sync"

	"github.com/google/uuid"
)

// Faction is an NPC's disposition tag governing which interactions are
// permitted. Faction mutates to FactionDead when health reaches zero.
type Faction string

const (
	FactionAlly     Faction = "ally"
	FactionNeutral  Faction = "neutral"
	FactionHostile  Faction = "hostile"
	FactionWildlife Faction = "wildlife"
	FactionEnemy    Faction = "enemy"
	FactionDead     Faction = "dead"
)

// FactionFromName resolves a faction label from world data.
func FactionFromName(name string) (Faction, bool) {
	switch Faction(name) {
	case FactionAlly, FactionNeutral, FactionHostile, FactionWildlife, FactionEnemy, FactionDead:
		return Faction(name), true
	}
	return "", false
}

// NPC is a world entity created once at load time. Its inventory can be
// mutated by a trading player's goroutine, so the NPC carries its own
// lock; the room lock does not cover NPC-owned state.
type NPC struct {
	ID            int
	Name          string
	Description   string
	Defense       int
	Damage        int
	Hidden        bool
	MinPerception int
	MinStrike     int
	CritChance    int
	MinDefend     int
	AttackSpeed   int
	Quest         bool
	Script        string

	mu        sync.Mutex
	health    int
	maxHealth int
	faction   Faction
	inventory *Inventory
	combatID  uuid.UUID
	convID    uuid.UUID
}

// NewNPC constructs a live NPC with the provided vitals and an empty pack.
func NewNPC(id int, name string, health int, faction Faction) *NPC {
	if health < 1 {
		health = 1
	}
	return &NPC{
		ID:        id,
		Name:      name,
		health:    health,
		maxHealth: health,
		faction:   faction,
		inventory: NewInventory(100),
	}
}

// Faction returns the NPC's current disposition.
func (n *NPC) Faction() Faction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.faction
}

// Dead reports whether the NPC has been slain.
func (n *NPC) Dead() bool {
	return n.Faction() == FactionDead
}

// Health returns the NPC's current and maximum health.
func (n *NPC) Health() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.health, n.maxHealth
}

// ApplyDamage reduces the NPC's health, clamping at zero. When health
// reaches zero the faction flips to dead. Returns the remaining health
// and whether this blow was fatal.
func (n *NPC) ApplyDamage(damage int) (int, bool) {
	if damage < 0 {
		damage = 0
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.faction == FactionDead {
		return 0, false
	}
	n.health -= damage
	if n.health <= 0 {
		n.health = 0
		n.faction = FactionDead
		return 0, true
	}
	return n.health, false
}

// Inventory exposes the NPC's pack. Callers that mutate it from another
// entity's goroutine must do so via Lock/Unlock.
func (n *NPC) Inventory() *Inventory {
	return n.inventory
}

// Lock acquires the NPC's own lock for cross-entity mutation (trade,
// loot spill).
func (n *NPC) Lock() { n.mu.Lock() }

// Unlock releases the NPC's lock.
func (n *NPC) Unlock() { n.mu.Unlock() }

// CombatID returns the id of the NPC's active combat encounter, or
// uuid.Nil when it is not fighting.
func (n *NPC) CombatID() uuid.UUID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.combatID
}

// SetCombatID records or clears the NPC's combat back-reference.
func (n *NPC) SetCombatID(id uuid.UUID) {
	n.mu.Lock()
	n.combatID = id
	n.mu.Unlock()
}

// ConversationID returns the id of the NPC's active conversation, or
// uuid.Nil when nobody is talking to it.
func (n *NPC) ConversationID() uuid.UUID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.convID
}

// SetConversationID records or clears the NPC's conversation back-reference.
func (n *NPC) SetConversationID(id uuid.UUID) {
	n.mu.Lock()
	n.convID = id
	n.mu.Unlock()
}

// VisibleTo reports whether a watcher with the given perception notices
// this NPC.
func (n *NPC) VisibleTo(perception int) bool {
	if !n.Hidden {
		return true
	}
	return perception >= n.MinPerception
}
