package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrItemGone indicates an item vanished between being seen and taken,
// typically because another player grabbed it first.
var ErrItemGone = errors.New("that item is no longer there")

// Door is a directional record: traversal is only defined from
// Rooms[0] toward Rooms[1]. A return path needs its own Door in the
// opposite room. Mutable door state is guarded by the owning room's lock.
type Door struct {
	ID            int
	Direction     string
	HasKey        bool
	PickDexterity int
	Rooms         [2]int

	locked bool
}

// Room holds the mutable per-room collections. Its lock covers items,
// live NPCs, dead NPCs, and door lock state so that check-then-move
// sequences are atomic against other players' goroutines.
type Room struct {
	ID          int
	Name        string
	Description string
	Ambience    string
	Script      string

	mu    sync.Mutex
	items []*Item
	npcs  []*NPC
	dead  []*NPC
	doors []*Door
}

// directionSynonyms maps long direction names onto door labels.
var directionSynonyms = map[string]string{
	"north": "n",
	"south": "s",
	"east":  "e",
	"west":  "w",
	"up":    "u",
	"down":  "d",
}

// NormalizeDirection collapses a direction synonym onto its door label.
func NormalizeDirection(dir string) string {
	normalized := strings.ToLower(strings.TrimSpace(dir))
	if short, ok := directionSynonyms[normalized]; ok {
		return short
	}
	return normalized
}

// AddItem places an item on the room floor.
func (r *Room) AddItem(item *Item) {
	if item == nil {
		return
	}
	r.mu.Lock()
	r.items = append(r.items, item)
	r.mu.Unlock()
}

// TakeItem atomically resolves and removes an item by name. Exactly one
// of two concurrent takers succeeds; the loser sees ErrItemGone when the
// name no longer resolves.
func (r *Room) TakeItem(name string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := matchIndex(name, r.items, itemName)
	if !ok {
		return nil, ErrItemGone
	}
	item := r.items[idx]
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return item, nil
}

// FindItem resolves an item on the floor without removing it.
func (r *Room) FindItem(name string) (*Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return matchName(name, r.items, itemName)
}

// Items returns a copy of the floor contents.
func (r *Room) Items() []*Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Item, len(r.items))
	copy(out, r.items)
	return out
}

// AddNPC registers a live NPC in the room.
func (r *Room) AddNPC(npc *NPC) {
	if npc == nil {
		return
	}
	r.mu.Lock()
	r.npcs = append(r.npcs, npc)
	r.mu.Unlock()
}

// FindNPC resolves a live NPC by name. Hidden NPCs are only found by
// watchers whose perception meets the NPC's detection threshold.
func (r *Room) FindNPC(name string, perception int) (*NPC, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	visible := make([]*NPC, 0, len(r.npcs))
	for _, npc := range r.npcs {
		if npc.VisibleTo(perception) {
			visible = append(visible, npc)
		}
	}
	return matchName(name, visible, func(npc *NPC) string { return npc.Name })
}

// NPCs returns a copy of the live NPCs visible to the given perception.
func (r *Room) NPCs(perception int) []*NPC {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*NPC, 0, len(r.npcs))
	for _, npc := range r.npcs {
		if npc.VisibleTo(perception) {
			out = append(out, npc)
		}
	}
	return out
}

// DeadNPCs returns a copy of the fallen NPCs retained for display.
func (r *Room) DeadNPCs() []*NPC {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*NPC, len(r.dead))
	copy(out, r.dead)
	return out
}

// RecordDeath moves a slain NPC from the live set to the dead set. The
// corpse never re-enters combat or conversation.
func (r *Room) RecordDeath(npc *NPC) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, live := range r.npcs {
		if live == npc {
			r.npcs = append(r.npcs[:i], r.npcs[i+1:]...)
			r.dead = append(r.dead, npc)
			return
		}
	}
}

// AddDoor attaches an outgoing door to the room.
func (r *Room) AddDoor(door *Door) {
	if door == nil {
		return
	}
	r.mu.Lock()
	r.doors = append(r.doors, door)
	r.mu.Unlock()
}

// Door resolves an outgoing door by direction, accepting synonyms.
func (r *Room) Door(direction string) (*Door, bool) {
	normalized := NormalizeDirection(direction)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, door := range r.doors {
		if door.Direction == normalized {
			return door, true
		}
	}
	return nil, false
}

// Doors returns a copy of the room's outgoing doors.
func (r *Room) Doors() []*Door {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Door, len(r.doors))
	copy(out, r.doors)
	return out
}

// ExitList renders the room's outgoing directions sorted for display.
func (r *Room) ExitList() string {
	r.mu.Lock()
	dirs := make([]string, 0, len(r.doors))
	for _, door := range r.doors {
		dirs = append(dirs, door.Direction)
	}
	r.mu.Unlock()
	if len(dirs) == 0 {
		return "none"
	}
	sort.Strings(dirs)
	return strings.Join(dirs, " ")
}

// DoorLocked reports the lock state of a door under the room's lock.
func (r *Room) DoorLocked(door *Door) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return door.locked
}

// UnlockDoor permanently unlocks a door after a successful pick.
func (r *Room) UnlockDoor(door *Door) {
	r.mu.Lock()
	door.locked = false
	r.mu.Unlock()
}

// FirstUnlockedDoor returns the room's first open exit, used when a
// fleeing combatant needs an escape route.
func (r *Room) FirstUnlockedDoor() (*Door, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, door := range r.doors {
		if !door.locked {
			return door, true
		}
	}
	return nil, false
}

// RoomGraph is the static map built once by the loader: rooms keyed by
// id, with every door/item/NPC reference resolved to a live pointer.
type RoomGraph struct {
	rooms map[int]*Room
	start int
}

// NewRoomGraph assembles a graph from fully-linked rooms. The start
// room must exist.
func NewRoomGraph(rooms map[int]*Room, start int) (*RoomGraph, error) {
	if _, ok := rooms[start]; !ok {
		return nil, fmt.Errorf("start room %d does not exist", start)
	}
	return &RoomGraph{rooms: rooms, start: start}, nil
}

// Room looks up a room by id.
func (g *RoomGraph) Room(id int) (*Room, bool) {
	r, ok := g.rooms[id]
	return r, ok
}

// Start returns the entry room for new and respawning players.
func (g *RoomGraph) Start() *Room {
	return g.rooms[g.start]
}

// StartID returns the id of the entry room.
func (g *RoomGraph) StartID() int { return g.start }

// Rooms returns the room ids in ascending order.
func (g *RoomGraph) Rooms() []int {
	ids := make([]int, 0, len(g.rooms))
	for id := range g.rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
