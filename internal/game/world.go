package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultAmbienceInterval = 45 * time.Second

// World owns the shared state: the live roster, the room graph, the
// encounter arenas, and the ambience broadcaster. The roster is guarded
// by a single mutex because every connection's goroutine reads and
// mutates it concurrently.
type World struct {
	mu      sync.Mutex
	players []*Player

	graph   *RoomGraph
	scripts *ScriptEngine
	events  *EventLog
	roll    Roller

	encMu         sync.Mutex
	combats       map[uuid.UUID]*CombatEncounter
	conversations map[uuid.UUID]*Conversation

	ambience time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// WorldOption customises world construction.
type WorldOption func(*World)

// WithRoller replaces the d100 dice, primarily for tests.
func WithRoller(roll Roller) WorldOption {
	return func(w *World) { w.roll = roll }
}

// WithAmbienceInterval overrides the ambience broadcast period. A
// non-positive interval disables the broadcaster.
func WithAmbienceInterval(interval time.Duration) WorldOption {
	return func(w *World) { w.ambience = interval }
}

// WithEventLog attaches a structured game event log.
func WithEventLog(events *EventLog) WorldOption {
	return func(w *World) { w.events = events }
}

// WithScripts attaches the NPC reaction script engine.
func WithScripts(scripts *ScriptEngine) WorldOption {
	return func(w *World) { w.scripts = scripts }
}

// NewWorld wires a world around a loaded room graph and starts the
// ambience broadcaster.
func NewWorld(graph *RoomGraph, opts ...WorldOption) *World {
	w := &World{
		graph:         graph,
		roll:          D100,
		combats:       make(map[uuid.UUID]*CombatEncounter),
		conversations: make(map[uuid.UUID]*Conversation),
		ambience:      defaultAmbienceInterval,
		stop:          make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if w.ambience > 0 {
		go w.ambienceLoop()
	}
	return w
}

// Close stops the ambience broadcaster and flushes the event log.
func (w *World) Close() {
	w.stopOnce.Do(func() { close(w.stop) })
	if w.events != nil {
		if err := w.events.Close(); err != nil {
			fmt.Printf("failed to close event log: %v\n", err)
		}
	}
}

// Graph exposes the static room graph.
func (w *World) Graph() *RoomGraph { return w.graph }

// Roll produces one d100 roll from the world's dice.
func (w *World) Roll() int { return w.roll() }

// AddPlayer registers a freshly logged-in player in the roster. Names
// are not unique; the roster tracks session identity.
func (w *World) AddPlayer(p *Player) {
	w.mu.Lock()
	w.players = append(w.players, p)
	w.mu.Unlock()
	w.LogEvent("login", p.Name, fmt.Sprintf("room=%d", p.Room()))
}

// RemovePlayer deregisters a player. It is idempotent: disconnects can
// be observed both by a failed read and by quit processing, so the
// second call finds nothing to do.
func (w *World) RemovePlayer(p *Player) {
	w.mu.Lock()
	removed := false
	for i, live := range w.players {
		if live == p {
			w.players = append(w.players[:i], w.players[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		// Closing under the roster lock serializes the close against
		// in-flight broadcasts, which also hold the lock.
		p.SetAlive(false)
		close(p.Output)
	}
	w.mu.Unlock()
	if removed {
		w.LogEvent("logout", p.Name, "")
	}
}

// deliver sends a message to a specific player only while they remain
// in the roster, so a send can never race a disconnecting player's
// channel teardown.
func (w *World) deliver(p *Player, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, live := range w.players {
		if live == p {
			p.Send(msg)
			return
		}
	}
}

// Broadcast sends a message to every live player. No player is skipped
// or double-sent within a single call; a failed delivery is that
// player's own problem and never aborts the rest.
func (w *World) Broadcast(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range w.players {
		if p.Alive() {
			p.Send(msg)
		}
	}
}

// BroadcastToRoom sends a message to every live player in a room,
// optionally excepting one.
func (w *World) BroadcastToRoom(room int, msg string, except *Player) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range w.players {
		if p == except || !p.Alive() {
			continue
		}
		if p.Room() == room {
			p.Send(msg)
		}
	}
}

// Players returns a snapshot of the roster.
func (w *World) Players() []*Player {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Player, len(w.players))
	copy(out, w.players)
	return out
}

// PlayerCount reports the number of live players.
func (w *World) PlayerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.players)
}

// PlayersInRoom returns the live players in a room, optionally
// excepting one.
func (w *World) PlayersInRoom(room int, except *Player) []*Player {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		if p == except || !p.Alive() {
			continue
		}
		if p.Room() == room {
			out = append(out, p)
		}
	}
	return out
}

func (w *World) ambienceLoop() {
	ticker := time.NewTicker(w.ambience)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.broadcastAmbience()
		case <-w.stop:
			return
		}
	}
}

func (w *World) broadcastAmbience() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range w.players {
		if !p.Alive() {
			continue
		}
		room, ok := w.graph.Room(p.Room())
		if !ok || room.Ambience == "" {
			continue
		}
		p.Send(Ansi("\r\n" + Style(room.Ambience, AnsiDim, AnsiItalic)))
	}
}

// Respawn handles death without revival: the full inventory spills into
// the room where the player fell, health is restored, and the player
// returns to the start room.
func (w *World) Respawn(p *Player) {
	if room, ok := w.graph.Room(p.Room()); ok {
		p.SpillInventory(room)
	}
	p.SetStat(StatHealth, p.Stat(StatMaxHealth))
	p.SetDead(false)
	p.SetRoom(w.graph.StartID())
	w.LogEvent("death", p.Name, "respawn")
}

// EngageCombat puts the player into combat with the target NPC,
// creating the encounter if the NPC has none or joining the existing
// combatant set otherwise.
func (w *World) EngageCombat(p *Player, npc *NPC, room *Room) (*CombatEncounter, error) {
	if npc.Dead() {
		return nil, fmt.Errorf("%s is already dead", npc.Name)
	}
	if npc.Faction() == FactionAlly {
		return nil, fmt.Errorf("%s is an ally and will not fight you", npc.Name)
	}
	w.encMu.Lock()
	defer w.encMu.Unlock()
	if id := npc.CombatID(); id != uuid.Nil {
		enc, ok := w.combats[id]
		if ok {
			enc.Join(p)
			return enc, nil
		}
	}
	enc := newCombatEncounter(w, npc, room)
	w.combats[enc.ID] = enc
	npc.SetCombatID(enc.ID)
	enc.Join(p)
	return enc, nil
}

// finishCombat tears an encounter down: one table removal plus clearing
// the NPC's back-reference. Combatant back-references are cleared as
// each player leaves the combatant set.
func (w *World) finishCombat(enc *CombatEncounter) {
	w.encMu.Lock()
	delete(w.combats, enc.ID)
	w.encMu.Unlock()
	if enc.npc.CombatID() == enc.ID {
		enc.npc.SetCombatID(uuid.Nil)
	}
}

// Combat resolves a combat encounter id from the arena table.
func (w *World) Combat(id uuid.UUID) (*CombatEncounter, bool) {
	w.encMu.Lock()
	defer w.encMu.Unlock()
	enc, ok := w.combats[id]
	return enc, ok
}

// BeginConversation opens a conversation between exactly one player and
// an NPC. Enemies redirect to combat at the caller; the dead refuse.
func (w *World) BeginConversation(p *Player, npc *NPC) (*Conversation, error) {
	if npc.Dead() {
		return nil, fmt.Errorf("%s is beyond conversation", npc.Name)
	}
	w.encMu.Lock()
	defer w.encMu.Unlock()
	if npc.ConversationID() != uuid.Nil {
		return nil, fmt.Errorf("%s is busy talking to someone else", npc.Name)
	}
	conv := newConversation(w, p, npc)
	w.conversations[conv.ID] = conv
	npc.SetConversationID(conv.ID)
	p.SetConversationID(conv.ID)
	return conv, nil
}

// finishConversation removes the conversation from the arena table and
// clears both back-references.
func (w *World) finishConversation(conv *Conversation) {
	w.encMu.Lock()
	delete(w.conversations, conv.ID)
	w.encMu.Unlock()
	if conv.npc.ConversationID() == conv.ID {
		conv.npc.SetConversationID(uuid.Nil)
	}
	if conv.player.ConversationID() == conv.ID {
		conv.player.SetConversationID(uuid.Nil)
	}
}

// Conversation resolves a conversation id from the arena table.
func (w *World) Conversation(id uuid.UUID) (*Conversation, bool) {
	w.encMu.Lock()
	defer w.encMu.Unlock()
	conv, ok := w.conversations[id]
	return conv, ok
}

// LogEvent streams a structured game event when a log is attached.
func (w *World) LogEvent(kind, actor, detail string) {
	if w.events == nil {
		return
	}
	if err := w.events.Write(kind, actor, detail); err != nil {
		fmt.Printf("failed to log %s event: %v\n", kind, err)
	}
}

// NotifyEnter fires NPC OnEnter scripts for a player arriving in a room.
func (w *World) NotifyEnter(room *Room, p *Player) {
	if w.scripts == nil {
		return
	}
	for _, npc := range room.NPCs(p.Stat(StatPerception)) {
		w.scripts.callOnEnter(w, room, npc, p)
	}
}

// NotifySay fires NPC OnSay scripts for a line spoken in a room.
func (w *World) NotifySay(room *Room, p *Player, message string) {
	if w.scripts == nil {
		return
	}
	for _, npc := range room.NPCs(p.Stat(StatPerception)) {
		w.scripts.callOnSay(w, room, npc, p, message)
	}
}
