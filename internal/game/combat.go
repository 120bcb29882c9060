package game

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// CombatState tracks the encounter lifecycle.
type CombatState int

const (
	CombatNotStarted CombatState = iota
	CombatActive
	CombatVictory
	CombatDefeat
	CombatFled
	CombatAbandoned
)

// CombatEncounter is a turn-based state machine pitting one NPC against
// one or more players. Encounters live in the world's arena table keyed
// by ID; players and the NPC hold the id, never the pointer, so
// teardown is a table removal plus id clears.
type CombatEncounter struct {
	ID    uuid.UUID
	world *World
	npc   *NPC
	room  *Room

	mu         sync.Mutex
	state      CombatState
	combatants []*Player
	waiting    []*Player
	escape     *Door
}

func newCombatEncounter(w *World, npc *NPC, room *Room) *CombatEncounter {
	enc := &CombatEncounter{
		ID:    uuid.New(),
		world: w,
		npc:   npc,
		room:  room,
		state: CombatNotStarted,
	}
	if door, ok := room.FirstUnlockedDoor(); ok {
		enc.escape = door
	}
	return enc
}

// State returns the encounter's current lifecycle state.
func (e *CombatEncounter) State() CombatState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Join adds a player to the combatant set and wires the back-reference.
func (e *CombatEncounter) Join(p *Player) {
	e.mu.Lock()
	if e.state == CombatNotStarted {
		e.state = CombatActive
	}
	e.combatants = append(e.combatants, p)
	e.mu.Unlock()
	p.SetCombatID(e.ID)
}

// Leave removes a player from the combatant set and clears their
// back-reference. Safe to call for players no longer in the set.
func (e *CombatEncounter) Leave(p *Player) {
	e.mu.Lock()
	for i, c := range e.combatants {
		if c == p {
			e.combatants = append(e.combatants[:i], e.combatants[i+1:]...)
			break
		}
	}
	e.mu.Unlock()
	if p.CombatID() == e.ID {
		p.SetCombatID(uuid.Nil)
	}
	p.SetBlocking(false)
}

func (e *CombatEncounter) contains(p *Player) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.combatants {
		if c == p {
			return true
		}
	}
	return false
}

func (e *CombatEncounter) combatantCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.combatants)
}

// Combatants returns a snapshot of the combatant set.
func (e *CombatEncounter) Combatants() []*Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Player, len(e.combatants))
	copy(out, e.combatants)
	return out
}

func (e *CombatEncounter) resolve(state CombatState) {
	e.mu.Lock()
	if e.state == CombatActive || e.state == CombatNotStarted {
		e.state = state
	}
	combatants := e.combatants
	e.combatants = nil
	waiting := e.waiting
	e.waiting = nil
	e.mu.Unlock()

	for _, c := range combatants {
		if c.CombatID() == e.ID {
			c.SetCombatID(uuid.Nil)
		}
		c.SetBlocking(false)
	}
	// Players who accepted the revival wait rise at half health where
	// they fell once the encounter reaches any terminal state.
	for _, p := range waiting {
		p.SetDead(false)
		p.SetStat(StatHealth, p.Stat(StatMaxHealth)/2)
		e.world.deliver(p, Ansi("\r\n"+Style("Warmth returns to your limbs. You rise, battered but alive.", AnsiGreen)))
	}
	e.world.finishCombat(e)
}

// Run drives the per-round menu loop for one acting player on that
// player's own goroutine. It returns true when the connection should
// terminate (the read failed mid-combat).
func (e *CombatEncounter) Run(p *Player) bool {
	for {
		if e.State() != CombatActive || !e.contains(p) {
			return false
		}
		if e.npc.Dead() {
			// Another combatant landed the killing blow between rounds.
			return false
		}
		if p.Stat(StatHealth) <= 0 {
			return e.handleDefeat(p)
		}

		health, maxHealth := e.npc.Health()
		p.Output <- Ansi(fmt.Sprintf("\r\n%s: %d/%d HP", HighlightNPCName(e.npc.Name), health, maxHealth))
		p.Output <- Ansi(Style("\r\n[attack, defend, heal, run]: ", AnsiBold, AnsiYellow))

		line, err := p.Session.ReadLine()
		if err != nil {
			// Disconnect mid-combat behaves as run with no penalty.
			e.Leave(p)
			if e.combatantCount() == 0 {
				e.resolve(CombatFled)
			}
			return true
		}
		fields := strings.Fields(strings.ToLower(Trim(line)))
		choice := ""
		arg := ""
		if len(fields) > 0 {
			choice = fields[0]
			arg = strings.Join(fields[1:], " ")
		}

		acted := false
		switch choice {
		case "attack", "a":
			e.playerAttack(p)
			acted = true
		case "defend", "d":
			p.SetBlocking(true)
			p.Output <- Ansi("\r\nYou raise your guard.")
			acted = true
		case "heal", "h":
			e.playerHeal(p, arg)
			acted = true
		case "run", "r", "flee":
			if e.playerRun(p) {
				return false
			}
		case "":
			// empty line, re-prompt
		default:
			p.Output <- Ansi(Style("\r\nChoose attack, defend, heal, or run.", AnsiYellow))
		}

		if e.State() != CombatActive {
			return false
		}
		if acted && !e.npc.Dead() {
			e.npcTurn()
		}
		if p.Stat(StatHealth) <= 0 {
			return e.handleDefeat(p)
		}
	}
}

// playerAttack resolves one strike: d100 + accuracy against the NPC's
// minimum-strike threshold, a luck-assisted crit roll, exactly one
// weapon-type bonus, then NPC defense floored at zero.
func (e *CombatEncounter) playerAttack(p *Player) {
	hitRoll := e.world.Roll() + p.Stat(StatAccuracy)
	if hitRoll < e.npc.MinStrike {
		p.Output <- Ansi(Style("\r\nMiss!", AnsiYellow))
		e.world.BroadcastToRoom(e.room.ID, Ansi(fmt.Sprintf("\r\n%s swings at %s and misses.", HighlightName(p.Name), HighlightNPCName(e.npc.Name))), p)
		return
	}

	damage := p.Stat(StatDamage)
	critRoll := e.world.Roll() + p.Stat(StatLuck)
	crit := critRoll >= e.npc.CritChance
	if crit {
		damage += p.Stat(StatDamage) / 2
	}

	if weapon, ok := p.HeldWeapon(); ok {
		switch weapon.WeaponType {
		case WeaponSlow:
			damage += p.Stat(StatStrength) / 2
		case WeaponFast:
			damage += p.Stat(StatDexterity) / 2
		case WeaponSpell:
			damage += p.Stat(StatKnowledge) / 2
		case WeaponRanged:
			damage += (p.Stat(StatDexterity) + p.Stat(StatAgility)) / 2
		}
	} else {
		damage += p.Stat(StatStrength)
	}

	damage -= e.npc.Defense
	if damage < 0 {
		damage = 0
	}

	remaining, dead := e.npc.ApplyDamage(damage)
	npcName := HighlightNPCName(e.npc.Name)
	if crit {
		p.Output <- Ansi(Style("\r\nCritical hit!", AnsiBold, AnsiRed))
	}
	_, maxHealth := e.npc.Health()
	p.Output <- Ansi(fmt.Sprintf("\r\nYou strike %s for %d damage. (%d/%d HP)", npcName, damage, remaining, maxHealth))
	e.world.BroadcastToRoom(e.room.ID, Ansi(fmt.Sprintf("\r\n%s strikes %s for %d damage.", HighlightName(p.Name), npcName, damage)), p)

	if dead {
		e.npcSlain(p)
	}
}

// npcSlain finalises an NPC death: the corpse moves to the room's dead
// set, the pack spills onto the floor, and the encounter resolves as a
// victory for every combatant.
func (e *CombatEncounter) npcSlain(killer *Player) {
	e.room.RecordDeath(e.npc)

	e.npc.Lock()
	loot := e.npc.Inventory().Items()
	for _, item := range loot {
		e.npc.Inventory().Remove(item)
	}
	e.npc.Unlock()
	for _, item := range loot {
		e.room.AddItem(item)
	}

	npcName := HighlightNPCName(e.npc.Name)
	for _, c := range e.Combatants() {
		e.world.deliver(c, Ansi(fmt.Sprintf("\r\n%s collapses. Victory!", npcName)))
	}
	e.world.BroadcastToRoom(e.room.ID, Ansi(fmt.Sprintf("\r\n%s has slain %s!", HighlightName(killer.Name), npcName)), nil)
	if len(loot) > 0 {
		names := make([]string, len(loot))
		for i, item := range loot {
			names[i] = HighlightItemName(item.Name)
		}
		e.world.BroadcastToRoom(e.room.ID, Ansi(fmt.Sprintf("\r\n%s leaves behind %s.", npcName, strings.Join(names, ", "))), nil)
	}
	e.world.LogEvent("kill", killer.Name, fmt.Sprintf("npc=%s room=%d", e.npc.Name, e.room.ID))
	e.resolve(CombatVictory)
}

// playerHeal consumes a consumable from the player's inventory, with
// the same resolution as the standalone eat handler.
func (e *CombatEncounter) playerHeal(p *Player, name string) {
	item, err := ConsumeItem(e.world, p, name, "")
	if err != nil {
		p.Output <- Ansi(Style("\r\n"+err.Error(), AnsiYellow))
		return
	}
	p.Output <- Ansi(fmt.Sprintf("\r\nYou consume %s. (%d/%d HP)", HighlightItemName(item.Name), p.Stat(StatHealth), p.Stat(StatMaxHealth)))
}

// playerRun attempts to flee. Fleeing is only permitted when the player
// is the sole combatant, and uses the encounter's pre-selected unlocked
// door. Returns true when the player has left the encounter.
func (e *CombatEncounter) playerRun(p *Player) bool {
	if e.combatantCount() > 1 {
		p.Output <- Ansi(Style("\r\nYou cannot abandon your allies mid-fight.", AnsiYellow))
		return false
	}
	if e.escape == nil {
		p.Output <- Ansi(Style("\r\nThere is no way out!", AnsiYellow))
		return false
	}
	e.Leave(p)
	p.SetRoom(e.escape.Rooms[1])
	p.Output <- Ansi(fmt.Sprintf("\r\nYou flee %s!", Style(e.escape.Direction, AnsiBold)))
	e.world.BroadcastToRoom(e.room.ID, Ansi(fmt.Sprintf("\r\n%s flees the fight!", HighlightName(p.Name))), p)
	e.world.LogEvent("flee", p.Name, fmt.Sprintf("npc=%s", e.npc.Name))
	if e.combatantCount() == 0 {
		e.resolve(CombatFled)
	}
	return true
}

// npcTurn resolves the NPC's counterattack against the combatant with
// the highest presence.
func (e *CombatEncounter) npcTurn() {
	e.mu.Lock()
	var target *Player
	for _, c := range e.combatants {
		if c.Stat(StatHealth) <= 0 {
			continue
		}
		if target == nil || c.Stat(StatPresence) > target.Stat(StatPresence) {
			target = c
		}
	}
	e.mu.Unlock()
	if target == nil {
		// Nobody left standing to strike: the encounter is abandoned
		// without reward.
		e.resolve(CombatAbandoned)
		return
	}

	npcName := HighlightNPCName(e.npc.Name)
	hitRoll := e.world.Roll()
	if hitRoll <= target.Stat(StatAgility) {
		e.world.deliver(target, Ansi(fmt.Sprintf("\r\n%s lunges at you and misses.", npcName)))
		e.world.BroadcastToRoom(e.room.ID, Ansi(fmt.Sprintf("\r\n%s lunges at %s and misses.", npcName, HighlightName(target.Name))), target)
		return
	}

	damage := e.npc.Damage
	critRoll := e.world.Roll()
	if critRoll > target.Stat(StatCritAvoid) {
		damage += e.npc.Damage / 2
		e.world.deliver(target, Ansi(Style("\r\nA savage blow!", AnsiBold, AnsiRed)))
	} else if critRoll < target.Stat(StatLuck) {
		damage -= e.npc.Damage / 2
	}

	if target.Blocking() {
		damage -= target.Stat(StatDefense)
		target.SetBlocking(false)
	}
	if damage < 0 {
		damage = 0
	}

	target.AdjustStat(StatHealth, -damage)
	remaining := target.Stat(StatHealth)
	e.world.deliver(target, Ansi(fmt.Sprintf("\r\n%s strikes you for %d damage. (%d/%d HP)", npcName, damage, remaining, target.Stat(StatMaxHealth))))
	e.world.BroadcastToRoom(e.room.ID, Ansi(fmt.Sprintf("\r\n%s strikes %s for %d damage.", npcName, HighlightName(target.Name), damage)), target)
}

// handleDefeat processes the acting player reaching zero health: both
// back-references are cleared, and either a revival wait is offered or
// the respawn path runs. Returns true when the connection should close.
func (e *CombatEncounter) handleDefeat(p *Player) bool {
	e.Leave(p)
	p.Output <- Ansi(Style("\r\nDarkness closes in...", AnsiBold, AnsiRed))
	e.world.BroadcastToRoom(e.room.ID, Ansi(fmt.Sprintf("\r\n%s collapses!", HighlightName(p.Name))), p)
	e.world.LogEvent("defeat", p.Name, fmt.Sprintf("npc=%s", e.npc.Name))

	defer func() {
		if e.combatantCount() == 0 && e.State() == CombatActive {
			e.resolve(CombatDefeat)
		}
	}()

	if e.world.PlayerCount() > 2 {
		p.Output <- Ansi(Style("\r\nWait for someone to finish the fight and revive you? (yes/no): ", AnsiYellow))
		for {
			line, err := p.Session.ReadLine()
			if err != nil {
				e.world.Respawn(p)
				return true
			}
			switch strings.ToLower(Trim(line)) {
			case "y", "yes":
				p.SetDead(true)
				e.mu.Lock()
				if e.state != CombatActive {
					// The fight resolved while the answer was pending;
					// nobody is left to revive this player.
					e.mu.Unlock()
					e.world.Respawn(p)
					p.Output <- Ansi(Style("\r\nYou awaken at the keep's gate, whole but empty-handed.", AnsiYellow))
					return false
				}
				e.waiting = append(e.waiting, p)
				e.mu.Unlock()
				p.Output <- Ansi(Style("\r\nYou lie still, clinging to a thread of life.", AnsiDim))
				return false
			case "n", "no":
				e.world.Respawn(p)
				p.Output <- Ansi(Style("\r\nYou awaken at the keep's gate, whole but empty-handed.", AnsiYellow))
				return false
			default:
				p.Output <- Ansi(Style("\r\nPlease answer yes or no: ", AnsiYellow))
			}
		}
	}

	e.world.Respawn(p)
	p.Output <- Ansi(Style("\r\nYou awaken at the keep's gate, whole but empty-handed.", AnsiYellow))
	return false
}
