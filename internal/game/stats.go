package game

import "strings"

// Stat identifies one field of a stat block. Item deltas reference stats
// by name in world data, so every stat has a canonical lowercase label.
type Stat int

const (
	StatHealth Stat = iota
	StatMaxHealth
	StatDefense
	StatAccuracy
	StatAgility
	StatStrength
	StatDexterity
	StatKnowledge
	StatLuck
	StatCritAvoid
	StatPresence
	StatPerception
	StatDamage
)

var statNames = map[Stat]string{
	StatHealth:     "health",
	StatMaxHealth:  "maxhealth",
	StatDefense:    "defense",
	StatAccuracy:   "accuracy",
	StatAgility:    "agility",
	StatStrength:   "strength",
	StatDexterity:  "dexterity",
	StatKnowledge:  "knowledge",
	StatLuck:       "luck",
	StatCritAvoid:  "critavoid",
	StatPresence:   "presence",
	StatPerception: "perception",
	StatDamage:     "damage",
}

// StatFromName resolves a lowercase stat label from world data.
func StatFromName(name string) (Stat, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for stat, label := range statNames {
		if label == normalized {
			return stat, true
		}
	}
	return 0, false
}

func (s Stat) String() string {
	if name, ok := statNames[s]; ok {
		return name
	}
	return "unknown"
}

// Stats is the fixed stat block shared by players. Health tracks against
// MaxHealth; every other stat is bounded to [0, 100].
type Stats struct {
	Health     int
	MaxHealth  int
	Defense    int
	Accuracy   int
	Agility    int
	Strength   int
	Dexterity  int
	Knowledge  int
	Luck       int
	CritAvoid  int
	Presence   int
	Perception int
	Damage     int
}

// DefaultStats returns the stat block assigned to a fresh player.
func DefaultStats() Stats {
	return Stats{
		Health:     100,
		MaxHealth:  100,
		Defense:    5,
		Accuracy:   10,
		Agility:    10,
		Strength:   10,
		Dexterity:  10,
		Knowledge:  10,
		Luck:       10,
		CritAvoid:  10,
		Presence:   10,
		Perception: 10,
		Damage:     10,
	}
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Get returns the current value of the identified stat.
func (s *Stats) Get(stat Stat) int {
	switch stat {
	case StatHealth:
		return s.Health
	case StatMaxHealth:
		return s.MaxHealth
	case StatDefense:
		return s.Defense
	case StatAccuracy:
		return s.Accuracy
	case StatAgility:
		return s.Agility
	case StatStrength:
		return s.Strength
	case StatDexterity:
		return s.Dexterity
	case StatKnowledge:
		return s.Knowledge
	case StatLuck:
		return s.Luck
	case StatCritAvoid:
		return s.CritAvoid
	case StatPresence:
		return s.Presence
	case StatPerception:
		return s.Perception
	case StatDamage:
		return s.Damage
	}
	return 0
}

// Set assigns a stat, clamping bounded stats to [0, 100] and health to
// [0, MaxHealth]. MaxHealth itself only clamps at zero.
func (s *Stats) Set(stat Stat, v int) {
	switch stat {
	case StatHealth:
		if v < 0 {
			v = 0
		}
		if v > s.MaxHealth {
			v = s.MaxHealth
		}
		s.Health = v
	case StatMaxHealth:
		if v < 0 {
			v = 0
		}
		s.MaxHealth = v
		if s.Health > s.MaxHealth {
			s.Health = s.MaxHealth
		}
	case StatDefense:
		s.Defense = clampStat(v)
	case StatAccuracy:
		s.Accuracy = clampStat(v)
	case StatAgility:
		s.Agility = clampStat(v)
	case StatStrength:
		s.Strength = clampStat(v)
	case StatDexterity:
		s.Dexterity = clampStat(v)
	case StatKnowledge:
		s.Knowledge = clampStat(v)
	case StatLuck:
		s.Luck = clampStat(v)
	case StatCritAvoid:
		s.CritAvoid = clampStat(v)
	case StatPresence:
		s.Presence = clampStat(v)
	case StatPerception:
		s.Perception = clampStat(v)
	case StatDamage:
		s.Damage = clampStat(v)
	}
}

// Adjust adds delta to the identified stat through Set's clamping.
func (s *Stats) Adjust(stat Stat, delta int) {
	s.Set(stat, s.Get(stat)+delta)
}
