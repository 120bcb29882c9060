package game

import "strings"

// Slot names an equipment location on a player's body.
type Slot string

const (
	SlotHead  Slot = "head"
	SlotNeck  Slot = "neck"
	SlotChest Slot = "chest"
	SlotHands Slot = "hands"
	SlotLegs  Slot = "legs"
	SlotFeet  Slot = "feet"
)

// EquipSlots is the fixed set of wearable locations, in display order.
var EquipSlots = []Slot{SlotHead, SlotNeck, SlotChest, SlotHands, SlotLegs, SlotFeet}

// SlotFromName resolves an equip slot label from world data.
func SlotFromName(name string) (Slot, bool) {
	normalized := Slot(strings.ToLower(strings.TrimSpace(name)))
	for _, slot := range EquipSlots {
		if slot == normalized {
			return slot, true
		}
	}
	return "", false
}

// WeaponType tags a weapon with the stat family that boosts its damage.
type WeaponType string

const (
	WeaponSlow   WeaponType = "slow"
	WeaponFast   WeaponType = "fast"
	WeaponSpell  WeaponType = "spell"
	WeaponRanged WeaponType = "ranged"
)

// Item is an object living in exactly one container at a time: a room,
// a player's inventory, a held or equipped slot, or an NPC's pack.
type Item struct {
	ID          int
	Name        string
	Description string
	Weight      int
	Value       int
	Wearable    bool
	Consumable  bool
	Weapon      bool
	Slot        Slot
	WeaponType  WeaponType
	Deltas      map[Stat]int
	Commands    []string
}

// Allows reports whether the named command may target this item. An
// item with no capability tags refuses every gated command.
func (i *Item) Allows(command string) bool {
	normalized := strings.ToLower(strings.TrimSpace(command))
	for _, tag := range i.Commands {
		if strings.ToLower(tag) == normalized {
			return true
		}
	}
	return false
}

// IsKey reports whether the item generically opens locked doors.
func (i *Item) IsKey() bool {
	return strings.Contains(strings.ToLower(i.Name), "key")
}
