package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// worldSchema rejects structurally broken world files before decoding.
// Reference resolution (dangling ids, duplicate ownership) is checked
// afterwards in linkWorld, where the error messages can name entities.
const worldSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["start", "rooms"],
	"properties": {
		"start": {"type": "integer"},
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": "integer"},
					"name": {"type": "string", "minLength": 1},
					"weight": {"type": "integer", "minimum": 0},
					"value": {"type": "integer", "minimum": 0}
				}
			}
		},
		"npcs": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "health", "faction"],
				"properties": {
					"id": {"type": "integer"},
					"name": {"type": "string", "minLength": 1},
					"health": {"type": "integer", "minimum": 1},
					"faction": {"type": "string"}
				}
			}
		},
		"rooms": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": "integer"},
					"name": {"type": "string", "minLength": 1},
					"doors": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["id", "direction", "to"],
							"properties": {
								"id": {"type": "integer"},
								"direction": {"type": "string", "minLength": 1},
								"to": {"type": "integer"}
							}
						}
					}
				}
			}
		}
	}
}`

type itemDef struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Weight      int            `json:"weight"`
	Value       int            `json:"value"`
	Wearable    bool           `json:"wearable"`
	Consumable  bool           `json:"consumable"`
	Weapon      bool           `json:"weapon"`
	Slot        string         `json:"slot"`
	WeaponType  string         `json:"weapon_type"`
	Deltas      map[string]int `json:"deltas"`
	Commands    []string       `json:"commands"`
}

type npcDef struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Health        int    `json:"health"`
	Defense       int    `json:"defense"`
	Damage        int    `json:"damage"`
	Faction       string `json:"faction"`
	Hidden        bool   `json:"hidden"`
	MinPerception int    `json:"min_perception"`
	MinStrike     int    `json:"min_strike"`
	CritChance    int    `json:"crit_chance"`
	MinDefend     int    `json:"min_defend"`
	AttackSpeed   int    `json:"attack_speed"`
	Quest         bool   `json:"quest"`
	Script        string `json:"script"`
	Items         []int  `json:"items"`
}

type doorDef struct {
	ID            int    `json:"id"`
	Direction     string `json:"direction"`
	To            int    `json:"to"`
	Locked        bool   `json:"locked"`
	HasKey        bool   `json:"has_key"`
	PickDexterity int    `json:"pick_dexterity"`
}

type roomDef struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Ambience    string    `json:"ambience"`
	Script      string    `json:"script"`
	Items       []int     `json:"items"`
	NPCs        []int     `json:"npcs"`
	Doors       []doorDef `json:"doors"`
}

type worldFile struct {
	Start int       `json:"start"`
	Items []itemDef `json:"items"`
	NPCs  []npcDef  `json:"npcs"`
	Rooms []roomDef `json:"rooms"`
}

// LoadWorldFile reads, validates, and links a world data file. Any
// unresolved reference is an error: the caller is expected to treat it
// as fatal before accepting connections.
func LoadWorldFile(path string) (*RoomGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world file: %w", err)
	}
	return ParseWorld(data)
}

// ParseWorld decodes and links world data from raw JSON.
func ParseWorld(data []byte) (*RoomGraph, error) {
	schema, err := jsonschema.CompileString("world.schema.json", worldSchema)
	if err != nil {
		return nil, fmt.Errorf("compile world schema: %w", err)
	}
	var raw any
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode world file: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate world file: %w", err)
	}
	var file worldFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode world file: %w", err)
	}
	return linkWorld(&file)
}

func linkWorld(file *worldFile) (*RoomGraph, error) {
	items := make(map[int]*Item, len(file.Items))
	for _, def := range file.Items {
		if _, exists := items[def.ID]; exists {
			return nil, fmt.Errorf("duplicate item id %d", def.ID)
		}
		item, err := buildItem(def)
		if err != nil {
			return nil, err
		}
		items[def.ID] = item
	}

	npcs := make(map[int]*NPC, len(file.NPCs))
	itemOwners := make(map[int]string)
	for _, def := range file.NPCs {
		if _, exists := npcs[def.ID]; exists {
			return nil, fmt.Errorf("duplicate npc id %d", def.ID)
		}
		npc, err := buildNPC(def)
		if err != nil {
			return nil, err
		}
		for _, itemID := range def.Items {
			item, ok := items[itemID]
			if !ok {
				return nil, fmt.Errorf("npc %q references unknown item %d", def.Name, itemID)
			}
			if owner, claimed := itemOwners[itemID]; claimed {
				return nil, fmt.Errorf("item %d placed twice: %s and npc %q", itemID, owner, def.Name)
			}
			itemOwners[itemID] = fmt.Sprintf("npc %q", def.Name)
			npc.Inventory().Add(item)
		}
		npcs[def.ID] = npc
	}

	rooms := make(map[int]*Room, len(file.Rooms))
	npcRooms := make(map[int]int)
	for i := range file.Rooms {
		def := &file.Rooms[i]
		if _, exists := rooms[def.ID]; exists {
			return nil, fmt.Errorf("duplicate room id %d", def.ID)
		}
		room := &Room{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Ambience:    def.Ambience,
			Script:      def.Script,
		}
		for _, itemID := range def.Items {
			item, ok := items[itemID]
			if !ok {
				return nil, fmt.Errorf("room %d references unknown item %d", def.ID, itemID)
			}
			if owner, claimed := itemOwners[itemID]; claimed {
				return nil, fmt.Errorf("item %d placed twice: %s and room %d", itemID, owner, def.ID)
			}
			itemOwners[itemID] = fmt.Sprintf("room %d", def.ID)
			room.AddItem(item)
		}
		for _, npcID := range def.NPCs {
			npc, ok := npcs[npcID]
			if !ok {
				return nil, fmt.Errorf("room %d references unknown npc %d", def.ID, npcID)
			}
			if prev, placed := npcRooms[npcID]; placed {
				return nil, fmt.Errorf("npc %d placed twice: room %d and room %d", npcID, prev, def.ID)
			}
			npcRooms[npcID] = def.ID
			room.AddNPC(npc)
		}
		rooms[def.ID] = room
	}

	// Doors link after every room exists so both ends can be checked.
	doorIDs := make(map[int]bool)
	for i := range file.Rooms {
		def := &file.Rooms[i]
		room := rooms[def.ID]
		seen := make(map[string]bool)
		for _, dd := range def.Doors {
			if doorIDs[dd.ID] {
				return nil, fmt.Errorf("duplicate door id %d", dd.ID)
			}
			doorIDs[dd.ID] = true
			direction := NormalizeDirection(dd.Direction)
			if seen[direction] {
				return nil, fmt.Errorf("room %d has two doors leading %s", def.ID, direction)
			}
			seen[direction] = true
			if _, ok := rooms[dd.To]; !ok {
				return nil, fmt.Errorf("door %d in room %d leads to unknown room %d", dd.ID, def.ID, dd.To)
			}
			room.AddDoor(&Door{
				ID:            dd.ID,
				Direction:     direction,
				HasKey:        dd.HasKey,
				PickDexterity: dd.PickDexterity,
				Rooms:         [2]int{def.ID, dd.To},
				locked:        dd.Locked,
			})
		}
	}

	return NewRoomGraph(rooms, file.Start)
}

func buildItem(def itemDef) (*Item, error) {
	item := &Item{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Weight:      def.Weight,
		Value:       def.Value,
		Wearable:    def.Wearable,
		Consumable:  def.Consumable,
		Weapon:      def.Weapon,
		Commands:    def.Commands,
	}
	if def.Wearable {
		slot, ok := SlotFromName(def.Slot)
		if !ok {
			return nil, fmt.Errorf("item %q has unknown slot %q", def.Name, def.Slot)
		}
		item.Slot = slot
	}
	if def.Weapon && def.WeaponType != "" {
		switch WeaponType(def.WeaponType) {
		case WeaponSlow, WeaponFast, WeaponSpell, WeaponRanged:
			item.WeaponType = WeaponType(def.WeaponType)
		default:
			return nil, fmt.Errorf("item %q has unknown weapon type %q", def.Name, def.WeaponType)
		}
	}
	if len(def.Deltas) > 0 {
		item.Deltas = make(map[Stat]int, len(def.Deltas))
		for name, value := range def.Deltas {
			stat, ok := StatFromName(name)
			if !ok {
				return nil, fmt.Errorf("item %q adjusts unknown stat %q", def.Name, name)
			}
			item.Deltas[stat] = value
		}
	}
	return item, nil
}

func buildNPC(def npcDef) (*NPC, error) {
	faction, ok := FactionFromName(def.Faction)
	if !ok {
		return nil, fmt.Errorf("npc %q has unknown faction %q", def.Name, def.Faction)
	}
	npc := NewNPC(def.ID, def.Name, def.Health, faction)
	npc.Description = def.Description
	npc.Defense = def.Defense
	npc.Damage = def.Damage
	npc.Hidden = def.Hidden
	npc.MinPerception = def.MinPerception
	npc.MinStrike = def.MinStrike
	npc.CritChance = def.CritChance
	npc.MinDefend = def.MinDefend
	npc.AttackSpeed = def.AttackSpeed
	npc.Quest = def.Quest
	npc.Script = def.Script
	return npc, nil
}
