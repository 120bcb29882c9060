package game

import "testing"

func TestEquipRoundTripReversesClampedDeltas(t *testing.T) {
	p := newTestPlayer("Hero", 1)
	p.SetStat(StatLuck, 95)

	charm := &Item{Name: "raven charm", Wearable: true, Slot: SlotNeck, Deltas: map[Stat]int{StatLuck: 10}}
	if err := p.Equip(charm); err != nil {
		t.Fatalf("Equip() error: %v", err)
	}
	if got := p.Stat(StatLuck); got != 100 {
		t.Fatalf("luck while worn = %d, want 100 (clamped)", got)
	}

	if _, err := p.Unequip("raven charm"); err != nil {
		t.Fatalf("Unequip() error: %v", err)
	}
	if got := p.Stat(StatLuck); got != 95 {
		t.Fatalf("luck after removal = %d, want the original 95", got)
	}
}

func TestEquipEnforcesSlotExclusivity(t *testing.T) {
	p := newTestPlayer("Hero", 1)
	cap := &Item{Name: "leather cap", Wearable: true, Slot: SlotHead}
	helm := &Item{Name: "iron helm", Wearable: true, Slot: SlotHead}

	if err := p.Equip(cap); err != nil {
		t.Fatalf("Equip(cap) error: %v", err)
	}
	if err := p.Equip(helm); err == nil {
		t.Fatalf("Equip(helm) succeeded with the head slot occupied")
	}
}

func TestHoldCapsAtTwoItems(t *testing.T) {
	p := newTestPlayer("Hero", 1)
	for _, name := range []string{"sword", "torch"} {
		if err := p.Hold(&Item{Name: name}); err != nil {
			t.Fatalf("Hold(%s) error: %v", name, err)
		}
	}
	if err := p.Hold(&Item{Name: "shield"}); err == nil {
		t.Fatalf("third Hold() succeeded, want hands-full refusal")
	}
}

func TestHeldWeaponPicksFirstWeaponOnly(t *testing.T) {
	p := newTestPlayer("Hero", 1)
	torch := &Item{Name: "torch"}
	sword := &Item{Name: "sword", Weapon: true, WeaponType: WeaponSlow}
	if err := p.Hold(torch); err != nil {
		t.Fatalf("Hold(torch) error: %v", err)
	}
	if err := p.Hold(sword); err != nil {
		t.Fatalf("Hold(sword) error: %v", err)
	}
	weapon, ok := p.HeldWeapon()
	if !ok || weapon != sword {
		t.Fatalf("HeldWeapon() = %v, %v; want sword", weapon, ok)
	}
}

func TestFindCarriedPrefersInventoryOverHeld(t *testing.T) {
	p := newTestPlayer("Hero", 1)
	packed := &Item{Name: "iron key"}
	held := &Item{Name: "iron sword"}
	p.Inventory().Add(packed)
	if err := p.Hold(held); err != nil {
		t.Fatalf("Hold() error: %v", err)
	}

	item, ok := p.FindCarried("iron key")
	if !ok || item != packed {
		t.Fatalf("FindCarried(iron key) = %v, %v; want packed item", item, ok)
	}
	item, ok = p.FindCarried("iron sword")
	if !ok || item != held {
		t.Fatalf("FindCarried(iron sword) = %v, %v; want held item", item, ok)
	}
}

func TestSpillInventoryEmptiesEverythingIntoRoom(t *testing.T) {
	p := newTestPlayer("Hero", 1)
	room := &Room{ID: 1, Name: "Yard"}

	p.Inventory().Add(&Item{Name: "loaf", Weight: 1})
	if err := p.Hold(&Item{Name: "sword", Weapon: true}); err != nil {
		t.Fatalf("Hold() error: %v", err)
	}
	if err := p.Equip(&Item{Name: "cap", Wearable: true, Slot: SlotHead, Deltas: map[Stat]int{StatDefense: 2}}); err != nil {
		t.Fatalf("Equip() error: %v", err)
	}
	defenseBefore := p.Stat(StatDefense)

	p.SpillInventory(room)

	if got := p.Inventory().Len(); got != 0 {
		t.Fatalf("inventory len after spill = %d, want 0", got)
	}
	if got := len(p.Held()); got != 0 {
		t.Fatalf("held len after spill = %d, want 0", got)
	}
	if got := len(p.Equipped()); got != 0 {
		t.Fatalf("equipped len after spill = %d, want 0", got)
	}
	if got := len(room.Items()); got != 3 {
		t.Fatalf("room items after spill = %d, want 3", got)
	}
	if got := p.Stat(StatDefense); got != defenseBefore-2 {
		t.Fatalf("defense after spill = %d, want %d", got, defenseBefore-2)
	}
}

func TestInventoryCapacityAndRemoveClamp(t *testing.T) {
	inv := NewInventory(10)
	rock := &Item{Name: "rock", Weight: 7}
	inv.Add(rock)

	if inv.Fits(4) {
		t.Fatalf("Fits(4) = true with 3 spare")
	}
	if !inv.Fits(3) {
		t.Fatalf("Fits(3) = false with 3 spare")
	}
	if got := inv.Spare(); got != 3 {
		t.Fatalf("Spare() = %d, want 3", got)
	}

	if !inv.Remove(rock) {
		t.Fatalf("Remove() = false for a carried item")
	}
	if inv.Remove(rock) {
		t.Fatalf("Remove() = true for an absent item")
	}
	if got := inv.CurrentCapacity(); got != 0 {
		t.Fatalf("CurrentCapacity() = %d, want 0", got)
	}
}

func TestInventoryFindUsesUniquePrefix(t *testing.T) {
	inv := NewInventory(100)
	inv.Add(&Item{Name: "rusty sword"})
	inv.Add(&Item{Name: "rusty shield"})
	inv.Add(&Item{Name: "loaf"})

	if _, ok := inv.Find("rusty"); ok {
		t.Fatalf("Find(rusty) resolved an ambiguous prefix")
	}
	item, ok := inv.Find("rusty sw")
	if !ok || item.Name != "rusty sword" {
		t.Fatalf("Find(rusty sw) = %v, %v; want rusty sword", item, ok)
	}
	if _, ok := inv.Find("dagger"); ok {
		t.Fatalf("Find(dagger) resolved, want miss")
	}
}

func TestConsumeItemRequiresCapabilityTag(t *testing.T) {
	world := NewWorld(singleRoomGraph(), WithAmbienceInterval(0))
	defer world.Close()
	p := newTestPlayer("Hero", 1)

	draught := &Item{Name: "draught", Consumable: true, Deltas: map[Stat]int{StatHealth: 20}, Commands: []string{"drink"}}
	p.Inventory().Add(draught)

	if _, err := ConsumeItem(world, p, "draught", "eat"); err == nil {
		t.Fatalf("eating a drink-only item succeeded")
	}
	if got := p.Inventory().Len(); got != 1 {
		t.Fatalf("failed consume mutated inventory: len = %d, want 1", got)
	}

	p.SetStat(StatHealth, 50)
	item, err := ConsumeItem(world, p, "draught", "drink")
	if err != nil {
		t.Fatalf("ConsumeItem() error: %v", err)
	}
	if item != draught {
		t.Fatalf("ConsumeItem() = %v, want draught", item)
	}
	if got := p.Stat(StatHealth); got != 70 {
		t.Fatalf("health after drinking = %d, want 70", got)
	}
	if got := p.Inventory().Len(); got != 0 {
		t.Fatalf("inventory after drinking: len = %d, want 0", got)
	}

	if _, err := ConsumeItem(world, p, "", ""); err == nil {
		t.Fatalf("consuming from an empty pack succeeded")
	}
}
