package game

import "errors"

var (
	// ErrItemNotFound indicates a requested item could not be located.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemNotCarried indicates the owner is not carrying the requested item.
	ErrItemNotCarried = errors.New("item not carried")
)

// Inventory is an unordered bounded collection of items. It tracks its
// own weight counters but never enforces the carry limit itself: the
// capacity check belongs to the handler that performs the move, before
// any container is mutated.
type Inventory struct {
	items   []*Item
	carry   int
	current int
}

// NewInventory returns an empty inventory with the given carry capacity.
func NewInventory(carryCapacity int) *Inventory {
	if carryCapacity < 0 {
		carryCapacity = 0
	}
	return &Inventory{carry: carryCapacity}
}

// Add places the item in the inventory and raises the weight counter.
func (inv *Inventory) Add(item *Item) {
	if item == nil {
		return
	}
	inv.items = append(inv.items, item)
	inv.current += item.Weight
}

// Remove takes the item out of the inventory. The weight counter clamps
// at zero rather than going negative.
func (inv *Inventory) Remove(item *Item) bool {
	for i, held := range inv.items {
		if held == item {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			inv.current -= item.Weight
			if inv.current < 0 {
				inv.current = 0
			}
			return true
		}
	}
	return false
}

// Find resolves an item by case-insensitive, prefix-tolerant name match.
func (inv *Inventory) Find(name string) (*Item, bool) {
	return matchName(name, inv.items, itemName)
}

// Items returns a copy of the contained item references.
func (inv *Inventory) Items() []*Item {
	out := make([]*Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len reports the number of contained items.
func (inv *Inventory) Len() int { return len(inv.items) }

// CarryCapacity reports the maximum weight the owner can carry.
func (inv *Inventory) CarryCapacity() int { return inv.carry }

// CurrentCapacity reports the weight currently carried.
func (inv *Inventory) CurrentCapacity() int { return inv.current }

// Spare reports the remaining weight allowance.
func (inv *Inventory) Spare() int {
	spare := inv.carry - inv.current
	if spare < 0 {
		return 0
	}
	return spare
}

// Fits reports whether the given additional weight would stay within
// the carry capacity.
func (inv *Inventory) Fits(weight int) bool {
	return inv.current+weight <= inv.carry
}

// Value sums the trade value of every contained item.
func (inv *Inventory) Value() int {
	total := 0
	for _, item := range inv.items {
		total += item.Value
	}
	return total
}
