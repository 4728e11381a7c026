package world

import "encoding/json"

// SlotCount is the number of inventory slots, addressed a-z.
const SlotCount = 26

// Nothing marks an empty wielded or worn role, and a failed Insert.
const Nothing = -1

// Inventory is a fixed set of slots plus the indices of the wielded and
// worn items. Use NewInventory; the zero value wields slot 0. Decoding
// treats a missing wielded or worn index as Nothing.
type Inventory struct {
	Slots   [SlotCount]*Item `json:"slots"`
	Wielded int              `json:"wielded"`
	Worn    int              `json:"worn"`
}

// NewInventory returns an empty inventory with nothing equipped.
func NewInventory() Inventory {
	return Inventory{Wielded: Nothing, Worn: Nothing}
}

// UnmarshalJSON decodes an inventory, leaving roles absent from data
// unequipped.
func (inv *Inventory) UnmarshalJSON(data []byte) error {
	type plain Inventory
	v := plain(NewInventory())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*inv = Inventory(v)
	return nil
}

// Get returns the item in slot, or nil for an empty or out-of-range slot.
func (inv *Inventory) Get(slot int) *Item {
	if slot < 0 || slot >= SlotCount {
		return nil
	}
	return inv.Slots[slot]
}

// Set stores a copy of item in slot. It reports false for an out-of-range
// slot.
func (inv *Inventory) Set(slot int, item Item) bool {
	if slot < 0 || slot >= SlotCount {
		return false
	}
	inv.Slots[slot] = &item
	return true
}

// Insert stores item in the lowest free slot and returns that slot, or
// Nothing when every slot is taken.
func (inv *Inventory) Insert(item Item) int {
	for i, it := range inv.Slots {
		if it == nil {
			inv.Slots[i] = &item
			return i
		}
	}
	return Nothing
}

// Take removes and returns the item in slot. Removing the wielded or worn
// item unequips it.
func (inv *Inventory) Take(slot int) (Item, bool) {
	it := inv.Get(slot)
	if it == nil {
		return Item{}, false
	}
	if inv.Wielded == slot {
		inv.Wielded = Nothing
	}
	if inv.Worn == slot {
		inv.Worn = Nothing
	}
	inv.Slots[slot] = nil
	return *it, true
}

// TakeFirst removes the item in the lowest occupied slot.
func (inv *Inventory) TakeFirst() (Item, bool) {
	for i, it := range inv.Slots {
		if it != nil {
			return inv.Take(i)
		}
	}
	return Item{}, false
}

// Len returns the number of occupied slots.
func (inv *Inventory) Len() int {
	n := 0
	for _, it := range inv.Slots {
		if it != nil {
			n++
		}
	}
	return n
}

// Empty reports whether no slot is occupied.
func (inv *Inventory) Empty() bool {
	return inv.Len() == 0
}

// Clear drops every item and unequips.
func (inv *Inventory) Clear() {
	*inv = NewInventory()
}

// Items returns the occupied slots in slot order.
func (inv *Inventory) Items() []Item {
	var items []Item
	for _, it := range inv.Slots {
		if it != nil {
			items = append(items, *it)
		}
	}
	return items
}

// QuestItem reports whether any carried item is the quest item.
func (inv *Inventory) QuestItem() bool {
	for _, it := range inv.Slots {
		if it != nil && it.Quest {
			return true
		}
	}
	return false
}

// HasKey reports whether a carried item opens locks of keyType.
func (inv *Inventory) HasKey(keyType int) bool {
	for _, it := range inv.Slots {
		if it != nil && it.KeyType != 0 && it.KeyType == keyType {
			return true
		}
	}
	return false
}

// Wield marks slot as wielded. It reports false for an empty slot.
func (inv *Inventory) Wield(slot int) bool {
	if inv.Get(slot) == nil {
		return false
	}
	inv.Wielded = slot
	return true
}

// Wear marks slot as worn. It reports false for an empty slot.
func (inv *Inventory) Wear(slot int) bool {
	if inv.Get(slot) == nil {
		return false
	}
	inv.Worn = slot
	return true
}

// Unwield clears the wielded role.
func (inv *Inventory) Unwield() {
	inv.Wielded = Nothing
}

// TakeOff clears the worn role.
func (inv *Inventory) TakeOff() {
	inv.Worn = Nothing
}
