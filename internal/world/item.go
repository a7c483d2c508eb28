package world

import "github.com/fluxcore/engine/internal/urn"

// Item is either a plain item or, when Contents is non-nil, a container.
// Items live either in an actor's inventory or a place's resource list, never
// both; no command in this module moves items between the two.
type Item struct {
	URN       urn.ItemURN
	Schema    urn.SchemaURN
	Condition float64
	Contents  map[string]*Item // present only for containers; key is item tail id
}

// InventoryEntry pairs an item with its bookkeeping: quantity and the
// timestamp mass was last recomputed.
type InventoryEntry struct {
	Item        *Item
	Quantity    int
	LastUpdated int64
}

// Inventory is a mass-bearing collection of items keyed by item id (the
// URN's tail segment).
type Inventory struct {
	Entries map[string]*InventoryEntry
	mass    float64
	massTS  int64
}

// NewInventory constructs an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{Entries: make(map[string]*InventoryEntry)}
}

// RefreshMass recomputes cached mass as the sum of schema masses of
// contained items times their quantity. Callers must call this before
// reading Mass if they have reason to believe the cache might be stale (see
// spec §3 invariant on inventory mass).
func (inv *Inventory) RefreshMass(schemas *SchemaManager, now int64) {
	total := 0.0
	for _, entry := range inv.Entries {
		if entry.Item == nil {
			continue
		}
		if s, ok := schemas.Get(entry.Item.Schema); ok {
			total += s.Mass * float64(entry.Quantity)
		}
	}
	inv.mass = total
	inv.massTS = now
}

// Mass returns the cached mass and the timestamp it was computed at.
func (inv *Inventory) Mass() (mass float64, ts int64) {
	return inv.mass, inv.massTS
}
