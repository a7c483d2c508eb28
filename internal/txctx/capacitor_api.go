package txctx

import "github.com/fluxcore/engine/internal/world"

// CapacitorAPI manages the AP/energy pool combat commands spend against,
// named "capacitor" per spec §4.1's list of context-exposed entity APIs.
type CapacitorAPI struct {
	world *world.World
}

// CanAfford reports whether a combatant has at least apCost AP and
// energyCost energy available.
func (c *CapacitorAPI) CanAfford(combatant *world.Combatant, apCost, energyCost int) bool {
	return combatant.AP >= apCost && combatant.Energy >= energyCost
}

// Spend deducts AP and energy from a combatant. Callers must call
// CanAfford first; Spend does not clamp or validate.
func (c *CapacitorAPI) Spend(combatant *world.Combatant, apCost, energyCost int) {
	combatant.AP -= apCost
	combatant.Energy -= energyCost
}
