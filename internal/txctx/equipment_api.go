package txctx

import "github.com/fluxcore/engine/internal/world"

// EquipmentAPI bundles mount/unmount operations shared by the workbench
// component-mutation reducer and (eventually) combat loadout checks.
type EquipmentAPI struct {
	world *world.World
}

// Mount equips an item into an anatomy slot on a shell, returning the
// previously equipped item, if any.
func (e *EquipmentAPI) Mount(shell *world.Shell, slot string, item *world.Item) (*world.Item, bool) {
	prev, had := shell.Equipment[slot]
	shell.Equipment[slot] = item
	return prev, had
}

// Unmount removes whatever item occupies an anatomy slot on a shell.
func (e *EquipmentAPI) Unmount(shell *world.Shell, slot string) (*world.Item, bool) {
	item, ok := shell.Equipment[slot]
	if ok {
		delete(shell.Equipment, slot)
	}
	return item, ok
}
