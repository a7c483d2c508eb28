package workbench

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

// Equipper mirrors txctx.EquipmentAPI's mount/unmount shape so ApplyMutation
// runs identically whether it's wired to the real context (WORKBENCH_COMMIT)
// or a pure in-place map mutation (Preview, ValidateBatch's trial pass).
type Equipper interface {
	Mount(shell *world.Shell, slot string, item *world.Item) (*world.Item, bool)
	Unmount(shell *world.Shell, slot string) (*world.Item, bool)
}

// directEquip applies mount/unmount straight to a shell's equipment map; it
// is the Equipper used for the pure clone-only paths (Preview, ValidateBatch),
// which are never wired to a live txctx.Context.
type directEquip struct{}

func (directEquip) Mount(shell *world.Shell, slot string, item *world.Item) (*world.Item, bool) {
	prev, had := shell.Equipment[slot]
	shell.Equipment[slot] = item
	return prev, had
}

func (directEquip) Unmount(shell *world.Shell, slot string) (*world.Item, bool) {
	item, ok := shell.Equipment[slot]
	if ok {
		delete(shell.Equipment, slot)
	}
	return item, ok
}

// CloneShell deep-copies a shell's mutable fields so Preview and
// ValidateBatch can simulate staged mutations without touching the real
// shell: Stats is copied by value, Equipment and Inventory get fresh maps
// of the same entries.
func CloneShell(shell *world.Shell) *world.Shell {
	clone := &world.Shell{
		ID:        shell.ID,
		Name:      shell.Name,
		Stats:     shell.Stats,
		Equipment: make(map[string]*world.Item, len(shell.Equipment)),
		Inventory: cloneInventory(shell.Inventory),
	}
	for slot, item := range shell.Equipment {
		clone.Equipment[slot] = item
	}
	return clone
}

func cloneInventory(inv *world.Inventory) *world.Inventory {
	clone := world.NewInventory()
	for id, entry := range inv.Entries {
		copied := *entry
		clone.Entries[id] = &copied
	}
	return clone
}

// CurrentStat reads one of a shell's three chassis stats by name.
func CurrentStat(shell *world.Shell, stat string) int {
	switch stat {
	case "POW":
		return shell.Stats.POW
	case "FIN":
		return shell.Stats.FIN
	case "RES":
		return shell.Stats.RES
	default:
		return 0
	}
}

// ValidShellName reports whether a proposed shell name passes basic
// sanitization: non-empty after trimming, at most 64 runes.
func ValidShellName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && utf8.RuneCountInString(name) <= 64
}

// ValidateMutation reports whether m still applies cleanly against shell and
// actor's current inventories — the same bounds the staging reducers check
// at staging time (spec §4.5's staging-validation table), re-run here
// against whatever state shell/actor are in when it's called.
func ValidateMutation(actor *world.Actor, shell *world.Shell, m world.ShellMutation, maxStat int, schemaExists func(urn.SchemaURN) bool) bool {
	switch m.Kind {
	case world.MutationKindStat:
		current := CurrentStat(shell, m.Stat)
		var next int
		switch m.StatOp {
		case world.OpAdd:
			next = current + m.Amount
		case world.OpSubtract:
			next = current - m.Amount
		}
		return next >= 0 && next <= maxStat
	case world.MutationKindComponent:
		if m.ComponentOp == world.OpMount {
			return schemaExists(m.Schema)
		}
		return true
	case world.MutationKindInventory:
		var source *world.Inventory
		if m.InventoryOp == world.OpTransferToVault {
			source = shell.Inventory
		} else {
			source = actor.Inventory
		}
		entry, ok := source.Entries[m.ItemID]
		return ok && entry.Quantity >= m.Quantity
	case world.MutationKindMetadata:
		return ValidShellName(m.NewName)
	default:
		return true
	}
}

// ApplyMutation applies one already-validated mutation to shell (and, for
// inventory transfers, actor's vault). equip supplies the mount/unmount
// implementation, so the same function simulates against a clone (directEquip)
// or mutates real state (a live txctx.EquipmentAPI).
func ApplyMutation(actor *world.Actor, shell *world.Shell, m world.ShellMutation, equip Equipper) {
	switch m.Kind {
	case world.MutationKindStat:
		delta := m.Amount
		if m.StatOp == world.OpSubtract {
			delta = -delta
		}
		switch m.Stat {
		case "POW":
			shell.Stats.POW += delta
		case "FIN":
			shell.Stats.FIN += delta
		case "RES":
			shell.Stats.RES += delta
		}
	case world.MutationKindComponent:
		switch m.ComponentOp {
		case world.OpMount:
			item := &world.Item{URN: urn.NewItem(m.ComponentID), Schema: m.Schema, Condition: 1.0}
			equip.Mount(shell, m.ComponentID, item)
		case world.OpUnmount:
			equip.Unmount(shell, m.ComponentID)
		}
	case world.MutationKindInventory:
		switch m.InventoryOp {
		case world.OpTransferToVault:
			transferEntry(shell.Inventory, actor.Inventory, m.ItemID, m.Quantity)
		case world.OpFromVault:
			transferEntry(actor.Inventory, shell.Inventory, m.ItemID, m.Quantity)
		}
	case world.MutationKindMetadata:
		shell.Name = m.NewName
	}
}

func transferEntry(from, to *world.Inventory, itemID string, qty int) {
	entry, ok := from.Entries[itemID]
	if !ok || entry.Quantity < qty {
		return
	}
	entry.Quantity -= qty
	if entry.Quantity == 0 {
		delete(from.Entries, itemID)
	}
	if to.Entries == nil {
		to.Entries = make(map[string]*world.InventoryEntry)
	}
	destEntry, ok := to.Entries[itemID]
	if !ok {
		to.Entries[itemID] = &world.InventoryEntry{Item: entry.Item, Quantity: qty}
		return
	}
	destEntry.Quantity += qty
}

// ValidateBatch re-checks every pending mutation, in order, against a
// working clone of shell and actor's vault, so a later mutation's validity
// reflects an earlier mutation's effect within the same batch (e.g. two
// staged stat adds that individually fit under maxStat but not combined),
// without touching the real shell or actor until the whole batch has passed.
// It reports false on the first invalid entry — spec §4.4's no-partial-
// mutation rule, applied at commit time against current (not staged-time)
// state.
func ValidateBatch(actor *world.Actor, shell *world.Shell, mutations []world.ShellMutation, maxStat int, schemaExists func(urn.SchemaURN) bool) bool {
	trialShell := CloneShell(shell)
	trialActor := &world.Actor{Inventory: cloneInventory(actor.Inventory)}
	for _, m := range mutations {
		if !ValidateMutation(trialActor, trialShell, m, maxStat, schemaExists) {
			return false
		}
		ApplyMutation(trialActor, trialShell, m, directEquip{})
	}
	return true
}

// Preview is spec §4.5's pure preview operation: applies every staged
// mutation, in order, to a clone of shell (and a clone of actor's vault, so
// vault transfers don't touch real state) and returns the shell clone. It
// does not re-validate; CommitReduce's own ValidateBatch call is what blocks
// an invalid commit, so Preview reflects staged state exactly as staged.
func Preview(actor *world.Actor, shell *world.Shell, mutations []world.ShellMutation) *world.Shell {
	trialShell := CloneShell(shell)
	trialActor := &world.Actor{Inventory: cloneInventory(actor.Inventory)}
	for _, m := range mutations {
		ApplyMutation(trialActor, trialShell, m, directEquip{})
	}
	return trialShell
}

// mutationCost is the credits a single staged mutation contributes to
// WORKBENCH_COMMIT's total cost. These are engine constants rather than
// config, like combat's StartingAP/StartingEnergy: spec.md names no tunable
// for them, unlike MAX_STAT/ATTACK_SKILL_MULTIPLIER which §4.7 makes
// explicitly configurable.
const (
	statMutationCostPerPoint     = 1
	componentMutationCost        = 10
	inventoryMutationCostPerUnit = 1
	metadataMutationCost         = 1
)

// Cost sums the credits every staged mutation contributes to a commit, spec
// §4.5's "a cost operation sums per-mutation costs (currency amounts)".
func Cost(mutations []world.ShellMutation) int64 {
	var total int64
	for _, m := range mutations {
		switch m.Kind {
		case world.MutationKindStat:
			total += int64(statMutationCostPerPoint * m.Amount)
		case world.MutationKindComponent:
			total += componentMutationCost
		case world.MutationKindInventory:
			total += int64(inventoryMutationCostPerUnit * m.Quantity)
		case world.MutationKindMetadata:
			total += metadataMutationCost
		}
	}
	return total
}

// ShellDiff is spec §4.5's structured before/after comparison: "old -> new"
// tokens per changed stat, equipment slot, inventory item, and name. No
// performance metrics are computed or compared. A zero ShellDiff (no map
// entries, empty Name) means the batch was a no-op.
type ShellDiff struct {
	ShellID   string
	Stats     map[string]string // stat name -> "old -> new", only changed stats
	Equipment map[string]string // slot -> "old -> new" item id ("-" for empty)
	Inventory map[string]string // item id -> "old -> new" quantity
	Name      string            // "" if unchanged, else "old -> new"
}

// Diff compares before and after (typically Preview's result, or the shell
// pre/post a real commit) into a ShellDiff.
func Diff(before, after *world.Shell) ShellDiff {
	d := ShellDiff{ShellID: before.ID, Stats: map[string]string{}, Equipment: map[string]string{}, Inventory: map[string]string{}}

	for _, stat := range []string{"POW", "FIN", "RES"} {
		b, a := CurrentStat(before, stat), CurrentStat(after, stat)
		if b != a {
			d.Stats[stat] = fmt.Sprintf("%d -> %d", b, a)
		}
	}

	slots := make(map[string]bool)
	for slot := range before.Equipment {
		slots[slot] = true
	}
	for slot := range after.Equipment {
		slots[slot] = true
	}
	for slot := range slots {
		b, a := equipToken(before.Equipment[slot]), equipToken(after.Equipment[slot])
		if b != a {
			d.Equipment[slot] = b + " -> " + a
		}
	}

	items := make(map[string]bool)
	for id := range before.Inventory.Entries {
		items[id] = true
	}
	for id := range after.Inventory.Entries {
		items[id] = true
	}
	for id := range items {
		bq, aq := entryQuantity(before.Inventory, id), entryQuantity(after.Inventory, id)
		if bq != aq {
			d.Inventory[id] = fmt.Sprintf("%d -> %d", bq, aq)
		}
	}

	if before.Name != after.Name {
		d.Name = before.Name + " -> " + after.Name
	}
	return d
}

func equipToken(item *world.Item) string {
	if item == nil {
		return "-"
	}
	return item.URN.Tail()
}

func entryQuantity(inv *world.Inventory, itemID string) int {
	entry, ok := inv.Entries[itemID]
	if !ok {
		return 0
	}
	return entry.Quantity
}
