package world

import "github.com/fluxcore/engine/internal/urn"

// Strategy identifies which variant of session data a Session carries.
type Strategy string

const (
	StrategyCombat    Strategy = "combat"
	StrategyWorkbench Strategy = "workbench"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusEnded   Status = "ended"
)

// MutationOp identifies the direction of a stat or component mutation.
type MutationOp string

const (
	OpAdd             MutationOp = "add"
	OpSubtract        MutationOp = "subtract"
	OpMount           MutationOp = "mount"
	OpUnmount         MutationOp = "unmount"
	OpTransferToVault MutationOp = "transfer_to_vault"
	OpFromVault       MutationOp = "from_vault"
)

// MutationKind tags which ShellMutation variant is populated.
type MutationKind string

const (
	MutationKindStat      MutationKind = "stat"
	MutationKindComponent MutationKind = "component"
	MutationKindInventory MutationKind = "inventory"
	MutationKindMetadata  MutationKind = "metadata"
)

// ShellMutation is a tagged variant describing one staged change to a PC
// shell. Exactly one of the kind-specific field groups is meaningful,
// selected by Kind.
type ShellMutation struct {
	Kind MutationKind

	// MutationKindStat
	Stat   string
	StatOp MutationOp
	Amount int

	// MutationKindComponent
	ComponentOp MutationOp
	ComponentID string
	Schema      urn.SchemaURN

	// MutationKindInventory
	InventoryOp MutationOp
	ItemID      string
	Quantity    int

	// MutationKindMetadata
	NewName string
}

// WorkbenchData is the Workbench-strategy variant of Session.Data.
type WorkbenchData struct {
	ActorID          string
	CurrentShellID   string
	PendingMutations []ShellMutation
}

// CombatTeam identifies a side in a combat session.
type CombatTeam string

const (
	TeamAlpha CombatTeam = "alpha"
	TeamBravo CombatTeam = "bravo"
)

// Combatant tracks one actor's participation in a combat session.
type Combatant struct {
	ActorID string
	Team    CombatTeam
	AP      int
	Energy  int
	Target  string // actor id, "" if none acquired
	Alive   bool
}

// CombatData is the Combat-strategy variant of Session.Data.
type CombatData struct {
	Combatants map[string]*Combatant // actor id -> combatant
	Initiative []string               // actor ids, rolled once per round
	Round      int
	Turn       int
}

// Session is a tagged variant over Combat or Workbench data, selected by
// Strategy. Exactly one of Workbench/Combat is populated.
type Session struct {
	URN       urn.SessionURN
	Strategy  Strategy
	Status    Status
	Workbench *WorkbenchData
	Combat    *CombatData
}
