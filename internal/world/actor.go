package world

import "github.com/fluxcore/engine/internal/urn"

// ActorKind classifies an actor's control source.
type ActorKind string

const (
	ActorKindPC      ActorKind = "pc"
	ActorKindNPC     ActorKind = "npc"
	ActorKindMonster ActorKind = "monster"
)

// CoreStats are the traditional six, fixed at actor creation.
type CoreStats struct {
	STR, DEX, CON, INT, WIS, CHA int
}

// ChassisStats are the three shell-scoped stats workbench mutations adjust.
type ChassisStats struct {
	POW, FIN, RES int
}

// HP is bounded current/max hit points with an optional modifier list.
type HP struct {
	Current   int
	Max       int
	Modifiers []string
}

// Shell is a swappable PC chassis carrying its own stat triple, inventory,
// and equipment. Shells are owned by their actor and never shared.
type Shell struct {
	ID        string
	Name      string
	Stats     ChassisStats
	Inventory *Inventory
	Equipment map[string]*Item // anatomy slot -> equipped item
}

// SessionMembership records when an actor joined a session it actively
// participates in.
type SessionMembership struct {
	JoinedAt int64
}

// Actor is a unique, location-bound entity that may issue intents.
type Actor struct {
	URN           urn.ActorURN
	Name          string
	Kind          ActorKind
	Location      urn.PlaceURN
	Stats         CoreStats
	HP            HP
	Inventory     *Inventory
	Equipment     map[string]*Item // anatomy slot -> equipped item
	Shells        map[string]*Shell
	CurrentShell  string
	Party         urn.GroupURN // "" if none
	Sessions      map[string]SessionMembership
	Wallet        map[string]int64
	Skills        map[string]int
}

// NewActor constructs an actor with initialized empty collections.
func NewActor(u urn.ActorURN, name string, kind ActorKind, location urn.PlaceURN) *Actor {
	return &Actor{
		URN:       u,
		Name:      name,
		Kind:      kind,
		Location:  location,
		Inventory: NewInventory(),
		Equipment: make(map[string]*Item),
		Shells:    make(map[string]*Shell),
		Sessions:  make(map[string]SessionMembership),
		Wallet:    make(map[string]int64),
		Skills:    make(map[string]int),
	}
}

// CurrentShellInstance returns the actor's currently-equipped shell, if any.
func (a *Actor) CurrentShellInstance() (*Shell, bool) {
	if a.CurrentShell == "" {
		return nil, false
	}
	s, ok := a.Shells[a.CurrentShell]
	return s, ok
}
