package world

import "github.com/fluxcore/engine/internal/urn"

// GroupKind distinguishes a Party (session-scoped adventuring group) from a
// Faction (longer-lived affiliation). Both share the same membership and
// ownership shape.
type GroupKind string

const (
	GroupKindParty   GroupKind = "party"
	GroupKindFaction GroupKind = "faction"
)

// Group is a Party or Faction: a named set of member actors with an
// optional single owner.
type Group struct {
	URN         urn.GroupURN
	Kind        GroupKind
	Owner       urn.ActorURN // "" if none
	Members     map[string]bool
	Invitations map[string]bool
}

// NewGroup constructs an empty group of the given kind.
func NewGroup(u urn.GroupURN, kind GroupKind) *Group {
	return &Group{
		URN:         u,
		Kind:        kind,
		Members:     make(map[string]bool),
		Invitations: make(map[string]bool),
	}
}

// Size returns the current member count.
func (g *Group) Size() int {
	return len(g.Members)
}
