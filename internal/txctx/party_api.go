package txctx

import (
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

// PartyAPI bundles the group-membership mutations reducers need so the
// party command family doesn't duplicate map bookkeeping.
type PartyAPI struct {
	world *world.World
}

// GroupOf returns the actor's current party group, if any.
func (p *PartyAPI) GroupOf(actor *world.Actor) (*world.Group, bool) {
	if actor.Party == "" {
		return nil, false
	}
	return p.world.Group(actor.Party)
}

// CreateParty creates a new party group owned by the given actor and adds
// them as its sole member.
func (p *PartyAPI) CreateParty(groupURN urn.GroupURN, owner *world.Actor) *world.Group {
	g := world.NewGroup(groupURN, world.GroupKindParty)
	g.Owner = owner.URN
	g.Members[owner.URN.Tail()] = true
	p.world.PutGroup(g)
	owner.Party = groupURN
	return g
}

// Invite records an invitation on the group.
func (p *PartyAPI) Invite(g *world.Group, invitee *world.Actor) {
	g.Invitations[invitee.URN.Tail()] = true
}

// Accept moves an invitee from Invitations to Members.
func (p *PartyAPI) Accept(g *world.Group, invitee *world.Actor) {
	delete(g.Invitations, invitee.URN.Tail())
	g.Members[invitee.URN.Tail()] = true
	invitee.Party = g.URN
}

// Reject removes an invitation without granting membership.
func (p *PartyAPI) Reject(g *world.Group, invitee *world.Actor) {
	delete(g.Invitations, invitee.URN.Tail())
}

// Kick removes a non-owner member.
func (p *PartyAPI) Kick(g *world.Group, target *world.Actor) {
	delete(g.Members, target.URN.Tail())
	target.Party = ""
}

// Leave removes a non-owner member who is leaving voluntarily.
func (p *PartyAPI) Leave(g *world.Group, member *world.Actor) {
	delete(g.Members, member.URN.Tail())
	member.Party = ""
}

// Disband removes every member's party reference and deletes the group.
func (p *PartyAPI) Disband(g *world.Group) {
	for tail := range g.Members {
		if a, ok := p.world.Actor(urn.NewActor(tail)); ok {
			a.Party = ""
		}
	}
	p.world.RemoveGroup(g.URN)
}
