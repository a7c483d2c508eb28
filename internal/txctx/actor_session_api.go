package txctx

import "github.com/fluxcore/engine/internal/world"

// ActorSessionAPI bundles the actor.Sessions membership bookkeeping spec
// §4.1 names as the fourth context-exposed entity API (alongside
// partyApi/equipmentApi/capacitorApi), so session-acquiring reducers stop
// touching the map directly.
type ActorSessionAPI struct {
	world *world.World
}

// Join records that actor joined sessionURN at the given timestamp,
// initializing the actor's Sessions map on first use.
func (a *ActorSessionAPI) Join(actor *world.Actor, sessionURN string, joinedAt int64) {
	if actor.Sessions == nil {
		actor.Sessions = make(map[string]world.SessionMembership)
	}
	actor.Sessions[sessionURN] = world.SessionMembership{JoinedAt: joinedAt}
}

// MembershipsOf returns the actor's recorded session memberships.
func (a *ActorSessionAPI) MembershipsOf(actor *world.Actor) map[string]world.SessionMembership {
	return actor.Sessions
}
