// Package world implements the in-memory World Projection (the sole shared
// resource within a process) and the entity model it owns: actors, places,
// items, groups, and sessions, plus the schema catalog.
//
// Entity Model and World Projection are combined in a single package, as in
// the teacher's domain/campaign package, because Actor, Place, Group, and
// Session each reference one another by URN and would otherwise require an
// import cycle to cross-validate invariants such as "party points to an
// existing group whose members include the actor".
package world

import "github.com/fluxcore/engine/internal/urn"

// World is the mutable projection a single process holds. A reducer holds
// exclusive logical access to one World for the duration of one intent (see
// spec §5); callers are responsible for serializing intents against the
// same World.
type World struct {
	Actors   map[string]*Actor // key: actor URN tail
	Places   map[string]*Place
	Items    map[string]*Item
	Groups   map[string]*Group
	Sessions map[string]*Session
	Schemas  *SchemaManager
}

// New constructs an empty world projection.
func New() *World {
	return &World{
		Actors:   make(map[string]*Actor),
		Places:   make(map[string]*Place),
		Items:    make(map[string]*Item),
		Groups:   make(map[string]*Group),
		Sessions: make(map[string]*Session),
		Schemas:  NewSchemaManager(),
	}
}

// Actor looks up an actor by URN.
func (w *World) Actor(u urn.ActorURN) (*Actor, bool) {
	a, ok := w.Actors[u.Tail()]
	return a, ok
}

// PutActor registers (or replaces) an actor.
func (w *World) PutActor(a *Actor) {
	w.Actors[a.URN.Tail()] = a
}

// RemoveActor deletes an actor from the world.
func (w *World) RemoveActor(u urn.ActorURN) {
	delete(w.Actors, u.Tail())
}

// Place looks up a place by URN.
func (w *World) Place(u urn.PlaceURN) (*Place, bool) {
	p, ok := w.Places[u.Tail()]
	return p, ok
}

// PutPlace registers (or replaces) a place.
func (w *World) PutPlace(p *Place) {
	w.Places[p.URN.Tail()] = p
}

// Item looks up a top-level item by URN. Items nested inside containers are
// not indexed here; callers that need those walk Contents explicitly.
func (w *World) Item(u urn.ItemURN) (*Item, bool) {
	i, ok := w.Items[u.Tail()]
	return i, ok
}

// PutItem registers (or replaces) a top-level item.
func (w *World) PutItem(i *Item) {
	w.Items[i.URN.Tail()] = i
}

// Group looks up a group by URN.
func (w *World) Group(u urn.GroupURN) (*Group, bool) {
	g, ok := w.Groups[u.Tail()]
	return g, ok
}

// PutGroup registers (or replaces) a group.
func (w *World) PutGroup(g *Group) {
	w.Groups[g.URN.Tail()] = g
}

// RemoveGroup deletes a group from the world.
func (w *World) RemoveGroup(u urn.GroupURN) {
	delete(w.Groups, u.Tail())
}

// Session looks up a session by URN.
func (w *World) Session(u urn.SessionURN) (*Session, bool) {
	s, ok := w.Sessions[u.Tail()]
	return s, ok
}

// PutSession registers (or replaces) a session.
func (w *World) PutSession(s *Session) {
	w.Sessions[s.URN.Tail()] = s
}

// Materialize adds an actor to a place's entities list with the given
// visibility. It does not validate that the actor's Location matches place;
// callers (the MATERIALIZE_ACTOR reducer) are responsible for that.
func (p *Place) Materialize(actorID string, vis Visibility) {
	p.Entities[actorID] = Presence{Vis: vis}
}

// Dematerialize removes an actor from a place's entities list.
func (p *Place) Dematerialize(actorID string) {
	delete(p.Entities, actorID)
}

// IsMaterialized reports whether an actor is present in a place's entities
// list.
func (p *Place) IsMaterialized(actorID string) bool {
	_, ok := p.Entities[actorID]
	return ok
}
