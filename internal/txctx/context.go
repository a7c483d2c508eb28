// Package txctx implements the Transformer Context: the per-request handle
// passed to every reducer. It separates the world (data) from ambient
// services (id/time/random/schema lookup) so tests can substitute services
// without cloning world state, per spec §9.
package txctx

import (
	"github.com/fluxcore/engine/internal/event"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/world"
)

// Clock returns the current timestamp as a Unix-ish integer. Injectable so
// tests get deterministic timestamps.
type Clock func() int64

// Random returns a float64 in [0, 1). Injectable so tests get deterministic
// rolls.
type Random func() float64

// UniqueID returns a fresh unique identifier. Injectable so tests get
// deterministic ids.
type UniqueID func() string

// Context is the mutable-by-agreement handle scoped to one intent's
// execution. Reducers mutate World directly and push events/errors into the
// internal buffers via DeclareEvent/DeclareError; they must not perform I/O
// or mutate anything not reachable from World.
type Context struct {
	World *world.World

	uniqid UniqueID
	clock  Clock
	random Random

	events []event.WorldEvent
	errors []event.DeclaredError

	Party         *PartyAPI
	Equipment     *EquipmentAPI
	Capacitor     *CapacitorAPI
	ActorSessions *ActorSessionAPI
}

// New constructs a fresh Context over the given world and ambient services.
func New(w *world.World, uniqid UniqueID, clock Clock, random Random) *Context {
	ctx := &Context{
		World:  w,
		uniqid: uniqid,
		clock:  clock,
		random: random,
	}
	ctx.Party = &PartyAPI{world: w}
	ctx.Equipment = &EquipmentAPI{world: w}
	ctx.Capacitor = &CapacitorAPI{world: w}
	ctx.ActorSessions = &ActorSessionAPI{world: w}
	return ctx
}

// DeclareEvent appends an event to the per-intent buffer, in call order.
func (c *Context) DeclareEvent(evt event.WorldEvent) {
	c.events = append(c.events, evt)
}

// DeclareError appends a declared error to the per-intent buffer. Per spec
// §4.4, a reducer that calls DeclareError must not also call DeclareEvent
// for the same effect.
func (c *Context) DeclareError(code fluxerr.Code, trace string) {
	c.errors = append(c.errors, event.DeclaredError{Code: code, Trace: trace})
}

// GetDeclaredEvents returns events declared so far, in declaration order.
func (c *Context) GetDeclaredEvents() []event.WorldEvent {
	return c.events
}

// GetDeclaredErrors returns errors declared so far.
func (c *Context) GetDeclaredErrors() []event.DeclaredError {
	return c.errors
}

// Uniqid returns a fresh unique identifier from the injected generator.
func (c *Context) Uniqid() string {
	return c.uniqid()
}

// Timestamp returns the current timestamp from the injected clock.
func (c *Context) Timestamp() int64 {
	return c.clock()
}

// Rand returns a float64 in [0, 1) from the injected random source.
func (c *Context) Rand() float64 {
	return c.random()
}

// Schemas returns the world's schema manager.
func (c *Context) Schemas() *world.SchemaManager {
	return c.World.Schemas
}
