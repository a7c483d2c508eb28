// Package engine is the composition root that wires every handler family
// into one registry.Registry and exposes the single entry point a caller
// submits actor text through. Grounded on the teacher's cmd/game +
// internal/services/game/app composition style: construct dependencies
// explicitly in one place, no package-level singletons.
package engine

import (
	"context"
	"log"

	"github.com/fluxcore/engine/internal/config"
	"github.com/fluxcore/engine/internal/event"
	"github.com/fluxcore/engine/internal/handlers/combat"
	"github.com/fluxcore/engine/internal/handlers/credit"
	"github.com/fluxcore/engine/internal/handlers/environment"
	"github.com/fluxcore/engine/internal/handlers/lifecycle"
	"github.com/fluxcore/engine/internal/handlers/look"
	"github.com/fluxcore/engine/internal/handlers/materialize"
	"github.com/fluxcore/engine/internal/handlers/movement"
	"github.com/fluxcore/engine/internal/handlers/party"
	"github.com/fluxcore/engine/internal/handlers/workbench"
	"github.com/fluxcore/engine/internal/intent"
	"github.com/fluxcore/engine/internal/narrative"
	"github.com/fluxcore/engine/internal/registry"
	"github.com/fluxcore/engine/internal/telemetry"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/world"
)

// Engine bundles the world projection, the wired registry, and the ambient
// services (id/time/random) a running process needs to dispatch intents.
// It holds no behavior beyond construction and one-shot submission; callers
// are responsible for serializing submissions against the same World, per
// spec §5.
type Engine struct {
	World    *world.World
	Registry *registry.Registry
	Config   config.Engine

	uniqid txctx.UniqueID
	clock  txctx.Clock
	random txctx.Random
}

// New constructs an Engine over a fresh world, wiring every handler family
// in registration order. uniqid/clock/random are injected so callers (and
// tests) can substitute deterministic sources; production wiring passes
// idgen.New, time.Now().Unix, and math/rand.Float64-equivalent sources from
// cmd/fluxcore.
func New(cfg config.Engine, uniqid txctx.UniqueID, clock txctx.Clock, random txctx.Random) *Engine {
	e := &Engine{
		World:    world.New(),
		Config:   cfg,
		uniqid:   uniqid,
		clock:    clock,
		random:   random,
	}
	e.Registry = buildRegistry(cfg)
	return e
}

// buildRegistry registers every handler family. Order matters only within
// a family that shares an ambiguous (prefix, verb) shape; across families it
// does not, since command verbs are disjoint by construction.
func buildRegistry(cfg config.Engine) *registry.Registry {
	r := registry.New()

	r.Register(movement.Handler())
	for _, h := range lifecycle.Handlers() {
		r.Register(h)
	}
	r.Register(look.Handler())
	for _, h := range materialize.Handlers() {
		r.Register(h)
	}
	for _, h := range party.Handlers() {
		r.Register(h)
	}
	r.Register(credit.Handler(cfg))
	for _, h := range environment.Handlers() {
		r.Register(h)
	}
	for _, h := range workbench.Handlers(cfg) {
		r.Register(h)
	}
	for _, h := range combat.Handlers(cfg) {
		r.Register(h)
	}
	log.Printf("engine registry built with %d handlers", len(r.Handlers()))
	return r
}

// Outcome is what a caller receives after submitting one intent: the
// declared events, rendered into narrative lines for the acting locale, plus
// any declared errors.
type Outcome struct {
	Events []event.WorldEvent
	Lines  []narrative.Lines
	Errors []event.DeclaredError
}

// Submit parses text into an Intent, dispatches it through the registry,
// and renders every declared event into locale narrative lines. actor and
// location are URNs; session is the session URN the actor currently holds,
// or "" if none. locale controls narrative rendering only — dispatch itself
// is locale-independent.
func (e *Engine) Submit(ctx context.Context, text, actor, location, session, locale string) Outcome {
	id := e.uniqid()
	_, span := telemetry.StartIntentSpan(ctx, id)
	defer span.End()

	in := intent.Parse(text, actor, location, id, e.clock())
	in.Session = session

	txc := txctx.New(e.World, e.uniqid, e.clock, e.random)
	for _, h := range e.Registry.Handlers() {
		if cmd, ok := h.Parse(txc, in); ok {
			telemetry.SetCommandType(span, string(cmd.Type))
			break
		}
	}
	txc = registry.Dispatch(txc, e.Registry, in)

	events := txc.GetDeclaredEvents()

	catalog := narrative.GetCatalog(locale)
	lines := make([]narrative.Lines, len(events))
	for i, evt := range events {
		lines[i] = catalog.Render(evt)
	}

	return Outcome{Events: events, Lines: lines, Errors: txc.GetDeclaredErrors()}
}
