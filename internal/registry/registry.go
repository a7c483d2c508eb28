// Package registry implements the command registry and intent dispatch
// described in spec §4.3: an ordered list of handlers, each offering a
// parser (intent -> command) and a reducer (command -> mutated context).
package registry

import (
	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/intent"
	"github.com/fluxcore/engine/internal/txctx"
)

// Parser recognizes an Intent and lifts it into a Command. It returns
// ok=false when the intent's shape does not belong to this handler; the
// dispatcher then tries the next registered handler in order.
type Parser func(ctx *txctx.Context, in intent.Intent) (command.Command, bool)

// Reducer performs a command's state transition against the context. It
// must not mutate anything unreachable from ctx.World, and must declare
// exactly one event or one error per publicly meaningful effect (spec
// §4.4).
type Reducer func(ctx *txctx.Context, cmd command.Command) *txctx.Context

// Handler bundles a command family's recognizer, reducer, and declared
// command type. Dispatch tries handlers strictly in registration order and
// the first match wins, so where two Parse shapes could overlap the
// narrower one must be registered before the broader one; every handler family in this registry
// currently parses a disjoint (prefix, verb) pair, so no family actually
// depends on another's position (see e.g. party.Handlers' doc comment).
type Handler struct {
	Type   command.Type
	Parse  Parser
	Reduce Reducer
}

// Registry is the ordered list of handlers plus the Type->Reducer lookup
// table built from it. Constructed explicitly by the application root; no
// package-level singleton (spec §9).
type Registry struct {
	handlers []Handler
	reducers map[command.Type]Reducer
	seen     map[command.Type]bool
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		reducers: make(map[command.Type]Reducer),
		seen:     make(map[command.Type]bool),
	}
}

// Register appends a handler to the registry. Handlers are tried, in
// registration order, against every dispatched intent; register handlers
// whose shapes might overlap with a broader handler's shape before that
// broader handler. Register panics on a duplicate Type, since that is
// always a wiring bug caught at startup, never at request time.
func (r *Registry) Register(h Handler) {
	if r.seen[h.Type] {
		panic("registry: duplicate command type registered: " + string(h.Type))
	}
	r.seen[h.Type] = true
	r.handlers = append(r.handlers, h)
	r.reducers[h.Type] = h.Reduce
}

// Dispatch implements spec §4.3's four-step dispatch algorithm: find the
// first handler whose Parse accepts the intent, look up its reducer by the
// resulting command's Type, invoke it, and return the resulting context.
func Dispatch(ctx *txctx.Context, r *Registry, in intent.Intent) *txctx.Context {
	for _, h := range r.handlers {
		cmd, ok := h.Parse(ctx, in)
		if !ok {
			continue
		}
		reduce, ok := r.reducers[cmd.Type]
		if !ok {
			ctx.DeclareError(fluxerr.CodeNoHandlerForCommand, cmd.ID)
			return ctx
		}
		return reduce(ctx, cmd)
	}
	ctx.DeclareError(fluxerr.CodeUnrecognizedIntent, in.ID)
	return ctx
}

// Handlers returns the registered handlers in registration order, mainly
// for tests that assert on ordering.
func (r *Registry) Handlers() []Handler {
	return r.handlers
}
