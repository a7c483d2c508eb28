// Package reducer provides explicit, visible-at-registration-time
// combinators that wrap a registry.Reducer with common precondition checks.
// Per spec §9, composition is deliberately not hidden inside ad hoc
// closures scattered through handler code: every handler's middleware
// stack is written out at the call site where it is registered.
package reducer

import (
	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"

	"github.com/fluxcore/engine/internal/txctx"
)

// Func is the wrapped shape every combinator accepts and returns, matching
// registry.Reducer without importing it (neither package imports the other).
type Func func(ctx *txctx.Context, cmd command.Command) *txctx.Context

// WithCommandType asserts cmd.Type matches t before invoking next. A
// mismatch is a dispatcher wiring bug, not a user-facing error, so it
// declares NO_HANDLER_FOR_COMMAND rather than silently proceeding.
func WithCommandType(t command.Type, next Func) Func {
	return func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		if cmd.Type != t {
			ctx.DeclareError(fluxerr.CodeNoHandlerForCommand, cmd.ID)
			return ctx
		}
		return next(ctx, cmd)
	}
}

// WithBasicWorldStateValidation checks that cmd.Actor names an existing
// actor and cmd.Location (when non-empty) names an existing place, before
// invoking next. Most reducers need at least this much and would otherwise
// repeat it.
func WithBasicWorldStateValidation(next Func) Func {
	return func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		if cmd.Actor == "" {
			ctx.DeclareError(fluxerr.CodeInvalidArgument, cmd.ID)
			return ctx
		}
		if _, ok := ctx.World.Actor(urn.ActorURN(cmd.Actor)); !ok {
			ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
			return ctx
		}
		if cmd.Location != "" {
			if _, ok := ctx.World.Place(urn.PlaceURN(cmd.Location)); !ok {
				ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
				return ctx
			}
		}
		return next(ctx, cmd)
	}
}

// WithExistingWorkbenchSession resolves cmd.Session to a pending or running
// Workbench-strategy session before invoking next. Declares INVALID_SESSION
// on any mismatch. The resolved session is re-looked-up by next via
// ctx.World.Session(cmd.Session) rather than threaded through in a context
// value, keeping Func's signature uniform across all combinators.
func WithExistingWorkbenchSession(next Func) Func {
	return func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		if cmd.Session == "" {
			ctx.DeclareError(fluxerr.CodeInvalidSession, cmd.ID)
			return ctx
		}
		s, ok := ctx.World.Session(urn.SessionURN(cmd.Session))
		if !ok || s.Strategy != world.StrategyWorkbench || s.Status == world.StatusEnded {
			ctx.DeclareError(fluxerr.CodeInvalidSession, cmd.ID)
			return ctx
		}
		return next(ctx, cmd)
	}
}

// WithWorkbenchShell resolves the shell targeted by a workbench command:
// the session's CurrentShellID when cmd.Args does not name one explicitly.
// shellArg extracts an optional explicit shell id/name from cmd.Args; it
// returns "" when the command didn't specify one.
func WithWorkbenchShell(shellArg func(cmd command.Command) string, next Func) Func {
	return func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		s, ok := ctx.World.Session(urn.SessionURN(cmd.Session))
		if !ok || s.Workbench == nil {
			ctx.DeclareError(fluxerr.CodeInvalidSession, cmd.ID)
			return ctx
		}
		actor, ok := ctx.World.Actor(urn.ActorURN(cmd.Actor))
		if !ok {
			ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
			return ctx
		}
		shellID := shellArg(cmd)
		if shellID == "" {
			shellID = s.Workbench.CurrentShellID
		}
		if _, ok := actor.Shells[shellID]; !ok {
			found := false
			for _, shell := range actor.Shells {
				if shell.Name == shellID {
					found = true
					break
				}
			}
			if !found {
				ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
				return ctx
			}
		}
		return next(ctx, cmd)
	}
}

// CombatCost names the AP/energy price of a combat command.
type CombatCost struct {
	AP     int
	Energy int
}

// WithCombatCost resolves the combatant cost(cmd) names, checks affordability
// via ctx.Capacitor, spends it, and invokes next; declares
// INSUFFICIENT_RESOURCES without spending when unaffordable.
func WithCombatCost(cost func(cmd command.Command) CombatCost, next Func) Func {
	return func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		s, ok := ctx.World.Session(urn.SessionURN(cmd.Session))
		if !ok || s.Combat == nil {
			ctx.DeclareError(fluxerr.CodeInvalidSession, cmd.ID)
			return ctx
		}
		actorTail := urn.ActorURN(cmd.Actor).Tail()
		combatant, ok := s.Combat.Combatants[actorTail]
		if !ok {
			ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
			return ctx
		}
		c := cost(cmd)
		if !ctx.Capacitor.CanAfford(combatant, c.AP, c.Energy) {
			ctx.DeclareError(fluxerr.CodeInsufficientResources, cmd.ID)
			return ctx
		}
		ctx.Capacitor.Spend(combatant, c.AP, c.Energy)
		return next(ctx, cmd)
	}
}
