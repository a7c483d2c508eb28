// Package movement implements the MOVE command family (spec §4.5).
package movement

import (
	"strings"

	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/event"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/intent"
	"github.com/fluxcore/engine/internal/reducer"
	"github.com/fluxcore/engine/internal/registry"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

// Args carries MOVE's argument: the direction token as typed, resolved to a
// destination place by the reducer, not by the parser.
type Args struct {
	Direction string
}

// Parse recognizes "move <direction>".
func Parse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "move" || in.Verb == "" {
		return command.Command{}, false
	}
	return command.Command{
		ID:       in.ID,
		Ts:       in.Ts,
		Actor:    in.Actor,
		Location: in.Location,
		Session:  in.Session,
		Type:     command.TypeMove,
		Args:     Args{Direction: strings.ToLower(in.Verb)},
	}, true
}

// Reduce implements spec §4.5's MOVE: validate an exit exists from the
// actor's origin matching the requested direction, then relocate the
// actor's presence descriptor from origin to destination.
func Reduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(Args)

	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	origin, ok := ctx.World.Place(actor.Location)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidAction, cmd.ID)
		return ctx
	}
	exit, ok := origin.Exits[world.Direction(args.Direction)]
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidAction, cmd.ID)
		return ctx
	}
	dest, ok := ctx.World.Place(exit.To)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidAction, cmd.ID)
		return ctx
	}

	actorTail := actor.URN.Tail()
	wasMaterialized := origin.IsMaterialized(actorTail)
	if wasMaterialized {
		vis := origin.Entities[actorTail].Vis
		origin.Dematerialize(actorTail)
		dest.Materialize(actorTail, vis)
	}
	actor.Location = dest.URN

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidMove,
		Actor:    actor.URN.String(),
		Location: origin.URN.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"destination": dest.URN.String()},
	})
	return ctx
}

// Handler wires Parse/Reduce with the standard basic-world-state validation.
func Handler() registry.Handler {
	chain := reducer.WithCommandType(command.TypeMove,
		reducer.WithBasicWorldStateValidation(Reduce))
	return registry.Handler{
		Type:   command.TypeMove,
		Parse:  Parse,
		Reduce: registry.Reducer(chain),
	}
}
