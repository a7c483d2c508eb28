// Package look implements the LOOK command and the DeclareLook helper other
// handler families reuse (materialize emits a LOOK right after
// ACTOR_DID_MATERIALIZE per spec §4.5/§9's chosen union semantics).
package look

import (
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

// Parse recognizes "look" with no further arguments.
func Parse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "look" || in.Verb != "" {
		return command.Command{}, false
	}
	return command.Command{
		ID:       in.ID,
		Ts:       in.Ts,
		Actor:    in.Actor,
		Location: in.Location,
		Session:  in.Session,
		Type:     command.TypeLook,
	}, true
}

// Reduce declares a LOOK event describing the actor's current place.
func Reduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	place, ok := ctx.World.Place(actor.Location)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidAction, cmd.ID)
		return ctx
	}
	DeclareLook(ctx, actor.URN, place, cmd.ID)
	return ctx
}

// DeclareLook declares a LOOK event for actorURN at place, with payload
// describing exits and other materialized entities. Reused by materialize's
// reducer so both paths produce an identical payload shape.
func DeclareLook(ctx *txctx.Context, actorURN urn.ActorURN, place *world.Place, trace string) {
	exits := make([]string, 0, len(place.Exits))
	for dir := range place.Exits {
		exits = append(exits, string(dir))
	}
	present := make([]string, 0, len(place.Entities))
	for id := range place.Entities {
		present = append(present, id)
	}

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeLook,
		Actor:    actorURN.String(),
		Location: place.URN.String(),
		Trace:    trace,
		Ts:       ctx.Timestamp(),
		Payload: map[string]any{
			"name":        place.Name,
			"description": place.Description,
			"exits":       exits,
			"present":     present,
			"weather":     place.Weather,
		},
	})
}

// Handler wires Parse/Reduce with basic world-state validation.
func Handler() registry.Handler {
	chain := reducer.WithCommandType(command.TypeLook,
		reducer.WithBasicWorldStateValidation(Reduce))
	return registry.Handler{
		Type:   command.TypeLook,
		Parse:  Parse,
		Reduce: registry.Reducer(chain),
	}
}
