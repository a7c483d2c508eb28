// Package materialize implements MATERIALIZE_ACTOR and DEMATERIALIZE_ACTOR,
// the system commands that add/remove an actor from a place's presence
// list (spec §4.5). Per spec §9's resolved open question, materialize
// additionally emits a LOOK event right after ACTOR_DID_MATERIALIZE.
package materialize

import (
	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/event"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/handlers/look"
	"github.com/fluxcore/engine/internal/intent"
	"github.com/fluxcore/engine/internal/reducer"
	"github.com/fluxcore/engine/internal/registry"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

// MaterializeParse recognizes "materialize" with no arguments, issued by
// the actor about themselves.
func MaterializeParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "materialize" || in.Verb != "" {
		return command.Command{}, false
	}
	return command.Command{
		ID:       in.ID,
		Ts:       in.Ts,
		Actor:    in.Actor,
		Location: in.Location,
		Type:     command.TypeMaterializeActor,
	}, true
}

// MaterializeReduce adds the actor to their location's presence list as
// VISIBLE_TO_EVERYONE, emits ACTOR_DID_MATERIALIZE, then a LOOK.
func MaterializeReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	place, ok := ctx.World.Place(actor.Location)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidAction, cmd.ID)
		return ctx
	}
	place.Materialize(actor.URN.Tail(), world.VisibleToEveryone)

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidMaterialize,
		Actor:    actor.URN.String(),
		Location: place.URN.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
	})
	look.DeclareLook(ctx, actor.URN, place, cmd.ID)
	return ctx
}

// DematerializeParse recognizes "dematerialize" with no arguments.
func DematerializeParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "dematerialize" || in.Verb != "" {
		return command.Command{}, false
	}
	return command.Command{
		ID:       in.ID,
		Ts:       in.Ts,
		Actor:    in.Actor,
		Location: in.Location,
		Type:     command.TypeDematerializeActor,
	}, true
}

// DematerializeReduce removes the actor from their location's presence
// list and emits ACTOR_DID_DEMATERIALIZE.
func DematerializeReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	place, ok := ctx.World.Place(actor.Location)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidAction, cmd.ID)
		return ctx
	}
	place.Dematerialize(actor.URN.Tail())

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidDematerialize,
		Actor:    actor.URN.String(),
		Location: place.URN.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
	})
	return ctx
}

// Handlers returns both materialize-family handlers.
func Handlers() []registry.Handler {
	return []registry.Handler{
		{
			Type:  command.TypeMaterializeActor,
			Parse: MaterializeParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeMaterializeActor,
				reducer.WithBasicWorldStateValidation(MaterializeReduce))),
		},
		{
			Type:  command.TypeDematerializeActor,
			Parse: DematerializeParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeDematerializeActor,
				reducer.WithBasicWorldStateValidation(DematerializeReduce))),
		},
	}
}
