// Package lifecycle implements the entity-creation command family added by
// SPEC_FULL.md: CREATE_ACTOR and CREATE_PLACE. Both are system commands
// (spec §3's lifecycle note: "entities created by explicit CREATE_ACTOR /
// CREATE_PLACE commands ... destroyed only via explicit commands").
package lifecycle

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

// CreateActorArgs carries CREATE_ACTOR's arguments.
type CreateActorArgs struct {
	URN      urn.ActorURN
	Name     string
	Kind     world.ActorKind
	Location urn.PlaceURN
}

// CreateActorParse recognizes the literal verb "@create-actor", following
// the "@credit"-style literal-verb convention for system commands (spec
// §4.2 step 4). Tokens: urn, name, kind, location.
func CreateActorParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Verb != "@create-actor" || len(in.Tokens) < 4 {
		return command.Command{}, false
	}
	return command.Command{
		ID:    in.ID,
		Ts:    in.Ts,
		Actor: urn.SystemActor,
		Type:  command.TypeCreateActor,
		Args: CreateActorArgs{
			URN:      urn.URN(in.Tokens[0]),
			Name:     in.Tokens[1],
			Kind:     world.ActorKind(in.Tokens[2]),
			Location: urn.URN(in.Tokens[3]),
		},
	}, true
}

// CreateActorReduce validates the new actor's URN is well-formed and
// unused, its kind is one of the closed set, and its location exists, then
// registers the actor. Emits ACTOR_DID_CREATE.
func CreateActorReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(CreateActorArgs)

	if !args.URN.Is(urn.KindActor) {
		ctx.DeclareError(fluxerr.CodeInvalidArgument, cmd.ID)
		return ctx
	}
	if _, exists := ctx.World.Actor(args.URN); exists {
		ctx.DeclareError(fluxerr.CodePreconditionFailed, cmd.ID)
		return ctx
	}
	switch args.Kind {
	case world.ActorKindPC, world.ActorKindNPC, world.ActorKindMonster:
	default:
		ctx.DeclareError(fluxerr.CodeInvalidArgument, cmd.ID)
		return ctx
	}
	if _, ok := ctx.World.Place(args.Location); !ok {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}

	a := world.NewActor(args.URN, args.Name, args.Kind, args.Location)
	ctx.World.PutActor(a)

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidCreate,
		Actor:    urn.SystemActor,
		Location: args.Location.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"actor": args.URN.String(), "name": args.Name, "kind": string(args.Kind)},
	})
	return ctx
}

// CreatePlaceArgs carries CREATE_PLACE's arguments.
type CreatePlaceArgs struct {
	URN         urn.PlaceURN
	Name        string
	Description string
	Ecosystem   string
}

// CreatePlaceParse recognizes the literal verb "@create-place". Tokens:
// urn, name, ecosystem; description is not expressible as a single token so
// it defaults empty and is set later via a dedicated command if needed.
func CreatePlaceParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Verb != "@create-place" || len(in.Tokens) < 3 {
		return command.Command{}, false
	}
	return command.Command{
		ID:    in.ID,
		Ts:    in.Ts,
		Actor: urn.SystemActor,
		Type:  command.TypeCreatePlace,
		Args: CreatePlaceArgs{
			URN:       urn.URN(in.Tokens[0]),
			Name:      in.Tokens[1],
			Ecosystem: in.Tokens[2],
		},
	}, true
}

// CreatePlaceReduce validates the new place's URN is well-formed and
// unused, then registers it. Emits PLACE_DID_CREATE.
func CreatePlaceReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(CreatePlaceArgs)

	if !args.URN.Is(urn.KindPlace) {
		ctx.DeclareError(fluxerr.CodeInvalidArgument, cmd.ID)
		return ctx
	}
	if _, exists := ctx.World.Place(args.URN); exists {
		ctx.DeclareError(fluxerr.CodePreconditionFailed, cmd.ID)
		return ctx
	}

	p := world.NewPlace(args.URN, args.Name, args.Description, args.Ecosystem)
	ctx.World.PutPlace(p)

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypePlaceDidCreate,
		Actor:    urn.SystemActor,
		Location: args.URN.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"place": args.URN.String(), "name": args.Name},
	})
	return ctx
}

// Handlers returns both lifecycle command handlers. Neither composes
// WithBasicWorldStateValidation: that combinator requires cmd.Actor to
// already exist in the world, which is backwards for commands whose whole
// purpose is to create world entities.
func Handlers() []registry.Handler {
	return []registry.Handler{
		{
			Type:   command.TypeCreateActor,
			Parse:  CreateActorParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeCreateActor, CreateActorReduce)),
		},
		{
			Type:   command.TypeCreatePlace,
			Parse:  CreatePlaceParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeCreatePlace, CreatePlaceReduce)),
		},
	}
}
