package lifecycle

import (
	"testing"

	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/intent"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

func newCtx(w *world.World) *txctx.Context {
	return txctx.New(w, func() string { return "evt-1" }, func() int64 { return 100 }, func() float64 { return 0 })
}

func TestCreateActorParseRequiresFourTokens(t *testing.T) {
	in := intent.Parse("@create-actor flux:actor:alice Alice pc flux:place:square", "", "", "i1", 100)
	cmd, ok := CreateActorParse(newCtx(world.New()), in)
	if !ok {
		t.Fatal("expected parse to accept a full @create-actor command")
	}
	if cmd.Actor != urn.SystemActor {
		t.Fatalf("expected system actor, got %q", cmd.Actor)
	}

	short := intent.Parse("@create-actor flux:actor:alice Alice pc", "", "", "i2", 100)
	if _, ok := CreateActorParse(newCtx(world.New()), short); ok {
		t.Fatal("expected parse to reject a command missing the location token")
	}
}

func TestCreateActorReduceRegistersActor(t *testing.T) {
	w := world.New()
	w.PutPlace(world.NewPlace(urn.NewPlace("square"), "Square", "", "temperate"))

	cmd := command.Command{ID: "c1", Actor: urn.SystemActor, Type: command.TypeCreateActor, Args: CreateActorArgs{
		URN: urn.NewActor("alice"), Name: "Alice", Kind: world.ActorKindPC, Location: urn.NewPlace("square"),
	}}
	ctx := CreateActorReduce(newCtx(w), cmd)

	a, ok := w.Actor(urn.NewActor("alice"))
	if !ok || a.Name != "Alice" {
		t.Fatalf("expected actor registered, got %+v ok=%v", a, ok)
	}
	if len(ctx.GetDeclaredEvents()) != 1 {
		t.Fatalf("expected one ACTOR_DID_CREATE event, got %d", len(ctx.GetDeclaredEvents()))
	}
}

func TestCreateActorReduceRejectsDuplicateURN(t *testing.T) {
	w := world.New()
	w.PutPlace(world.NewPlace(urn.NewPlace("square"), "Square", "", "temperate"))
	w.PutActor(world.NewActor(urn.NewActor("alice"), "Alice", world.ActorKindPC, urn.NewPlace("square")))

	cmd := command.Command{ID: "c1", Actor: urn.SystemActor, Type: command.TypeCreateActor, Args: CreateActorArgs{
		URN: urn.NewActor("alice"), Name: "Alice2", Kind: world.ActorKindPC, Location: urn.NewPlace("square"),
	}}
	ctx := CreateActorReduce(newCtx(w), cmd)

	errs := ctx.GetDeclaredErrors()
	if len(errs) != 1 || errs[0].Code != fluxerr.CodePreconditionFailed {
		t.Fatalf("expected PRECONDITION_FAILED on duplicate actor, got %v", errs)
	}
}

func TestCreateActorReduceRejectsUnknownLocation(t *testing.T) {
	w := world.New()
	cmd := command.Command{ID: "c1", Actor: urn.SystemActor, Type: command.TypeCreateActor, Args: CreateActorArgs{
		URN: urn.NewActor("alice"), Name: "Alice", Kind: world.ActorKindPC, Location: urn.NewPlace("nowhere"),
	}}
	ctx := CreateActorReduce(newCtx(w), cmd)

	errs := ctx.GetDeclaredErrors()
	if len(errs) != 1 || errs[0].Code != fluxerr.CodeInvalidTarget {
		t.Fatalf("expected INVALID_TARGET, got %v", errs)
	}
}

func TestCreatePlaceReduceRegistersPlace(t *testing.T) {
	w := world.New()
	cmd := command.Command{ID: "c1", Actor: urn.SystemActor, Type: command.TypeCreatePlace, Args: CreatePlaceArgs{
		URN: urn.NewPlace("square"), Name: "Square", Ecosystem: "temperate",
	}}
	ctx := CreatePlaceReduce(newCtx(w), cmd)

	p, ok := w.Place(urn.NewPlace("square"))
	if !ok || p.Name != "Square" {
		t.Fatalf("expected place registered, got %+v ok=%v", p, ok)
	}
	if len(ctx.GetDeclaredEvents()) != 1 {
		t.Fatalf("expected one PLACE_DID_CREATE event, got %d", len(ctx.GetDeclaredEvents()))
	}
}

func TestCreatePlaceReduceRejectsMalformedURN(t *testing.T) {
	w := world.New()
	cmd := command.Command{ID: "c1", Actor: urn.SystemActor, Type: command.TypeCreatePlace, Args: CreatePlaceArgs{
		URN: urn.URN("not-a-urn"), Name: "Square", Ecosystem: "temperate",
	}}
	ctx := CreatePlaceReduce(newCtx(w), cmd)

	errs := ctx.GetDeclaredErrors()
	if len(errs) != 1 || errs[0].Code != fluxerr.CodeInvalidArgument {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", errs)
	}
}
