package movement

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

func TestParseRecognizesMoveWithDirection(t *testing.T) {
	in := intent.Parse("move north", "flux:actor:alice", "flux:place:square", "i1", 100)
	cmd, ok := Parse(newCtx(world.New()), in)
	if !ok {
		t.Fatal("expected Parse to accept 'move north'")
	}
	if cmd.Args.(Args).Direction != "north" {
		t.Fatalf("unexpected direction: %+v", cmd.Args)
	}
}

func TestParseRejectsWrongPrefixOrMissingDirection(t *testing.T) {
	cases := []string{"look", "move"}
	for _, text := range cases {
		in := intent.Parse(text, "flux:actor:alice", "flux:place:square", "i1", 100)
		if _, ok := Parse(newCtx(world.New()), in); ok {
			t.Fatalf("expected Parse to reject %q", text)
		}
	}
}

func TestReduceRelocatesMaterializedActor(t *testing.T) {
	w := world.New()
	square := world.NewPlace(urn.NewPlace("square"), "Square", "", "temperate")
	forest := world.NewPlace(urn.NewPlace("forest"), "Forest", "", "temperate")
	square.Exits[world.Direction("north")] = world.Exit{Direction: "north", To: forest.URN}
	w.PutPlace(square)
	w.PutPlace(forest)

	alice := world.NewActor(urn.NewActor("alice"), "Alice", world.ActorKindPC, square.URN)
	w.PutActor(alice)
	square.Materialize(alice.URN.Tail(), world.VisibleToEveryone)

	cmd := command.Command{ID: "c1", Actor: alice.URN.String(), Location: square.URN.String(), Type: command.TypeMove, Args: Args{Direction: "north"}}
	ctx := Reduce(newCtx(w), cmd)

	if alice.Location != forest.URN {
		t.Fatalf("expected actor relocated to forest, got %v", alice.Location)
	}
	if square.IsMaterialized(alice.URN.Tail()) {
		t.Fatal("expected actor dematerialized from origin")
	}
	if !forest.IsMaterialized(alice.URN.Tail()) {
		t.Fatal("expected actor materialized at destination")
	}
	events := ctx.GetDeclaredEvents()
	if len(events) != 1 {
		t.Fatalf("expected one ACTOR_DID_MOVE event, got %d", len(events))
	}
}

func TestReduceRejectsMissingExit(t *testing.T) {
	w := world.New()
	square := world.NewPlace(urn.NewPlace("square"), "Square", "", "temperate")
	w.PutPlace(square)
	alice := world.NewActor(urn.NewActor("alice"), "Alice", world.ActorKindPC, square.URN)
	w.PutActor(alice)

	cmd := command.Command{ID: "c1", Actor: alice.URN.String(), Type: command.TypeMove, Args: Args{Direction: "north"}}
	ctx := Reduce(newCtx(w), cmd)

	errs := ctx.GetDeclaredErrors()
	if len(errs) != 1 || errs[0].Code != fluxerr.CodeInvalidAction {
		t.Fatalf("expected INVALID_ACTION, got %v", errs)
	}
	if alice.Location != square.URN {
		t.Fatalf("expected actor to stay put on failure, got %v", alice.Location)
	}
}
