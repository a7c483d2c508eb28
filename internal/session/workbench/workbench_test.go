package workbench

import (
	"strconv"
	"testing"

	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

func newCtx(w *world.World) *txctx.Context {
	id := 0
	return txctx.New(w, func() string { id++; return "sess-" + strconv.Itoa(id) }, func() int64 { return 0 }, func() float64 { return 0 })
}

func actorWithShell() *world.Actor {
	a := world.NewActor(urn.NewActor("alice"), "Alice", world.ActorKindPC, urn.NewPlace("square"))
	a.Shells["shell-1"] = &world.Shell{ID: "shell-1", Name: "Default"}
	a.CurrentShell = "shell-1"
	return a
}

func TestAcquireOrCreateFailsWithoutCurrentShell(t *testing.T) {
	w := world.New()
	ctx := newCtx(w)
	a := world.NewActor(urn.NewActor("alice"), "Alice", world.ActorKindPC, urn.NewPlace("square"))

	_, ok := AcquireOrCreate(ctx, a, "t1", "")
	if ok {
		t.Fatal("expected failure when the actor has no current shell")
	}
}

func TestAcquireOrCreateCreatesThenReusesPending(t *testing.T) {
	w := world.New()
	ctx := newCtx(w)
	a := actorWithShell()

	first, ok := AcquireOrCreate(ctx, a, "t1", "")
	if !ok || !first.IsNew {
		t.Fatalf("expected a new session on first acquisition, got %+v ok=%v", first, ok)
	}
	if len(ctx.GetDeclaredEvents()) != 1 {
		t.Fatalf("expected WORKBENCH_SESSION_DID_START declared once, got %d", len(ctx.GetDeclaredEvents()))
	}

	second, ok := AcquireOrCreate(ctx, a, "t2", "")
	if !ok || second.IsNew {
		t.Fatalf("expected the pending session reused, not recreated, got %+v ok=%v", second, ok)
	}
	if second.Session != first.Session {
		t.Fatal("expected the exact same session pointer on reuse")
	}
	if len(ctx.GetDeclaredEvents()) != 1 {
		t.Fatalf("expected no additional event on reuse, got %d total", len(ctx.GetDeclaredEvents()))
	}
}

func TestAcquireOrCreateByExplicitSessionID(t *testing.T) {
	w := world.New()
	ctx := newCtx(w)
	a := actorWithShell()

	created, _ := AcquireOrCreate(ctx, a, "t1", "")

	reacquired, ok := AcquireOrCreate(ctx, a, "t2", created.Session.URN.String())
	if !ok || reacquired.IsNew {
		t.Fatalf("expected explicit session id to be reused without IsNew, got %+v ok=%v", reacquired, ok)
	}
	if reacquired.Session != created.Session {
		t.Fatal("expected the same session for the explicit id")
	}
}

func TestAcquireOrCreateRejectsSessionIDForAnotherActor(t *testing.T) {
	w := world.New()
	ctx := newCtx(w)
	a := actorWithShell()
	created, _ := AcquireOrCreate(ctx, a, "t1", "")

	other := actorWithShell()
	other.URN = urn.NewActor("bob")

	_, ok := AcquireOrCreate(ctx, other, "t2", created.Session.URN.String())
	if ok {
		t.Fatal("expected rejection when the session id belongs to a different actor")
	}
}
