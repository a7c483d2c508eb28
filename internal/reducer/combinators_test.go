package reducer

import (
	"testing"

	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

func newCtx(w *world.World) *txctx.Context {
	return txctx.New(w, func() string { return "id" }, func() int64 { return 0 }, func() float64 { return 0 })
}

func TestWithCommandTypeRejectsMismatch(t *testing.T) {
	w := world.New()
	called := false
	next := func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		called = true
		return ctx
	}
	wrapped := WithCommandType("MOVE", next)

	ctx := wrapped(newCtx(w), command.Command{ID: "c1", Type: "ATTACK"})
	if called {
		t.Fatal("expected next not to be called on type mismatch")
	}
	errs := ctx.GetDeclaredErrors()
	if len(errs) != 1 || errs[0].Code != fluxerr.CodeNoHandlerForCommand {
		t.Fatalf("expected NO_HANDLER_FOR_COMMAND, got %v", errs)
	}
}

func TestWithCommandTypeAcceptsMatch(t *testing.T) {
	w := world.New()
	called := false
	next := func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		called = true
		return ctx
	}
	wrapped := WithCommandType("MOVE", next)

	wrapped(newCtx(w), command.Command{ID: "c1", Type: "MOVE"})
	if !called {
		t.Fatal("expected next to be called on type match")
	}
}

func TestWithBasicWorldStateValidation(t *testing.T) {
	w := world.New()
	place := world.NewPlace(urn.URN("flux:place:square"), "Square", "", "temperate")
	w.PutPlace(place)
	actor := world.NewActor(urn.URN("flux:actor:alice"), "Alice", world.ActorKindPC, place.URN)
	w.PutActor(actor)

	tests := []struct {
		name    string
		cmd     command.Command
		wantErr fluxerr.Code
		wantOK  bool
	}{
		{"missing actor field", command.Command{ID: "c1", Actor: ""}, fluxerr.CodeInvalidArgument, false},
		{"unknown actor", command.Command{ID: "c1", Actor: "flux:actor:ghost"}, fluxerr.CodeInvalidTarget, false},
		{"unknown location", command.Command{ID: "c1", Actor: "flux:actor:alice", Location: "flux:place:nowhere"}, fluxerr.CodeInvalidTarget, false},
		{"valid actor and location", command.Command{ID: "c1", Actor: "flux:actor:alice", Location: "flux:place:square"}, "", true},
		{"valid actor, no location", command.Command{ID: "c1", Actor: "flux:actor:alice"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
				called = true
				return ctx
			}
			ctx := WithBasicWorldStateValidation(next)(newCtx(w), tt.cmd)
			if called != tt.wantOK {
				t.Fatalf("next called = %v, want %v", called, tt.wantOK)
			}
			errs := ctx.GetDeclaredErrors()
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) != 1 || errs[0].Code != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestWithExistingWorkbenchSession(t *testing.T) {
	w := world.New()
	w.PutSession(&world.Session{URN: urn.URN("flux:session:running"), Strategy: world.StrategyWorkbench, Status: world.StatusRunning})
	w.PutSession(&world.Session{URN: urn.URN("flux:session:ended"), Strategy: world.StrategyWorkbench, Status: world.StatusEnded})
	w.PutSession(&world.Session{URN: urn.URN("flux:session:combat"), Strategy: world.StrategyCombat, Status: world.StatusRunning})

	tests := []struct {
		name    string
		session string
		wantOK  bool
	}{
		{"no session", "", false},
		{"unknown session", "flux:session:ghost", false},
		{"ended session", "flux:session:ended", false},
		{"wrong strategy", "flux:session:combat", false},
		{"running workbench session", "flux:session:running", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
				called = true
				return ctx
			}
			WithExistingWorkbenchSession(next)(newCtx(w), command.Command{ID: "c1", Session: tt.session})
			if called != tt.wantOK {
				t.Fatalf("next called = %v, want %v", called, tt.wantOK)
			}
		})
	}
}

func TestWithWorkbenchShellDefaultsToCurrentShell(t *testing.T) {
	w := world.New()
	actor := world.NewActor(urn.URN("flux:actor:alice"), "Alice", world.ActorKindPC, urn.URN("flux:place:square"))
	actor.Shells["shell-1"] = &world.Shell{ID: "shell-1", Name: "Default"}
	actor.CurrentShell = "shell-1"
	w.PutActor(actor)
	w.PutSession(&world.Session{
		URN: urn.URN("flux:session:s1"), Strategy: world.StrategyWorkbench, Status: world.StatusRunning,
		Workbench: &world.WorkbenchData{CurrentShellID: "shell-1"},
	})

	noExplicitShell := func(cmd command.Command) string { return "" }
	called := false
	next := func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		called = true
		return ctx
	}
	WithWorkbenchShell(noExplicitShell, next)(newCtx(w), command.Command{ID: "c1", Actor: "flux:actor:alice", Session: "flux:session:s1"})
	if !called {
		t.Fatal("expected next to be called when current shell resolves")
	}
}

func TestWithWorkbenchShellRejectsUnknownShell(t *testing.T) {
	w := world.New()
	actor := world.NewActor(urn.URN("flux:actor:alice"), "Alice", world.ActorKindPC, urn.URN("flux:place:square"))
	w.PutActor(actor)
	w.PutSession(&world.Session{
		URN: urn.URN("flux:session:s1"), Strategy: world.StrategyWorkbench, Status: world.StatusRunning,
		Workbench: &world.WorkbenchData{CurrentShellID: "missing"},
	})

	explicit := func(cmd command.Command) string { return "" }
	called := false
	next := func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		called = true
		return ctx
	}
	ctx := WithWorkbenchShell(explicit, next)(newCtx(w), command.Command{ID: "c1", Actor: "flux:actor:alice", Session: "flux:session:s1"})
	if called {
		t.Fatal("expected next not to be called for unknown shell")
	}
	errs := ctx.GetDeclaredErrors()
	if len(errs) != 1 || errs[0].Code != fluxerr.CodeInvalidTarget {
		t.Fatalf("expected INVALID_TARGET, got %v", errs)
	}
}

func TestWithCombatCostSpendsAndProceedsWhenAffordable(t *testing.T) {
	w := world.New()
	combatant := &world.Combatant{ActorID: "alice", Team: world.TeamAlpha, AP: 3, Energy: 10, Alive: true}
	w.PutSession(&world.Session{
		URN: urn.URN("flux:session:s1"), Strategy: world.StrategyCombat, Status: world.StatusRunning,
		Combat: &world.CombatData{Combatants: map[string]*world.Combatant{"alice": combatant}},
	})

	cost := func(cmd command.Command) CombatCost { return CombatCost{AP: 1, Energy: 1} }
	called := false
	next := func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		called = true
		return ctx
	}
	WithCombatCost(cost, next)(newCtx(w), command.Command{ID: "c1", Actor: "flux:actor:alice", Session: "flux:session:s1"})
	if !called {
		t.Fatal("expected next to be called when affordable")
	}
	if combatant.AP != 2 || combatant.Energy != 9 {
		t.Fatalf("expected AP=2 Energy=9 after spend, got AP=%d Energy=%d", combatant.AP, combatant.Energy)
	}
}

func TestWithCombatCostDeclaresInsufficientResourcesWithoutSpending(t *testing.T) {
	w := world.New()
	combatant := &world.Combatant{ActorID: "alice", Team: world.TeamAlpha, AP: 0, Energy: 10, Alive: true}
	w.PutSession(&world.Session{
		URN: urn.URN("flux:session:s1"), Strategy: world.StrategyCombat, Status: world.StatusRunning,
		Combat: &world.CombatData{Combatants: map[string]*world.Combatant{"alice": combatant}},
	})

	cost := func(cmd command.Command) CombatCost { return CombatCost{AP: 1, Energy: 1} }
	called := false
	next := func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		called = true
		return ctx
	}
	ctx := WithCombatCost(cost, next)(newCtx(w), command.Command{ID: "c1", Actor: "flux:actor:alice", Session: "flux:session:s1"})
	if called {
		t.Fatal("expected next not to be called when unaffordable")
	}
	if combatant.AP != 0 || combatant.Energy != 10 {
		t.Fatalf("expected no spend on failure, got AP=%d Energy=%d", combatant.AP, combatant.Energy)
	}
	errs := ctx.GetDeclaredErrors()
	if len(errs) != 1 || errs[0].Code != fluxerr.CodeInsufficientResources {
		t.Fatalf("expected INSUFFICIENT_RESOURCES, got %v", errs)
	}
}
