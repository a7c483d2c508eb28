package registry

import (
	"testing"

	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/intent"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/world"
)

func newCtx() *txctx.Context {
	return txctx.New(world.New(), func() string { return "id" }, func() int64 { return 0 }, func() float64 { return 0 })
}

func parseLook(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "look" {
		return command.Command{}, false
	}
	return command.Command{ID: in.ID, Type: "LOOK"}, true
}

func parseMove(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "move" {
		return command.Command{}, false
	}
	return command.Command{ID: in.ID, Type: "MOVE"}, true
}

func TestDispatchFirstMatchWins(t *testing.T) {
	r := New()
	var called command.Type
	r.Register(Handler{Type: "LOOK", Parse: parseLook, Reduce: func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		called = cmd.Type
		return ctx
	}})
	r.Register(Handler{Type: "MOVE", Parse: parseMove, Reduce: func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		called = cmd.Type
		return ctx
	}})

	ctx := Dispatch(newCtx(), r, intent.Intent{ID: "i1", Prefix: "move"})
	if called != "MOVE" {
		t.Fatalf("expected MOVE reducer invoked, got %q", called)
	}
	if len(ctx.GetDeclaredErrors()) != 0 {
		t.Fatalf("expected no errors, got %v", ctx.GetDeclaredErrors())
	}
}

func TestDispatchUnrecognizedIntent(t *testing.T) {
	r := New()
	r.Register(Handler{Type: "LOOK", Parse: parseLook, Reduce: func(ctx *txctx.Context, cmd command.Command) *txctx.Context { return ctx }})

	ctx := Dispatch(newCtx(), r, intent.Intent{ID: "i1", Prefix: "nonsense"})
	errs := ctx.GetDeclaredErrors()
	if len(errs) != 1 || errs[0].Code != fluxerr.CodeUnrecognizedIntent {
		t.Fatalf("expected one UNRECOGNIZED_INTENT error, got %v", errs)
	}
}

func TestDispatchNoHandlerForCommand(t *testing.T) {
	r := New()
	// Parse succeeds and yields a Type no reducer was registered for.
	r.Register(Handler{Type: "LOOK", Parse: func(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
		return command.Command{ID: in.ID, Type: "GHOST"}, true
	}, Reduce: func(ctx *txctx.Context, cmd command.Command) *txctx.Context { return ctx }})
	// Registering under Type "LOOK" means the reducer table has no entry for
	// "GHOST", the type Parse actually returned.

	ctx := Dispatch(newCtx(), r, intent.Intent{ID: "i1", Prefix: "look"})
	errs := ctx.GetDeclaredErrors()
	if len(errs) != 1 || errs[0].Code != fluxerr.CodeNoHandlerForCommand {
		t.Fatalf("expected one NO_HANDLER_FOR_COMMAND error, got %v", errs)
	}
}

func TestRegisterPanicsOnDuplicateType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate type registration")
		}
	}()
	r := New()
	h := Handler{Type: "LOOK", Parse: parseLook, Reduce: func(ctx *txctx.Context, cmd command.Command) *txctx.Context { return ctx }}
	r.Register(h)
	r.Register(h)
}

func TestHandlersReturnsRegistrationOrder(t *testing.T) {
	r := New()
	r.Register(Handler{Type: "MOVE", Parse: parseMove, Reduce: func(ctx *txctx.Context, cmd command.Command) *txctx.Context { return ctx }})
	r.Register(Handler{Type: "LOOK", Parse: parseLook, Reduce: func(ctx *txctx.Context, cmd command.Command) *txctx.Context { return ctx }})

	got := r.Handlers()
	if len(got) != 2 || got[0].Type != "MOVE" || got[1].Type != "LOOK" {
		t.Fatalf("expected [MOVE LOOK] in registration order, got %v", got)
	}
}
