package combat

import (
	"strconv"
	"testing"

	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

func newCtx(w *world.World) *txctx.Context {
	id := 0
	return txctx.New(w, func() string { id++; return "evt-" + strconv.Itoa(id) }, func() int64 { return 0 }, func() float64 { return 0 })
}

func TestAcquireOrCreateReusesSessionAtSameLocation(t *testing.T) {
	w := world.New()
	ctx := newCtx(w)
	loc := urn.NewPlace("square")

	first := AcquireOrCreate(ctx, loc, "t1")
	second := AcquireOrCreate(ctx, loc, "t2")

	if first != second {
		t.Fatalf("expected the same session reused, got %v and %v", first.URN, second.URN)
	}
	if len(ctx.GetDeclaredEvents()) != 1 {
		t.Fatalf("expected exactly one COMBAT_SESSION_DID_START, got %d events", len(ctx.GetDeclaredEvents()))
	}
}

func TestAcquireOrCreateSeparatesSessionsByLocation(t *testing.T) {
	w := world.New()
	ctx := newCtx(w)

	a := AcquireOrCreate(ctx, urn.NewPlace("square"), "t1")
	b := AcquireOrCreate(ctx, urn.NewPlace("forest"), "t2")

	if a.URN == b.URN {
		t.Fatalf("expected distinct sessions for distinct locations, got the same URN %v", a.URN)
	}
}

func TestAddCombatantJoinsOnceAndStartsSession(t *testing.T) {
	w := world.New()
	ctx := newCtx(w)
	s := AcquireOrCreate(ctx, urn.NewPlace("square"), "t1")
	if s.Status != world.StatusPending {
		t.Fatalf("expected Pending before any combatant joins, got %v", s.Status)
	}

	actor := urn.NewActor("alice")
	c1 := AddCombatant(s, actor, world.TeamAlpha)
	if c1.AP != StartingAP || c1.Energy != StartingEnergy || !c1.Alive {
		t.Fatalf("unexpected fresh combatant state: %+v", c1)
	}
	if s.Status != world.StatusRunning {
		t.Fatalf("expected Running after first join, got %v", s.Status)
	}

	c2 := AddCombatant(s, actor, world.TeamBravo)
	if c2 != c1 {
		t.Fatal("expected re-joining the same actor to return the existing combatant unchanged")
	}
	if c2.Team != world.TeamAlpha {
		t.Fatalf("expected team to remain Alpha on re-join, got %v", c2.Team)
	}
}

func TestLivingTeamsAndEndIfDecided(t *testing.T) {
	w := world.New()
	ctx := newCtx(w)
	s := AcquireOrCreate(ctx, urn.NewPlace("square"), "t1")
	AddCombatant(s, urn.NewActor("alice"), world.TeamAlpha)
	bob := AddCombatant(s, urn.NewActor("bob"), world.TeamBravo)

	teams := LivingTeams(s)
	if len(teams) != 2 {
		t.Fatalf("expected both teams alive, got %v", teams)
	}
	if ended := EndIfDecided(ctx, s, "t2"); ended {
		t.Fatal("expected session not to end while both teams have survivors")
	}

	bob.Alive = false
	if ended := EndIfDecided(ctx, s, "t3"); !ended {
		t.Fatal("expected session to end once only one team survives")
	}
	if s.Status != world.StatusEnded {
		t.Fatalf("expected Ended status, got %v", s.Status)
	}
}

func TestStartRoundShufflesDeterministicallyFromRandomSource(t *testing.T) {
	w := world.New()
	ctx := newCtx(w)
	s := AcquireOrCreate(ctx, urn.NewPlace("square"), "t1")
	AddCombatant(s, urn.NewActor("alice"), world.TeamAlpha)
	AddCombatant(s, urn.NewActor("bob"), world.TeamBravo)
	AddCombatant(s, urn.NewActor("carol"), world.TeamBravo)

	StartRound(ctx, s, "t2")
	if s.Combat.Round != 1 || s.Combat.Turn != 0 {
		t.Fatalf("expected round=1 turn=0, got round=%d turn=%d", s.Combat.Round, s.Combat.Turn)
	}
	if len(s.Combat.Initiative) != 3 {
		t.Fatalf("expected all 3 living combatants in initiative, got %v", s.Combat.Initiative)
	}
}

func TestEndTurnAdvancesThenRollsNewRound(t *testing.T) {
	w := world.New()
	ctx := newCtx(w)
	s := AcquireOrCreate(ctx, urn.NewPlace("square"), "t1")
	AddCombatant(s, urn.NewActor("alice"), world.TeamAlpha)
	AddCombatant(s, urn.NewActor("bob"), world.TeamBravo)
	StartRound(ctx, s, "t2")

	EndTurn(ctx, s, "t3")
	if s.Combat.Turn != 1 {
		t.Fatalf("expected turn=1 after first EndTurn, got %d", s.Combat.Turn)
	}

	EndTurn(ctx, s, "t4")
	if s.Combat.Round != 2 || s.Combat.Turn != 0 {
		t.Fatalf("expected a fresh round once initiative is exhausted, got round=%d turn=%d", s.Combat.Round, s.Combat.Turn)
	}
}
