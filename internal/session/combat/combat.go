// Package combat implements the combat session API described in spec
// §4.6: acquire-or-create a Combat-strategy session at a place, add
// combatants, and step the initiative/round/turn machinery.
package combat

import (
	"sort"

	"github.com/fluxcore/engine/internal/event"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

// StartingAP and StartingEnergy are the resource pools a combatant joins
// with. They are engine constants rather than config because the spec
// names no tunable for them; only ATTACK_SKILL_MULTIPLIER and similar are
// configurable per §4.7.
const (
	StartingAP     = 3
	StartingEnergy = 10
)

// AcquireOrCreate returns the running or pending combat session at
// location, creating one (Pending, empty roster) if none exists.
func AcquireOrCreate(ctx *txctx.Context, location urn.PlaceURN, trace string) *world.Session {
	sessURN := urn.NewSession("combat", combatTail(location))

	for _, s := range ctx.World.Sessions {
		// A combat session is location-scoped by convention: its URN embeds
		// the place tail it was created for, so two joins at the same place
		// resolve to the same session URN.
		if s.Combat != nil && s.Status != world.StatusEnded && s.URN == sessURN {
			return s
		}
	}

	s := &world.Session{
		URN:      sessURN,
		Strategy: world.StrategyCombat,
		Status:   world.StatusPending,
		Combat: &world.CombatData{
			Combatants: make(map[string]*world.Combatant),
			Round:      0,
			Turn:       0,
		},
	}
	ctx.World.PutSession(s)

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeCombatSessionDidStart,
		Actor:    urn.SystemActor,
		Location: location.String(),
		Trace:    trace,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"sessionId": sessURN.String()},
	})

	return s
}

func combatTail(location urn.PlaceURN) string {
	return location.Tail()
}

// AddCombatant joins actor to the session on the given team, if not already
// present, with a fresh AP/energy pool and no acquired target.
func AddCombatant(s *world.Session, actorURN urn.ActorURN, team world.CombatTeam) *world.Combatant {
	tail := actorURN.Tail()
	if c, ok := s.Combat.Combatants[tail]; ok {
		return c
	}
	c := &world.Combatant{
		ActorID: tail,
		Team:    team,
		AP:      StartingAP,
		Energy:  StartingEnergy,
		Alive:   true,
	}
	s.Combat.Combatants[tail] = c
	s.Combat.Initiative = append(s.Combat.Initiative, tail)
	if s.Status == world.StatusPending {
		s.Status = world.StatusRunning
	}
	return c
}

// LivingTeams returns the set of teams with at least one living combatant.
func LivingTeams(s *world.Session) map[world.CombatTeam]bool {
	teams := make(map[world.CombatTeam]bool)
	for _, c := range s.Combat.Combatants {
		if c.Alive {
			teams[c.Team] = true
		}
	}
	return teams
}

// EndIfDecided ends the session and declares COMBAT_SESSION_DID_END when at
// most one team still has a living combatant. Returns true if it ended the
// session.
func EndIfDecided(ctx *txctx.Context, s *world.Session, trace string) bool {
	teams := LivingTeams(s)
	if len(teams) > 1 || s.Status == world.StatusEnded {
		return false
	}
	s.Status = world.StatusEnded
	var winner world.CombatTeam
	for t := range teams {
		winner = t
	}
	ctx.DeclareEvent(event.WorldEvent{
		ID:    ctx.Uniqid(),
		Type:  event.TypeCombatSessionDidEnd,
		Actor: urn.SystemActor,
		Trace: trace,
		Ts:    ctx.Timestamp(),
		Payload: map[string]any{
			"winningTeam": winner,
			"finalRound":  s.Combat.Round,
			"finalTurn":   s.Combat.Turn,
		},
	})
	return true
}

// StartRound rolls a fresh initiative order over the living combatants
// (sorted by actor id, then shuffled with the injected random source) and
// declares COMBAT_ROUND_DID_START.
func StartRound(ctx *txctx.Context, s *world.Session, trace string) {
	s.Combat.Round++
	s.Combat.Turn = 0

	ids := make([]string, 0, len(s.Combat.Combatants))
	for id, c := range s.Combat.Combatants {
		if c.Alive {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids) // stable baseline order before the injected shuffle below

	// Fisher-Yates using the injected random source, so initiative order is
	// fully determined by the random-sequence per spec §5's determinism
	// requirement.
	for i := len(ids) - 1; i > 0; i-- {
		j := int(ctx.Rand() * float64(i+1))
		if j > i {
			j = i
		}
		ids[i], ids[j] = ids[j], ids[i]
	}
	s.Combat.Initiative = ids

	ctx.DeclareEvent(event.WorldEvent{
		ID:      ctx.Uniqid(),
		Type:    event.TypeCombatRoundDidStart,
		Actor:   urn.SystemActor,
		Trace:   trace,
		Ts:      ctx.Timestamp(),
		Payload: map[string]any{"round": s.Combat.Round},
	})
}

// EndTurn advances the turn counter and declares COMBAT_TURN_DID_END then
// COMBAT_TURN_DID_START for the next combatant in initiative order, or rolls
// a new round if the initiative order is exhausted.
func EndTurn(ctx *txctx.Context, s *world.Session, trace string) {
	ctx.DeclareEvent(event.WorldEvent{
		ID:      ctx.Uniqid(),
		Type:    event.TypeCombatTurnDidEnd,
		Actor:   urn.SystemActor,
		Trace:   trace,
		Ts:      ctx.Timestamp(),
		Payload: map[string]any{"turn": s.Combat.Turn},
	})
	s.Combat.Turn++
	if s.Combat.Turn >= len(s.Combat.Initiative) {
		StartRound(ctx, s, trace)
		return
	}
	ctx.DeclareEvent(event.WorldEvent{
		ID:      ctx.Uniqid(),
		Type:    event.TypeCombatTurnDidStart,
		Actor:   urn.SystemActor,
		Trace:   trace,
		Ts:      ctx.Timestamp(),
		Payload: map[string]any{"turn": s.Combat.Turn, "actor": s.Combat.Initiative[s.Combat.Turn]},
	})
}
