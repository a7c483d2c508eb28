// Package combat implements the combat command family: STRIKE, CLEAVE,
// ATTACK, DEFEND, ADVANCE, RETREAT, TARGET, and the internal COMBAT_JOIN
// command added by SPEC_FULL.md (spec §4.5/§4.6/§4.7).
package combat

import (
	"strconv"
	"strings"

	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/config"
	"github.com/fluxcore/engine/internal/dice"
	"github.com/fluxcore/engine/internal/event"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/intent"
	"github.com/fluxcore/engine/internal/reducer"
	"github.com/fluxcore/engine/internal/registry"
	combatsession "github.com/fluxcore/engine/internal/session/combat"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

// defaultWeaponSpec is used when a combatant has no equipped weapon schema
// carrying its own dice spec; the schema catalog is optional seed data, so
// combat must still function without it.
const defaultWeaponSpec = "1d6"

// withCombatSession acquires-or-creates the combat session at the acting
// actor's location, joins the actor (default team BRAVO per DESIGN.md's
// open-question resolution), stamps cmd.Session, and invokes next. It runs
// before withTurnOrder (and, transitively, WithCombatCost) in every combat
// handler's chain, since both resolve their combatant through cmd.Session.
func withCombatSession(next reducer.Func) reducer.Func {
	return func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		actor, ok := ctx.World.Actor(urn.ActorURN(cmd.Actor))
		if !ok {
			ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
			return ctx
		}
		s := combatsession.AcquireOrCreate(ctx, actor.Location, cmd.ID)
		combatsession.AddCombatant(s, actor.URN, world.TeamBravo)
		cmd.Session = s.URN.String()
		return next(ctx, cmd)
	}
}

// withTurnOrder enforces spec §4.6's initiative queue: it rolls the
// session's first round on the first command it sees (Round == 0, since
// AddCombatant already seeds Initiative in join order before any round is
// rolled), rejects a command from any combatant other than the one named at
// Initiative[Turn], and — only once the wrapped reducer completes without
// declaring an error — advances the session past the acting combatant's
// turn via combatsession.EndTurn. It runs between withCombatSession and
// WithCombatCost, since a command must hold the floor before it may spend
// AP/energy.
func withTurnOrder(next reducer.Func) reducer.Func {
	return func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		actor, ok := ctx.World.Actor(urn.ActorURN(cmd.Actor))
		if !ok {
			ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
			return ctx
		}
		s, ok := ctx.World.Session(urn.SessionURN(cmd.Session))
		if !ok || s.Combat == nil {
			ctx.DeclareError(fluxerr.CodeInvalidSession, cmd.ID)
			return ctx
		}

		if s.Combat.Round == 0 {
			combatsession.StartRound(ctx, s, cmd.ID)
		}
		if s.Combat.Turn >= len(s.Combat.Initiative) || s.Combat.Initiative[s.Combat.Turn] != actor.URN.Tail() {
			ctx.DeclareError(fluxerr.CodeForbidden, cmd.ID)
			return ctx
		}

		errorsBefore := len(ctx.GetDeclaredErrors())
		ctx = next(ctx, cmd)
		if len(ctx.GetDeclaredErrors()) == errorsBefore && s.Status != world.StatusEnded {
			combatsession.EndTurn(ctx, s, cmd.ID)
		}
		return ctx
	}
}

func opposingTeam(t world.CombatTeam) world.CombatTeam {
	if t == world.TeamAlpha {
		return world.TeamBravo
	}
	return world.TeamAlpha
}

func resolveTarget(ctx *txctx.Context, token string) (urn.ActorURN, bool) {
	candidate := urn.URN(token)
	if candidate.Is(urn.KindActor) {
		if _, ok := ctx.World.Actor(candidate); ok {
			return candidate, true
		}
		return "", false
	}
	for _, a := range ctx.World.Actors {
		if strings.EqualFold(a.Name, token) {
			return a.URN, true
		}
	}
	return "", false
}

// TargetResolvableArgs is shared by STRIKE/CLEAVE/ATTACK/TARGET: a single
// target actor token.
type TargetResolvableArgs struct {
	Target string // actor name or URN, as typed
}

// StrikeParse recognizes "strike <target>".
func StrikeParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	return parseSingleTarget(in, "strike", command.TypeStrike)
}

// CleaveParse recognizes "cleave <target>" (single target in this
// implementation; a full area-of-effect target list is a richer
// modifier-data concern this core leaves unimplemented).
func CleaveParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	return parseSingleTarget(in, "cleave", command.TypeCleave)
}

// AttackParse recognizes "attack <target>" per spec §6's textual surface.
func AttackParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	return parseSingleTarget(in, "attack", command.TypeAttack)
}

// TargetParse recognizes "target <actor>".
func TargetParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	return parseSingleTarget(in, "target", command.TypeTarget)
}

func parseSingleTarget(in intent.Intent, prefix string, t command.Type) (command.Command, bool) {
	if in.Prefix != prefix || in.Verb == "" {
		return command.Command{}, false
	}
	return command.Command{ID: in.ID, Ts: in.Ts, Actor: in.Actor, Location: in.Location, Session: in.Session,
		Type: t, Args: TargetResolvableArgs{Target: in.Verb}}, true
}

// attackLikeReduce is shared by STRIKE/CLEAVE/ATTACK: resolve target, join
// it to the session on the opposing team, roll weapon accuracy, apply
// damage, emit COMBATANT_DID_ATTACK then COMBATANT_WAS_ATTACKED (and
// COMBATANT_DID_DIE if the target's HP reaches zero), then check for
// session end.
func attackLikeReduce(eventType event.Type) reducer.Func {
	return func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		args := cmd.Args.(TargetResolvableArgs)
		attacker, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
		s, _ := ctx.World.Session(urn.SessionURN(cmd.Session))

		targetURN, ok := resolveTarget(ctx, args.Target)
		if !ok {
			ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
			return ctx
		}
		target, _ := ctx.World.Actor(targetURN)

		attackerCombatant := s.Combat.Combatants[attacker.URN.Tail()]
		combatsession.AddCombatant(s, target.URN, opposingTeam(attackerCombatant.Team))
		targetCombatant := s.Combat.Combatants[target.URN.Tail()]
		if !targetCombatant.Alive {
			ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
			return ctx
		}

		skillRank := attacker.Skills["combat"]
		accuracy, err := dice.RollWeaponAccuracy(defaultWeaponSpec, ctx.Rand, skillRank, nil)
		if err != nil {
			ctx.DeclareError(fluxerr.CodePreconditionFailed, cmd.ID)
			return ctx
		}

		damage := int(accuracy.Result)
		if damage < 0 {
			damage = 0
		}
		target.HP.Current -= damage
		if target.HP.Current < 0 {
			target.HP.Current = 0
		}

		ctx.DeclareEvent(event.WorldEvent{
			ID: ctx.Uniqid(), Type: eventType, Actor: attacker.URN.String(), Location: attacker.Location.String(),
			Trace: cmd.ID, Ts: ctx.Timestamp(),
			Payload: map[string]any{"target": target.URN.String(), "damage": damage, "result": accuracy.Result},
		})
		ctx.DeclareEvent(event.WorldEvent{
			ID: ctx.Uniqid(), Type: event.TypeCombatantWasAttacked, Actor: target.URN.String(), Location: target.Location.String(),
			Trace: cmd.ID, Ts: ctx.Timestamp(),
			Payload: map[string]any{"attacker": attacker.URN.String(), "damage": damage, "hpRemaining": target.HP.Current},
		})

		if target.HP.Current == 0 {
			targetCombatant.Alive = false
			ctx.DeclareEvent(event.WorldEvent{
				ID: ctx.Uniqid(), Type: event.TypeCombatantDidDie, Actor: target.URN.String(), Location: target.Location.String(),
				Trace: cmd.ID, Ts: ctx.Timestamp(),
			})
			combatsession.EndIfDecided(ctx, s, cmd.ID)
		}
		return ctx
	}
}

// combatCostFor names the AP/energy cost of each combat command type,
// matching spec §4.5's "each command spends action cost via
// withCombatCost".
func combatCostFor(t command.Type) reducer.CombatCost {
	switch t {
	case command.TypeStrike, command.TypeAttack:
		return reducer.CombatCost{AP: 1, Energy: 1}
	case command.TypeCleave:
		return reducer.CombatCost{AP: 2, Energy: 2}
	case command.TypeDefend, command.TypeAdvance, command.TypeRetreat:
		return reducer.CombatCost{AP: 1, Energy: 0}
	case command.TypeTarget:
		return reducer.CombatCost{AP: 0, Energy: 0}
	default:
		return reducer.CombatCost{}
	}
}

// DefendParse recognizes "defend" with no arguments.
func DefendParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "defend" || in.Verb != "" {
		return command.Command{}, false
	}
	return command.Command{ID: in.ID, Ts: in.Ts, Actor: in.Actor, Location: in.Location, Session: in.Session,
		Type: command.TypeDefend}, true
}

// DefendReduce appends a "defending" tag to the actor's HP modifiers and
// emits COMBATANT_DID_DEFEND. Nothing in the engine removes the tag again.
func DefendReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	actor.HP.Modifiers = append(actor.HP.Modifiers, "defending")

	ctx.DeclareEvent(event.WorldEvent{
		ID: ctx.Uniqid(), Type: event.TypeCombatantDidDefend, Actor: actor.URN.String(), Location: actor.Location.String(),
		Trace: cmd.ID, Ts: ctx.Timestamp(),
	})
	return ctx
}

// DistanceArgs carries ADVANCE/RETREAT's distance argument, per spec §6's
// "advance 5 -> ADVANCE {type:"distance", distance:5, direction:1}".
type DistanceArgs struct {
	Distance int
}

// AdvanceParse recognizes "advance <n>".
func AdvanceParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	return parseDistance(in, "advance", command.TypeAdvance)
}

// RetreatParse recognizes "retreat <n>".
func RetreatParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	return parseDistance(in, "retreat", command.TypeRetreat)
}

func parseDistance(in intent.Intent, prefix string, t command.Type) (command.Command, bool) {
	if in.Prefix != prefix || in.Verb == "" {
		return command.Command{}, false
	}
	n, err := strconv.Atoi(in.Verb)
	if err != nil || n < 0 {
		return command.Command{}, false
	}
	return command.Command{ID: in.ID, Ts: in.Ts, Actor: in.Actor, Location: in.Location, Session: in.Session,
		Type: t, Args: DistanceArgs{Distance: n}}, true
}

// AdvanceReduce records forward displacement and emits
// COMBATANT_DID_ADVANCE.
func AdvanceReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	return moveReduce(ctx, cmd, event.TypeCombatantDidAdvance)
}

// RetreatReduce records backward displacement and emits
// COMBATANT_DID_RETREAT.
func RetreatReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	return moveReduce(ctx, cmd, event.TypeCombatantDidRetreat)
}

func moveReduce(ctx *txctx.Context, cmd command.Command, eventType event.Type) *txctx.Context {
	args := cmd.Args.(DistanceArgs)
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))

	ctx.DeclareEvent(event.WorldEvent{
		ID: ctx.Uniqid(), Type: eventType, Actor: actor.URN.String(), Location: actor.Location.String(),
		Trace: cmd.ID, Ts: ctx.Timestamp(),
		Payload: map[string]any{"type": "distance", "distance": args.Distance, "direction": directionOf(eventType)},
	})
	return ctx
}

func directionOf(t event.Type) int {
	if t == event.TypeCombatantDidAdvance {
		return 1
	}
	return -1
}

// TargetReduce resolves and records the combatant's acquired target, and
// emits COMBATANT_DID_ACQUIRE_TARGET.
func TargetReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(TargetResolvableArgs)
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	s, _ := ctx.World.Session(urn.SessionURN(cmd.Session))

	targetURN, ok := resolveTarget(ctx, args.Target)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}

	combatant := s.Combat.Combatants[actor.URN.Tail()]
	combatsession.AddCombatant(s, targetURN, opposingTeam(combatant.Team))
	combatant.Target = targetURN.Tail()

	ctx.DeclareEvent(event.WorldEvent{
		ID: ctx.Uniqid(), Type: event.TypeCombatantDidAcquireTarget, Actor: actor.URN.String(), Location: actor.Location.String(),
		Trace: cmd.ID, Ts: ctx.Timestamp(),
		Payload: map[string]any{"target": targetURN.String()},
	})
	return ctx
}

// JoinArgs carries COMBAT_JOIN's explicit team argument, the extension
// point SPEC_FULL.md adds for scenario-directed team assignment.
type JoinArgs struct {
	Actor urn.ActorURN
	Team  world.CombatTeam
}

// JoinParse recognizes the literal verb "@combat-join <actor> alpha|bravo".
func JoinParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Verb != "@combat-join" || len(in.Tokens) != 2 {
		return command.Command{}, false
	}
	var team world.CombatTeam
	switch in.Tokens[1] {
	case "alpha":
		team = world.TeamAlpha
	case "bravo":
		team = world.TeamBravo
	default:
		return command.Command{}, false
	}
	return command.Command{ID: in.ID, Ts: in.Ts, Actor: urn.SystemActor, Location: in.Location, Session: in.Session,
		Type: command.TypeCombatJoin, Args: JoinArgs{Actor: urn.URN(in.Tokens[0]), Team: team}}, true
}

// JoinReduce explicitly joins an actor to the location's combat session on
// the requested team.
func JoinReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(JoinArgs)
	actor, ok := ctx.World.Actor(args.Actor)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}
	s := combatsession.AcquireOrCreate(ctx, actor.Location, cmd.ID)
	combatsession.AddCombatant(s, actor.URN, args.Team)
	return ctx
}

// Handlers returns every combat-family handler. STRIKE/CLEAVE/ATTACK/
// DEFEND/ADVANCE/RETREAT/TARGET run through withCombatSession (join/acquire),
// withTurnOrder (enforce initiative, roll rounds, advance turns), then
// WithCombatCost (spend) before their own logic; COMBAT_JOIN is a bare
// system command with none of these, since it performs the join itself with
// an explicit team and never holds the initiative floor.
func Handlers(_ config.Engine) []registry.Handler {
	withCost := func(t command.Type, next reducer.Func) reducer.Func {
		return reducer.WithCombatCost(func(command.Command) reducer.CombatCost { return combatCostFor(t) }, next)
	}
	wired := func(t command.Type, next reducer.Func) registry.Reducer {
		return registry.Reducer(reducer.WithCommandType(t,
			reducer.WithBasicWorldStateValidation(withCombatSession(withTurnOrder(withCost(t, next))))))
	}

	return []registry.Handler{
		{Type: command.TypeStrike, Parse: StrikeParse, Reduce: wired(command.TypeStrike, attackLikeReduce(event.TypeCombatantDidAttack))},
		{Type: command.TypeCleave, Parse: CleaveParse, Reduce: wired(command.TypeCleave, attackLikeReduce(event.TypeCombatantDidAttack))},
		{Type: command.TypeAttack, Parse: AttackParse, Reduce: wired(command.TypeAttack, attackLikeReduce(event.TypeCombatantDidAttack))},
		{Type: command.TypeDefend, Parse: DefendParse, Reduce: wired(command.TypeDefend, DefendReduce)},
		{Type: command.TypeAdvance, Parse: AdvanceParse, Reduce: wired(command.TypeAdvance, AdvanceReduce)},
		{Type: command.TypeRetreat, Parse: RetreatParse, Reduce: wired(command.TypeRetreat, RetreatReduce)},
		{Type: command.TypeTarget, Parse: TargetParse, Reduce: wired(command.TypeTarget, TargetReduce)},
		{Type: command.TypeCombatJoin, Parse: JoinParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeCombatJoin, JoinReduce))},
	}
}
