// Package party implements the party command family: INVITE,
// INVITE_ACCEPT, INVITE_REJECT, KICK, LEAVE, DISBAND, INSPECT (spec §4.5).
package party

import (
	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/event"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/intent"
	"github.com/fluxcore/engine/internal/reducer"
	"github.com/fluxcore/engine/internal/registry"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
)

// TargetArgs carries a single actor-urn argument, shared by invite/accept/
// reject/kick (leave and disband carry no Args).
type TargetArgs struct {
	Target urn.ActorURN
}

func parseTargetVerb(prefix, verb string, t command.Type) func(*txctx.Context, intent.Intent) (command.Command, bool) {
	return func(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
		if in.Prefix != prefix || in.Verb != verb || len(in.Tokens) < 1 {
			return command.Command{}, false
		}
		return command.Command{
			ID:       in.ID,
			Ts:       in.Ts,
			Actor:    in.Actor,
			Location: in.Location,
			Type:     t,
			Args:     TargetArgs{Target: resolveActorToken(ctx, in.Tokens[0])},
		}, true
	}
}

// resolveActorToken accepts either a bare name (matched exactly against
// every actor in the world, wherever located) or a literal actor URN.
func resolveActorToken(ctx *txctx.Context, token string) urn.ActorURN {
	candidate := urn.URN(token)
	if candidate.Is(urn.KindActor) {
		return candidate
	}
	for _, a := range ctx.World.Actors {
		if a.Name == token {
			return a.URN
		}
	}
	return urn.URN("")
}

// InviteParse recognizes "party invite <target>".
func InviteParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	return parseTargetVerb("party", "invite", command.TypePartyInvite)(ctx, in)
}

// InviteReduce creates the inviter's party on first invite (inviter becomes
// owner) and records the invitee. Requires invitee to exist and share the
// inviter's location.
func InviteReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(TargetArgs)
	inviter, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	invitee, ok := ctx.World.Actor(args.Target)
	if !ok || invitee.Location != inviter.Location {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}

	g, ok := ctx.Party.GroupOf(inviter)
	if !ok {
		g = ctx.Party.CreateParty(urn.NewGroup(ctx.Uniqid()), inviter)
	} else if g.Owner != inviter.URN {
		ctx.DeclareError(fluxerr.CodeForbidden, cmd.ID)
		return ctx
	}
	ctx.Party.Invite(g, invitee)

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidInviteToParty,
		Actor:    inviter.URN.String(),
		Location: inviter.Location.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"party": g.URN.String(), "invitee": invitee.URN.String()},
	})
	return ctx
}

// AcceptParse recognizes "party accept <target>" where target is the
// inviting owner's actor (used only to disambiguate when an actor holds
// multiple invitations; the common case passes the party owner's name).
func AcceptParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	return parseTargetVerb("party", "accept", command.TypePartyInviteAccept)(ctx, in)
}

// AcceptReduce moves the invitee from Invitations to Members.
func AcceptReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(TargetArgs)
	invitee, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	owner, ok := ctx.World.Actor(args.Target)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}
	g, ok := ctx.Party.GroupOf(owner)
	if !ok || !g.Invitations[invitee.URN.Tail()] {
		ctx.DeclareError(fluxerr.CodePreconditionFailed, cmd.ID)
		return ctx
	}
	ctx.Party.Accept(g, invitee)

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidAcceptPartyInvite,
		Actor:    invitee.URN.String(),
		Location: invitee.Location.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"party": g.URN.String()},
	})
	return ctx
}

// RejectParse recognizes "party reject <target>".
func RejectParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	return parseTargetVerb("party", "reject", command.TypePartyInviteReject)(ctx, in)
}

// RejectReduce removes the invitation without granting membership.
func RejectReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(TargetArgs)
	invitee, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	owner, ok := ctx.World.Actor(args.Target)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}
	g, ok := ctx.Party.GroupOf(owner)
	if !ok || !g.Invitations[invitee.URN.Tail()] {
		ctx.DeclareError(fluxerr.CodePreconditionFailed, cmd.ID)
		return ctx
	}
	ctx.Party.Reject(g, invitee)

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidRejectPartyInvite,
		Actor:    invitee.URN.String(),
		Location: invitee.Location.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"party": g.URN.String()},
	})
	return ctx
}

// KickParse recognizes "party kick <target>".
func KickParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	return parseTargetVerb("party", "kick", command.TypePartyKick)(ctx, in)
}

// KickReduce removes a non-owner member; caller must be owner.
func KickReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(TargetArgs)
	caller, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	target, ok := ctx.World.Actor(args.Target)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}
	g, ok := ctx.Party.GroupOf(caller)
	if !ok || g.Owner != caller.URN {
		ctx.DeclareError(fluxerr.CodeForbidden, cmd.ID)
		return ctx
	}
	if target.URN == g.Owner {
		ctx.DeclareError(fluxerr.CodeForbidden, cmd.ID)
		return ctx
	}
	if !g.Members[target.URN.Tail()] {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}
	ctx.Party.Kick(g, target)

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorWasKickedFromParty,
		Actor:    target.URN.String(),
		Location: target.Location.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"party": g.URN.String(), "by": caller.URN.String()},
	})
	return ctx
}

// LeaveParse recognizes "party leave" with no arguments.
func LeaveParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "party" || in.Verb != "leave" {
		return command.Command{}, false
	}
	return command.Command{
		ID:       in.ID,
		Ts:       in.Ts,
		Actor:    in.Actor,
		Location: in.Location,
		Type:     command.TypePartyLeave,
	}, true
}

// LeaveReduce removes a non-owner member voluntarily; owners must disband
// instead (spec §4.5/§8 scenario 3).
func LeaveReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	member, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	g, ok := ctx.Party.GroupOf(member)
	if !ok {
		ctx.DeclareError(fluxerr.CodePreconditionFailed, cmd.ID)
		return ctx
	}
	if g.Owner == member.URN {
		ctx.DeclareError(fluxerr.CodeForbidden, cmd.ID)
		return ctx
	}
	ctx.Party.Leave(g, member)

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidLeaveParty,
		Actor:    member.URN.String(),
		Location: member.Location.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"party": g.URN.String()},
	})
	return ctx
}

// DisbandParse recognizes "party disband" with no arguments.
func DisbandParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "party" || in.Verb != "disband" {
		return command.Command{}, false
	}
	return command.Command{
		ID:       in.ID,
		Ts:       in.Ts,
		Actor:    in.Actor,
		Location: in.Location,
		Type:     command.TypePartyDisband,
	}, true
}

// DisbandReduce removes every member's party reference and deletes the
// group; only the owner may disband.
func DisbandReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	owner, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	g, ok := ctx.Party.GroupOf(owner)
	if !ok || g.Owner != owner.URN {
		ctx.DeclareError(fluxerr.CodeForbidden, cmd.ID)
		return ctx
	}
	partyURN := g.URN.String()
	ctx.Party.Disband(g)

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypePartyWasDisbanded,
		Actor:    owner.URN.String(),
		Location: owner.Location.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"party": partyURN},
	})
	return ctx
}

// InspectParse recognizes "party" or "party status" with no further
// arguments.
func InspectParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "party" || (in.Verb != "" && in.Verb != "status") {
		return command.Command{}, false
	}
	return command.Command{
		ID:       in.ID,
		Ts:       in.Ts,
		Actor:    in.Actor,
		Location: in.Location,
		Type:     command.TypePartyInspect,
	}, true
}

// InspectReduce emits ACTOR_DID_INSPECT_PARTY with {partyId, owner,
// members}, plus invitations when the caller is the owner.
func InspectReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	g, ok := ctx.Party.GroupOf(actor)
	if !ok {
		ctx.DeclareError(fluxerr.CodePreconditionFailed, cmd.ID)
		return ctx
	}

	members := make([]string, 0, len(g.Members))
	for m := range g.Members {
		members = append(members, m)
	}
	payload := map[string]any{
		"partyId": g.URN.String(),
		"owner":   g.Owner.String(),
		"members": members,
	}
	if g.Owner == actor.URN {
		invitations := make([]string, 0, len(g.Invitations))
		for i := range g.Invitations {
			invitations = append(invitations, i)
		}
		payload["invitations"] = invitations
	}

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidInspectParty,
		Actor:    actor.URN.String(),
		Location: actor.Location.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  payload,
	})
	return ctx
}

// Handlers returns all party-family handlers, in the order dispatch should
// try them: Inspect (bare "party"/"party status") must be tried after the
// more specific verbs since its own Parse also matches empty-verb shape,
// but since dispatch matches by distinct (prefix, verb) pairs here there is
// no actual overlap; order is kept for readability, not correctness.
func Handlers() []registry.Handler {
	return []registry.Handler{
		{Type: command.TypePartyInvite, Parse: InviteParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypePartyInvite, reducer.WithBasicWorldStateValidation(InviteReduce)))},
		{Type: command.TypePartyInviteAccept, Parse: AcceptParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypePartyInviteAccept, reducer.WithBasicWorldStateValidation(AcceptReduce)))},
		{Type: command.TypePartyInviteReject, Parse: RejectParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypePartyInviteReject, reducer.WithBasicWorldStateValidation(RejectReduce)))},
		{Type: command.TypePartyKick, Parse: KickParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypePartyKick, reducer.WithBasicWorldStateValidation(KickReduce)))},
		{Type: command.TypePartyLeave, Parse: LeaveParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypePartyLeave, reducer.WithBasicWorldStateValidation(LeaveReduce)))},
		{Type: command.TypePartyDisband, Parse: DisbandParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypePartyDisband, reducer.WithBasicWorldStateValidation(DisbandReduce)))},
		{Type: command.TypePartyInspect, Parse: InspectParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypePartyInspect, reducer.WithBasicWorldStateValidation(InspectReduce)))},
	}
}
