// Package workbench implements the workbench command family: USE_WORKBENCH,
// WORKBENCH_SHELL_RENAME, the four WORKBENCH_STAGE_* staging commands, and
// WORKBENCH_COMMIT (spec §4.5/§4.6, expanded by SPEC_FULL.md).
package workbench

import (
	"strconv"
	"strings"

	"github.com/fluxcore/engine/internal/command"
	"github.com/fluxcore/engine/internal/config"
	"github.com/fluxcore/engine/internal/event"
	"github.com/fluxcore/engine/internal/fluxerr"
	"github.com/fluxcore/engine/internal/intent"
	"github.com/fluxcore/engine/internal/reducer"
	"github.com/fluxcore/engine/internal/registry"
	"github.com/fluxcore/engine/internal/session/workbench"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

// UseArgs carries an optional explicit session id for idempotent re-entry.
type UseArgs struct {
	SessionID string
}

// UseParse recognizes "workbench" or "workbench <sessionId>", where
// sessionId is a session URN.
func UseParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "workbench" || len(in.Tokens) > 0 {
		return command.Command{}, false
	}
	sessionID := ""
	if in.Verb != "" {
		if !urn.URN(in.Verb).Is(urn.KindSession) {
			return command.Command{}, false
		}
		sessionID = in.Verb
	}
	return command.Command{
		ID:       in.ID,
		Ts:       in.Ts,
		Actor:    in.Actor,
		Location: in.Location,
		Type:     command.TypeUseWorkbench,
		Args:     UseArgs{SessionID: sessionID},
	}, true
}

// UseReduce implements spec §4.5's USE_WORKBENCH: acquire-or-create the
// session, and on first creation additionally emit ACTOR_DID_LIST_SHELLS.
func UseReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(UseArgs)
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))

	acquired, ok := workbench.AcquireOrCreate(ctx, actor, cmd.ID, args.SessionID)
	if !ok {
		ctx.DeclareError(fluxerr.CodePreconditionFailed, cmd.ID)
		return ctx
	}
	if !acquired.IsNew {
		return ctx
	}

	shells := make([]string, 0, len(actor.Shells))
	for id := range actor.Shells {
		shells = append(shells, id)
	}
	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidListShells,
		Actor:    actor.URN.String(),
		Location: actor.Location.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"session": acquired.Session.URN.String(), "shells": shells, "current": actor.CurrentShell},
	})
	return ctx
}

// RenameArgs carries WORKBENCH_SHELL_RENAME's arguments.
type RenameArgs struct {
	NewName       string
	ShellNameOrID string // "" means "the session's current shell"
}

// RenameParse recognizes "shell rename NewName" and "shell rename old to
// new" per spec §6's textual surface.
func RenameParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "shell" || in.Verb != "rename" || len(in.Tokens) == 0 {
		return command.Command{}, false
	}
	var args RenameArgs
	if len(in.Tokens) >= 3 && strings.EqualFold(in.Tokens[1], "to") {
		args = RenameArgs{ShellNameOrID: in.Tokens[0], NewName: in.Tokens[2]}
	} else {
		args = RenameArgs{NewName: in.Tokens[0]}
	}
	return command.Command{
		ID:       in.ID,
		Ts:       in.Ts,
		Actor:    in.Actor,
		Location: in.Location,
		Session:  in.Session,
		Type:     command.TypeWorkbenchShellRename,
		Args:     args,
	}, true
}

func renameShellArg(cmd command.Command) string {
	return cmd.Args.(RenameArgs).ShellNameOrID
}

// renameTargetShellID resolves RenameArgs.ShellNameOrID (a shell id or
// name) against the actor's shells, defaulting to the session's current
// shell when empty.
func renameTargetShellID(actor *world.Actor, session *world.Session, nameOrID string) (string, bool) {
	if nameOrID == "" {
		id := session.Workbench.CurrentShellID
		_, ok := actor.Shells[id]
		return id, ok
	}
	if _, ok := actor.Shells[nameOrID]; ok {
		return nameOrID, true
	}
	for id, s := range actor.Shells {
		if s.Name == nameOrID {
			return id, true
		}
	}
	return "", false
}

// RenameReduce implements spec §4.5's WORKBENCH_SHELL_RENAME: rejects
// renaming the currently-equipped shell (INVALID_TARGET, per §8 scenario
// 4), otherwise updates the shell's name.
func RenameReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(RenameArgs)
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	session, _ := ctx.World.Session(urn.SessionURN(cmd.Session))

	shellID, ok := renameTargetShellID(actor, session, args.ShellNameOrID)
	if !ok {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}
	if shellID == actor.CurrentShell {
		ctx.DeclareError(fluxerr.CodeInvalidTarget, cmd.ID)
		return ctx
	}

	shell := actor.Shells[shellID]
	oldName := shell.Name
	shell.Name = args.NewName

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeActorDidRenameShell,
		Actor:    actor.URN.String(),
		Location: actor.Location.String(),
		Trace:    cmd.ID,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"shellId": shellID, "oldName": oldName, "newName": args.NewName},
	})
	return ctx
}

// StageStatArgs carries WORKBENCH_STAGE_STAT's arguments.
type StageStatArgs struct {
	Stat   string
	Op     world.MutationOp
	Amount int
}

// StageStatParse recognizes "stage stat <stat> add|subtract <amount>".
func StageStatParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "stage" || in.Verb != "stat" || len(in.Tokens) != 3 {
		return command.Command{}, false
	}
	amount, err := strconv.Atoi(in.Tokens[2])
	if err != nil {
		return command.Command{}, false
	}
	var op world.MutationOp
	switch strings.ToLower(in.Tokens[1]) {
	case "add":
		op = world.OpAdd
	case "subtract":
		op = world.OpSubtract
	default:
		return command.Command{}, false
	}
	return command.Command{
		ID: in.ID, Ts: in.Ts, Actor: in.Actor, Location: in.Location, Session: in.Session,
		Type: command.TypeWorkbenchStageStat,
		Args: StageStatArgs{Stat: strings.ToUpper(in.Tokens[0]), Op: op, Amount: amount},
	}, true
}

// StageStatReduce validates the resulting stat value lies in [0, MAX_STAT]
// (spec §4.5's staging-validation table) then pushes the mutation.
func StageStatReduce(cfg config.Engine) reducer.Func {
	return func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		args := cmd.Args.(StageStatArgs)
		actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
		session, _ := ctx.World.Session(urn.SessionURN(cmd.Session))
		shellID := session.Workbench.CurrentShellID
		shell := actor.Shells[shellID]

		current := workbench.CurrentStat(shell, args.Stat)
		var next int
		switch args.Op {
		case world.OpAdd:
			next = current + args.Amount
		case world.OpSubtract:
			next = current - args.Amount
		}
		if next < 0 || next > cfg.MaxStat {
			ctx.DeclareError(fluxerr.CodePreconditionFailed, cmd.ID)
			return ctx
		}

		mutation := world.ShellMutation{Kind: world.MutationKindStat, Stat: args.Stat, StatOp: args.Op, Amount: args.Amount}
		session.Workbench.PendingMutations = append(session.Workbench.PendingMutations, mutation)

		ctx.DeclareEvent(event.WorldEvent{
			ID: ctx.Uniqid(), Type: event.TypeWorkbenchShellMutationStaged,
			Actor: actor.URN.String(), Location: actor.Location.String(), Trace: cmd.ID, Ts: ctx.Timestamp(),
			Payload: map[string]any{"shellId": shellID, "mutation": mutation},
		})
		return ctx
	}
}

// StageComponentArgs carries WORKBENCH_STAGE_COMPONENT's arguments.
type StageComponentArgs struct {
	Op          world.MutationOp
	ComponentID string
	Schema      urn.SchemaURN
}

// StageComponentParse recognizes "stage component mount|unmount <id>
// [<schema>]".
func StageComponentParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "stage" || in.Verb != "component" || len(in.Tokens) < 2 {
		return command.Command{}, false
	}
	var op world.MutationOp
	switch strings.ToLower(in.Tokens[0]) {
	case "mount":
		op = world.OpMount
	case "unmount":
		op = world.OpUnmount
	default:
		return command.Command{}, false
	}
	args := StageComponentArgs{Op: op, ComponentID: in.Tokens[1]}
	if len(in.Tokens) >= 3 {
		args.Schema = urn.URN(in.Tokens[2])
	}
	return command.Command{
		ID: in.ID, Ts: in.Ts, Actor: in.Actor, Location: in.Location, Session: in.Session,
		Type: command.TypeWorkbenchStageComponent, Args: args,
	}, true
}

// StageComponentReduce validates the schema exists for a mount, then pushes
// the mutation (spec §4.5's staging-validation table).
func StageComponentReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(StageComponentArgs)
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	session, _ := ctx.World.Session(urn.SessionURN(cmd.Session))

	if args.Op == world.OpMount {
		if _, ok := ctx.Schemas().Get(args.Schema); !ok {
			ctx.DeclareError(fluxerr.CodeInvalidArgument, cmd.ID)
			return ctx
		}
	}

	mutation := world.ShellMutation{Kind: world.MutationKindComponent, ComponentOp: args.Op, ComponentID: args.ComponentID, Schema: args.Schema}
	session.Workbench.PendingMutations = append(session.Workbench.PendingMutations, mutation)

	ctx.DeclareEvent(event.WorldEvent{
		ID: ctx.Uniqid(), Type: event.TypeWorkbenchShellMutationStaged,
		Actor: actor.URN.String(), Location: actor.Location.String(), Trace: cmd.ID, Ts: ctx.Timestamp(),
		Payload: map[string]any{"shellId": session.Workbench.CurrentShellID, "mutation": mutation},
	})
	return ctx
}

// StageInventoryArgs carries WORKBENCH_STAGE_INVENTORY's arguments.
type StageInventoryArgs struct {
	Op       world.MutationOp
	ItemID   string
	Quantity int
}

// StageInventoryParse recognizes "stage inventory to-vault|from-vault <id>
// <qty>".
func StageInventoryParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "stage" || in.Verb != "inventory" || len(in.Tokens) != 3 {
		return command.Command{}, false
	}
	qty, err := strconv.Atoi(in.Tokens[2])
	if err != nil {
		return command.Command{}, false
	}
	var op world.MutationOp
	switch strings.ToLower(in.Tokens[0]) {
	case "to-vault":
		op = world.OpTransferToVault
	case "from-vault":
		op = world.OpFromVault
	default:
		return command.Command{}, false
	}
	return command.Command{
		ID: in.ID, Ts: in.Ts, Actor: in.Actor, Location: in.Location, Session: in.Session,
		Type: command.TypeWorkbenchStageInventory,
		Args: StageInventoryArgs{Op: op, ItemID: in.Tokens[1], Quantity: qty},
	}, true
}

// StageInventoryReduce validates the source contains at least Quantity of
// ItemID before pushing the mutation.
func StageInventoryReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(StageInventoryArgs)
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	session, _ := ctx.World.Session(urn.SessionURN(cmd.Session))
	shell := actor.Shells[session.Workbench.CurrentShellID]

	var source *world.Inventory
	if args.Op == world.OpTransferToVault {
		source = shell.Inventory
	} else {
		source = actor.Inventory
	}
	entry, ok := source.Entries[args.ItemID]
	if !ok || entry.Quantity < args.Quantity {
		ctx.DeclareError(fluxerr.CodeInsufficientResources, cmd.ID)
		return ctx
	}

	mutation := world.ShellMutation{Kind: world.MutationKindInventory, InventoryOp: args.Op, ItemID: args.ItemID, Quantity: args.Quantity}
	session.Workbench.PendingMutations = append(session.Workbench.PendingMutations, mutation)

	ctx.DeclareEvent(event.WorldEvent{
		ID: ctx.Uniqid(), Type: event.TypeWorkbenchShellMutationStaged,
		Actor: actor.URN.String(), Location: actor.Location.String(), Trace: cmd.ID, Ts: ctx.Timestamp(),
		Payload: map[string]any{"shellId": session.Workbench.CurrentShellID, "mutation": mutation},
	})
	return ctx
}

// StageMetadataArgs carries WORKBENCH_STAGE_METADATA's arguments.
type StageMetadataArgs struct {
	NewName string
}

// StageMetadataParse recognizes "stage metadata <newName>".
func StageMetadataParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "stage" || in.Verb != "metadata" || len(in.Tokens) != 1 {
		return command.Command{}, false
	}
	return command.Command{
		ID: in.ID, Ts: in.Ts, Actor: in.Actor, Location: in.Location, Session: in.Session,
		Type: command.TypeWorkbenchStageMetadata, Args: StageMetadataArgs{NewName: in.Tokens[0]},
	}, true
}

// StageMetadataReduce validates the new name passes basic sanitization (see
// workbench.ValidShellName), then pushes the mutation.
func StageMetadataReduce(ctx *txctx.Context, cmd command.Command) *txctx.Context {
	args := cmd.Args.(StageMetadataArgs)
	actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
	session, _ := ctx.World.Session(urn.SessionURN(cmd.Session))

	if !workbench.ValidShellName(args.NewName) {
		ctx.DeclareError(fluxerr.CodeInvalidArgument, cmd.ID)
		return ctx
	}

	mutation := world.ShellMutation{Kind: world.MutationKindMetadata, NewName: args.NewName}
	session.Workbench.PendingMutations = append(session.Workbench.PendingMutations, mutation)

	ctx.DeclareEvent(event.WorldEvent{
		ID: ctx.Uniqid(), Type: event.TypeWorkbenchShellMutationStaged,
		Actor: actor.URN.String(), Location: actor.Location.String(), Trace: cmd.ID, Ts: ctx.Timestamp(),
		Payload: map[string]any{"shellId": session.Workbench.CurrentShellID, "mutation": mutation},
	})
	return ctx
}

// CommitParse recognizes "commit" with no arguments.
func CommitParse(ctx *txctx.Context, in intent.Intent) (command.Command, bool) {
	if in.Prefix != "commit" || in.Verb != "" {
		return command.Command{}, false
	}
	return command.Command{
		ID: in.ID, Ts: in.Ts, Actor: in.Actor, Location: in.Location, Session: in.Session,
		Type: command.TypeWorkbenchCommit,
	}, true
}

// CommitReduce implements WORKBENCH_COMMIT: it re-validates every pending
// mutation against the shell's *current* state (not its state at staging
// time) via workbench.ValidateBatch, declaring PRECONDITION_FAILED and
// touching nothing — pending list, shell, session status all left alone —
// on the first invalid entry (spec §4.4's no-partial-mutation rule, applied
// at commit time per SPEC_FULL.md §4). Only once the whole batch validates
// does it apply the mutations in order, compute the resulting cost and
// ShellDiff, clear the pending list, and end the session.
func CommitReduce(cfg config.Engine) reducer.Func {
	return func(ctx *txctx.Context, cmd command.Command) *txctx.Context {
		actor, _ := ctx.World.Actor(urn.ActorURN(cmd.Actor))
		session, _ := ctx.World.Session(urn.SessionURN(cmd.Session))
		shellID := session.Workbench.CurrentShellID
		shell := actor.Shells[shellID]
		pending := session.Workbench.PendingMutations

		schemaExists := func(s urn.SchemaURN) bool {
			_, ok := ctx.Schemas().Get(s)
			return ok
		}
		if !workbench.ValidateBatch(actor, shell, pending, cfg.MaxStat, schemaExists) {
			ctx.DeclareError(fluxerr.CodePreconditionFailed, cmd.ID)
			return ctx
		}

		before := workbench.CloneShell(shell)
		for _, m := range pending {
			workbench.ApplyMutation(actor, shell, m, ctx.Equipment)
		}
		diff := workbench.Diff(before, shell)
		cost := workbench.Cost(pending)

		session.Workbench.PendingMutations = nil
		session.Status = world.StatusEnded

		ctx.DeclareEvent(event.WorldEvent{
			ID: ctx.Uniqid(), Type: event.TypeWorkbenchShellMutationsDidCommit,
			Actor: actor.URN.String(), Location: actor.Location.String(), Trace: cmd.ID, Ts: ctx.Timestamp(),
			Payload: map[string]any{"shellId": shellID, "applied": len(pending), "diff": diff, "cost": cost},
		})
		return ctx
	}
}

// Handlers returns every workbench-family handler.
func Handlers(cfg config.Engine) []registry.Handler {
	stageShellArg := func(cmd command.Command) string { return "" } // all staging ops target the session's current shell

	return []registry.Handler{
		{Type: command.TypeUseWorkbench, Parse: UseParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeUseWorkbench, reducer.WithBasicWorldStateValidation(UseReduce)))},
		{Type: command.TypeWorkbenchShellRename, Parse: RenameParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeWorkbenchShellRename,
				reducer.WithBasicWorldStateValidation(reducer.WithExistingWorkbenchSession(
					reducer.WithWorkbenchShell(renameShellArg, RenameReduce)))))},
		{Type: command.TypeWorkbenchStageStat, Parse: StageStatParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeWorkbenchStageStat,
				reducer.WithBasicWorldStateValidation(reducer.WithExistingWorkbenchSession(
					reducer.WithWorkbenchShell(stageShellArg, StageStatReduce(cfg))))))},
		{Type: command.TypeWorkbenchStageComponent, Parse: StageComponentParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeWorkbenchStageComponent,
				reducer.WithBasicWorldStateValidation(reducer.WithExistingWorkbenchSession(
					reducer.WithWorkbenchShell(stageShellArg, StageComponentReduce)))))},
		{Type: command.TypeWorkbenchStageInventory, Parse: StageInventoryParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeWorkbenchStageInventory,
				reducer.WithBasicWorldStateValidation(reducer.WithExistingWorkbenchSession(
					reducer.WithWorkbenchShell(stageShellArg, StageInventoryReduce)))))},
		{Type: command.TypeWorkbenchStageMetadata, Parse: StageMetadataParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeWorkbenchStageMetadata,
				reducer.WithBasicWorldStateValidation(reducer.WithExistingWorkbenchSession(
					reducer.WithWorkbenchShell(stageShellArg, StageMetadataReduce)))))},
		{Type: command.TypeWorkbenchCommit, Parse: CommitParse,
			Reduce: registry.Reducer(reducer.WithCommandType(command.TypeWorkbenchCommit,
				reducer.WithBasicWorldStateValidation(reducer.WithExistingWorkbenchSession(CommitReduce(cfg)))))},
	}
}
