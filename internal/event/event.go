// Package event defines the WorldEvent and DeclaredError value types that
// reducers push into the transformer context's sinks, plus the stable event
// type identifiers declared over the wire.
package event

import "github.com/fluxcore/engine/internal/fluxerr"

// Type is a stable, wire-identified event type.
type Type string

const (
	TypeActorDidMove                     Type = "ACTOR_DID_MOVE"
	TypeActorDidMaterialize              Type = "ACTOR_DID_MATERIALIZE"
	TypeActorDidDematerialize            Type = "ACTOR_DID_DEMATERIALIZE"
	TypeActorDidCreate                   Type = "ACTOR_DID_CREATE"
	TypePlaceDidCreate                   Type = "PLACE_DID_CREATE"
	TypeActorDidListShells               Type = "ACTOR_DID_LIST_SHELLS"
	TypeActorDidRenameShell               Type = "ACTOR_DID_RENAME_SHELL"
	TypeActorDidInspectParty              Type = "ACTOR_DID_INSPECT_PARTY"
	TypeActorDidInviteToParty              Type = "ACTOR_DID_INVITE_TO_PARTY"
	TypeActorDidAcceptPartyInvite           Type = "ACTOR_DID_ACCEPT_PARTY_INVITE"
	TypeActorDidRejectPartyInvite           Type = "ACTOR_DID_REJECT_PARTY_INVITE"
	TypeActorWasKickedFromParty            Type = "ACTOR_WAS_KICKED_FROM_PARTY"
	TypeActorDidLeaveParty                 Type = "ACTOR_DID_LEAVE_PARTY"
	TypePartyWasDisbanded                   Type = "PARTY_WAS_DISBANDED"
	TypeActorDidReceiveCurrency             Type = "ACTOR_DID_RECEIVE_CURRENCY"
	TypeWorkbenchSessionDidStart             Type = "WORKBENCH_SESSION_DID_START"
	TypeWorkbenchShellMutationStaged         Type = "WORKBENCH_SHELL_MUTATION_STAGED"
	TypeWorkbenchShellMutationsDidCommit      Type = "WORKBENCH_SHELL_MUTATIONS_DID_COMMIT"
	TypeLook                                 Type = "LOOK"
	TypePlaceWeatherDidChange                 Type = "PLACE_WEATHER_DID_CHANGE"
	TypePlaceResourcesDidChange               Type = "PLACE_RESOURCES_DID_CHANGE"
	TypeCombatantDidAttack                   Type = "COMBATANT_DID_ATTACK"
	TypeCombatantWasAttacked                 Type = "COMBATANT_WAS_ATTACKED"
	TypeCombatantDidDefend                   Type = "COMBATANT_DID_DEFEND"
	TypeCombatantDidAdvance                  Type = "COMBATANT_DID_ADVANCE"
	TypeCombatantDidRetreat                  Type = "COMBATANT_DID_RETREAT"
	TypeCombatantDidAcquireTarget             Type = "COMBATANT_DID_ACQUIRE_TARGET"
	TypeCombatantDidDie                       Type = "COMBATANT_DID_DIE"
	TypeCombatSessionDidStart                 Type = "COMBAT_SESSION_DID_START"
	TypeCombatSessionDidEnd                   Type = "COMBAT_SESSION_DID_END"
	TypeCombatSessionStatusDidChange          Type = "COMBAT_SESSION_STATUS_DID_CHANGE"
	TypeCombatRoundDidStart                   Type = "COMBAT_ROUND_DID_START"
	TypeCombatRoundDidEnd                     Type = "COMBAT_ROUND_DID_END"
	TypeCombatTurnDidStart                    Type = "COMBAT_TURN_DID_START"
	TypeCombatTurnDidEnd                      Type = "COMBAT_TURN_DID_END"
)

// WorldEvent is the structured, append-only record a reducer declares on
// success. Its Trace equals the command id that caused it.
type WorldEvent struct {
	ID       string
	Type     Type
	Actor    string // actor URN, SYSTEM for system-caused events
	Location string // place URN where the effect is observable
	Trace    string // originating command id
	Ts       int64
	Payload  any
}

// DeclaredError is the value a reducer pushes on any precondition failure.
type DeclaredError struct {
	Code  fluxerr.Code
	Trace string
}
