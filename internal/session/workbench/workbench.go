// Package workbench implements the workbench session API described in
// spec §4.6: acquire-or-create a Workbench-strategy session for an actor,
// reusing a pending one rather than creating a second.
package workbench

import (
	"github.com/fluxcore/engine/internal/event"
	"github.com/fluxcore/engine/internal/txctx"
	"github.com/fluxcore/engine/internal/urn"
	"github.com/fluxcore/engine/internal/world"
)

// Acquired is the result of AcquireOrCreate.
type Acquired struct {
	Session *world.Session
	IsNew   bool
}

// AcquireOrCreate implements spec §4.6's workbench session API. If
// sessionID is non-empty, it must name an existing workbench session for the
// actor: that session is reused with IsNew=false and no events, and any
// other sessionID fails. With an empty sessionID, any
// existing pending/running workbench session already recorded on the
// actor's Sessions map is reused (spec: "on violation, reuse rather than
// create"). Failing that, a new session is created, recorded on the actor,
// and WORKBENCH_SESSION_DID_START is declared.
func AcquireOrCreate(ctx *txctx.Context, actor *world.Actor, trace string, sessionID string) (Acquired, bool) {
	if sessionID != "" {
		s, ok := ctx.World.Session(urn.SessionURN(sessionID))
		if !ok || s.Workbench == nil || s.Workbench.ActorID != actor.URN.Tail() {
			return Acquired{}, false
		}
		return Acquired{Session: s, IsNew: false}, true
	}

	for sessionURN := range ctx.ActorSessions.MembershipsOf(actor) {
		if s, ok := ctx.World.Session(urn.SessionURN(sessionURN)); ok {
			if s.Workbench != nil && s.Status != world.StatusEnded {
				return Acquired{Session: s, IsNew: false}, true
			}
		}
	}

	if _, ok := actor.CurrentShellInstance(); !ok {
		return Acquired{}, false
	}

	sessURN := urn.NewSession("workbench", ctx.Uniqid())
	s := &world.Session{
		URN:      sessURN,
		Strategy: world.StrategyWorkbench,
		Status:   world.StatusPending,
		Workbench: &world.WorkbenchData{
			ActorID:        actor.URN.Tail(),
			CurrentShellID: actor.CurrentShell,
		},
	}
	ctx.World.PutSession(s)
	ctx.ActorSessions.Join(actor, sessURN.String(), ctx.Timestamp())

	ctx.DeclareEvent(event.WorldEvent{
		ID:       ctx.Uniqid(),
		Type:     event.TypeWorkbenchSessionDidStart,
		Actor:    actor.URN.String(),
		Location: actor.Location.String(),
		Trace:    trace,
		Ts:       ctx.Timestamp(),
		Payload:  map[string]any{"sessionId": sessURN.String()},
	})

	return Acquired{Session: s, IsNew: true}, true
}
