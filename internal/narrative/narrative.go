// Package narrative renders declared events into localized prose. It is
// intentionally a stub (spec §2, item 11): a pure function map keyed by
// event type and locale, each entry returning a {self, observer} pair.
// Errors are rendered by a separate table keyed by code (spec §10), not
// this package.
package narrative

import (
	"bytes"
	"text/template"

	"github.com/fluxcore/engine/internal/event"
)

// BaseLocale is used whenever a requested locale has no catalog.
const BaseLocale = "en-US"

// Lines is a rendered narrative pair: the line shown to the actor who
// caused the event, and the line shown to other observers at the same
// location.
type Lines struct {
	Self     string
	Observer string
}

// templatePair holds the unexecuted text/template source for one event
// type, before metadata substitution.
type templatePair struct {
	self     string
	observer string
}

// Catalog maps event types to template pairs for one locale.
type Catalog struct {
	locale    string
	templates map[event.Type]templatePair
}

var catalogs = map[string]*Catalog{
	BaseLocale: enUSCatalog(),
}

// GetCatalog returns the catalog for locale, falling back to BaseLocale
// when locale is unregistered.
func GetCatalog(locale string) *Catalog {
	if c, ok := catalogs[locale]; ok {
		return c
	}
	return catalogs[BaseLocale]
}

// RegisterCatalog installs a catalog for a locale, replacing any existing
// one. Intended for adding locales at startup, not runtime.
func RegisterCatalog(c *Catalog) {
	catalogs[c.locale] = c
}

// Locale reports the catalog's locale tag.
func (c *Catalog) Locale() string {
	return c.locale
}

// Render executes the template pair registered for evt.Type against
// evt.Payload (if it is a map[string]any; otherwise templates see an empty
// metadata set). A Type with no registered pair renders its own name
// verbatim in both fields, so an unnarrated event is still legible rather
// than silently blank.
func (c *Catalog) Render(evt event.WorldEvent) Lines {
	pair, ok := c.templates[evt.Type]
	if !ok {
		return Lines{Self: string(evt.Type), Observer: string(evt.Type)}
	}
	meta, _ := evt.Payload.(map[string]any)
	if meta == nil {
		meta = map[string]any{}
	}
	return Lines{
		Self:     execute(pair.self, meta),
		Observer: execute(pair.observer, meta),
	}
}

func execute(tmpl string, meta map[string]any) string {
	t, err := template.New("line").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, meta); err != nil {
		return tmpl
	}
	return buf.String()
}

func enUSCatalog() *Catalog {
	return &Catalog{
		locale: BaseLocale,
		templates: map[event.Type]templatePair{
			event.TypeActorDidMove: {
				self:     "You head toward {{.destination}}.",
				observer: "{{.actorName}} heads off.",
			},
			event.TypeActorDidMaterialize: {
				self:     "You fade into being.",
				observer: "{{.actorName}} fades into being.",
			},
			event.TypeActorDidDematerialize: {
				self:     "You fade from view.",
				observer: "{{.actorName}} fades from view.",
			},
			event.TypeActorDidCreate: {
				self:     "You come into existence.",
				observer: "A new presence stirs.",
			},
			event.TypePlaceDidCreate: {
				self:     "A new place takes shape.",
				observer: "A new place takes shape.",
			},
			event.TypeLook: {
				self:     "You take in your surroundings.",
				observer: "{{.actorName}} looks around.",
			},
			event.TypePlaceWeatherDidChange: {
				self:     "The weather shifts to {{.condition}}.",
				observer: "The weather shifts to {{.condition}}.",
			},
			event.TypePlaceResourcesDidChange: {
				self:     "The {{.resource}} here changes.",
				observer: "The {{.resource}} here changes.",
			},
			event.TypeActorDidInviteToParty: {
				self:     "You invite {{.invitee}} to your party.",
				observer: "{{.actorName}} extends a party invitation.",
			},
			event.TypeActorDidAcceptPartyInvite: {
				self:     "You join the party.",
				observer: "{{.actorName}} joins the party.",
			},
			event.TypeActorDidRejectPartyInvite: {
				self:     "You decline the invitation.",
				observer: "{{.actorName}} declines the invitation.",
			},
			event.TypeActorWasKickedFromParty: {
				self:     "You are removed from the party.",
				observer: "{{.actorName}} is removed from the party.",
			},
			event.TypeActorDidLeaveParty: {
				self:     "You leave the party.",
				observer: "{{.actorName}} leaves the party.",
			},
			event.TypePartyWasDisbanded: {
				self:     "Your party disbands.",
				observer: "A party disbands.",
			},
			event.TypeActorDidInspectParty: {
				self:     "You check on your party.",
				observer: "{{.actorName}} checks on the party.",
			},
			event.TypeActorDidReceiveCurrency: {
				self:     "You receive {{.amount}} {{.currency}}.",
				observer: "{{.actorName}} receives currency.",
			},
			event.TypeWorkbenchSessionDidStart: {
				self:     "You sit down at the workbench.",
				observer: "{{.actorName}} sits down at a workbench.",
			},
			event.TypeActorDidListShells: {
				self:     "You look over your shells.",
				observer: "{{.actorName}} tinkers at the workbench.",
			},
			event.TypeActorDidRenameShell: {
				self:     "You rename a shell to {{.newName}}.",
				observer: "{{.actorName}} renames a shell.",
			},
			event.TypeWorkbenchShellMutationStaged: {
				self:     "You stage a change to your shell.",
				observer: "{{.actorName}} adjusts something at the workbench.",
			},
			event.TypeWorkbenchShellMutationsDidCommit: {
				self:     "Your shell takes on its new form.",
				observer: "{{.actorName}}'s shell shifts and settles.",
			},
			event.TypeCombatantDidAttack: {
				self:     "You strike {{.target}} for {{.damage}}.",
				observer: "{{.actorName}} strikes {{.target}}.",
			},
			event.TypeCombatantWasAttacked: {
				self:     "{{.attacker}} hits you for {{.damage}}.",
				observer: "{{.actorName}} is struck.",
			},
			event.TypeCombatantDidDefend: {
				self:     "You brace yourself.",
				observer: "{{.actorName}} braces for impact.",
			},
			event.TypeCombatantDidAdvance: {
				self:     "You close the distance.",
				observer: "{{.actorName}} advances.",
			},
			event.TypeCombatantDidRetreat: {
				self:     "You fall back.",
				observer: "{{.actorName}} retreats.",
			},
			event.TypeCombatantDidAcquireTarget: {
				self:     "You fix your attention on {{.target}}.",
				observer: "{{.actorName}} fixes on a target.",
			},
			event.TypeCombatantDidDie: {
				self:     "Your strength fails you.",
				observer: "{{.actorName}} falls.",
			},
			event.TypeCombatSessionDidStart: {
				self:     "Combat begins.",
				observer: "Combat begins.",
			},
			event.TypeCombatSessionDidEnd: {
				self:     "The fighting ends.",
				observer: "The fighting ends.",
			},
			event.TypeCombatSessionStatusDidChange: {
				self:     "The battle shifts.",
				observer: "The battle shifts.",
			},
			event.TypeCombatRoundDidStart: {
				self:     "A new round begins.",
				observer: "A new round begins.",
			},
			event.TypeCombatRoundDidEnd: {
				self:     "The round ends.",
				observer: "The round ends.",
			},
			event.TypeCombatTurnDidStart: {
				self:     "It is your turn.",
				observer: "It is {{.actor}}'s turn.",
			},
			event.TypeCombatTurnDidEnd: {
				self:     "Your turn ends.",
				observer: "A turn ends.",
			},
		},
	}
}
