package world

import "github.com/fluxcore/engine/internal/urn"

// Visibility controls whether an entity's presence at a place is
// observable. Only VisibleToEveryone is ever set by commands in this spec;
// Hidden exists so the materialize/dematerialize reducers are not forced to
// hardcode a single-value enum.
type Visibility string

const (
	VisibleToEveryone Visibility = "visible_to_everyone"
	Hidden            Visibility = "hidden"
)

// Direction is a compass or relative movement direction used as an exit key.
type Direction string

// Exit describes one navigable connection out of a place.
type Exit struct {
	Direction Direction
	Label     string
	To        urn.PlaceURN
}

// Presence is the weak-reference-style descriptor a place holds for an
// entity materialized there. Places never hold a second copy of the actor;
// they hold only this visibility marker keyed by entity id.
type Presence struct {
	Vis Visibility
}

// Weather is free-form environmental state a place carries; mutate-weather
// commands replace it wholesale.
type Weather struct {
	Condition   string
	Temperature float64
}

// Place is a location with exits, resources, and a presence list of
// entities materialized there.
type Place struct {
	URN         urn.PlaceURN
	Name        string
	Description string
	Ecosystem   string
	Coordinates [2]float64
	Entities    map[string]Presence // entity id (URN tail) -> presence
	Exits       map[Direction]Exit
	Resources   map[string]int64
	Weather     Weather
}

// NewPlace constructs a place with initialized empty collections.
func NewPlace(u urn.PlaceURN, name, description, ecosystem string) *Place {
	return &Place{
		URN:         u,
		Name:        name,
		Description: description,
		Ecosystem:   ecosystem,
		Entities:    make(map[string]Presence),
		Exits:       make(map[Direction]Exit),
		Resources:   make(map[string]int64),
	}
}

// ExitTo finds the exit, if any, whose destination is dest.
func (p *Place) ExitTo(dest urn.PlaceURN) (Exit, bool) {
	for _, exit := range p.Exits {
		if exit.To == dest {
			return exit, true
		}
	}
	return Exit{}, false
}
