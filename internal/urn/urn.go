// Package urn implements the opaque typed identifiers ("flux:<kind>:<tail>")
// used throughout the engine to address actors, places, items, sessions,
// groups, and schemas.
//
// A URN is a plain string with a validated shape; it carries no behavior of
// its own. Callers construct one with New or Parse and compare URNs as
// ordinary strings.
package urn

import (
	"fmt"
	"strings"
)

// Kind identifies the entity table a URN addresses.
type Kind string

const (
	KindActor    Kind = "actor"
	KindPlace    Kind = "place"
	KindItem     Kind = "item"
	KindGroup    Kind = "group"
	KindSession  Kind = "session"
	KindSchema   Kind = "schema"
	KindEffect   Kind = "effect"
	KindSkill    Kind = "skill"
	KindEco      Kind = "eco"
	KindModifier Kind = "modifier"
)

var validKinds = map[Kind]bool{
	KindActor: true, KindPlace: true, KindItem: true, KindGroup: true,
	KindSession: true, KindSchema: true, KindEffect: true, KindSkill: true,
	KindEco: true, KindModifier: true,
}

const prefix = "flux"

// SystemActor is the reserved authoring actor for engine-issued commands.
const SystemActor = "flux:actor:system"

// NullPlace is the null destination place.
const NullPlace = "flux:place:nowhere"

// URN is an opaque typed identifier of the form flux:<kind>:<tail>.
type URN string

// New constructs a URN from a kind and one or more tail segments, joined by
// ":". Segments are not validated for charset here; callers that build tails
// from user input should lowercase and restrict to [a-z0-9_-]+ themselves
// (see IsValidTail).
func New(kind Kind, tailSegments ...string) URN {
	return URN(fmt.Sprintf("%s:%s:%s", prefix, kind, strings.Join(tailSegments, ":")))
}

// Parse validates the lexical shape of a URN string and returns its Kind and
// tail. It returns false if the string is not a well-formed flux URN.
func Parse(s string) (Kind, string, bool) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return "", "", false
	}
	if parts[0] != prefix {
		return "", "", false
	}
	kind := Kind(parts[1])
	if !validKinds[kind] {
		return "", "", false
	}
	if parts[2] == "" {
		return "", "", false
	}
	if !IsValidTail(parts[2]) {
		return "", "", false
	}
	return kind, parts[2], true
}

// IsValidTail reports whether a tail is one or more ":"-delimited lowercase
// segments matching [a-z0-9_-]+.
func IsValidTail(tail string) bool {
	segments := strings.Split(tail, ":")
	for _, seg := range segments {
		if seg == "" {
			return false
		}
		for _, r := range seg {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= '0' && r <= '9':
			case r == '_' || r == '-':
			default:
				return false
			}
		}
	}
	return true
}

// Is reports whether the URN is a well-formed URN of the given kind.
func (u URN) Is(kind Kind) bool {
	k, _, ok := Parse(string(u))
	return ok && k == kind
}

// Valid reports whether the URN is well-formed (any registered kind).
func (u URN) Valid() bool {
	_, _, ok := Parse(string(u))
	return ok
}

// Kind returns the URN's kind, or "" if malformed.
func (u URN) Kind() Kind {
	k, _, ok := Parse(string(u))
	if !ok {
		return ""
	}
	return k
}

// Tail returns the URN's tail, or "" if malformed.
func (u URN) Tail() string {
	_, tail, ok := Parse(string(u))
	if !ok {
		return ""
	}
	return tail
}

// String implements fmt.Stringer.
func (u URN) String() string {
	return string(u)
}

// Typed URN aliases give call sites type safety without introducing
// distinct runtime representations.
type (
	ActorURN   = URN
	PlaceURN   = URN
	ItemURN    = URN
	GroupURN   = URN
	SessionURN = URN
	SchemaURN  = URN
)

// NewActor constructs an actor URN with a fresh tail.
func NewActor(tail string) ActorURN { return New(KindActor, tail) }

// NewPlace constructs a place URN with a fresh tail.
func NewPlace(tail string) PlaceURN { return New(KindPlace, tail) }

// NewItem constructs an item URN with a fresh tail.
func NewItem(tail string) ItemURN { return New(KindItem, tail) }

// NewGroup constructs a group URN with a fresh tail.
func NewGroup(tail string) GroupURN { return New(KindGroup, tail) }

// NewSession constructs a session URN from a strategy label and a fresh tail.
func NewSession(strategy, tail string) SessionURN {
	return New(KindSession, strategy, tail)
}

// NewSchema constructs a schema URN with a fresh tail.
func NewSchema(tail string) SchemaURN { return New(KindSchema, tail) }
