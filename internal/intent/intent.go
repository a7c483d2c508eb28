// Package intent implements the text-to-Intent parser: the first stage of
// the execution pipeline, turning raw actor text into a structured,
// still-untyped Intent.
package intent

import "strings"

// Intent is parsed, still-untyped command input carrying a unique id.
type Intent struct {
	ID         string
	Ts         int64
	Actor      string // actor URN
	Location   string // place URN
	Session    string // session URN, "" if none
	Text       string
	Normalized string
	Prefix     string
	Verb       string
	Tokens     []string // positional args after verb, original case
	Uniques    map[string]bool
}

// Parse implements spec §4.2's algorithm. id and ts are injected by the
// caller (normally engine.Submit, drawing from the engine's injected
// uniqid/clock sources) so parsing itself stays pure.
func Parse(text, actor, location string, id string, ts int64) Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalizedFields := strings.Fields(normalized)
	originalFields := strings.Fields(strings.TrimSpace(text))

	intent := Intent{
		ID:         id,
		Ts:         ts,
		Actor:      actor,
		Location:   location,
		Text:       text,
		Normalized: normalized,
		Uniques:    make(map[string]bool),
	}

	if len(normalizedFields) == 0 {
		return intent
	}

	first := normalizedFields[0]
	restOriginal := originalFields[1:]

	if strings.HasPrefix(first, "@") {
		// Literal verb commands: "@credit ..." -> verb="@credit", tokens follow.
		intent.Verb = first
		intent.Tokens = append([]string{}, restOriginal...)
	} else {
		intent.Prefix = first
		if len(restOriginal) > 0 {
			intent.Verb = normalizedFields[1]
			intent.Tokens = append([]string{}, restOriginal[1:]...)
		}
	}

	for _, tok := range intent.Tokens {
		intent.Uniques[strings.ToLower(tok)] = true
	}
	return intent
}
