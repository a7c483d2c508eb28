// Package idgen generates the opaque unique identifiers used as URN tails
// and as intent/command/event ids.
//
// Identifiers are UUIDv4 values encoded as lowercase, unpadded base32 (RFC
// 4648), producing a 26-character URL-safe string. The shape is grounded on
// the teacher repository's own id helper; the encoding is reproduced
// verbatim, but byte generation is delegated to github.com/google/uuid
// instead of hand-rolling the version/variant bit twiddling.
package idgen

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// New generates a fresh 26-character lowercase identifier suitable for use
// as a URN tail segment.
func New() string {
	raw := uuid.New()
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw[:])
	return strings.ToLower(encoded)
}

// Generator is the injectable id source required by the transformer
// context. Production wiring uses New; tests substitute a deterministic
// sequence.
type Generator func() string
