package id

import (
	"strings"

	"github.com/google/uuid"
)

// ShortLength is the number of hex characters in a short id.
const ShortLength = 8

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// ShortHex yields the first ShortLength hex digits of a random UUID.
type ShortHex struct{}

func (ShortHex) New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:ShortLength]
}
