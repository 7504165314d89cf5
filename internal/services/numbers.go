package services

import (
	"strings"

	"github.com/google/uuid"
)

// Human-readable document number prefixes.
const (
	orderNumberPrefix   = "PED"
	summaryNumberPrefix = "RES"
)

// maxNumberAttempts bounds regeneration when a generated number collides
// with an existing one. Collisions are vanishingly rare with an 8-hex-char
// token but not impossible, so creation retries instead of failing on the
// first duplicate-key error.
const maxNumberAttempts = 5

// generateNumber builds a document number like PED-3F2A9C01 from a random
// UUID's first eight hex characters. It is a variable so collision tests
// can substitute a deterministic generator.
var generateNumber = func(prefix string) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return prefix + "-" + token[:8]
}
