// Package persona derives Axion's personality and trait list from a
// stable per-child seed string. The derivation is a pure function of
// sha256(seed) so the same child always gets the same companion; no
// random state is ever stored.
package persona

import (
	"crypto/sha256"
	"strconv"
	"strings"
)

// Personality scores each axis from 1 to 3.
type Personality struct {
	Energy int `json:"energy"`
	Humor  int `json:"humor"`
	Wisdom int `json:"wisdom"`
}

// traitPool is fixed. Order matters: trait selection steps through it
// cyclically from a digest-derived base, so reordering or resizing the
// pool changes every child's companion.
var traitPool = [9]string{
	"curious",
	"playful",
	"brave",
	"gentle",
	"witty",
	"loyal",
	"dreamy",
	"bold",
	"kind",
}

// FromSeed derives the personality profile: axis i is
// (sha256(seed)[i] % 3) + 1 for energy, humor, wisdom.
func FromSeed(seed string) Personality {
	digest := sha256.Sum256([]byte(seed))
	return Personality{
		Energy: int(digest[0]%3) + 1,
		Humor:  int(digest[1]%3) + 1,
		Wisdom: int(digest[2]%3) + 1,
	}
}

// Traits builds the five-token trait list: three words sampled
// cyclically from the pool (base = digest[0] % 9, step = digest[1] % 8
// + 1, wrapping around), then "stage_{n}" and the lowercased mood. The
// first three tokens depend only on the seed; the last two reflect live
// state.
func Traits(seed string, stage int, mood string) []string {
	digest := sha256.Sum256([]byte(seed))
	base := int(digest[0]) % len(traitPool)
	step := int(digest[1])%8 + 1

	traits := make([]string, 0, 5)
	for i := 0; i < 3; i++ {
		traits = append(traits, traitPool[(base+i*step)%len(traitPool)])
	}
	traits = append(traits, "stage_"+strconv.Itoa(stage), strings.ToLower(mood))
	return traits
}
