package recordbuilder

import (
	"fmt"
	"strings"
)

// keySeparator joins the key source fields. It must not occur in member ids
// or canonical date/time keys.
const keySeparator = "|"

// DeriveTransactionKey computes a synthetic transaction key from the four
// fields that identify a purchase event when the export carries no receipt
// id: member, store, canonical date key and normalized time.
//
// The key is a 32-bit rolling hash of the joined fields rendered as hex,
// suffixed with the compacted date and time digits so keys stay readable
// when debugging. Identical inputs always derive the same key. A 32-bit
// hash can collide, but a collision additionally requires the two
// transactions to share the exact date and time digits; that residual risk
// is accepted. Swap the hash here if it ever stops being acceptable, no
// call site depends on the algorithm.
func DeriveTransactionKey(member, store, dateKey, timeOfDay string) string {
	src := strings.Join([]string{member, store, dateKey, timeOfDay}, keySeparator)

	var h uint32
	for i := 0; i < len(src); i++ {
		h = h*31 + uint32(src[i])
	}

	return fmt.Sprintf("%08x-%s", h, compactDigits(dateKey+timeOfDay))
}

// compactDigits strips every non-digit byte from s.
func compactDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
