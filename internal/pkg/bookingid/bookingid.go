// Package bookingid generates the human-readable booking identifiers
// in the form BK-YYYYMMDD-XXXXXX.
package bookingid

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

// alphabet is base-36, uppercased. Six characters give ~2.2 billion
// combinations per day; the bookings primary key is the real uniqueness
// guarantee, a collision surfaces as a retryable insert failure.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const suffixLength = 6

var pattern = regexp.MustCompile(`^BK-\d{8}-[0-9A-Z]{6}$`)

// New returns a booking id whose date component is taken from t.
func New(t time.Time) string {
	suffix := make([]byte, suffixLength)
	for i := range suffix {
		suffix[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return fmt.Sprintf("BK-%s-%s", t.Format("20060102"), suffix)
}

// Valid reports whether s matches the booking id format.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
