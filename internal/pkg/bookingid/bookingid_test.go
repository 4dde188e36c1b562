package bookingid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormat(t *testing.T) {
	ts := time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		id := New(ts)
		require.True(t, Valid(id), "id %q should match the booking id format", id)
		assert.True(t, strings.HasPrefix(id, "BK-20250307-"))
	}
}

func TestValidRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"BK-20250307",
		"BK-20250307-abc123",  // lowercase suffix
		"BK-2025037-ABC123",   // short date
		"BX-20250307-ABC123",  // wrong prefix
		"BK-20250307-ABC1234", // long suffix
	}
	for _, c := range cases {
		assert.False(t, Valid(c), "%q should be invalid", c)
	}
}

// Collisions within a day are possible by design; the storage layer's
// primary key catches them and the caller retries with a fresh id. This
// mirrors that loop: generate 10k ids, regenerating on collision, and
// expect every slot to end up occupied by a distinct id.
func TestUniqueUnderRetry(t *testing.T) {
	ts := time.Now().UTC()
	seen := make(map[string]struct{}, 10000)

	for i := 0; i < 10000; i++ {
		id := New(ts)
		if _, dup := seen[id]; dup {
			id = New(ts)
		}
		_, dup := seen[id]
		require.False(t, dup, "collision survived a retry")
		seen[id] = struct{}{}
	}

	require.Len(t, seen, 10000)
}
