package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"14:00:00", 840, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		got, err := Minutes(c.in)
		if !c.ok {
			assert.Error(t, err, "input %q", c.in)
			continue
		}
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestHours(t *testing.T) {
	h, err := Hours("14:00", "16:30")
	require.NoError(t, err)
	assert.Equal(t, 2.5, h)

	h, err = Hours("09:00", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 1.0, h)

	_, err = Hours("10:00", "10:00")
	assert.Error(t, err, "zero-length slot")

	_, err = Hours("11:00", "10:00")
	assert.Error(t, err, "inverted slot")
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"partial front", "09:00", "11:00", "10:00", "12:00", true},
		{"partial back", "10:00", "12:00", "09:00", "11:00", true},
		{"new contains existing", "09:00", "12:00", "10:00", "11:00", true},
		{"existing contains new", "10:00", "11:00", "09:00", "12:00", true},
		{"touching boundary after", "09:00", "10:00", "10:00", "11:00", false},
		{"touching boundary before", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "08:00", "09:00", "14:00", "16:00", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	n, err := Normalize("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", n)

	n, err = Normalize("14:00:00")
	require.NoError(t, err)
	assert.Equal(t, "14:00", n)

	_, err = Normalize("25:00")
	assert.Error(t, err)
}
