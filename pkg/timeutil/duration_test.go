package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationDefault(t *testing.T) {
	slots, err := ParseDuration("")
	require.NoError(t, err)
	assert.Equal(t, 2, slots)
}

func TestParseDurationComposite(t *testing.T) {
	cases := map[string]int{
		"1h30m": 3,
		"90m":   3,
		"45m":   2,
		"2h":    4,
		"3":     3,
		"1slot": 1,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, in := range []string{"noop", "0", "-2", "5d", "0m"} {
		_, err := ParseDuration(in)
		assert.Error(t, err, in)
	}
}

func TestParseDurationTooLong(t *testing.T) {
	for _, in := range []string{"9223372036854775807h", "3000000h", "2562047h2562047h"} {
		_, err := ParseDuration(in)
		assert.ErrorContains(t, err, "too long", in)
	}

	slots, err := ParseDuration("1000h")
	require.NoError(t, err)
	assert.Equal(t, 2000, slots)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30m", FormatDuration(1))
	assert.Equal(t, "1h", FormatDuration(2))
	assert.Equal(t, "1h30m", FormatDuration(3))
	assert.Equal(t, "0m", FormatDuration(0))
}
