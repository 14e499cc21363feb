package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTimeParam(t *testing.T) {
	expected := time.Date(2021, 6, 1, 12, 30, 0, 0, time.UTC)

	for _, s := range []string{
		FormatISO8601(expected),
		expected.Format(time.RFC3339),
		"1622550600",
	} {
		parsed, err := ParseTimeParam(s)
		require.NoError(t, err, s)
		require.True(t, expected.Equal(parsed), s)
	}

	_, err := ParseTimeParam("yesterday")
	require.Error(t, err)
}
