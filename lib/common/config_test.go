package common

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	c := NewConfig([]byte("test-network"))
	require.Equal(t, []byte("test-network"), c.NetworkID)
	require.Equal(t, 7*24*time.Hour, c.ProposalLifetime)
	require.Equal(t, int64(100), c.RateLimitRuleAPI.Default.Limit)
	require.Equal(t, time.Second, c.RateLimitRuleAPI.Default.Period)
}

func TestLoadSettings(t *testing.T) {
	{
		s, err := LoadSettings()
		require.NoError(t, err)
		require.Equal(t, DefaultNetworkID, s.NetworkID)
		require.Equal(t, DefaultProposalLifetime, s.ProposalLifetime)
		require.Equal(t, DefaultRecordCacheSize, s.RecordCacheSize)
	}

	{
		os.Setenv("ANNOUNCER_NETWORK_ID", "from-env")
		os.Setenv("ANNOUNCER_PROPOSAL_LIFETIME", "1h")
		defer os.Unsetenv("ANNOUNCER_NETWORK_ID")
		defer os.Unsetenv("ANNOUNCER_PROPOSAL_LIFETIME")

		s, err := LoadSettings()
		require.NoError(t, err)
		require.Equal(t, "from-env", s.NetworkID)
		require.Equal(t, time.Hour, s.ProposalLifetime)
	}
}
