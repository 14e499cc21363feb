package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	{
		e, err := ParseEndpoint("http://LocalHost")
		require.NoError(t, err)
		require.Equal(t, "http://localhost:12345", e.String())
	}

	{
		e, err := ParseEndpoint("https://:8080/node")
		require.NoError(t, err)
		require.Equal(t, "https://localhost:8080/node", e.String())
	}

	{
		_, err := ParseEndpoint("memory://0")
		require.Error(t, err)

		_, err = ParseEndpoint("http://localhost:0")
		require.Error(t, err)
	}
}

func TestCheckBindString(t *testing.T) {
	require.NoError(t, CheckBindString("0.0.0.0:12345"))
	require.Error(t, CheckBindString("0.0.0.0"))
	require.Error(t, CheckBindString("0.0.0.0:zero"))
}
