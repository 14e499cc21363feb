package key

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/announcer/lib/common/keypair"
)

func TestGenerateKP(t *testing.T) {
	{ // random
		kp, err := GenerateKP("", false)
		require.NoError(t, err)
		require.True(t, keypair.IsValidAddress(kp.Address()))
	}

	{ // from secret seed
		expected := keypair.Random()
		kp, err := GenerateKP(expected.Seed(), true)
		require.NoError(t, err)
		require.Equal(t, expected.Address(), kp.Address())

		_, err = GenerateKP(expected.Address(), true)
		require.Error(t, err)
	}

	{ // from passphrase
		a, err := GenerateKP("findme", false)
		require.NoError(t, err)
		b, err := GenerateKP("findme", false)
		require.NoError(t, err)
		require.Equal(t, a.Seed(), b.Seed())
	}
}

func TestEncodeKeyPair(t *testing.T) {
	kp := keyPair{Seed: "SEED", Address: "ADDRESS"}

	var buf bytes.Buffer
	require.NoError(t, onelineEncode(kp, &buf))
	require.Equal(t, "SEED ADDRESS\n", buf.String())

	buf.Reset()
	require.NoError(t, defaultEncode(kp, &buf))
	require.Contains(t, buf.String(), "Secret Seed: SEED")
	require.Contains(t, buf.String(), "Public Address: ADDRESS")
}
