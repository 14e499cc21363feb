package quorum

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/storage"
)

func TestWhitelistAddRemove(t *testing.T) {
	w := Whitelist{}
	w = w.Add("GA").Add("GB").Add("GA").Add("GC")
	require.Equal(t, Whitelist{"GA", "GB", "GC"}, w)

	w = w.Remove("GA")
	require.Equal(t, 2, len(w))
	require.False(t, w.Contains("GA"))
	require.True(t, w.Contains("GB"))
	require.True(t, w.Contains("GC"))

	w = w.Remove("GZ")
	require.Equal(t, 2, len(w))
}

func TestWhitelistStorage(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := GetWhitelist(st)
	require.ErrorIs(t, err, errors.ContractNotInstantiated)

	require.NoError(t, SaveWhitelist(st, nil))
	w, err := GetWhitelist(st)
	require.NoError(t, err)
	require.Equal(t, Whitelist{}, w)

	require.NoError(t, SaveWhitelist(st, Whitelist{"GA"}))
	w, err = GetWhitelist(st)
	require.NoError(t, err)
	require.Equal(t, Whitelist{"GA"}, w)
}
