package version

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/storage"
)

func TestEnsureFromOlderVersion(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	running := ContractInfo{Contract: ContractName, Version: "1.2.0"}

	_, err := EnsureFromOlderVersion(st, running)
	require.ErrorIs(t, err, errors.ContractNotInstantiated)

	require.NoError(t, SetContractInfo(st, ContractInfo{Contract: ContractName, Version: "1.0.0"}))

	{ // older stored version is upgraded
		stored, err := EnsureFromOlderVersion(st, running)
		require.NoError(t, err)
		require.Equal(t, "1.0.0", stored.Version)

		info, err := GetContractInfo(st)
		require.NoError(t, err)
		require.Equal(t, running, info)
	}

	{ // same version is a no-op
		_, err := EnsureFromOlderVersion(st, running)
		require.NoError(t, err)
	}

	{ // downgrade is refused
		_, err := EnsureFromOlderVersion(st, ContractInfo{Contract: ContractName, Version: "1.1.9"})
		require.ErrorIs(t, err, errors.ContractVersionTooNew)
	}

	{ // another contract's state is refused
		_, err := EnsureFromOlderVersion(st, ContractInfo{Contract: "other", Version: "9.0.0"})
		require.ErrorIs(t, err, errors.ContractNameMismatch)
	}
}

func TestSetContractInfoRejectsBadVersion(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	err := SetContractInfo(st, ContractInfo{Contract: ContractName, Version: "latest"})
	require.ErrorIs(t, err, errors.InvalidVersion)

	require.NoError(t, SetContractInfo(st, NewContractInfo()))
}
