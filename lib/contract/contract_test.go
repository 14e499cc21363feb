package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/storage"
	"boscoin.io/announcer/lib/version"
)

var t0 = time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

func TestInstantiate(t *testing.T) {
	c, st := NewTestContract("GA", t0)
	defer st.Close()

	whitelist, err := c.Whitelist()
	require.NoError(t, err)
	require.Equal(t, []string{"GA"}, []string(whitelist))

	info, err := c.ContractInfo()
	require.NoError(t, err)
	require.Equal(t, version.NewContractInfo(), info)

	_, err = c.Instantiate(Env{Time: t0}, Info{Sender: "GB"})
	require.ErrorIs(t, err, errors.ContractAlreadyInstantiated)

	whitelist, err = c.Whitelist()
	require.NoError(t, err)
	require.Equal(t, []string{"GA"}, []string(whitelist))
}

func TestNotInstantiated(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	c, err := New(st, common.NewTestConfig())
	require.NoError(t, err)

	_, err = c.Whitelist()
	require.ErrorIs(t, err, errors.ContractNotInstantiated)

	_, err = c.Migrate(Env{Time: t0})
	require.ErrorIs(t, err, errors.ContractNotInstantiated)
}

func TestMigrate(t *testing.T) {
	c, st := NewTestContract("GA", t0)
	defer st.Close()

	{ // same version
		stored, err := c.Migrate(Env{Time: t0})
		require.NoError(t, err)
		require.Equal(t, version.Version, stored.Version)
	}

	{ // older stored version is upgraded
		require.NoError(t, version.SetContractInfo(st, version.ContractInfo{
			Contract: version.ContractName,
			Version:  "0.0.1",
		}))

		stored, err := c.Migrate(Env{Time: t0})
		require.NoError(t, err)
		require.Equal(t, "0.0.1", stored.Version)

		info, err := c.ContractInfo()
		require.NoError(t, err)
		require.Equal(t, version.Version, info.Version)
	}

	{ // newer stored version is refused and left alone
		require.NoError(t, version.SetContractInfo(st, version.ContractInfo{
			Contract: version.ContractName,
			Version:  "99.0.0",
		}))

		_, err := c.Migrate(Env{Time: t0})
		require.ErrorIs(t, err, errors.ContractVersionTooNew)

		info, err := c.ContractInfo()
		require.NoError(t, err)
		require.Equal(t, "99.0.0", info.Version)
	}

	{ // other contract
		require.NoError(t, version.SetContractInfo(st, version.ContractInfo{
			Contract: "crates.io:cw-other",
			Version:  "0.0.1",
		}))

		_, err := c.Migrate(Env{Time: t0})
		require.ErrorIs(t, err, errors.ContractNameMismatch)
	}
}
