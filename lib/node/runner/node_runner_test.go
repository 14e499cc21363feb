package runner

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/node"
	"boscoin.io/announcer/lib/transaction"
	"boscoin.io/announcer/lib/transaction/operation"
	"boscoin.io/announcer/lib/version"
)

func TestNodeRunnerNodeInfo(t *testing.T) {
	nr, _ := MakeTestNodeRunner(false)
	defer nr.Storage().Close()

	ts := httptest.NewServer(nr.Network().Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	info, err := node.NewNodeInfoFromJSON(b)
	require.NoError(t, err)
	require.Equal(t, version.Version, info.Node.Version.Version)
	require.Equal(t, common.FormatISO8601(TestTime), info.Node.Started)
	require.Equal(t, "announcer-unittest", info.Policy.NetworkID)
	require.Equal(t, version.ContractName, info.Contract.Contract)
	require.Equal(t, 1, info.Contract.WhitelistSize)
}

func TestNodeRunnerServesAPI(t *testing.T) {
	nr, owner := MakeTestNodeRunner(false)
	defer nr.Storage().Close()

	ts := httptest.NewServer(nr.Network().Handler())
	defer ts.Close()

	tx := transaction.NewTransaction(owner.Address(), operation.MakeTestAnnouncement("hello", ""))
	tx.Sign(owner, nr.Conf.NetworkID)
	body, err := tx.Serialize()
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/v1/transactions", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest("GET", ts.URL+"/api/v1/announcements", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var m map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	require.Equal(t, float64(1), m["count"])
}

func TestNodeRunnerMetrics(t *testing.T) {
	nr, _ := MakeTestNodeRunner(false)
	defer nr.Storage().Close()

	ts := httptest.NewServer(nr.Network().Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNodeRunnerDebugDisabled(t *testing.T) {
	nr, _ := MakeTestNodeRunner(false)
	defer nr.Storage().Close()

	ts := httptest.NewServer(nr.Network().Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/debug/jsonrpc", "application/json", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
