package runner

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	rpcjson "github.com/gorilla/rpc/json"
	"github.com/stretchr/testify/require"

	"boscoin.io/announcer/lib/announcement"
	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/contract"
	"boscoin.io/announcer/lib/quorum"
	"boscoin.io/announcer/lib/storage"
	"boscoin.io/announcer/lib/topic"
	"boscoin.io/announcer/lib/transaction/operation"
	"boscoin.io/announcer/lib/version"
)

type jsonrpcTestHelper struct {
	t      *testing.T
	nr     *NodeRunner
	owner  *keypair.Full
	server *httptest.Server
}

func (jp *jsonrpcTestHelper) prepare() {
	jp.nr, jp.owner = MakeTestNodeRunner(true)
	jp.server = httptest.NewServer(jp.nr.Network().Handler())
}

func (jp *jsonrpcTestHelper) done() {
	jp.server.Close()
	jp.nr.Storage().Close()
}

func (jp *jsonrpcTestHelper) st() storage.Backend {
	return jp.nr.Storage()
}

func (jp *jsonrpcTestHelper) request(method string, args interface{}, result interface{}) {
	message, err := rpcjson.EncodeClientRequest(method, args)
	require.NoError(jp.t, err)

	resp, err := http.Post(jp.server.URL+"/debug/jsonrpc", "application/json", bytes.NewBuffer(message))
	require.NoError(jp.t, err)
	defer resp.Body.Close()
	require.Equal(jp.t, http.StatusOK, resp.StatusCode)

	require.NoError(jp.t, rpcjson.DecodeClientResponse(resp.Body, result))
}

func TestJSONRPCHasAndGet(t *testing.T) {
	jp := jsonrpcTestHelper{t: t}
	jp.prepare()
	defer jp.done()

	{
		args := DBKeyArgs(quorum.WhitelistKey)
		var result DBHasResult
		jp.request("DB.Has", &args, &result)
		require.True(t, bool(result))
	}

	{
		args := DBKeyArgs("unknown")
		var result DBHasResult
		jp.request("DB.Has", &args, &result)
		require.False(t, bool(result))
	}

	{
		args := DBKeyArgs(quorum.WhitelistKey)
		var result DBEntry
		jp.request("DB.Get", &args, &result)
		require.Equal(t, quorum.WhitelistKey, string(result.Key))
		require.Equal(t, "whitelist", result.Kind)

		var whitelist quorum.Whitelist
		require.NoError(t, json.Unmarshal(result.Value, &whitelist))

		stored, err := quorum.GetWhitelist(jp.st())
		require.NoError(t, err)
		require.Equal(t, stored, whitelist)
	}

	{
		args := DBKeyArgs(version.ContractInfoKey)
		var result DBEntry
		jp.request("DB.Get", &args, &result)
		require.Equal(t, "contract-info", result.Kind)
	}
}

func TestJSONRPCListDecodesAnnouncementKeys(t *testing.T) {
	jp := jsonrpcTestHelper{t: t}
	jp.prepare()
	defer jp.done()

	sender := contract.Info{Sender: jp.owner.Address()}
	ops := []operation.Operation{
		operation.MakeTestAddTopic("news"),
		operation.MakeTestAnnouncement("first", "news"),
		operation.MakeTestAnnouncement("second", ""),
		operation.MakeTestAnnouncement("third", "news"),
	}
	for i, op := range ops {
		_, err := jp.nr.Contract().Execute(contract.Env{Time: TestTime.Add(time.Duration(i) * time.Hour)}, sender, op)
		require.NoError(t, err)
	}

	{ // untagged scope "" sorts before "news"
		args := DBListArgs{Prefix: announcement.TopicIndexPrefixKey}
		var result DBListResult
		jp.request("DB.List", &args, &result)

		require.Equal(t, MaxLimitListOptions, result.Limit)
		require.Equal(t, 3, len(result.Entries))

		expected := []struct {
			scope string
			id    uint64
		}{{"", 2}, {"news", 1}, {"news", 3}}
		for i, e := range result.Entries {
			require.Equal(t, announcement.KeyKindTopicIndex, e.Kind)
			require.Equal(t, expected[i].scope, e.Scope)
			require.Equal(t, expected[i].id, e.ID)
			require.NotNil(t, e.Time)
			require.True(t, TestTime.Add(time.Duration(e.ID)*time.Hour).Equal(*e.Time))

			var id uint64
			require.NoError(t, json.Unmarshal(e.Value, &id))
			require.Equal(t, e.ID, id)
		}
	}

	{ // reverse with limit
		args := DBListArgs{Prefix: announcement.TimeIndexPrefixKey, Reverse: true, Limit: 2}
		var result DBListResult
		jp.request("DB.List", &args, &result)

		require.Equal(t, uint64(2), result.Limit)
		require.Equal(t, 2, len(result.Entries))
		require.Equal(t, uint64(3), result.Entries[0].ID)
		require.Equal(t, uint64(2), result.Entries[1].ID)
	}

	{
		args := DBListArgs{Prefix: topic.TopicPrefixKey}
		var result DBListResult
		jp.request("DB.List", &args, &result)

		require.Equal(t, 1, len(result.Entries))
		require.Equal(t, "topic", result.Entries[0].Kind)
		require.Equal(t, "news", result.Entries[0].Scope)
	}
}
