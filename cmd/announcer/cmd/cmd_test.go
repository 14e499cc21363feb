package cmd

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	cmdcommon "boscoin.io/announcer/cmd/announcer/common"

	"boscoin.io/announcer/lib/client"
	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/contract"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/node/runner"
	"boscoin.io/announcer/lib/quorum"
	"boscoin.io/announcer/lib/storage"
	"boscoin.io/announcer/lib/transaction/operation"
	"boscoin.io/announcer/lib/version"
)

func TestParseRateLimit(t *testing.T) {
	parse := func(cmdline string) (common.RateLimitRule, error) {
		testCmd := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)

		var fr cmdcommon.ListFlags
		testCmd.Var(&fr, "rate-limit-api", "")
		require.NoError(t, testCmd.Parse(strings.Fields(cmdline)))

		return ParseRateLimit(fr, "100-S")
	}

	{ // default
		rule, err := parse("")
		require.NoError(t, err)
		require.Equal(t, int64(100), rule.Default.Limit)
		require.Equal(t, time.Second, rule.Default.Period)
		require.Empty(t, rule.ByIPAddress)
	}

	{ // by ip address
		rule, err := parse("--rate-limit-api=10-M --rate-limit-api=127.0.0.1=0-S --rate-limit-api=10.0.0.1=3-H")
		require.NoError(t, err)
		require.Equal(t, int64(10), rule.Default.Limit)
		require.Equal(t, time.Minute, rule.Default.Period)
		require.Equal(t, int64(0), rule.ByIPAddress["127.0.0.1"].Limit)
		require.Equal(t, int64(3), rule.ByIPAddress["10.0.0.1"].Limit)
		require.Equal(t, time.Hour, rule.ByIPAddress["10.0.0.1"].Period)
	}

	{ // weird values
		_, err := parse("--rate-limit-api=showme")
		require.Error(t, err)

		_, err = parse("--rate-limit-api=localhost=10-S")
		require.Error(t, err)
	}
}

func TestPrepareContract(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	c, err := contract.New(st, common.NewTestConfig())
	require.NoError(t, err)

	now := time.Now()
	owner := keypair.Random().Address()

	{ // nothing to migrate without an owner
		err := PrepareContract(c, "", now)
		require.Error(t, err)
		require.Contains(t, err.Error(), "--owner")
	}

	require.NoError(t, PrepareContract(c, owner, now))

	whitelist, err := quorum.GetWhitelist(st)
	require.NoError(t, err)
	require.Equal(t, quorum.Whitelist{owner}, whitelist)

	{ // restarting keeps the state
		require.NoError(t, PrepareContract(c, keypair.Random().Address(), now))
		require.NoError(t, PrepareContract(c, "", now))

		whitelist, err := quorum.GetWhitelist(st)
		require.NoError(t, err)
		require.Equal(t, quorum.Whitelist{owner}, whitelist)

		info, err := version.GetContractInfo(st)
		require.NoError(t, err)
		require.Equal(t, version.Version, info.Version)
	}
}

func TestMakeTransaction(t *testing.T) {
	kp := keypair.Random()

	tx, err := MakeTransaction(kp, "test-network", operation.NewAddTopic("news", "News", "", ""))
	require.NoError(t, err)
	require.Equal(t, kp.Address(), tx.Source())
	require.NoError(t, tx.IsWellFormed([]byte("test-network")))
	require.True(t, errors.InvalidSignature.Is(tx.IsWellFormed([]byte("other-network"))))

	_, err = MakeTransaction(kp, "test-network", operation.NewAddTopic(" ", "", "", ""))
	require.True(t, errors.InvalidInput.Is(err))
}

func TestAnnouncementQueries(t *testing.T) {
	qs, err := AnnouncementQueries("", "", "", 0)
	require.NoError(t, err)
	require.Empty(t, qs)

	since := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	qs, err = AnnouncementQueries("GA", "news", "1614600000", 3)
	require.NoError(t, err)
	require.Equal(t, []client.Q{
		{Key: client.QueryAuthor, Value: "GA"},
		{Key: client.QueryTopic, Value: "news"},
		{Key: client.QuerySince, Value: common.FormatISO8601(since)},
		{Key: client.QuerySinceID, Value: "3"},
	}, qs)

	_, err = AnnouncementQueries("", "", "yesterday", 0)
	require.Error(t, err)
}

func TestClientCommands(t *testing.T) {
	nr, owner := runner.MakeTestNodeRunner(false)
	defer nr.Storage().Close()

	ts := httptest.NewServer(nr.Network().Handler())
	defer ts.Close()

	var buf bytes.Buffer
	output = &buf

	execute := func(args ...string) map[string]interface{} {
		buf.Reset()

		SetArgs(args)
		require.NoError(t, rootCmd.Execute())

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &m), buf.String())
		return m
	}

	signing := []string{
		"--endpoint", ts.URL,
		"--network-id", string(nr.Conf.NetworkID),
		"--secret-seed", owner.Seed(),
		"--format", "json",
	}
	reading := []string{"--endpoint", ts.URL, "--format", "json"}

	member := keypair.Random()

	m := execute(append([]string{"whitelist", "add", member.Address()}, signing...)...)
	attributes := m["attributes"].(map[string]interface{})
	require.Equal(t, "add", attributes["action"])
	require.Equal(t, "1", attributes["confirmed"])

	m = execute(append([]string{"topic", "add", "news", "--name", "News"}, signing...)...)
	require.Equal(t, "add-topic", m["operation"])

	m = execute(append([]string{"announce", "hello", "world", "--topic", "news"}, signing...)...)
	require.Equal(t, "1", m["attributes"].(map[string]interface{})["id"])

	m = execute(append([]string{"query", "whitelist"}, reading...)...)
	require.ElementsMatch(t, []interface{}{owner.Address(), member.Address()}, m["members"])

	m = execute(append([]string{"query", "announcements", "--topic", "news"}, reading...)...)
	require.Equal(t, float64(1), m["count"])

	m = execute(append([]string{"query", "announcement", "1"}, reading...)...)
	require.Equal(t, "hello", m["title"])

	m = execute(append([]string{"announcement", "delete", "1"}, signing...)...)
	require.Equal(t, "delete-announcement", m["operation"])

	m = execute(append([]string{"query", "topic", "news"}, reading...)...)
	require.Equal(t, "News", m["name"])

	m = execute(append([]string{"query", "node"}, reading...)...)
	require.Equal(t, version.ContractName, m["contract"].(map[string]interface{})["contract"])
}
