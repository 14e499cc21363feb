package client

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/node/runner"
	"boscoin.io/announcer/lib/transaction"
	"boscoin.io/announcer/lib/transaction/operation"
	"boscoin.io/announcer/lib/version"
)

type clientTestHelper struct {
	t      *testing.T
	nr     *runner.NodeRunner
	owner  *keypair.Full
	server *httptest.Server
	client *Client
}

func newClientTestHelper(t *testing.T) *clientTestHelper {
	nr, owner := runner.MakeTestNodeRunner(false)
	server := httptest.NewServer(nr.Network().Handler())

	return &clientTestHelper{
		t:      t,
		nr:     nr,
		owner:  owner,
		server: server,
		client: NewClient(server.URL),
	}
}

func (h *clientTestHelper) done() {
	h.client.Close()
	h.server.Close()
	h.nr.Storage().Close()
}

func (h *clientTestHelper) submit(kp *keypair.Full, op operation.Operation) (Receipt, error) {
	tx := transaction.NewTransaction(kp.Address(), op)
	tx.Sign(kp, h.nr.Conf.NetworkID)

	return h.client.SubmitTransaction(tx)
}

func TestClientNodeInfo(t *testing.T) {
	h := newClientTestHelper(t)
	defer h.done()

	info, err := h.client.NodeInfo()
	require.NoError(t, err)
	require.Equal(t, version.ContractName, info.Contract.Contract)
	require.Equal(t, string(h.nr.Conf.NetworkID), info.Policy.NetworkID)
}

func TestClientWhitelist(t *testing.T) {
	h := newClientTestHelper(t)
	defer h.done()

	b := keypair.Random()
	c := keypair.Random()

	receipt, err := h.submit(h.owner, operation.MakeTestAddToWhitelist(b.Address(), c.Address()))
	require.NoError(t, err)
	require.Equal(t, "add-to-whitelist", receipt.Operation)
	require.Equal(t, "add", receipt.Attributes["action"])
	require.Equal(t, "2", receipt.Attributes["confirmed"])

	loaded, err := h.client.LoadReceipt(receipt.Hash)
	require.NoError(t, err)
	require.Equal(t, receipt.Attributes, loaded.Attributes)

	whitelist, err := h.client.LoadWhitelist()
	require.NoError(t, err)
	require.Equal(t, 3, whitelist.Size)
	require.ElementsMatch(t, []string{h.owner.Address(), b.Address(), c.Address()}, whitelist.Members)

	_, err = h.submit(b, operation.MakeTestRemoveFromWhitelist(c.Address()))
	require.NoError(t, err)

	pending, err := h.client.LoadPending()
	require.NoError(t, err)
	require.Equal(t, 1, pending.Count)
	require.Equal(t, c.Address(), pending.Embedded.Records[0].Target)
	require.Equal(t, []string{b.Address()}, pending.Embedded.Records[0].Confirmed)

	_, err = h.submit(keypair.Random(), operation.MakeTestAddTopic("news"))
	require.Error(t, err)
	require.True(t, errors.Unauthorized.Is(err))
}

func TestClientAnnouncements(t *testing.T) {
	h := newClientTestHelper(t)
	defer h.done()

	_, err := h.submit(h.owner, operation.MakeTestAddTopic("news"))
	require.NoError(t, err)

	topic, err := h.client.LoadTopic("news")
	require.NoError(t, err)
	require.Equal(t, "news", topic.Identifier)

	topics, err := h.client.LoadTopics()
	require.NoError(t, err)
	require.Equal(t, 1, topics.Count)

	receipt, err := h.submit(h.owner, operation.MakeTestAnnouncement("first", "news"))
	require.NoError(t, err)
	require.Equal(t, "1", receipt.Attributes["id"])

	_, err = h.submit(h.owner, operation.MakeTestAnnouncement("second", ""))
	require.NoError(t, err)

	page, err := h.client.LoadAnnouncements()
	require.NoError(t, err)
	require.Equal(t, 2, page.Count)
	require.Equal(t, "second", page.Embedded.Records[0].Title)

	page, err = h.client.LoadAnnouncements(Q{Key: QueryTopic, Value: "news"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Count)
	require.Equal(t, "first", page.Embedded.Records[0].Title)
	require.Equal(t, "news", page.Embedded.Records[0].Topic.Identifier)

	page, err = h.client.LoadAnnouncements(Since(runner.TestTime, 2)...)
	require.NoError(t, err)
	require.Equal(t, 1, page.Count)
	require.Equal(t, "second", page.Embedded.Records[0].Title)

	a, err := h.client.LoadAnnouncement(1)
	require.NoError(t, err)
	require.Equal(t, h.owner.Address(), a.Author)

	_, err = h.client.LoadAnnouncement(100)
	require.True(t, errors.NotFound.Is(err))

	_, err = h.client.LoadTopic("sports")
	require.True(t, errors.NotFound.Is(err))
}
