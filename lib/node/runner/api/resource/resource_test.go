package resource

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/announcer/lib/announcement"
	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/contract"
	"boscoin.io/announcer/lib/quorum"
	"boscoin.io/announcer/lib/topic"
	"boscoin.io/announcer/lib/voting"
)

func render(t *testing.T, r Resource) map[string]interface{} {
	j, err := json.MarshalIndent(r.Resource(), "", " ")
	require.NoError(t, err)

	var m map[string]interface{}
	common.MustUnmarshalJSON(j, &m)
	return m
}

func selfLink(m map[string]interface{}) interface{} {
	return m["_links"].(map[string]interface{})["self"].(map[string]interface{})["href"]
}

func TestResourceAnnouncement(t *testing.T) {
	now := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	news := topic.Topic{Identifier: "news", Name: "News", Color: "#ff0000"}

	m := render(t, NewAnnouncement(announcement.Announcement{
		ID:      7,
		Title:   "hello",
		Content: "world",
		Author:  "GA",
		Topic:   &news,
		Time:    now,
	}))

	require.Equal(t, float64(7), m["id"])
	require.Equal(t, "hello", m["title"])
	require.Equal(t, "GA", m["author"])
	require.Equal(t, common.FormatISO8601(now), m["time"])
	require.Equal(t, "news", m["topic"].(map[string]interface{})["identifier"])
	require.Equal(t, "/api/v1/announcements/7", selfLink(m))

	m = render(t, NewAnnouncement(announcement.Announcement{ID: 8, Author: "GB", Time: now}))
	require.Nil(t, m["topic"])
}

func TestResourceWhitelistAndProposal(t *testing.T) {
	m := render(t, NewWhitelist(quorum.Whitelist{"GA", "GB"}))
	require.Equal(t, []interface{}{"GA", "GB"}, m["members"])
	require.Equal(t, float64(2), m["size"])
	require.Equal(t, URLWhitelist, selfLink(m))

	expires := time.Date(2021, 3, 8, 12, 0, 0, 0, time.UTC)
	m = render(t, NewProposal(voting.Proposal{
		Target:    "GC",
		Action:    voting.ActionAdd,
		Confirmed: []string{"GA"},
		Expires:   expires,
	}))
	require.Equal(t, "GC", m["target"])
	require.Equal(t, "add", m["action"])
	require.Equal(t, []interface{}{"GA"}, m["confirmed"])
	require.Equal(t, common.FormatISO8601(expires), m["expires"])
}

func TestResourceReceipt(t *testing.T) {
	m := render(t, NewReceipt(contract.Receipt{
		Hash:      "hash",
		Source:    "GA",
		Operation: "add-topic",
		Attributes: []contract.Attribute{
			{Key: contract.AttributeAction, Value: "add_topic"},
			{Key: contract.AttributeIdentifier, Value: "news"},
		},
	}))

	require.Equal(t, "hash", m["hash"])
	require.Equal(t, "add_topic", m["attributes"].(map[string]interface{})["action"])
	require.Equal(t, "/api/v1/transactions/hash", selfLink(m))
}

func TestResourceList(t *testing.T) {
	list := NewResourceList([]Resource{
		NewTopic(topic.Topic{Identifier: "a"}),
		NewTopic(topic.Topic{Identifier: "b"}),
	}, URLTopics)

	m := render(t, list)
	require.Equal(t, float64(2), m["count"])

	records := m["_embedded"].(map[string]interface{})["records"].([]interface{})
	require.Len(t, records, 2)
	require.Equal(t, "a", records[0].(map[string]interface{})["identifier"])
	require.Equal(t, URLTopics, selfLink(m))
}
