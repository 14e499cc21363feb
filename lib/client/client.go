package client

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/network/httputils"
	"boscoin.io/announcer/lib/node"
	"boscoin.io/announcer/lib/transaction"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlNodeInfo           = "/"
	UrlTransactions       = "/transactions"
	UrlTransactionByHash  = "/transactions/{id}"
	UrlWhitelist          = "/whitelist"
	UrlPending            = "/pending"
	UrlAnnouncements      = "/announcements"
	UrlAnnouncementByID   = "/announcements/{id}"
	UrlTopics             = "/topics"
	UrlTopicsByIdentifier = "/topics/{id}"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryAuthor  QueryKey = "author"
	QueryTopic   QueryKey = "topic"
	QuerySince   QueryKey = "since"
	QuerySinceID QueryKey = "since_id"
)

type Q struct {
	Key   QueryKey
	Value string
}

// Since builds the `since` query; `id` is sent only when it is set.
func Since(t time.Time, id uint64) []Q {
	qs := []Q{{Key: QuerySince, Value: common.FormatISO8601(t)}}
	if id > 0 {
		qs = append(qs, Q{Key: QuerySinceID, Value: strconv.FormatUint(id, 10)})
	}
	return qs
}

type Queries []Q

func (qs Queries) toQueryString() string {
	if len(qs) == 0 {
		return ""
	}

	urlValues := neturl.Values{}
	for _, q := range qs {
		switch q.Key {
		case QueryAuthor, QueryTopic, QuerySince, QuerySinceID:
			urlValues.Add(q.Key.String(), q.Value)
		}
	}
	return "?" + urlValues.Encode()
}

// Client talks to the HTTP API of an announcer node. Failed requests
// answered with a problem document come back as `*errors.Error` when the
// problem carries an error code.
type Client struct {
	URL string

	HTTP *common.HTTP2Client
}

func NewClient(url string) *Client {
	httpClient, err := common.NewPersistentHTTP2Client(10*time.Second, 0, true, common.DefaultRetrySetting)
	if err != nil {
		panic(err)
	}
	return &Client{
		URL:  strings.TrimRight(url, "/"),
		HTTP: httpClient,
	}
}

func (c *Client) Close() {
	c.HTTP.Close()
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return
	}

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p httputils.Problem
		if err = json.Unmarshal(body, &p); err != nil {
			return errors.UnexpectedResponse.Clone().SetData("status", resp.StatusCode)
		}
		if e := p.AsError(); e != nil {
			return e
		}
		return errors.UnexpectedResponse.Clone().SetData("status", resp.StatusCode).SetData("title", p.Title)
	}

	return json.Unmarshal(body, response)
}

func (c *Client) Get(path string, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Get(url, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Post(url, body, headers)
}

func (c *Client) load(path string, v interface{}) error {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := c.Get(path, headers)
	if err != nil {
		return err
	}

	return c.toResponse(resp, v)
}

func (c *Client) NodeInfo() (info node.NodeInfo, err error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Get(c.URL+UrlNodeInfo, headers)
	if err != nil {
		return
	}

	err = c.toResponse(resp, &info)
	return
}

// SubmitTransaction posts a signed transaction and returns its receipt.
func (c *Client) SubmitTransaction(tx transaction.Transaction) (receipt Receipt, err error) {
	body, err := tx.Serialize()
	if err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := c.Post(UrlTransactions, body, headers)
	if err != nil {
		return
	}

	err = c.toResponse(resp, &receipt)
	return
}

func (c *Client) LoadReceipt(hash string) (receipt Receipt, err error) {
	err = c.load(strings.Replace(UrlTransactionByHash, "{id}", neturl.PathEscape(hash), -1), &receipt)
	return
}

func (c *Client) LoadWhitelist() (whitelist Whitelist, err error) {
	err = c.load(UrlWhitelist, &whitelist)
	return
}

func (c *Client) LoadPending() (page ProposalsPage, err error) {
	err = c.load(UrlPending, &page)
	return
}

func (c *Client) LoadAnnouncements(queries ...Q) (page AnnouncementsPage, err error) {
	err = c.load(UrlAnnouncements+Queries(queries).toQueryString(), &page)
	return
}

func (c *Client) LoadAnnouncement(id uint64) (a Announcement, err error) {
	err = c.load(strings.Replace(UrlAnnouncementByID, "{id}", strconv.FormatUint(id, 10), -1), &a)
	return
}

func (c *Client) LoadTopics() (page TopicsPage, err error) {
	err = c.load(UrlTopics, &page)
	return
}

func (c *Client) LoadTopic(identifier string) (t Topic, err error) {
	err = c.load(strings.Replace(UrlTopicsByIdentifier, "{id}", neturl.PathEscape(identifier), -1), &t)
	return
}
