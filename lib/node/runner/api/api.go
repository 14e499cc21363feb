package api

import (
	"fmt"
	"net/http"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/contract"
	"boscoin.io/announcer/lib/node"
)

const APIVersionV1 = "v1"

// MaxTransactionSize bounds the body of a submitted transaction.
const MaxTransactionSize int64 = 64 * 1024

// API Endpoint patterns
const (
	GetNodeInfoPattern                 = "/"
	PostTransactionPattern             = "/transactions"
	GetTransactionByHashHandlerPattern = "/transactions/{id}"
	GetWhitelistHandlerPattern         = "/whitelist"
	GetPendingHandlerPattern           = "/pending"
	GetAnnouncementsHandlerPattern     = "/announcements"
	GetAnnouncementHandlerPattern      = "/announcements/{id:[0-9]+}"
	GetTopicsHandlerPattern            = "/topics"
	GetTopicByIdentifierHandlerPattern = "/topics/{id}"
)

type NetworkHandlerAPI struct {
	contract  *contract.Contract
	clock     common.Clock
	urlPrefix string
	version   string

	GetNodeInfo func() node.NodeInfo
}

func NewNetworkHandlerAPI(c *contract.Contract, clock common.Clock, urlPrefix string) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		contract:  c,
		clock:     clock,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

type Route struct {
	Pattern string
	Methods []string
	Handler func(http.ResponseWriter, *http.Request)
}

// Routes lists the handlers with their full URL patterns.
func (api NetworkHandlerAPI) Routes() []Route {
	return []Route{
		{api.HandlerURLPattern(PostTransactionPattern), []string{"POST"}, api.PostTransactionHandler},
		{api.HandlerURLPattern(GetTransactionByHashHandlerPattern), []string{"GET", "OPTIONS"}, api.GetTransactionByHashHandler},
		{api.HandlerURLPattern(GetWhitelistHandlerPattern), []string{"GET", "OPTIONS"}, api.GetWhitelistHandler},
		{api.HandlerURLPattern(GetPendingHandlerPattern), []string{"GET", "OPTIONS"}, api.GetPendingHandler},
		{api.HandlerURLPattern(GetAnnouncementsHandlerPattern), []string{"GET", "OPTIONS"}, api.GetAnnouncementsHandler},
		{api.HandlerURLPattern(GetAnnouncementHandlerPattern), []string{"GET", "OPTIONS"}, api.GetAnnouncementHandler},
		{api.HandlerURLPattern(GetTopicsHandlerPattern), []string{"GET", "OPTIONS"}, api.GetTopicsHandler},
		{api.HandlerURLPattern(GetTopicByIdentifierHandlerPattern), []string{"GET", "OPTIONS"}, api.GetTopicHandler},
	}
}
