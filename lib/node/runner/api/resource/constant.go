package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLTransactions      = APIPrefix + APIVersionV1 + "/transactions"
	URLTransactionByHash = APIPrefix + APIVersionV1 + "/transactions/{id}"
	URLWhitelist         = APIPrefix + APIVersionV1 + "/whitelist"
	URLPending           = APIPrefix + APIVersionV1 + "/pending"
	URLAnnouncements     = APIPrefix + APIVersionV1 + "/announcements"
	URLAnnouncementByID  = APIPrefix + APIVersionV1 + "/announcements/{id}"
	URLTopics            = APIPrefix + APIVersionV1 + "/topics"
	URLTopicByIdentifier = APIPrefix + APIVersionV1 + "/topics/{id}"
)
