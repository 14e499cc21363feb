package contract

import (
	"time"

	"boscoin.io/announcer/lib/announcement"
	"boscoin.io/announcer/lib/quorum"
	"boscoin.io/announcer/lib/topic"
	"boscoin.io/announcer/lib/version"
	"boscoin.io/announcer/lib/voting"
)

// AnnouncementQuery selects one ordering: `Author` wins over `Topic`, and
// with neither set every announcement is listed by time. `Since` is an
// inclusive lower bound.
type AnnouncementQuery struct {
	Author string
	Topic  string
	Since  *announcement.Cursor
}

func (c *Contract) Whitelist() (quorum.Whitelist, error) {
	c.RLock()
	defer c.RUnlock()

	return quorum.GetWhitelist(c.st)
}

// Pending lists the proposals that are not expired at `now`, ordered by
// target.
func (c *Contract) Pending(now time.Time) []voting.Proposal {
	c.RLock()
	defer c.RUnlock()

	proposals := []voting.Proposal{}
	for _, p := range voting.LoadProposals(c.st, nil) {
		if !p.IsExpired(now) {
			proposals = append(proposals, p)
		}
	}

	return proposals
}

func (c *Contract) Announcements(q AnnouncementQuery) []announcement.Announcement {
	c.RLock()
	defer c.RUnlock()

	switch {
	case len(q.Author) > 0:
		return c.store.QueryByAuthor(c.st, q.Author, q.Since)
	case len(q.Topic) > 0:
		return c.store.QueryByTopic(c.st, q.Topic, q.Since)
	default:
		return c.store.QueryByTime(c.st, q.Since)
	}
}

func (c *Contract) Announcement(id uint64) (announcement.Announcement, error) {
	c.RLock()
	defer c.RUnlock()

	return c.store.Get(c.st, id)
}

func (c *Contract) Topic(identifier string) (topic.Topic, error) {
	c.RLock()
	defer c.RUnlock()

	return topic.Get(c.st, identifier)
}

func (c *Contract) Topics() []topic.Topic {
	c.RLock()
	defer c.RUnlock()

	return topic.List(c.st)
}

func (c *Contract) Receipt(hash string) (Receipt, error) {
	c.RLock()
	defer c.RUnlock()

	return GetReceipt(c.st, hash)
}

func (c *Contract) ContractInfo() (version.ContractInfo, error) {
	c.RLock()
	defer c.RUnlock()

	return version.GetContractInfo(c.st)
}
