package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/announcer/lib/announcement"
	"boscoin.io/announcer/lib/common"
)

type Announcement struct {
	a announcement.Announcement
}

func NewAnnouncement(a announcement.Announcement) *Announcement {
	return &Announcement{a: a}
}

func (a Announcement) GetMap() hal.Entry {
	entry := hal.Entry{
		"id":      a.a.ID,
		"title":   a.a.Title,
		"content": a.a.Content,
		"author":  a.a.Author,
		"time":    common.FormatISO8601(a.a.Time),
	}
	if a.a.Topic != nil {
		entry["topic"] = NewTopic(*a.a.Topic).GetMap()
	}

	return entry
}

func (a Announcement) Resource() *hal.Resource {
	r := hal.NewResource(a, a.LinkSelf())
	r.AddLink("author", hal.NewLink(URLAnnouncements+"?author="+a.a.Author))
	if a.a.Topic != nil {
		r.AddLink("topic", hal.NewLink(strings.Replace(URLTopicByIdentifier, "{id}", a.a.Topic.Identifier, -1)))
	}
	return r
}

func (a Announcement) LinkSelf() string {
	return strings.Replace(URLAnnouncementByID, "{id}", strconv.FormatUint(a.a.ID, 10), -1)
}
