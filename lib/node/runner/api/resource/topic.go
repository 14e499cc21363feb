package resource

import (
	"net/url"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/announcer/lib/topic"
)

type Topic struct {
	t topic.Topic
}

func NewTopic(t topic.Topic) *Topic {
	return &Topic{t: t}
}

func (t Topic) GetMap() hal.Entry {
	return hal.Entry{
		"identifier":  t.t.Identifier,
		"name":        t.t.Name,
		"description": t.t.Description,
		"color":       t.t.Color,
	}
}

func (t Topic) Resource() *hal.Resource {
	r := hal.NewResource(t, t.LinkSelf())
	r.AddLink("announcements", hal.NewLink(URLAnnouncements+"?topic="+url.QueryEscape(t.t.Identifier)))
	return r
}

func (t Topic) LinkSelf() string {
	return strings.Replace(URLTopicByIdentifier, "{id}", url.PathEscape(t.t.Identifier), -1)
}
