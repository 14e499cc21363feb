package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/announcer/lib/quorum"
)

type Whitelist struct {
	w quorum.Whitelist
}

func NewWhitelist(w quorum.Whitelist) *Whitelist {
	return &Whitelist{w: w}
}

func (w Whitelist) GetMap() hal.Entry {
	members := []string{}
	members = append(members, w.w...)

	return hal.Entry{
		"members": members,
		"size":    len(members),
	}
}

func (w Whitelist) Resource() *hal.Resource {
	r := hal.NewResource(w, w.LinkSelf())
	r.AddLink("pending", hal.NewLink(URLPending))
	r.AddLink("announcements", hal.NewLink(URLAnnouncements+"{?author}", hal.LinkAttr{"templated": true}))
	return r
}

func (w Whitelist) LinkSelf() string {
	return URLWhitelist
}
