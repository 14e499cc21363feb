package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/voting"
)

type Proposal struct {
	p voting.Proposal
}

func NewProposal(p voting.Proposal) *Proposal {
	return &Proposal{p: p}
}

func (p Proposal) GetMap() hal.Entry {
	confirmed := []string{}
	confirmed = append(confirmed, p.p.Confirmed...)

	return hal.Entry{
		"target":    p.p.Target,
		"action":    string(p.p.Action),
		"confirmed": confirmed,
		"expires":   common.FormatISO8601(p.p.Expires),
	}
}

func (p Proposal) Resource() *hal.Resource {
	return hal.NewResource(p, p.LinkSelf())
}

func (p Proposal) LinkSelf() string {
	return URLPending
}
