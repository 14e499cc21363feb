package voting

import (
	"time"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
)

// Action is the whitelist change a proposal asks for.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

func (a Action) IsValid() error {
	switch a {
	case ActionAdd, ActionRemove:
		return nil
	}

	return errors.InvalidInput.Clone().SetData("action", string(a))
}

// Proposal is the open vote on one target account. There is at most one
// per target; Confirmed only grows.
type Proposal struct {
	Target    string    `json:"target"`
	Action    Action    `json:"action"`
	Confirmed []string  `json:"confirmed"`
	Expires   time.Time `json:"expires"`
}

func NewProposal(target string, action Action, expires time.Time) Proposal {
	return Proposal{
		Target:    target,
		Action:    action,
		Confirmed: []string{},
		Expires:   expires,
	}
}

// IsExpired is true from the expiry instant on.
func (p Proposal) IsExpired(now time.Time) bool {
	return !now.Before(p.Expires)
}

func (p Proposal) HasConfirmed(voter string) bool {
	_, found := common.InStringArray(p.Confirmed, voter)
	return found
}

// Confirm records the vote of `voter` and reports whether it was new.
func (p *Proposal) Confirm(voter string) bool {
	if p.HasConfirmed(voter) {
		return false
	}

	p.Confirmed = append(p.Confirmed, voter)
	return true
}
