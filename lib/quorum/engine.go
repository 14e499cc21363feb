package quorum

import (
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/storage"
	"boscoin.io/announcer/lib/voting"
)

var log logging.Logger = logging.New("module", "quorum")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

// VoteBatchResult counts what one proposeAndVote call did.
//
// Processed counts targets that were eligible for the action, Confirmed
// those whose change was applied and Pending those left waiting for more
// votes.
type VoteBatchResult struct {
	Action    voting.Action `json:"action"`
	Targets   []string      `json:"targets"`
	Processed int           `json:"processed"`
	Confirmed int           `json:"confirmed"`
	Pending   int           `json:"pending"`
	Skipped   int           `json:"skipped"`
}

// Engine applies whitelist changes once a supermajority of the current
// members voted for them.
type Engine struct {
	ProposalLifetime time.Duration
}

func NewEngine(lifetime time.Duration) *Engine {
	if lifetime <= 0 {
		lifetime = common.DefaultProposalLifetime
	}

	return &Engine{ProposalLifetime: lifetime}
}

// ExpireProposals deletes every proposal whose expiry is at or before
// `now` and returns how many were removed.
func (e *Engine) ExpireProposals(st storage.Backend, now time.Time) (int, error) {
	var expired []string
	for _, p := range voting.LoadProposals(st, nil) {
		if p.IsExpired(now) {
			expired = append(expired, p.Target)
		}
	}

	for _, target := range expired {
		if err := voting.RemoveProposal(st, target); err != nil {
			return 0, err
		}
		log.Debug("proposal expired", "target", target)
	}

	return len(expired), nil
}

// ProposeAndVote casts the vote of `caller` on `action` for every target,
// in order. Eligibility and the threshold come from the whitelist as it was
// when the call started; applied changes are written as they happen.
// Nothing is committed here; `st` is expected to be the transaction of the
// enclosing command.
func (e *Engine) ProposeAndVote(
	st storage.Backend,
	now time.Time,
	caller string,
	targets []string,
	action voting.Action,
) (result VoteBatchResult, err error) {
	if err = action.IsValid(); err != nil {
		return
	}

	var snapshot Whitelist
	if snapshot, err = GetWhitelist(st); err != nil {
		return
	}
	if !snapshot.Contains(caller) {
		err = errors.Unauthorized.Clone().SetData("sender", caller)
		return
	}
	if len(targets) < 1 {
		err = errors.InvalidInput.Clone().SetData("reason", "empty target list")
		return
	}

	var threshold int
	{
		var policy *voting.TwoThirdsThresholdPolicy
		if policy, err = voting.NewTwoThirdsThresholdPolicy(len(snapshot)); err != nil {
			return
		}
		if threshold, err = policy.Threshold(); err != nil {
			return
		}
	}

	if _, err = e.ExpireProposals(st, now); err != nil {
		return
	}

	result.Action = action
	result.Targets = targets

	whitelist := append(Whitelist{}, snapshot...)
	for _, target := range targets {
		member := snapshot.Contains(target)
		if (action == voting.ActionAdd && !member) || (action == voting.ActionRemove && member) {
			result.Processed++
		}

		if !whitelist.Contains(caller) {
			// the caller removed itself earlier in this batch
			result.Skipped++
			log.Debug("vote skipped; caller left the whitelist", "caller", caller, "target", target)
			continue
		}

		var applied bool
		if applied, err = e.vote(st, now, threshold, caller, target, action); err != nil {
			return
		}
		if !applied {
			result.Pending++
			continue
		}

		switch action {
		case voting.ActionAdd:
			whitelist = whitelist.Add(target)
		case voting.ActionRemove:
			whitelist = whitelist.Remove(target)
		}
		if err = SaveWhitelist(st, whitelist); err != nil {
			return
		}
		result.Confirmed++
	}

	return
}

// vote records the vote of `caller` and reports whether the proposal for
// `target` reached `threshold`; a confirmed proposal is removed.
func (e *Engine) vote(
	st storage.Backend,
	now time.Time,
	threshold int,
	caller, target string,
	action voting.Action,
) (confirmed bool, err error) {
	var proposal voting.Proposal
	proposal, err = voting.GetProposal(st, target)
	switch {
	case err == nil && !proposal.IsExpired(now) && proposal.Action == action:
	case err == nil || errors.NotFound.Is(err):
		proposal = voting.NewProposal(target, action, now.Add(e.ProposalLifetime))
		err = nil
	default:
		return
	}

	proposal.Confirm(caller)

	if len(proposal.Confirmed) < threshold {
		log.Debug(
			"vote pending",
			"target", target,
			"action", action,
			"confirmed", len(proposal.Confirmed),
			"threshold", threshold,
		)
		err = voting.SaveProposal(st, proposal)
		return
	}

	log.Debug(
		"vote confirmed",
		"target", target,
		"action", action,
		"confirmed", len(proposal.Confirmed),
		"threshold", threshold,
	)

	return true, voting.RemoveProposal(st, target)
}
