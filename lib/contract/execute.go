package contract

import (
	"time"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/metrics"
	"boscoin.io/announcer/lib/quorum"
	"boscoin.io/announcer/lib/storage"
	"boscoin.io/announcer/lib/topic"
	"boscoin.io/announcer/lib/transaction"
	"boscoin.io/announcer/lib/transaction/operation"
	"boscoin.io/announcer/lib/voting"
)

// ExecuteChecker carries one command through the execution chain. Every
// step reads and writes the same storage transaction.
type ExecuteChecker struct {
	common.DefaultChecker

	Contract  *Contract
	Storage   storage.Backend
	Env       Env
	Info      Info
	Operation operation.Operation

	Whitelist quorum.Whitelist
	Response  Response
	Deltas    Deltas
}

// Deltas are the gauge changes a command makes once it is committed.
type Deltas struct {
	Announcements int
	Whitelist     bool
}

var ExecuteCheckerFuncs = []common.CheckerFunc{
	CheckInstantiated,
	CheckNotReplayed,
	CheckSenderAuthorized,
	CheckOperationWellFormed,
	RunOperation,
	StoreReceipt,
}

type handler func(*ExecuteChecker) error

var handlers = map[operation.OperationType]handler{
	operation.TypeAddToWhitelist:      handleAddToWhitelist,
	operation.TypeRemoveFromWhitelist: handleRemoveFromWhitelist,
	operation.TypeAnnouncement:        handleAnnouncement,
	operation.TypeDeleteAnnouncement:  handleDeleteAnnouncement,
	operation.TypeAddTopic:            handleAddTopic,
	operation.TypeRemoveTopic:         handleRemoveTopic,
}

// Execute runs one command as `info.Sender`. Either every change of the
// command is stored or none is.
func (c *Contract) Execute(env Env, info Info, op operation.Operation) (response Response, err error) {
	c.Lock()
	defer c.Unlock()

	begin := time.Now()
	defer func() {
		metrics.Contract.ObserveCommand(begin, string(op.H.Type), err)
	}()

	checker := &ExecuteChecker{
		DefaultChecker: common.DefaultChecker{Funcs: ExecuteCheckerFuncs},
		Contract:       c,
		Env:            env,
		Info:           info,
		Operation:      op,
	}

	err = c.transact(func(ts storage.Backend) error {
		checker.Storage = ts
		return common.RunChecker(checker, common.DefaultDeferFunc)
	})
	if err != nil {
		log.Debug(
			"command failed",
			"caller", info.Sender,
			"action", op.H.Type,
			"tx", env.TxHash,
			"error", err,
		)
		return
	}

	c.observe(checker)

	log.Debug(
		"command executed",
		"caller", info.Sender,
		"action", op.H.Type,
		"tx", env.TxHash,
		"attributes", checker.Response.Attributes,
	)

	return checker.Response, nil
}

// ExecuteTransaction verifies the envelope and executes its operation at
// `now`, recording a receipt under the transaction hash.
func (c *Contract) ExecuteTransaction(now time.Time, tx transaction.Transaction) (Response, error) {
	if err := tx.IsWellFormed(c.config.NetworkID); err != nil {
		return Response{}, err
	}

	return c.Execute(
		Env{Time: now, TxHash: tx.GetHash()},
		Info{Sender: tx.Source()},
		tx.B.Operation,
	)
}

func (c *Contract) observe(checker *ExecuteChecker) {
	if checker.Deltas.Announcements != 0 {
		metrics.Contract.AddAnnouncements(checker.Deltas.Announcements)
	}
	if checker.Deltas.Whitelist {
		metrics.Contract.SetWhitelistSize(len(checker.Whitelist))
	}
	if checker.Operation.H.Type == operation.TypeAddToWhitelist ||
		checker.Operation.H.Type == operation.TypeRemoveFromWhitelist {
		var pending int
		for _, p := range voting.LoadProposals(c.st, nil) {
			if !p.IsExpired(checker.Env.Time) {
				pending++
			}
		}
		metrics.Contract.SetPendingProposals(pending)
	}
}

func CheckInstantiated(c common.Checker, args ...interface{}) error {
	checker := c.(*ExecuteChecker)

	whitelist, err := quorum.GetWhitelist(checker.Storage)
	if err != nil {
		return err
	}
	checker.Whitelist = whitelist

	return nil
}

// CheckNotReplayed rejects a transaction hash that was already executed.
// Commands without a hash are not tracked.
func CheckNotReplayed(c common.Checker, args ...interface{}) error {
	checker := c.(*ExecuteChecker)
	if len(checker.Env.TxHash) < 1 {
		return nil
	}

	exists, err := ExistsReceipt(checker.Storage, checker.Env.TxHash)
	if err != nil {
		return err
	} else if exists {
		return errors.TransactionAlreadyExists.Clone().SetData("hash", checker.Env.TxHash)
	}

	return nil
}

func CheckSenderAuthorized(c common.Checker, args ...interface{}) error {
	checker := c.(*ExecuteChecker)
	if !checker.Whitelist.Contains(checker.Info.Sender) {
		return errors.Unauthorized.Clone().SetData("sender", checker.Info.Sender)
	}

	return nil
}

func CheckOperationWellFormed(c common.Checker, args ...interface{}) error {
	return c.(*ExecuteChecker).Operation.IsWellFormed()
}

func RunOperation(c common.Checker, args ...interface{}) error {
	checker := c.(*ExecuteChecker)

	h, found := handlers[checker.Operation.H.Type]
	if !found {
		return errors.UnknownOperationType.Clone().SetData("type", string(checker.Operation.H.Type))
	}

	return h(checker)
}

func StoreReceipt(c common.Checker, args ...interface{}) error {
	checker := c.(*ExecuteChecker)
	if len(checker.Env.TxHash) < 1 {
		return nil
	}

	return SaveReceipt(checker.Storage, Receipt{
		Hash:       checker.Env.TxHash,
		Source:     checker.Info.Sender,
		Operation:  string(checker.Operation.H.Type),
		Attributes: checker.Response.Attributes,
		Time:       checker.Env.Time,
	})
}

func handleAddToWhitelist(checker *ExecuteChecker) error {
	body, ok := checker.Operation.B.(operation.AddToWhitelist)
	if !ok {
		return errors.InvalidOperation
	}

	return proposeAndVote(checker, body.Authors, voting.ActionAdd)
}

func handleRemoveFromWhitelist(checker *ExecuteChecker) error {
	body, ok := checker.Operation.B.(operation.RemoveFromWhitelist)
	if !ok {
		return errors.InvalidOperation
	}

	return proposeAndVote(checker, body.Authors, voting.ActionRemove)
}

func proposeAndVote(checker *ExecuteChecker, targets []string, action voting.Action) error {
	result, err := checker.Contract.engine.ProposeAndVote(
		checker.Storage,
		checker.Env.Time,
		checker.Info.Sender,
		targets,
		action,
	)
	if err != nil {
		return err
	}

	if result.Confirmed > 0 {
		if checker.Whitelist, err = quorum.GetWhitelist(checker.Storage); err != nil {
			return err
		}
		checker.Deltas.Whitelist = true
	}

	checker.Response.Add(AttributeAction, string(action))
	checker.Response.Add(AttributeAuthor, common.CommaJoin(targets))
	checker.Response.AddInt(AttributeProcessed, result.Processed)
	checker.Response.AddInt(AttributeConfirmed, result.Confirmed)
	checker.Response.AddInt(AttributePending, result.Pending)

	return nil
}

func handleAnnouncement(checker *ExecuteChecker) error {
	body, ok := checker.Operation.B.(operation.Announcement)
	if !ok {
		return errors.InvalidOperation
	}

	a, err := checker.Contract.store.Create(
		checker.Storage,
		checker.Info.Sender,
		body.Title,
		body.Content,
		body.Topic,
		checker.Env.Time,
	)
	if err != nil {
		return err
	}
	checker.Deltas.Announcements++

	checker.Response.Add(AttributeAction, "announcement")
	checker.Response.Add(AttributeAuthor, checker.Info.Sender)
	checker.Response.AddUint64(AttributeID, a.ID)

	return nil
}

func handleDeleteAnnouncement(checker *ExecuteChecker) error {
	body, ok := checker.Operation.B.(operation.DeleteAnnouncement)
	if !ok {
		return errors.InvalidOperation
	}

	deleted, err := checker.Contract.store.Delete(checker.Storage, body.ID)
	if err != nil {
		return err
	}
	if deleted {
		checker.Deltas.Announcements--
	}

	checker.Response.Add(AttributeAction, "delete_announcement")
	checker.Response.Add(AttributeAuthor, checker.Info.Sender)
	checker.Response.AddUint64(AttributeID, body.ID)

	return nil
}

func handleAddTopic(checker *ExecuteChecker) error {
	body, ok := checker.Operation.B.(operation.AddTopic)
	if !ok {
		return errors.InvalidOperation
	}

	err := topic.Register(checker.Storage, topic.Topic{
		Identifier:  body.Identifier,
		Name:        body.Name,
		Description: body.Description,
		Color:       body.Color,
	})
	if err != nil {
		return err
	}

	checker.Response.Add(AttributeAction, "add_topic")
	checker.Response.Add(AttributeAuthor, checker.Info.Sender)
	checker.Response.Add(AttributeIdentifier, body.Identifier)

	return nil
}

func handleRemoveTopic(checker *ExecuteChecker) error {
	body, ok := checker.Operation.B.(operation.RemoveTopic)
	if !ok {
		return errors.InvalidOperation
	}

	if err := topic.Remove(checker.Storage, body.Identifier, checker.Contract.store); err != nil {
		return err
	}

	checker.Response.Add(AttributeAction, "remove_topic")
	checker.Response.Add(AttributeAuthor, checker.Info.Sender)
	checker.Response.Add(AttributeIdentifier, body.Identifier)

	return nil
}
