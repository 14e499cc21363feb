package contract

import (
	"sync"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/announcer/lib/announcement"
	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/metrics"
	"boscoin.io/announcer/lib/quorum"
	"boscoin.io/announcer/lib/storage"
	"boscoin.io/announcer/lib/version"
)

var log logging.Logger = logging.New("module", "contract")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

// Env is what the host knows about the moment a command runs.
type Env struct {
	Time   time.Time
	TxHash string
}

// Info names who sent the command.
type Info struct {
	Sender string
}

// Contract is one announcer instance bound to a storage backend. Commands
// are executed one at a time; queries may run concurrently with each other.
type Contract struct {
	sync.RWMutex

	st     storage.Backend
	config common.Config
	engine *quorum.Engine
	store  *announcement.Store
}

func New(st storage.Backend, config common.Config) (*Contract, error) {
	store, err := announcement.NewStore(config.RecordCacheSize)
	if err != nil {
		return nil, err
	}

	return &Contract{
		st:     st,
		config: config,
		engine: quorum.NewEngine(config.ProposalLifetime),
		store:  store,
	}, nil
}

func (c *Contract) Config() common.Config {
	return c.config
}

// Instantiate records the contract version and makes the sender the only
// member of the whitelist.
func (c *Contract) Instantiate(env Env, info Info) (response Response, err error) {
	c.Lock()
	defer c.Unlock()

	err = c.transact(func(ts storage.Backend) error {
		if _, err := version.GetContractInfo(ts); err == nil {
			return errors.ContractAlreadyInstantiated
		} else if !errors.ContractNotInstantiated.Is(err) {
			return err
		}

		if err := version.SetContractInfo(ts, version.NewContractInfo()); err != nil {
			return err
		}

		return quorum.SaveWhitelist(ts, quorum.Whitelist{info.Sender})
	})
	if err != nil {
		return
	}

	metrics.Contract.SetWhitelistSize(1)
	log.Info("contract instantiated", "owner", info.Sender, "version", version.Version, "time", env.Time)

	response.Add(AttributeAction, "instantiate")
	response.Add(AttributeAuthor, info.Sender)

	return
}

// Migrate brings the stored contract info up to the running version. It
// returns the info that was stored before.
func (c *Contract) Migrate(env Env) (stored version.ContractInfo, err error) {
	c.Lock()
	defer c.Unlock()

	err = c.transact(func(ts storage.Backend) (err error) {
		stored, err = version.EnsureFromOlderVersion(ts, version.NewContractInfo())
		return
	})
	if err != nil {
		return
	}

	if stored.Version != version.Version {
		log.Info("contract migrated", "from", stored.Version, "to", version.Version, "time", env.Time)
	}

	return
}

// transact runs `f` inside a storage transaction, committing when it
// returns nil and discarding otherwise.
func (c *Contract) transact(f func(storage.Backend) error) (err error) {
	var ts storage.Backend
	if ts, err = c.st.OpenTransaction(); err != nil {
		return
	}

	if err = f(ts); err != nil {
		if derr := ts.Discard(); derr != nil {
			log.Error("failed to discard transaction", "error", derr)
		}
		return
	}

	return ts.Commit()
}
