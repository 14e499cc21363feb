package cmd

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/oklog/run"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter/v3"
	"golang.org/x/net/http2"

	cmdcommon "boscoin.io/announcer/cmd/announcer/common"
	"boscoin.io/announcer/lib/announcement"
	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/contract"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/metrics"
	"boscoin.io/announcer/lib/network"
	"boscoin.io/announcer/lib/node/runner"
	"boscoin.io/announcer/lib/quorum"
	"boscoin.io/announcer/lib/storage"
)

// NTPSyncInterval is how often the NTP clock offset is refreshed.
const NTPSyncInterval = 10 * time.Minute

var settings common.Settings

var (
	flagEndpointString      string
	flagStorageConfigString string
	flagNetworkID           string
	flagOwner               string
	flagLogLevel            string
	flagLogFormat           string
	flagLogOutput           string
	flagRateLimitAPI        cmdcommon.ListFlags
	flagProposalLifetime    time.Duration
	flagRecordCacheSize     int
	flagNTPServer           string
	flagDebug               bool
	flagVerbose             bool
	flagTLSCertFile         string
	flagTLSKeyFile          string
)

var (
	nodeCmd *cobra.Command

	nodeEndpoint  *common.Endpoint
	storageConfig *storage.Config
	nodeConfig    common.Config
	logLevel      logging.Lvl
	logHandler    logging.Handler
	log           logging.Logger = logging.New("module", "main")
)

func init() {
	var err error
	if settings, err = common.LoadSettings(); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid environment; %v\n", err)
		os.Exit(1)
	}

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run announcer node",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsNode()

			runNode()
		},
	}

	nodeCmd.Flags().StringVar(&flagEndpointString, "endpoint", settings.Endpoint, "endpoint uri to listen on ('http://0.0.0.0:12345')")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", settings.Storage, "storage uri, {memory://, file:///path, badger-memory://, badger:///path}")
	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", settings.NetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagOwner, "owner", settings.Owner, "public address of the first whitelist member; instantiates the contract")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", settings.LogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogFormat, "log-format", settings.LogFormat, "log format, {terminal, json}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", settings.LogOutput, "set log output file")
	nodeCmd.Flags().Var(&flagRateLimitAPI, "rate-limit-api", "rate limit for the api, '<limit>-<period>' or '<ip>=<limit>-<period>'; '0-S' disables it (default \""+settings.RateLimitAPI+"\")")
	nodeCmd.Flags().DurationVar(&flagProposalLifetime, "proposal-lifetime", settings.ProposalLifetime, "how long a whitelist proposal stays open")
	nodeCmd.Flags().IntVar(&flagRecordCacheSize, "record-cache-size", settings.RecordCacheSize, "number of announcements kept in memory")
	nodeCmd.Flags().StringVar(&flagNTPServer, "ntp-server", settings.NTPServer, "correct the clock with this ntp server")
	nodeCmd.Flags().BoolVar(&flagDebug, "debug", settings.DebugRPC, "serve the storage inspector and pprof under /debug")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "verbose http2 logs")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", settings.TLSCertFile, "tls certificate file")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", settings.TLSKeyFile, "tls key file")

	rootCmd.AddCommand(nodeCmd)
}

// ParseRateLimit reads `<rate>` as the default rate and `<ip>=<rate>`
// as the rate of a single client, eg. `100-S 127.0.0.1=0-S`. A zero limit
// disables limiting.
func ParseRateLimit(values []string, defaultRate string) (rule common.RateLimitRule, err error) {
	var rate limiter.Rate
	if rate, err = limiter.NewRateFromFormatted(defaultRate); err != nil {
		return
	}
	rule = common.NewRateLimitRule(rate)

	for _, v := range values {
		v = strings.TrimSpace(v)

		i := strings.Index(v, "=")
		if i < 0 {
			if rule.Default, err = limiter.NewRateFromFormatted(v); err != nil {
				return
			}
			continue
		}

		ip := net.ParseIP(strings.TrimSpace(v[:i]))
		if ip == nil {
			err = pkgerrors.Errorf("invalid ip address, %q", v[:i])
			return
		}
		if rate, err = limiter.NewRateFromFormatted(strings.TrimSpace(v[i+1:])); err != nil {
			return
		}
		rule.ByIPAddress[ip.String()] = rate
	}

	return
}

func parseFlagsNode() {
	var err error

	if len(flagNetworkID) < 1 {
		cmdcommon.PrintFlagsError(nodeCmd, "--network-id", pkgerrors.New("--network-id must be given"))
	}

	if len(flagOwner) > 0 && !keypair.IsValidAddress(flagOwner) {
		cmdcommon.PrintFlagsError(nodeCmd, "--owner", errors.BadPublicAddress)
	}

	if nodeEndpoint, err = common.ParseEndpoint(flagEndpointString); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--endpoint", err)
	}

	queries := nodeEndpoint.Query()
	if len(flagTLSCertFile) > 0 {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(nodeCmd, "--tls-cert", err)
		}
		queries.Set("TLSCertFile", flagTLSCertFile)
	}
	if len(flagTLSKeyFile) > 0 {
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(nodeCmd, "--tls-key", err)
		}
		queries.Set("TLSKeyFile", flagTLSKeyFile)
	}
	if len(queries.Get("IdleTimeout")) < 1 {
		queries.Set("IdleTimeout", "3s")
	}
	nodeEndpoint.RawQuery = queries.Encode()

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}

	nodeConfig = common.NewConfig([]byte(flagNetworkID))
	if flagProposalLifetime <= 0 {
		cmdcommon.PrintFlagsError(nodeCmd, "--proposal-lifetime", pkgerrors.New("must be positive"))
	}
	nodeConfig.ProposalLifetime = flagProposalLifetime

	if flagRecordCacheSize < 1 {
		cmdcommon.PrintFlagsError(nodeCmd, "--record-cache-size", pkgerrors.New("must be positive"))
	}
	nodeConfig.RecordCacheSize = flagRecordCacheSize

	if nodeConfig.RateLimitRuleAPI, err = ParseRateLimit(flagRateLimitAPI, settings.RateLimitAPI); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--rate-limit-api", err)
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--log-level", err)
	}

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
		logHandler = common.NewLogHandler(os.Stdout, flagLogFormat)
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, common.JsonFormatEx(false, true)); err != nil {
			cmdcommon.PrintFlagsError(nodeCmd, "--log-output", err)
		}
	}

	setLogging(logLevel, logHandler)

	log.Info("Starting announcer")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tnetwork-id", flagNetworkID)
	parsedFlags = append(parsedFlags, "\n\tendpoint", flagEndpointString)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\towner", flagOwner)
	parsedFlags = append(parsedFlags, "\n\tproposal-lifetime", flagProposalLifetime)
	parsedFlags = append(parsedFlags, "\n\trate-limit-api", flagRateLimitAPI)
	parsedFlags = append(parsedFlags, "\n\trecord-cache-size", flagRecordCacheSize)
	parsedFlags = append(parsedFlags, "\n\tntp-server", flagNTPServer)
	parsedFlags = append(parsedFlags, "\n\tdebug", flagDebug)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
		network.VerboseLogs = true
	}
}

func setLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)

	runner.SetLogging(level, handler)
	network.SetLogging(level, handler)
	contract.SetLogging(level, handler)
	quorum.SetLogging(level, handler)
	announcement.SetLogging(level, handler)
	storage.SetLogging(level, handler)
}

// PrepareContract instantiates the contract with `owner` as the first
// member, or migrates an instantiated one to the running version.
func PrepareContract(c *contract.Contract, owner string, now time.Time) error {
	if len(owner) > 0 {
		_, err := c.Instantiate(contract.Env{Time: now}, contract.Info{Sender: owner})
		if err == nil {
			return nil
		}
		if !errors.ContractAlreadyInstantiated.Is(err) {
			return err
		}
		log.Warn("contract already instantiated; --owner is ignored", "owner", owner)
	}

	stored, err := c.Migrate(contract.Env{Time: now})
	if err != nil {
		if errors.ContractNotInstantiated.Is(err) {
			return pkgerrors.Wrap(err, "--owner must be given to instantiate the contract")
		}
		return err
	}
	log.Debug("contract loaded", "contract", stored.Contract, "stored-version", stored.Version)

	return nil
}

func newClock() common.Clock {
	if len(flagNTPServer) < 1 {
		return common.SystemClock{}
	}

	clock := common.NewNTPClock(flagNTPServer)
	if err := clock.Sync(); err != nil {
		log.Warn("failed to query ntp server; using system clock until the next sync", "server", flagNTPServer, "error", err)
	} else {
		log.Debug("clock synced", "server", flagNTPServer, "offset", clock.Offset())
	}

	return clock
}

func runNode() {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	c, err := contract.New(st, nodeConfig)
	if err != nil {
		log.Crit("failed to load contract", "error", err)
		os.Exit(1)
	}

	clock := newClock()
	if err := PrepareContract(c, flagOwner, clock.Now()); err != nil {
		log.Crit("failed to prepare contract", "error", err)
		os.Exit(1)
	}

	httpConfig, err := network.NewHTTPServerConfigFromEndpoint(nodeEndpoint)
	if err != nil {
		log.Crit("failed to parse endpoint", "error", err)
		os.Exit(1)
	}

	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	nr := runner.NewNodeRunner(network.NewHTTPServer(httpConfig), c, st, clock)
	nr.Debug = flagDebug

	var g run.Group
	{
		g.Add(func() error {
			if err := nr.Start(); err != nil {
				log.Crit("failed to start node", "error", err)
				return err
			}
			return nil
		}, func(error) {
			nr.Stop()
		})
	}
	if ntpClock, ok := clock.(*common.NTPClock); ok {
		cancel := make(chan struct{})
		g.Add(func() error {
			ticker := time.NewTicker(NTPSyncInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					if err := ntpClock.Sync(); err != nil {
						log.Warn("failed to sync clock", "error", err)
					}
				case <-cancel:
					return nil
				}
			}
		}, func(error) {
			close(cancel)
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		log.Info("node stopped", "reason", err)
	}
}
