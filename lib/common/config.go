package common

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/ulule/limiter/v3"
)

const (
	EnvPrefix = "ANNOUNCER"

	DefaultProposalLifetime = 7 * 24 * time.Hour
	DefaultRecordCacheSize  = 1024
	DefaultRateLimitAPI     = "100-S"
	DefaultNetworkID        = "announcer-network"
	DefaultEndpoint         = "http://localhost:12345"
	DefaultStorage          = "file://./db"
)

// Config holds the settings the running node hands to the contract and
// the API.
type Config struct {
	NetworkID        []byte
	ProposalLifetime time.Duration
	RecordCacheSize  int

	RateLimitRuleAPI RateLimitRule
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.NetworkID = networkID
	p.ProposalLifetime = DefaultProposalLifetime
	p.RecordCacheSize = DefaultRecordCacheSize

	rate, _ := limiter.NewRateFromFormatted(DefaultRateLimitAPI)
	p.RateLimitRuleAPI = NewRateLimitRule(rate)

	return p
}

// RateLimitRule limits clients by ip address; addresses listed in
// ByIPAddress get their own rate.
type RateLimitRule struct {
	Default     limiter.Rate
	ByIPAddress map[string]limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{Default: rate, ByIPAddress: map[string]limiter.Rate{}}
}

// Settings are the operator facing knobs. They are read from
// `ANNOUNCER_*` environment variables and used as the defaults of the
// command line flags.
type Settings struct {
	Endpoint         string        `envconfig:"ENDPOINT" default:"http://localhost:12345"`
	Storage          string        `envconfig:"STORAGE" default:"file://./db"`
	NetworkID        string        `envconfig:"NETWORK_ID" default:"announcer-network"`
	Owner            string        `envconfig:"OWNER"`
	SecretSeed       string        `envconfig:"SECRET_SEED"`
	TLSCertFile      string        `envconfig:"TLS_CERT"`
	TLSKeyFile       string        `envconfig:"TLS_KEY"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat        string        `envconfig:"LOG_FORMAT" default:"terminal"`
	LogOutput        string        `envconfig:"LOG_OUTPUT"`
	RateLimitAPI     string        `envconfig:"RATE_LIMIT_API" default:"100-S"`
	ProposalLifetime time.Duration `envconfig:"PROPOSAL_LIFETIME" default:"168h"`
	RecordCacheSize  int           `envconfig:"RECORD_CACHE_SIZE" default:"1024"`
	NTPServer        string        `envconfig:"NTP_SERVER"`
	DebugRPC         bool          `envconfig:"DEBUG_RPC" default:"false"`
}

func LoadSettings() (s Settings, err error) {
	err = envconfig.Process(EnvPrefix, &s)
	return
}
