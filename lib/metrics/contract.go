package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type ContractMetrics struct {
	CommandsTotal          metrics.Counter
	CommandDurationSeconds metrics.Histogram

	WhitelistSize    metrics.Gauge
	PendingProposals metrics.Gauge
	Announcements    metrics.Gauge
}

func (c *ContractMetrics) ObserveCommand(begin time.Time, operation string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}

	c.CommandsTotal.With("operation", operation, "status", status).Add(1)
	c.CommandDurationSeconds.With("operation", operation).Observe(time.Since(begin).Seconds())
}

func (c *ContractMetrics) SetWhitelistSize(n int) {
	c.WhitelistSize.Set(float64(n))
}

func (c *ContractMetrics) SetPendingProposals(n int) {
	c.PendingProposals.Set(float64(n))
}

func (c *ContractMetrics) AddAnnouncements(delta int) {
	c.Announcements.Add(float64(delta))
}

func PromContractMetrics() *ContractMetrics {
	return &ContractMetrics{
		CommandsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ContractSubsystem,
			Name:      "commands_total",
			Help:      "Total number of executed commands.",
		}, []string{"operation", "status"}),
		CommandDurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: ContractSubsystem,
			Name:      "command_duration_seconds",
			Help:      "Time spent executing a command.",
		}, []string{"operation"}),
		WhitelistSize: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: ContractSubsystem,
			Name:      "whitelist_size",
			Help:      "Number of whitelisted authors.",
		}, []string{}),
		PendingProposals: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: ContractSubsystem,
			Name:      "pending_proposals",
			Help:      "Number of proposals waiting for votes.",
		}, []string{}),
		Announcements: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: ContractSubsystem,
			Name:      "announcements",
			Help:      "Announcements created minus announcements deleted since start.",
		}, []string{}),
	}
}

func NopContractMetrics() *ContractMetrics {
	return &ContractMetrics{
		CommandsTotal:          discard.NewCounter(),
		CommandDurationSeconds: discard.NewHistogram(),
		WhitelistSize:          discard.NewGauge(),
		PendingProposals:       discard.NewGauge(),
		Announcements:          discard.NewGauge(),
	}
}
