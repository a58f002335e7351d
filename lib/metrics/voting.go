package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type VotingMetrics struct {
	RegisteredVoters metrics.Gauge

	ProposalsCreated   metrics.Counter
	ProposalsCancelled metrics.Counter
	ProposalsClosed    metrics.Counter

	VotesCast    metrics.Counter
	VotesDropped metrics.Counter
	Claims       metrics.Counter
}

func PromVotingMetrics() *VotingMetrics {
	return &VotingMetrics{
		RegisteredVoters: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "registered_voters",
			Help:      "Number of registered voters.",
		}, []string{}),
		ProposalsCreated: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "proposals_created_total",
			Help:      "Total number of created proposals.",
		}, []string{}),
		ProposalsCancelled: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "proposals_cancelled_total",
			Help:      "Total number of cancelled proposals.",
		}, []string{}),
		ProposalsClosed: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "proposals_closed_total",
			Help:      "Total number of closed proposals.",
		}, []string{}),
		VotesCast: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "votes_cast_total",
			Help:      "Total number of added or changed votes.",
		}, []string{}),
		VotesDropped: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "votes_dropped_total",
			Help:      "Total number of retracted votes.",
		}, []string{}),
		Claims: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VotingSubsystem,
			Name:      "claims_total",
			Help:      "Total number of post-closure claims.",
		}, []string{}),
	}
}

func NopVotingMetrics() *VotingMetrics {
	return &VotingMetrics{
		RegisteredVoters:   discard.NewGauge(),
		ProposalsCreated:   discard.NewCounter(),
		ProposalsCancelled: discard.NewCounter(),
		ProposalsClosed:    discard.NewCounter(),
		VotesCast:          discard.NewCounter(),
		VotesDropped:       discard.NewCounter(),
		Claims:             discard.NewCounter(),
	}
}
