package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Ledger
	MetricVotesAccepted  = "poll_votes_accepted_total"
	MetricVotesRejected  = "poll_votes_rejected_total"
	MetricVotesWithdrawn = "poll_votes_withdrawn_total"
	// Lifecycle
	MetricPollsCreated     = "polls_created_total"
	MetricPollTransitions  = "poll_transitions_total"
	MetricTransitionErrors = "poll_transition_errors_total"
	// Scheduler
	MetricSchedulerTicks        = "poll_scheduler_ticks_total"
	MetricSchedulerTickDuration = "poll_scheduler_tick_duration_seconds"
)

type MetricService struct {
	VotesAccepted        prometheus.Counter
	VotesRejected        *prometheus.CounterVec
	VotesWithdrawn       prometheus.Counter
	PollsCreated         *prometheus.CounterVec
	PollTransitions      *prometheus.CounterVec
	TransitionErrors     *prometheus.CounterVec
	SchedulerTicks       prometheus.Counter
	SchedulerTickSeconds prometheus.Histogram
}

// NewMetricService registers every collector on registerer. Pass prometheus.DefaultRegisterer
// in binaries and a fresh prometheus.NewRegistry() in tests.
func NewMetricService(registerer prometheus.Registerer) *MetricService {
	ms := &MetricService{
		VotesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricVotesAccepted,
			Help: "Votes recorded in the ledger",
		}),
		VotesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricVotesRejected,
			Help: "Vote attempts rejected, by reason",
		}, []string{"reason"}),
		VotesWithdrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricVotesWithdrawn,
			Help: "Votes withdrawn from multiple-choice polls",
		}),
		PollsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPollsCreated,
			Help: "Polls created, by initial status",
		}, []string{"status"}),
		PollTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPollTransitions,
			Help: "Applied poll lifecycle transitions",
		}, []string{"from", "to", "trigger"}),
		TransitionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricTransitionErrors,
			Help: "Scheduler transitions that failed and will be retried on the next tick",
		}, []string{"to"}),
		SchedulerTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSchedulerTicks,
			Help: "Completed scheduler ticks",
		}),
		SchedulerTickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: MetricSchedulerTickDuration,
			Help: "Duration of one scheduler tick",
		}),
	}

	registerer.MustRegister(
		ms.VotesAccepted,
		ms.VotesRejected,
		ms.VotesWithdrawn,
		ms.PollsCreated,
		ms.PollTransitions,
		ms.TransitionErrors,
		ms.SchedulerTicks,
		ms.SchedulerTickSeconds,
	)

	return ms
}
