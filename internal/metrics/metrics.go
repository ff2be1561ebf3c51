// Package metrics defines the Prometheus collectors exported on /metrics.
//
// A nil *Metrics is valid and records nothing, so core components can be
// constructed without a registry in tests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lunchpoll"

// Metrics holds every collector the server exports.
type Metrics struct {
	rpcRequests     *prometheus.CounterVec
	rpcDuration     *prometheus.HistogramVec
	votes           *prometheus.CounterVec
	invitationsSent *prometheus.CounterVec
	groupJoins      prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC requests handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Votes applied to suggestions, by direction.",
		}, []string{"direction"}),
		invitationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invitations_sent_total",
			Help:      "Invitation emails attempted, by result.",
		}, []string{"result"}),
		groupJoins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "group_joins_total",
			Help:      "Invitations redeemed into group membership.",
		}),
	}
	reg.MustRegister(m.rpcRequests, m.rpcDuration, m.votes, m.invitationsSent, m.groupJoins)
	return m
}

// ObserveRPC records one handled RPC.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// Vote records one applied vote.
func (m *Metrics) Vote(upvote bool) {
	if m == nil {
		return
	}
	direction := "down"
	if upvote {
		direction = "up"
	}
	m.votes.WithLabelValues(direction).Inc()
}

// InvitationSent records one delivery attempt.
func (m *Metrics) InvitationSent(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.invitationsSent.WithLabelValues(result).Inc()
}

// GroupJoined records one redeemed invitation.
func (m *Metrics) GroupJoined() {
	if m == nil {
		return
	}
	m.groupJoins.Inc()
}
