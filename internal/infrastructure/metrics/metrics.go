package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CompensationMetrics holds the engine and payout sweep metrics
type CompensationMetrics struct {
	// credited commissions
	CommissionsTotal      *prometheus.CounterVec
	CommissionAmountTotal *prometheus.CounterVec
	LoanRecoveredTotal    *prometheus.CounterVec

	// tree state
	TierUpgradesTotal    *prometheus.CounterVec
	MatchedPairsTotal    *prometheus.CounterVec
	DailyCapReachedTotal *prometheus.CounterVec
	MentorFlagsTotal     *prometheus.CounterVec
	RewardLevelsTotal    *prometheus.CounterVec

	// payouts
	PayoutBatchesTotal   *prometheus.CounterVec
	PayoutNetAmountTotal *prometheus.CounterVec

	// processing
	WalkDuration          *prometheus.HistogramVec
	VersionConflictsTotal *prometheus.CounterVec
	EngineErrorsTotal     *prometheus.CounterVec
}

func NewCompensationMetrics() *CompensationMetrics {
	return &CompensationMetrics{
		CommissionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commissions_credited_total",
				Help: "Number of commission credits by category",
			},
			[]string{"category"},
		),

		CommissionAmountTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commissions_credited_amount_total",
				Help: "Gross commission amount credited by category",
			},
			[]string{"category"},
		),

		LoanRecoveredTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_recovered_amount_total",
				Help: "Amount redirected to loan repayment by source category",
			},
			[]string{"category"},
		),

		TierUpgradesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tier_upgrades_total",
				Help: "Member status upgrades by reached status",
			},
			[]string{"status"},
		),

		MatchedPairsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "binary_matched_pairs_total",
				Help: "Matched left/right pairs consumed by tier",
			},
			[]string{"tier"},
		),

		DailyCapReachedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "binary_daily_cap_reached_total",
				Help: "Matching events that hit the daily commission cap",
			},
			[]string{"tier"},
		),

		MentorFlagsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mentor_flags_granted_total",
				Help: "Permanent mentor override eligibility grants",
			},
			[]string{"level"},
		),

		RewardLevelsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reward_levels_reached_total",
				Help: "Gold reward ladder milestones reached",
			},
			[]string{"level"},
		),

		PayoutBatchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_batches_created_total",
				Help: "Payout batch records created by category",
			},
			[]string{"category"},
		),

		PayoutNetAmountTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_net_amount_total",
				Help: "Net payable amount of created batches by category",
			},
			[]string{"category"},
		),

		WalkDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "compensation_operation_duration_seconds",
				Help:    "Duration of engine entry points",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"operation"},
		),

		VersionConflictsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "member_version_conflicts_total",
				Help: "Optimistic concurrency conflicts on member writes",
			},
			[]string{"operation"},
		),

		EngineErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compensation_errors_total",
				Help: "Errors raised inside engine walks by stage",
			},
			[]string{"stage"},
		),
	}
}

func (m *CompensationMetrics) RecordCommission(category string, gross, recovered float64) {
	m.CommissionsTotal.WithLabelValues(category).Inc()
	m.CommissionAmountTotal.WithLabelValues(category).Add(gross)
	if recovered > 0 {
		m.LoanRecoveredTotal.WithLabelValues(category).Add(recovered)
	}
}

func (m *CompensationMetrics) RecordTierUpgrade(status string) {
	m.TierUpgradesTotal.WithLabelValues(status).Inc()
}

func (m *CompensationMetrics) RecordMatchedPairs(tier string, units int64) {
	m.MatchedPairsTotal.WithLabelValues(tier).Add(float64(units))
}

func (m *CompensationMetrics) RecordDailyCapReached(tier string) {
	m.DailyCapReachedTotal.WithLabelValues(tier).Inc()
}

func (m *CompensationMetrics) RecordMentorFlag(level string) {
	m.MentorFlagsTotal.WithLabelValues(level).Inc()
}

func (m *CompensationMetrics) RecordRewardLevel(level string) {
	m.RewardLevelsTotal.WithLabelValues(level).Inc()
}

func (m *CompensationMetrics) RecordPayoutBatch(category string, net float64) {
	m.PayoutBatchesTotal.WithLabelValues(category).Inc()
	m.PayoutNetAmountTotal.WithLabelValues(category).Add(net)
}

func (m *CompensationMetrics) RecordDuration(operation string, seconds float64) {
	m.WalkDuration.WithLabelValues(operation).Observe(seconds)
}

func (m *CompensationMetrics) RecordVersionConflict(operation string) {
	m.VersionConflictsTotal.WithLabelValues(operation).Inc()
}

func (m *CompensationMetrics) RecordError(stage string) {
	m.EngineErrorsTotal.WithLabelValues(stage).Inc()
}
