package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	RewardsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsGranted,
			Help: HelpTextRewardsGranted,
		},
		[]string{LabelType, LabelRarity},
	)

	BonusSpawns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBonusSpawns,
			Help: HelpTextBonusSpawns,
		},
	)

	ChallengesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChallengesCompleted,
			Help: HelpTextChallengesCompleted,
		},
		[]string{LabelDifficulty},
	)

	ChallengesClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameChallengesClaimed,
			Help: HelpTextChallengesClaimed,
		},
	)

	ChallengeRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameChallengeRefreshes,
			Help: HelpTextChallengeRefreshes,
		},
	)

	AchievementsUnlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsUnlocked,
			Help: HelpTextAchievementsUnlocked,
		},
	)

	TierUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTierUps,
			Help: HelpTextTierUps,
		},
	)

	StarsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStarsEarned,
			Help: HelpTextStarsEarned,
		},
	)

	CoinsGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsGranted,
			Help: HelpTextCoinsGranted,
		},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
	)
)
