// Package metrics provides Prometheus metrics for the ledger daemon:
// counters for mutations, gauges for the current progression state, and
// health check results.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Mutations ──────────────────────────────────────────────────────────────

// PointsAwarded tracks total experience points credited.
var PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "forgeledger",
	Name:      "points_awarded_total",
	Help:      "Total experience points credited to the ledger.",
})

// LevelUps tracks level boundary crossings.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "forgeledger",
	Name:      "level_ups_total",
	Help:      "Total level-up events.",
})

// BadgesEarned tracks newly earned badges (idempotent re-earns excluded).
var BadgesEarned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "forgeledger",
	Name:      "badges_earned_total",
	Help:      "Total badges earned.",
})

// AchievementsRecorded tracks achievement log appends by category.
var AchievementsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "forgeledger",
	Name:      "achievements_recorded_total",
	Help:      "Total achievement log entries.",
}, []string{"category"})

// CheckIns tracks daily check-ins that advanced or reset the streak.
var CheckIns = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "forgeledger",
	Name:      "checkins_total",
	Help:      "Total check-ins that changed the streak.",
})

// ─── Progression state ──────────────────────────────────────────────────────

// CurrentLevel tracks the derived level.
var CurrentLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "forgeledger",
	Name:      "level_current",
	Help:      "Current derived level.",
})

// CurrentXP tracks lifetime experience points.
var CurrentXP = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "forgeledger",
	Name:      "xp_current",
	Help:      "Lifetime experience points.",
})

// StreakDays tracks the current consecutive-day streak.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "forgeledger",
	Name:      "streak_days",
	Help:      "Current consecutive-day streak length.",
})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "forgeledger",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})
