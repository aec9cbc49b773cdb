// Package domain holds the pure ledger types shared by every layer.
// The gamification ledger tracks one learner's cumulative XP, derived
// level, earned badges, achievement log, and daily check-in streak.
package domain

import "time"

// ─── Categories ─────────────────────────────────────────────────────────────

// Category tags badges and achievement entries by theme.
type Category string

const (
	CatLesson    Category = "lesson"
	CatMilestone Category = "milestone"
	CatStreak    Category = "streak"
	CatCommunity Category = "community"
)

// ─── Badges ─────────────────────────────────────────────────────────────────

// Badge is a uniquely identified, non-repeatable collectible.
// Earning the same ID twice is a no-op; EarnedAt keeps the first unlock time.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	EarnedAt    time.Time `json:"earned_at"`
}

// BadgeDef defines an earnable badge and the condition that unlocks it.
type BadgeDef struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    Category               `json:"category"`
	Predicate   func(LedgerStats) bool `json:"-"`
}

// ─── Achievements ───────────────────────────────────────────────────────────

// Achievement is one entry in the append-only, newest-first event log.
// Unlike badges, entries are never deduplicated.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Points      int64     `json:"points"`
	Category    Category  `json:"category"`
	EarnedAt    time.Time `json:"earned_at"`
}

// ─── Streak ─────────────────────────────────────────────────────────────────

// Streak counts consecutive calendar days with at least one check-in.
// LastActivity is a calendar date (midnight in the ledger time zone),
// zero until the first check-in.
type Streak struct {
	CurrentDays  int       `json:"current_days"`
	LongestDays  int       `json:"longest_days"`
	LastActivity time.Time `json:"last_activity"`
}

// ─── Ledger state ───────────────────────────────────────────────────────────

// LedgerState is the mutable core of the ledger. Level is always derived
// from XP; it is stored here only so reads never recompute.
type LedgerState struct {
	XP     int64  `json:"xp"`
	Level  int    `json:"level"`
	Streak Streak `json:"streak"`
}

// LedgerStats is a read-only snapshot fed to badge predicates.
type LedgerStats struct {
	XP               int64              `json:"xp"`
	Level            int                `json:"level"`
	CurrentStreak    int                `json:"current_streak"`
	LongestStreak    int                `json:"longest_streak"`
	BadgeCount       int                `json:"badge_count"`
	AchievementCount int                `json:"achievement_count"`
	PointsByCategory map[Category]int64 `json:"points_by_category"`
}

// LedgerSummary is the dashboard snapshot: state plus the derived
// progression fields display widgets need.
type LedgerSummary struct {
	XP               int64   `json:"xp"`
	Level            int     `json:"level"`
	NextLevelXP      int64   `json:"next_level_xp"`
	XPToNext         int64   `json:"xp_to_next"`
	ProgressPct      float64 `json:"progress_pct"`
	Streak           Streak  `json:"streak"`
	BadgeCount       int     `json:"badge_count"`
	AchievementCount int     `json:"achievement_count"`
}

// ─── Celebration events ─────────────────────────────────────────────────────

// EventType categorizes celebration events queued for the UI.
type EventType string

const (
	EventLevelUp         EventType = "level_up"
	EventBadgeEarned     EventType = "badge_earned"
	EventStreakMilestone EventType = "streak_milestone"
)

// Event is a pending celebration the client presents once, then acks.
type Event struct {
	ID        int64     `json:"id"`
	Type      EventType `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Shown     bool      `json:"shown"`
}
