package ledger

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/forgeledger/forgeledger/internal/domain"
)

// DefaultCatalog returns the earnable badge catalog. Each badge has a
// stat-based predicate evaluated against a ledger snapshot after every
// mutation; unlocking is idempotent.
func DefaultCatalog() []domain.BadgeDef {
	return []domain.BadgeDef{
		// ── Learning ───────────────────────────────────────────────────
		{
			ID: "first-steps", Name: "First Steps", Category: domain.CatLesson,
			Description: "Earn your first XP.",
			Predicate:   func(s domain.LedgerStats) bool { return s.XP > 0 },
		},
		{
			ID: "quick-learner", Name: "Quick Learner", Category: domain.CatLesson,
			Description: "Earn 500 XP from lessons.",
			Predicate:   func(s domain.LedgerStats) bool { return s.PointsByCategory[domain.CatLesson] >= 500 },
		},
		{
			ID: "scholar", Name: "Scholar", Category: domain.CatLesson,
			Description: "Earn 5,000 XP from lessons.",
			Predicate:   func(s domain.LedgerStats) bool { return s.PointsByCategory[domain.CatLesson] >= 5000 },
		},

		// ── Milestones ─────────────────────────────────────────────────
		{
			ID: "level-5", Name: "Climbing", Category: domain.CatMilestone,
			Description: "Reach level 5.",
			Predicate:   func(s domain.LedgerStats) bool { return s.Level >= 5 },
		},
		{
			ID: "level-10", Name: "Dedicated", Category: domain.CatMilestone,
			Description: "Reach level 10.",
			Predicate:   func(s domain.LedgerStats) bool { return s.Level >= 10 },
		},
		{
			ID: "level-25", Name: "Luminary", Category: domain.CatMilestone,
			Description: "Reach level 25.",
			Predicate:   func(s domain.LedgerStats) bool { return s.Level >= 25 },
		},
		{
			ID: "xp-1000", Name: "Point Collector", Category: domain.CatMilestone,
			Description: "Accumulate 1,000 XP.",
			Predicate:   func(s domain.LedgerStats) bool { return s.XP >= 1000 },
		},
		{
			ID: "xp-10000", Name: "Point Hoarder", Category: domain.CatMilestone,
			Description: "Accumulate 10,000 XP.",
			Predicate:   func(s domain.LedgerStats) bool { return s.XP >= 10000 },
		},

		// ── Consistency ────────────────────────────────────────────────
		{
			ID: "streak-7", Name: "Week Warrior", Category: domain.CatStreak,
			Description: "Check in 7 days in a row.",
			Predicate:   func(s domain.LedgerStats) bool { return s.CurrentStreak >= 7 },
		},
		{
			ID: "streak-30", Name: "Monthly Habit", Category: domain.CatStreak,
			Description: "Check in 30 days in a row.",
			Predicate:   func(s domain.LedgerStats) bool { return s.CurrentStreak >= 30 },
		},
		{
			ID: "streak-100", Name: "Centurion", Category: domain.CatStreak,
			Description: "Check in 100 days in a row.",
			Predicate:   func(s domain.LedgerStats) bool { return s.CurrentStreak >= 100 },
		},
		{
			ID: "streak-longest-14", Name: "Fortnight Force", Category: domain.CatStreak,
			Description: "Hold a 14-day streak at any point.",
			Predicate:   func(s domain.LedgerStats) bool { return s.LongestStreak >= 14 },
		},

		// ── Community ──────────────────────────────────────────────────
		{
			ID: "well-rounded", Name: "Well Rounded", Category: domain.CatCommunity,
			Description: "Earn points in three different categories.",
			Predicate: func(s domain.LedgerStats) bool {
				n := 0
				for _, pts := range s.PointsByCategory {
					if pts > 0 {
						n++
					}
				}
				return n >= 3
			},
		},
	}
}

// Stats builds the snapshot fed to badge predicates.
func (s *Service) Stats() (domain.LedgerStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

func (s *Service) statsLocked() (domain.LedgerStats, error) {
	byCategory, err := s.db.PointsByCategory()
	if err != nil {
		return domain.LedgerStats{}, fmt.Errorf("points by category: %w", err)
	}
	badges, err := s.db.BadgeCount()
	if err != nil {
		return domain.LedgerStats{}, fmt.Errorf("badge count: %w", err)
	}
	achievements, err := s.db.AchievementCount()
	if err != nil {
		return domain.LedgerStats{}, fmt.Errorf("achievement count: %w", err)
	}

	return domain.LedgerStats{
		XP:               s.state.XP,
		Level:            s.state.Level,
		CurrentStreak:    s.state.Streak.CurrentDays,
		LongestStreak:    s.state.Streak.LongestDays,
		BadgeCount:       badges,
		AchievementCount: achievements,
		PointsByCategory: byCategory,
	}, nil
}

// checkBadges evaluates the catalog against the current snapshot and earns
// anything newly satisfied. Failures are logged, never returned: a badge
// award must not fail the mutation that triggered it. Callers hold s.mu.
func (s *Service) checkBadges(now time.Time) {
	stats, err := s.statsLocked()
	if err != nil {
		s.log.Warn("badge check: stats", zap.Error(err))
		return
	}

	for _, def := range s.catalog {
		held, err := s.db.HasBadge(def.ID)
		if err != nil {
			s.log.Warn("badge check: lookup", zap.String("badge", def.ID), zap.Error(err))
			continue
		}
		if held || def.Predicate == nil || !def.Predicate(stats) {
			continue
		}
		if _, err := s.earnBadge(domain.Badge{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Category:    def.Category,
		}, now); err != nil {
			s.log.Warn("badge check: earn", zap.String("badge", def.ID), zap.Error(err))
		}
	}
}
