package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forgeledger/forgeledger/internal/domain"
	"github.com/forgeledger/forgeledger/internal/infra/metrics"
)

// RecordAchievement appends a fully formed entry to the log without
// touching XP. Unlike badges, entries are never deduplicated.
// Missing ID, category, and timestamp are filled in.
func (s *Service) RecordAchievement(a domain.Achievement) (domain.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.Title == "" {
		return a, domain.ErrTitleRequired
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Category == "" {
		a.Category = domain.CatMilestone
	}
	if a.EarnedAt.IsZero() {
		a.EarnedAt = time.Now()
	}

	if err := s.db.InsertAchievement(a); err != nil {
		return a, fmt.Errorf("record achievement: %w", err)
	}
	metrics.AchievementsRecorded.WithLabelValues(string(a.Category)).Inc()

	s.checkBadges(a.EarnedAt)
	return a, nil
}

// Achievements returns the newest log entries. limit <= 0 means all.
func (s *Service) Achievements(limit int) ([]domain.Achievement, error) {
	return s.db.ListAchievements(limit)
}
