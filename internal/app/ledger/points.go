package ledger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/forgeledger/forgeledger/internal/domain"
	"github.com/forgeledger/forgeledger/internal/infra/metrics"
)

// AddPointsResult reports the outcome of a points award.
type AddPointsResult struct {
	XP        int64              `json:"xp"`
	Level     int                `json:"level"`
	LeveledUp bool               `json:"leveled_up"`
	Entry     domain.Achievement `json:"entry"`
}

// AddPoints credits a positive amount of XP with a human-readable reason,
// logs a "+N XP" achievement, and emits a level-up event when the derived
// level rises. Zero and negative amounts are rejected.
func (s *Service) AddPoints(amount int64, reason string) (AddPointsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPoints(amount, fmt.Sprintf("+%d XP", amount), reason, domain.CatLesson, time.Now())
}

// addPoints is the single XP write path. Callers hold s.mu.
func (s *Service) addPoints(amount int64, title, description string, cat domain.Category, now time.Time) (AddPointsResult, error) {
	var res AddPointsResult
	if amount <= 0 {
		return res, domain.ErrNonPositivePoints
	}

	next := s.state
	next.XP += amount
	next.Level = LevelForXP(next.XP)

	entry := domain.Achievement{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Points:      amount,
		Category:    cat,
		EarnedAt:    now,
	}

	// Persist first, swap after: the XP snapshot and the log entry commit
	// in one transaction, so a failed write leaves the ledger unchanged
	// both in memory and on disk.
	pairs := map[string]string{"xp": strconv.FormatInt(next.XP, 10)}
	if err := s.db.SaveAward(pairs, entry); err != nil {
		return res, fmt.Errorf("save award: %w", err)
	}

	leveledUp := next.Level > s.state.Level
	s.state = next

	metrics.PointsAwarded.Add(float64(amount))
	metrics.AchievementsRecorded.WithLabelValues(string(cat)).Inc()
	metrics.CurrentXP.Set(float64(next.XP))
	metrics.CurrentLevel.Set(float64(next.Level))

	if leveledUp {
		metrics.LevelUps.Inc()
		s.emitEvent(domain.EventLevelUp,
			fmt.Sprintf("Level %d!", next.Level),
			fmt.Sprintf("You reached level %d with %d XP.", next.Level, next.XP),
			now)
	}

	res = AddPointsResult{XP: next.XP, Level: next.Level, LeveledUp: leveledUp, Entry: entry}
	s.checkBadges(now)
	return res, nil
}
