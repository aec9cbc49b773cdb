package ledger

import (
	"fmt"
	"time"

	"github.com/forgeledger/forgeledger/internal/domain"
)

// DayStat is one day in the trailing-week XP view.
type DayStat struct {
	Date    string `json:"date"` // YYYY-MM-DD in the ledger time zone
	XP      int64  `json:"xp"`
	Entries int    `json:"entries"`
}

// WeeklyStats returns XP earned per day for the 7 calendar days ending on
// the day containing now, oldest day first. Days without activity are zero.
func (s *Service) WeeklyStats(now time.Time) ([]DayStat, error) {
	today := startOfDay(now, s.loc)
	from := today.AddDate(0, 0, -6)

	entries, err := s.db.ListAchievementsSince(from)
	if err != nil {
		return nil, fmt.Errorf("list week entries: %w", err)
	}

	stats := make([]DayStat, 7)
	for i := range stats {
		stats[i].Date = from.AddDate(0, 0, i).Format("2006-01-02")
	}
	for _, e := range entries {
		i := daysBetween(from, startOfDay(e.EarnedAt, s.loc))
		if i < 0 || i > 6 {
			continue
		}
		stats[i].XP += e.Points
		stats[i].Entries++
	}
	return stats, nil
}

// CategoryBreakdown returns total logged points per category. Every known
// category is present so the skill radar always has four axes.
func (s *Service) CategoryBreakdown() (map[domain.Category]int64, error) {
	totals, err := s.db.PointsByCategory()
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	for _, cat := range []domain.Category{
		domain.CatLesson, domain.CatMilestone, domain.CatStreak, domain.CatCommunity,
	} {
		if _, ok := totals[cat]; !ok {
			totals[cat] = 0
		}
	}
	return totals, nil
}
