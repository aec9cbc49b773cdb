package ledger

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/forgeledger/forgeledger/internal/domain"
	"github.com/forgeledger/forgeledger/internal/infra/metrics"
)

// CheckInResult reports the outcome of a daily check-in.
type CheckInResult struct {
	Streak    domain.Streak       `json:"streak"`
	Advanced  bool                `json:"advanced"`
	LeveledUp bool                `json:"leveled_up"`
	Milestone *domain.Achievement `json:"milestone,omitempty"`
}

// CheckIn records activity for the calendar day containing now.
//
// First activity ever starts the streak at 1. A check-in on the day after
// the last activity extends it; every seventh consecutive day also credits
// a streak milestone worth streak × 5 XP through the normal points path.
// A gap of more than one day resets the streak to 1. Repeat check-ins on
// the same day change nothing.
func (s *Service) CheckIn(now time.Time) (CheckInResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := startOfDay(now, s.loc)
	next, advanced, milestone := advanceStreak(s.state.Streak, today)
	if !advanced {
		return CheckInResult{Streak: s.state.Streak}, nil
	}

	if err := s.saveStreak(next); err != nil {
		return CheckInResult{}, err
	}
	s.state.Streak = next

	metrics.CheckIns.Inc()
	metrics.StreakDays.Set(float64(next.CurrentDays))

	res := CheckInResult{Streak: next, Advanced: true}
	if milestone {
		bonus := int64(next.CurrentDays) * 5
		award, err := s.addPoints(bonus,
			fmt.Sprintf("%d Day Streak!", next.CurrentDays),
			fmt.Sprintf("Checked in %d days in a row.", next.CurrentDays),
			domain.CatStreak, now)
		if err != nil {
			return res, fmt.Errorf("streak milestone: %w", err)
		}
		res.Milestone = &award.Entry
		res.LeveledUp = award.LeveledUp
		s.emitEvent(domain.EventStreakMilestone, award.Entry.Title, award.Entry.Description, now)
	} else {
		s.checkBadges(now)
	}
	return res, nil
}

// Streak returns the current streak state.
func (s *Service) Streak() domain.Streak {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Streak
}

// saveStreak persists the streak triple in one transaction; a partial write
// would desync streak_current from streak_last_date.
func (s *Service) saveStreak(st domain.Streak) error {
	pairs := map[string]string{
		"streak_current":   strconv.Itoa(st.CurrentDays),
		"streak_longest":   strconv.Itoa(st.LongestDays),
		"streak_last_date": strconv.FormatInt(st.LastActivity.Unix(), 10),
	}
	if err := s.db.SetLedgerAll(pairs); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

// advanceStreak applies one check-in dated today (a startOfDay value).
// Returns the next streak, whether anything changed, and whether the
// change landed on a multiple-of-7 milestone.
func advanceStreak(s domain.Streak, today time.Time) (next domain.Streak, advanced, milestone bool) {
	next = s

	if s.LastActivity.IsZero() {
		next.CurrentDays = 1
		next.LastActivity = today
		advanced = true
	} else {
		switch d := daysBetween(s.LastActivity, today); {
		case d <= 0:
			// Same day (or a clock that jumped backwards) — already counted.
			return s, false, false
		case d == 1:
			next.CurrentDays++
			next.LastActivity = today
			advanced = true
			milestone = next.CurrentDays%7 == 0
		default:
			// Chain broken — a new one starts today at 1, not 0.
			next.CurrentDays = 1
			next.LastActivity = today
			advanced = true
		}
	}

	if next.CurrentDays > next.LongestDays {
		next.LongestDays = next.CurrentDays
	}
	return next, advanced, milestone
}

// startOfDay truncates t to its calendar date in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from a to b. Both must be startOfDay
// values in the same location; rounding absorbs DST-shortened days.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
