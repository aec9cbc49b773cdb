// Package ledger implements the gamification ledger: cumulative XP with a
// derived level, earned badges, an append-only achievement log, and a daily
// check-in streak.
//
// State transitions are pure functions over domain.LedgerState; the Service
// persists a snapshot first and only then swaps its in-memory copy, so a
// failed write is reported to the caller and leaves the ledger unchanged.
// Multi-statement writes commit in a single transaction, so the durable
// state can never hold half of a mutation either.
package ledger

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/forgeledger/forgeledger/internal/domain"
	"github.com/forgeledger/forgeledger/internal/infra/metrics"
	"github.com/forgeledger/forgeledger/internal/infra/sqlite"
)

// Service owns the single user's ledger state.
//
// The browser front-end this daemon serves mutates state from one event
// loop; HTTP handlers here are concurrent, so the mutex serializes
// mutations the way that event loop did by construction.
type Service struct {
	db      *sqlite.DB
	loc     *time.Location
	log     *zap.Logger
	catalog []domain.BadgeDef

	mu    sync.Mutex
	state domain.LedgerState
}

// NewService loads (or initializes) the ledger from the database.
// loc is the time zone used for streak calendar dates; nil means UTC.
func NewService(db *sqlite.DB, loc *time.Location, log *zap.Logger) (*Service, error) {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Service{db: db, loc: loc, log: log, catalog: DefaultCatalog()}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	metrics.CurrentXP.Set(float64(s.state.XP))
	metrics.CurrentLevel.Set(float64(s.state.Level))
	metrics.StreakDays.Set(float64(s.state.Streak.CurrentDays))

	return s, nil
}

// load restores the snapshot from the key-value table.
// A fresh database yields the empty ledger: 0 XP, level 1, no streak.
func (s *Service) load() error {
	xp, err := s.getInt64("xp")
	if err != nil {
		return err
	}
	s.state.XP = xp
	s.state.Level = LevelForXP(xp)

	current, err := s.getInt64("streak_current")
	if err != nil {
		return err
	}
	s.state.Streak.CurrentDays = int(current)

	longest, err := s.getInt64("streak_longest")
	if err != nil {
		return err
	}
	s.state.Streak.LongestDays = int(longest)

	lastDate, err := s.db.GetLedger("streak_last_date")
	if err != nil {
		return fmt.Errorf("get streak_last_date: %w", err)
	}
	if lastDate != "" {
		ts, _ := strconv.ParseInt(lastDate, 10, 64)
		s.state.Streak.LastActivity = startOfDay(time.Unix(ts, 0), s.loc)
	}

	return nil
}

func (s *Service) getInt64(key string) (int64, error) {
	v, err := s.db.GetLedger(key)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

// State returns a copy of the current ledger state.
func (s *Service) State() domain.LedgerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Summary returns the dashboard snapshot with derived progression fields.
func (s *Service) Summary() (domain.LedgerSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	badges, err := s.db.BadgeCount()
	if err != nil {
		return domain.LedgerSummary{}, fmt.Errorf("badge count: %w", err)
	}
	achievements, err := s.db.AchievementCount()
	if err != nil {
		return domain.LedgerSummary{}, fmt.Errorf("achievement count: %w", err)
	}

	return domain.LedgerSummary{
		XP:               s.state.XP,
		Level:            s.state.Level,
		NextLevelXP:      XPForLevel(s.state.Level + 1),
		XPToNext:         XPToNextLevel(s.state.XP),
		ProgressPct:      ProgressPct(s.state.XP),
		Streak:           s.state.Streak,
		BadgeCount:       badges,
		AchievementCount: achievements,
	}, nil
}
