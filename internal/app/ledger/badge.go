package ledger

import (
	"fmt"
	"time"

	"github.com/forgeledger/forgeledger/internal/domain"
	"github.com/forgeledger/forgeledger/internal/infra/metrics"
)

// EarnBadge stamps the descriptor with the current time and records it.
// Returns true if the badge was newly earned; earning an already-held
// badge is a no-op and keeps the original timestamp.
func (s *Service) EarnBadge(b domain.Badge) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.earnBadge(b, time.Now())
}

// earnBadge is the single badge write path. Callers hold s.mu.
func (s *Service) earnBadge(b domain.Badge, now time.Time) (bool, error) {
	if b.ID == "" {
		return false, domain.ErrBadgeIDRequired
	}

	b.EarnedAt = now
	earned, err := s.db.InsertBadge(b)
	if err != nil {
		return false, fmt.Errorf("earn badge %s: %w", b.ID, err)
	}
	if earned {
		metrics.BadgesEarned.Inc()
		s.emitEvent(domain.EventBadgeEarned,
			fmt.Sprintf("Badge earned: %s", b.Name), b.Description, now)
	}
	return earned, nil
}

// Badges returns all earned badges, newest first.
func (s *Service) Badges() ([]domain.Badge, error) {
	return s.db.ListBadges()
}
