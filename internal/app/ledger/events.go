package ledger

import (
	"time"

	"go.uber.org/zap"

	"github.com/forgeledger/forgeledger/internal/domain"
)

// emitEvent queues a celebration event for the UI. Events are best-effort:
// a failed insert is logged but never fails the mutation that produced it.
func (s *Service) emitEvent(typ domain.EventType, title, body string, now time.Time) {
	_, err := s.db.InsertEvent(domain.Event{
		Type:      typ,
		Title:     title,
		Body:      body,
		CreatedAt: now,
	})
	if err != nil {
		s.log.Warn("emit event", zap.String("type", string(typ)), zap.Error(err))
	}
}

// PendingEvents returns unshown celebration events, oldest first.
func (s *Service) PendingEvents(limit int) ([]domain.Event, error) {
	return s.db.ListPendingEvents(limit)
}

// MarkEventShown acks an event so it is not presented again.
func (s *Service) MarkEventShown(id int64) error {
	return s.db.MarkEventShown(id)
}
