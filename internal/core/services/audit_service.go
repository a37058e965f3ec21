package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
)

// auditService is the append-only audit sink. Events are handed to a bounded
// queue and written by a single background goroutine, so recording never blocks
// or fails the primary operation. When the queue is full the event is dropped
// with a warning; when the write fails it is logged and discarded. Either way
// the caller's transaction is unaffected.
type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
	logger    *slog.Logger
	events    chan domain.AuditEvent
	done      chan struct{}
}

// NewAuditService creates the audit sink and starts its drain goroutine.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade, queueSize int, logger *slog.Logger) portssvc.AuditRecorderSvc {
	if queueSize <= 0 {
		queueSize = 256
	}
	s := &auditService{
		auditRepo: auditRepo,
		logger:    logger,
		events:    make(chan domain.AuditEvent, queueSize),
		done:      make(chan struct{}),
	}
	go s.drain()
	return s
}

var _ portssvc.AuditRecorderSvc = (*auditService)(nil)

// Record enqueues one audit event. It fills in the event ID and timestamp when
// absent and returns immediately.
func (s *auditService) Record(_ context.Context, event domain.AuditEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	select {
	case s.events <- event:
	default:
		s.logger.Warn("Audit queue full, dropping event",
			slog.String("event_type", event.EventType),
			slog.String("entity_id", event.EntityID),
			slog.String("action", event.Action),
		)
	}
}

// drain writes queued events until the channel is closed. Writes use a
// background context because the originating request may already be gone.
func (s *auditService) drain() {
	defer close(s.done)
	for event := range s.events {
		writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.auditRepo.SaveEvent(writeCtx, event); err != nil {
			s.logger.Error("Failed to persist audit event",
				slog.String("error", err.Error()),
				slog.String("event_type", event.EventType),
				slog.String("entity_id", event.EntityID),
			)
		}
		cancel()
	}
}

// Close stops accepting events and waits for the queue to drain.
func (s *auditService) Close(ctx context.Context) error {
	close(s.events)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
