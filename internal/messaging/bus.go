// Package messaging implements the in-process event bus that carries stage
// transitions from the mutation handlers to interested subscribers, such as
// the notification writer. A single-instance deployment needs nothing more
// than synchronous in-memory fan-out.
package messaging

import (
	"log"
	"sync"
	"time"

	"github.com/nateekarni/dsu-intensive-global/internal/eligibility"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
)

// StageChanged is emitted whenever a mutation moves an applicant to a
// different stage.
type StageChanged struct {
	ApplicantID uint              `json:"applicant_id"`
	ProgramID   uint              `json:"program_id"`
	UserID      string            `json:"user_id"`
	From        eligibility.Stage `json:"from"`
	To          eligibility.Stage `json:"to"`
	At          time.Time         `json:"at"`
}

// Handler consumes one stage transition. Handler errors are logged, never
// propagated back to the publishing request.
type Handler func(StageChanged) error

// Bus fans StageChanged events out to subscribed handlers. Safe for
// concurrent use.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for every published transition.
func (b *Bus) Subscribe(h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers the event to all handlers synchronously, in subscription
// order.
func (b *Bus) Publish(event StageChanged) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(event); err != nil {
			log.Printf("stage event handler failed for applicant %d: %v", event.ApplicantID, err)
		}
	}
}

// PublishStageChange emits a StageChanged event for the applicant when the
// two stages differ, and does nothing otherwise.
func PublishStageChange(b *Bus, a *model.Applicant, from, to eligibility.Stage, at time.Time) {
	if b == nil || from == to {
		return
	}
	b.Publish(StageChanged{
		ApplicantID: a.ID,
		ProgramID:   a.ProgramID,
		UserID:      a.UserID.String(),
		From:        from,
		To:          to,
		At:          at,
	})
}
