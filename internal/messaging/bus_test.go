package messaging

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nateekarni/dsu-intensive-global/internal/eligibility"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()

	var got []StageChanged
	bus.Subscribe(func(e StageChanged) error {
		got = append(got, e)
		return nil
	})
	bus.Subscribe(func(e StageChanged) error {
		got = append(got, e)
		return nil
	})

	event := StageChanged{
		ApplicantID: 101,
		From:        eligibility.StagePaymentPending,
		To:          eligibility.StageComplete,
		At:          time.Now(),
	}
	bus.Publish(event)

	assert.Len(t, got, 2)
	assert.Equal(t, event.To, got[0].To)
}

func TestBusHandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewBus()

	called := false
	bus.Subscribe(func(StageChanged) error { return errors.New("boom") })
	bus.Subscribe(func(StageChanged) error {
		called = true
		return nil
	})

	bus.Publish(StageChanged{ApplicantID: 1})
	assert.True(t, called)
}

func TestBusNilHandlerIgnored(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(nil)
	bus.Publish(StageChanged{ApplicantID: 1})
}

func TestPublishStageChange(t *testing.T) {
	bus := NewBus()

	var got []StageChanged
	bus.Subscribe(func(e StageChanged) error {
		got = append(got, e)
		return nil
	})

	applicant := &model.Applicant{ID: 7, ProgramID: 3, UserID: uuid.New()}

	// Unchanged stage publishes nothing
	PublishStageChange(bus, applicant, eligibility.StageApplied, eligibility.StageApplied, time.Now())
	assert.Empty(t, got)

	PublishStageChange(bus, applicant, eligibility.StageDocumentsPending, eligibility.StageInterviewPending, time.Now())
	assert.Len(t, got, 1)
	assert.Equal(t, uint(7), got[0].ApplicantID)
	assert.Equal(t, applicant.UserID.String(), got[0].UserID)

	// A nil bus is a silent no-op
	PublishStageChange(nil, applicant, eligibility.StageApplied, eligibility.StageComplete, time.Now())
}
