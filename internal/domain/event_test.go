package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	statuses := []EventStatus{EventPending, EventApproved, EventRejected, EventCompleted}

	allowed := map[[2]EventStatus]bool{
		{EventPending, EventApproved}:   true,
		{EventPending, EventRejected}:   true,
		{EventApproved, EventCompleted}: true,
		{EventApproved, EventRejected}:  true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			got := ValidTransition(from, to)
			assert.Equal(t, allowed[[2]EventStatus{from, to}], got, "%s -> %s", from, to)
		}
	}
}

func TestEvent_Transition(t *testing.T) {
	event := Event{Status: EventPending}

	assert.NoError(t, event.Transition(EventApproved))
	assert.Equal(t, EventApproved, event.Status)

	err := event.Transition(EventPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, EventApproved, event.Status, "failed transitions leave the event unchanged")
}

func TestEvent_AcceptsAttendance(t *testing.T) {
	assert.False(t, (&Event{Status: EventPending}).AcceptsAttendance())
	assert.True(t, (&Event{Status: EventApproved}).AcceptsAttendance())
	assert.True(t, (&Event{Status: EventCompleted}).AcceptsAttendance())
	assert.False(t, (&Event{Status: EventRejected}).AcceptsAttendance())
}

func TestEvent_CanAssignPoints(t *testing.T) {
	t.Run("completed and pending points", func(t *testing.T) {
		event := Event{Status: EventCompleted, PointStatus: PointsPending}

		assert.NoError(t, event.CanAssignPoints())
	})

	t.Run("not completed", func(t *testing.T) {
		event := Event{Status: EventApproved, PointStatus: PointsPending}

		var refused *AssignmentRefusedError
		assert.ErrorAs(t, event.CanAssignPoints(), &refused)
		assert.Equal(t, RefusalNotCompleted, refused.Reason)
	})

	t.Run("already assigned", func(t *testing.T) {
		event := Event{Status: EventCompleted, PointStatus: PointsAssigned}

		assert.ErrorIs(t, event.CanAssignPoints(), ErrAlreadyAssigned)
	})
}
