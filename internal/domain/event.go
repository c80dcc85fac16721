package domain

import "time"

type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventApproved  EventStatus = "approved"
	EventRejected  EventStatus = "rejected"
	EventCompleted EventStatus = "completed"
)

type PointStatus string

const (
	PointsPending  PointStatus = "pending"
	PointsAssigned PointStatus = "assigned"
)

type Event struct {
	ID                uint        `json:"id"`
	ClubID            uint        `json:"club_id"`
	ClubName          string      `json:"club_name,omitempty"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Category          string      `json:"category"`
	Date              time.Time   `json:"date"`
	ProposedPoints    int         `json:"proposed_points"`
	ExpectedAttendees int         `json:"expected_attendees"`
	Status            EventStatus `json:"status"`
	PointStatus       PointStatus `json:"point_status"`
	AttachmentURL     string      `json:"attachment_url,omitempty"`
	AttendanceToken   string      `json:"attendance_token,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// statusEdges is the only place the event state machine is defined.
// point-status is a separate machine, see Event.CanAssignPoints.
var statusEdges = map[EventStatus][]EventStatus{
	EventPending:  {EventApproved, EventRejected},
	EventApproved: {EventCompleted, EventRejected},
}

func ValidTransition(from, to EventStatus) bool {
	for _, next := range statusEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the event along a status edge or fails with
// ErrInvalidTransition, leaving the event unchanged.
func (e *Event) Transition(to EventStatus) error {
	if !ValidTransition(e.Status, to) {
		return ErrInvalidTransition
	}
	e.Status = to
	return nil
}

// AcceptsAttendance reports whether attendance may still be recorded.
func (e *Event) AcceptsAttendance() bool {
	return e.Status == EventApproved || e.Status == EventCompleted
}

// CanAssignPoints checks the point-status machine preconditions.
func (e *Event) CanAssignPoints() error {
	if e.Status != EventCompleted {
		return &AssignmentRefusedError{Reason: RefusalNotCompleted}
	}
	if e.PointStatus == PointsAssigned {
		return ErrAlreadyAssigned
	}
	return nil
}
