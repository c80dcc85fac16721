package domain

import "time"

// PointCredit is a persisted award of points to a student for one event.
// Credits are created only by points assignment and never mutated.
type PointCredit struct {
	ID         uint      `json:"id"`
	StudentID  uint      `json:"student_id"`
	EventID    uint      `json:"event_id"`
	EventTitle string    `json:"event_title,omitempty"`
	Amount     int       `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// AssignmentResult summarises one points assignment run.
type AssignmentResult struct {
	EventID          uint `json:"event_id"`
	PointsPerPerson  int  `json:"points_per_person"`
	StudentsCredited int  `json:"students_credited"`
}
