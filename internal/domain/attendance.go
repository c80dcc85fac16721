package domain

import "time"

// AttendanceRecord is proof of a student's presence at an event. Name and
// matric are copied at capture time so attendee views need no joins.
type AttendanceRecord struct {
	ID          uint        `json:"id"`
	EventID     uint        `json:"event_id"`
	StudentID   uint        `json:"student_id"`
	StudentName string      `json:"student_name"`
	Matric      string      `json:"matric"`
	Credited    PointStatus `json:"credited"`
	RecordedAt  time.Time   `json:"recorded_at"`
}

// EventView is the minimal projection handed to a student resolving an
// attendance link. It reveals nothing beyond what the QR poster shows.
type EventView struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        time.Time   `json:"date"`
	Status      EventStatus `json:"status"`
}
