package domain

import "time"

type Reminder struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	Venue     string    `json:"venue"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
