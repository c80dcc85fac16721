package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type ReminderRequest struct {
	Name  string `json:"name"`
	Date  string `json:"date"` // "2006-01-02"
	Time  string `json:"time"` // "15:04"
	Venue string `json:"venue,omitempty"`
	Notes string `json:"notes,omitempty"`
}

func (req *ReminderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Time, validation.Required, validation.Date("15:04")),
	)
}

// ParsedDate returns the reminder date. Call only after Validate.
func (req *ReminderRequest) ParsedDate() time.Time {
	date, _ := time.Parse("2006-01-02", req.Date)
	return date
}
