package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type ProposalRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	Date              string `json:"date"` // "2006-01-02"
	ProposedPoints    int    `json:"proposed_points"`
	ExpectedAttendees int    `json:"expected_attendees"`
	AttachmentURL     string `json:"attachment_url,omitempty"`
}

func (req *ProposalRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Category, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.ProposedPoints, validation.Min(0)),
		validation.Field(&req.ExpectedAttendees, validation.Min(0)),
		validation.Field(&req.AttachmentURL, is.URL),
	)
}

// ParsedDate returns the scheduled date. Call only after Validate.
func (req *ProposalRequest) ParsedDate() time.Time {
	date, _ := time.Parse("2006-01-02", req.Date)
	return date
}

type DecisionRequest struct {
	Decision string `json:"decision"` // "approved" or "rejected"
}

func (req *DecisionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Decision, validation.Required, validation.In("approved", "rejected")),
	)
}
