package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type GoalRequest struct {
	Kind         string   `json:"kind"` // "short-term" or "long-term"
	Title        string   `json:"title"`
	TargetPoints int      `json:"target_points"`
	Deadline     string   `json:"deadline,omitempty"` // "2006-01-02", short-term only
	Milestones   []string `json:"milestones,omitempty"`
	Completed    bool     `json:"completed,omitempty"`
}

func (req *GoalRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Kind, validation.Required, validation.In("short-term", "long-term")),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.TargetPoints, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return err
	}

	if req.Kind == "short-term" {
		return validation.ValidateStruct(
			req,
			validation.Field(&req.Deadline, validation.Required, validation.Date("2006-01-02")),
		)
	}

	return nil
}

// ParsedDeadline returns the deadline for short-term goals. Call only after
// Validate; long-term goals have none.
func (req *GoalRequest) ParsedDeadline() *time.Time {
	if req.Deadline == "" {
		return nil
	}

	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		return nil
	}

	return &deadline
}
