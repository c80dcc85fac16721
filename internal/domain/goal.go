package domain

import "time"

type GoalKind string

const (
	GoalShortTerm GoalKind = "short-term"
	GoalLongTerm  GoalKind = "long-term"
)

type Goal struct {
	ID           uint       `json:"id"`
	StudentID    uint       `json:"student_id"`
	Kind         GoalKind   `json:"kind"`
	Title        string     `json:"title"`
	TargetPoints int        `json:"target_points"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Milestones   []string   `json:"milestones,omitempty"`
	Completed    bool       `json:"completed"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Progress derives long-term goal progress from the student's total points,
// clamped to 1. Short-term goals track completion manually and report 0.
func (g *Goal) Progress(totalPoints int) float64 {
	if g.Kind != GoalLongTerm || g.TargetPoints <= 0 {
		return 0
	}
	p := float64(totalPoints) / float64(g.TargetPoints)
	if p > 1 {
		return 1
	}
	return p
}
