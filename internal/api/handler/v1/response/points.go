package response

type AssignmentResponse struct {
	Message          string `json:"message"`
	EventID          uint   `json:"event_id"`
	PointsPerPerson  int    `json:"points_per_person"`
	StudentsCredited int    `json:"students_credited"`
}

type MyPointsResponse struct {
	TotalPoints int `json:"total_points"`
}

type RecordedResponse struct {
	Message string `json:"message"`
	EventID uint   `json:"event_id"`
}
