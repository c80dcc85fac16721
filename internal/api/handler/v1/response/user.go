package response

import "github.com/usmcsd/mycsd-api/internal/domain"

type ProfileResponse struct {
	User     domain.User `json:"user"`
	Matric   string      `json:"matric,omitempty"`
	ClubName string      `json:"club_name,omitempty"`
}
