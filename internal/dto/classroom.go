package dto

import "github.com/bloxedu/blox_backend/internal/core/domain"

// CreateClassroomRequest creates a classroom; an auto-wallet is created with it.
type CreateClassroomRequest struct {
	Name string `json:"name" binding:"required"`
}

// JoinClassroomRequest redeems a join code.
type JoinClassroomRequest struct {
	Code string `json:"code" binding:"required"`
}

// UpdateClassroomRequest renames a classroom.
type UpdateClassroomRequest struct {
	Name string `json:"name" binding:"required"`
}

// ClassroomResponse is the API shape of a classroom.
type ClassroomResponse struct {
	ClassroomID  string   `json:"classroomID"`
	Name         string   `json:"name"`
	JoinCodes    []string `json:"joinCodes,omitempty"` // Only populated for admins
	Admins       []string `json:"admins"`
	Students     []string `json:"students"`
	AutoWalletID string   `json:"autoWalletID"`
}

// ToClassroomResponse converts a domain classroom; join codes are included
// only when forAdmin is set.
func ToClassroomResponse(c *domain.Classroom, forAdmin bool) ClassroomResponse {
	resp := ClassroomResponse{
		ClassroomID:  c.ClassroomID,
		Name:         c.Name,
		Admins:       c.Admins,
		Students:     c.Students,
		AutoWalletID: c.AutoWalletID,
	}
	if resp.Admins == nil {
		resp.Admins = []string{}
	}
	if resp.Students == nil {
		resp.Students = []string{}
	}
	if forAdmin {
		resp.JoinCodes = c.JoinCodes
	}
	return resp
}
