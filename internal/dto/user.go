package dto

import "github.com/bloxedu/blox_backend/internal/core/domain"

// RegisterUserRequest creates a new user account.
type RegisterUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName"`
	AccountType string `json:"accountType" binding:"omitempty,oneof=Personal Student Instructor"`
}

// UpdateUserRequest patches profile fields. Nil fields are left unchanged.
type UpdateUserRequest struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	AccountType *string `json:"accountType,omitempty" binding:"omitempty,oneof=Personal Student Instructor"`
	Public      *bool   `json:"public,omitempty"`
}

// UserResponse is the API shape of a user.
type UserResponse struct {
	UserID      string   `json:"userID"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	AccountType string   `json:"accountType"`
	Public      bool     `json:"public"`
	Following   []string `json:"following"`
}

// ToUserResponse converts a domain user to its API shape.
func ToUserResponse(u *domain.User) UserResponse {
	following := u.Following
	if following == nil {
		following = []string{}
	}
	return UserResponse{
		UserID:      u.UserID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		AccountType: string(u.AccountType),
		Public:      u.Public,
		Following:   following,
	}
}
