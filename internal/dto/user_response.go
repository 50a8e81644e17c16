package dto

import (
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

type UserResponse struct {
	UserID      string `json:"userID"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}
}
