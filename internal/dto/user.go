package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/sergio11/instangular-rest-api/internal/model"
)

// GetUserDto is the public profile shape. Password hash and the one-time
// tokens never appear here.
type GetUserDto struct {
	ID           uuid.UUID        `json:"id"`
	Fullname     string           `json:"fullname"`
	Username     string           `json:"username"`
	Email        string           `json:"email"`
	Website      *string          `json:"website"`
	Bio          *string          `json:"bio"`
	MobileNumber *string          `json:"mobile_number"`
	CreatedAt    time.Time        `json:"created_at"`
	Counts       model.UserCounts `json:"counts"`
}

func GetUserDtoFromUser(user model.User) *GetUserDto {
	return &GetUserDto{
		ID:           user.ID,
		Fullname:     user.Fullname,
		Username:     user.Username,
		Email:        user.Email,
		Website:      user.Website,
		Bio:          user.Biography,
		MobileNumber: user.MobileNumber,
		CreatedAt:    user.CreatedAt,
		Counts:       user.Counts,
	}
}
