package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the persisted account record. PasswordHash and the one-time tokens
// never leave the service layer; DTO conversion strips them.
type User struct {
	ID                   uuid.UUID  `json:"id"`
	Fullname             string     `json:"fullname"`
	Username             string     `json:"username"`
	Email                string     `json:"email"`
	PasswordHash         string     `json:"password_hash"`
	Website              *string    `json:"website"`
	Biography            *string    `json:"biography"`
	MobileNumber         *string    `json:"mobile_number"`
	Active               bool       `json:"active"`
	FacebookID           *string    `json:"facebook_id"`
	ConfirmationToken    *string    `json:"confirmation_token"`
	ConfirmationIssuedAt *time.Time `json:"confirmation_issued_at"`
	ResetToken           *string    `json:"reset_token"`
	ResetIssuedAt        *time.Time `json:"reset_issued_at"`
	CreatedAt            time.Time  `json:"created_at"`
	Counts               UserCounts `json:"counts"`
}

// UserCounts are cached counters kept on the user row. They are advisory:
// bumped alongside the operations that change them, not transactionally.
type UserCounts struct {
	Media      int64 `json:"media"`
	Follows    int64 `json:"follows"`
	FollowedBy int64 `json:"followed_by"`
}
