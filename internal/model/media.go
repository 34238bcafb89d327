package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MediaTypeImage = "IMAGE"
	MediaTypeVideo = "VIDEO"
)

type Media struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Caption   *string   `json:"caption"`
	Link      string    `json:"link"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MediaWithOwner is a media record with the owner identity resolved,
// as returned by single-media lookups.
type MediaWithOwner struct {
	Media
	Owner MediaOwner `json:"user"`
}

type MediaOwner struct {
	ID       uuid.UUID `json:"id"`
	Fullname string    `json:"fullname"`
	Username string    `json:"username"`
}
