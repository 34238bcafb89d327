package model

import (
	"time"

	"github.com/google/uuid"
)

// FollowEdge is a directed edge in the follower graph: Follower follows
// Followed. The edge set never contains self-loops or duplicate pairs.
type FollowEdge struct {
	Follower  uuid.UUID `json:"follower"`
	Followed  uuid.UUID `json:"followed"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummary is the counterpart identity returned by the follows and
// followed-by listings.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Fullname string    `json:"fullname"`
}
