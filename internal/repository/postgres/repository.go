package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sergio11/instangular-rest-api/internal/model"
)

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByFacebookID(ctx context.Context, facebookID string) (*model.User, error)
	FindByConfirmationToken(ctx context.Context, token string) (*model.User, error)
	FindByResetToken(ctx context.Context, token string, issuedAfter time.Time) (*model.User, error)
	List(ctx context.Context, limit int, skip int) ([]*model.User, error)
	Activate(ctx context.Context, id uuid.UUID) error
	SetResetToken(ctx context.Context, id uuid.UUID, token string, issuedAt time.Time) error
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	IncrementCounts(ctx context.Context, id uuid.UUID, media int, follows int, followedBy int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Follow interface {
	Insert(ctx context.Context, edge model.FollowEdge) (bool, error)
	Delete(ctx context.Context, follower uuid.UUID, followed uuid.UUID) (bool, error)
	FindFollows(ctx context.Context, userID uuid.UUID) ([]*model.UserSummary, error)
	FindFollowedBy(ctx context.Context, userID uuid.UUID) ([]*model.UserSummary, error)
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type Media interface {
	Create(ctx context.Context, media model.Media) (*model.Media, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.MediaWithOwner, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit int, skip int) ([]*model.Media, error)
	Search(ctx context.Context, lat float64, lon float64, minDistance float64, maxDistance float64) ([]*model.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByMedia(ctx context.Context, mediaID uuid.UUID) ([]*model.Comment, error)
	DeleteByMedia(ctx context.Context, mediaID uuid.UUID) error
}

type PostgresRepository struct {
	User
	Follow
	Media
	Comment
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		User:    newUserRepo(db),
		Follow:  newFollowRepo(db),
		Media:   newMediaRepo(db),
		Comment: newCommentRepo(db),
	}
}

// IsUniqueViolation reports whether err is a storage-level uniqueness
// violation (two concurrent inserts racing past the existence check).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
