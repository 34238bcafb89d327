package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sergio11/instangular-rest-api/internal/model"
)

const MAX_LIMIT = 50

const userColumns = `u.id, u.fullname, u.username, u.email, u.password_hash, u.website, u.biography, u.mobile_number, u.active, u.facebook_id, u.confirmation_token, u.confirmation_issued_at, u.reset_token, u.reset_issued_at, u.created_at, u.media_count, u.follows_count, u.followed_by_count`

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	if err := row.Scan(
		&user.ID,
		&user.Fullname,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Website,
		&user.Biography,
		&user.MobileNumber,
		&user.Active,
		&user.FacebookID,
		&user.ConfirmationToken,
		&user.ConfirmationIssuedAt,
		&user.ResetToken,
		&user.ResetIssuedAt,
		&user.CreatedAt,
		&user.Counts.Media,
		&user.Counts.Follows,
		&user.Counts.FollowedBy,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO users(id, fullname, username, email, password_hash, website, biography, mobile_number, active, facebook_id, confirmation_token, confirmation_issued_at, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		user.ID,
		user.Fullname,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Website,
		user.Biography,
		user.MobileNumber,
		user.Active,
		user.FacebookID,
		user.ConfirmationToken,
		user.ConfirmationIssuedAt,
		user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM users u WHERE u.id = $1", userColumns), id))
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM users u WHERE u.username = $1", userColumns), username))
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM users u WHERE u.email = $1", userColumns), email))
}

func (r *userRepo) FindByFacebookID(ctx context.Context, facebookID string) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM users u WHERE u.facebook_id = $1", userColumns), facebookID))
}

func (r *userRepo) FindByConfirmationToken(ctx context.Context, token string) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM users u WHERE u.confirmation_token = $1", userColumns), token))
}

func (r *userRepo) FindByResetToken(ctx context.Context, token string, issuedAfter time.Time) (*model.User, error) {
	return scanUser(r.db.QueryRow(
		ctx,
		fmt.Sprintf("SELECT %s FROM users u WHERE u.reset_token = $1 AND u.reset_issued_at > $2", userColumns),
		token,
		issuedAfter,
	))
}

func (r *userRepo) List(ctx context.Context, limit int, skip int) ([]*model.User, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf("SELECT %s FROM users u ORDER BY u.created_at LIMIT $1 OFFSET $2", userColumns),
		limit,
		skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepo) Activate(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(
		ctx,
		"UPDATE users SET active = TRUE, confirmation_token = NULL, confirmation_issued_at = NULL WHERE id = $1",
		id,
	)
	return err
}

func (r *userRepo) SetResetToken(ctx context.Context, id uuid.UUID, token string, issuedAt time.Time) error {
	_, err := r.db.Exec(
		ctx,
		"UPDATE users SET reset_token = $1, reset_issued_at = $2 WHERE id = $3",
		token,
		issuedAt,
		id,
	)
	return err
}

func (r *userRepo) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.db.Exec(
		ctx,
		"UPDATE users SET password_hash = $1, reset_token = NULL, reset_issued_at = NULL WHERE id = $2",
		passwordHash,
		id,
	)
	return err
}

var allowedUserUpdates = map[string]string{
	"fullname":      "fullname",
	"username":      "username",
	"email":         "email",
	"password_hash": "password_hash",
	"website":       "website",
	"biography":     "biography",
	"mobile_number": "mobile_number",
}

func (r *userRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	for field, value := range updates {
		column, ok := allowedUserUpdates[field]
		if !ok {
			continue
		}

		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if len(setClauses) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), len(args))

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *userRepo) IncrementCounts(ctx context.Context, id uuid.UUID, media int, follows int, followedBy int) error {
	_, err := r.db.Exec(
		ctx,
		"UPDATE users SET media_count = media_count + $1, follows_count = follows_count + $2, followed_by_count = followed_by_count + $3 WHERE id = $4",
		media,
		follows,
		followedBy,
		id,
	)
	return err
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

func maximumLimit(l *int) {
	if *l < 0 {
		*l = 0
	}
	if *l > MAX_LIMIT {
		*l = MAX_LIMIT
	}
}
