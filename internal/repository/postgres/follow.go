package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sergio11/instangular-rest-api/internal/model"
)

type followRepo struct {
	db *pgxpool.Pool
}

func newFollowRepo(db *pgxpool.Pool) Follow {
	return &followRepo{
		db: db,
	}
}

// Insert adds the edge if it is not present yet. The boolean result reports
// whether a row was actually inserted, so callers can skip counter updates on
// duplicate follows.
func (r *followRepo) Insert(ctx context.Context, edge model.FollowEdge) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		"INSERT INTO follows(follower_id, followed_id, created_at) VALUES($1, $2, $3) ON CONFLICT (follower_id, followed_id) DO NOTHING",
		edge.Follower,
		edge.Followed,
		time.Now(),
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *followRepo) Delete(ctx context.Context, follower uuid.UUID, followed uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2",
		follower,
		followed,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *followRepo) FindFollows(ctx context.Context, userID uuid.UUID) ([]*model.UserSummary, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT u.id, u.username, u.fullname
		FROM follows f
		JOIN users u ON f.followed_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at
		`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var follows []*model.UserSummary
	for rows.Next() {
		var follow model.UserSummary
		if err := rows.Scan(&follow.ID, &follow.Username, &follow.Fullname); err != nil {
			return nil, err
		}

		follows = append(follows, &follow)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return follows, nil
}

func (r *followRepo) FindFollowedBy(ctx context.Context, userID uuid.UUID) ([]*model.UserSummary, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT u.id, u.username, u.fullname
		FROM follows f
		JOIN users u ON f.follower_id = u.id
		WHERE f.followed_id = $1
		ORDER BY f.created_at
		`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var followers []*model.UserSummary
	for rows.Next() {
		var follower model.UserSummary
		if err := rows.Scan(&follower.ID, &follower.Username, &follower.Fullname); err != nil {
			return nil, err
		}

		followers = append(followers, &follower)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return followers, nil
}

func (r *followRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM follows WHERE follower_id = $1 OR followed_id = $1", userID)
	return err
}
