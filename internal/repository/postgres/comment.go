package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sergio11/instangular-rest-api/internal/model"
)

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO comments(id, media_id, user_id, body, created_at) VALUES($1, $2, $3, $4, $5)",
		comment.ID,
		comment.MediaID,
		comment.UserID,
		comment.Body,
		comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByMedia(ctx context.Context, mediaID uuid.UUID) ([]*model.Comment, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT c.id, c.media_id, c.user_id, c.body, c.created_at FROM comments c WHERE c.media_id = $1 ORDER BY c.created_at",
		mediaID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.MediaID,
			&comment.UserID,
			&comment.Body,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) DeleteByMedia(ctx context.Context, mediaID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM comments WHERE media_id = $1", mediaID)
	return err
}
