package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sergio11/instangular-rest-api/internal/model"
)

type mediaRepo struct {
	db *pgxpool.Pool
}

func newMediaRepo(db *pgxpool.Pool) Media {
	return &mediaRepo{
		db: db,
	}
}

func (r *mediaRepo) Create(ctx context.Context, media model.Media) (*model.Media, error) {
	media.ID = uuid.New()
	media.CreatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO media(id, type, caption, link, latitude, longitude, user_id, created_at) VALUES($1, $2, $3, $4, $5, $6, $7, $8)",
		media.ID,
		media.Type,
		media.Caption,
		media.Link,
		media.Latitude,
		media.Longitude,
		media.UserID,
		media.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &media, nil
}

func (r *mediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MediaWithOwner, error) {
	var media model.MediaWithOwner
	if err := r.db.QueryRow(
		ctx,
		`
		SELECT m.id, m.type, m.caption, m.link, m.latitude, m.longitude, m.user_id, m.created_at, u.id, u.fullname, u.username
		FROM media m
		JOIN users u ON m.user_id = u.id
		WHERE m.id = $1
		`,
		id,
	).Scan(
		&media.ID,
		&media.Type,
		&media.Caption,
		&media.Link,
		&media.Latitude,
		&media.Longitude,
		&media.UserID,
		&media.CreatedAt,
		&media.Owner.ID,
		&media.Owner.Fullname,
		&media.Owner.Username,
	); err != nil {
		return nil, err
	}

	return &media, nil
}

func (r *mediaRepo) FindByUser(ctx context.Context, userID uuid.UUID, limit int, skip int) ([]*model.Media, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`
		SELECT m.id, m.type, m.caption, m.link, m.latitude, m.longitude, m.user_id, m.created_at
		FROM media m
		WHERE m.user_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2
		OFFSET $3
		`,
		userID,
		limit,
		skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMediaRows(rows)
}

// Search returns media inside the annulus between minDistance and maxDistance
// meters around the given point, newest first. Distance is computed with the
// haversine formula over a spherical earth.
func (r *mediaRepo) Search(ctx context.Context, lat float64, lon float64, minDistance float64, maxDistance float64) ([]*model.Media, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT m.id, m.type, m.caption, m.link, m.latitude, m.longitude, m.user_id, m.created_at
		FROM media m
		WHERE 2 * 6371000 * asin(sqrt(
			pow(sin(radians(m.latitude - $1) / 2), 2) +
			cos(radians($1)) * cos(radians(m.latitude)) *
			pow(sin(radians(m.longitude - $2) / 2), 2)
		)) BETWEEN $3 AND $4
		ORDER BY m.created_at DESC
		`,
		lat,
		lon,
		minDistance,
		maxDistance,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMediaRows(rows)
}

func (r *mediaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM media WHERE id = $1", id)
	return err
}

func (r *mediaRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM media WHERE user_id = $1", userID)
	return err
}

type mediaRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanMediaRows(rows mediaRows) ([]*model.Media, error) {
	var medias []*model.Media
	for rows.Next() {
		var media model.Media
		if err := rows.Scan(
			&media.ID,
			&media.Type,
			&media.Caption,
			&media.Link,
			&media.Latitude,
			&media.Longitude,
			&media.UserID,
			&media.CreatedAt,
		); err != nil {
			return nil, err
		}

		medias = append(medias, &media)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return medias, nil
}
