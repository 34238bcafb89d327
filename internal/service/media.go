package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sergio11/instangular-rest-api/internal/config"
	"github.com/sergio11/instangular-rest-api/internal/dto"
	"github.com/sergio11/instangular-rest-api/internal/model"
	"github.com/sergio11/instangular-rest-api/internal/repository"
	"github.com/sergio11/instangular-rest-api/internal/repository/redisrepo"
	"go.uber.org/zap"
)

type mediaService struct {
	logger *zap.Logger
	cfg    *config.Config
	repo   *repository.Repository
}

func newMediaService(logger *zap.Logger, cfg *config.Config, repo *repository.Repository) Media {
	return &mediaService{
		logger: logger,
		cfg:    cfg,
		repo:   repo,
	}
}

func (s *mediaService) Create(ctx context.Context, owner uuid.UUID, req dto.CreateMediaRequest) (*model.Media, error) {
	media := model.Media{
		Type:      req.Type,
		Caption:   req.Caption,
		Link:      req.Link,
		Latitude:  req.Location[0],
		Longitude: req.Location[1],
		UserID:    owner,
	}
	createdMedia, err := s.repo.Postgres.Media.Create(ctx, media)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create media in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	// The owner's media counter follows explicitly; it was a post-save
	// side effect in earlier iterations of this API.
	if err := s.repo.Postgres.User.IncrementCounts(ctx, owner, 1, 0, 0); err != nil {
		s.logger.Sugar().Errorf("failed to increment media count for user(%s): %s", owner.String(), err.Error())
	}
	s.invalidateOwner(ctx, owner)

	return createdMedia, nil
}

func (s *mediaService) Get(ctx context.Context, id uuid.UUID) (*model.MediaWithOwner, error) {
	media, err := s.repo.Postgres.Media.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrMediaNotFound
		}

		s.logger.Sugar().Errorf("failed to find media(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return media, nil
}

func (s *mediaService) ListOwn(ctx context.Context, owner uuid.UUID, limit int, skip int) ([]*model.Media, error) {
	medias, err := s.repo.Postgres.Media.FindByUser(ctx, owner, limit, skip)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list media for user(%s): %s", owner.String(), err.Error())
		return nil, ErrInternal
	}

	return medias, nil
}

func (s *mediaService) Search(ctx context.Context, lat float64, lon float64) ([]*model.Media, error) {
	medias, err := s.repo.Postgres.Media.Search(
		ctx,
		lat,
		lon,
		s.cfg.Media.SearchMinDistance,
		s.cfg.Media.SearchMaxDistance,
	)
	if err != nil {
		s.logger.Sugar().Errorf("failed to search media around (%f, %f): %s", lat, lon, err.Error())
		return nil, ErrInternal
	}

	return medias, nil
}

// Remove deletes a media record the actor owns. Dependent comments go first,
// then the record, then the owner's cached media count.
func (s *mediaService) Remove(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*model.Media, error) {
	media, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if media.UserID != actor {
		return nil, ErrDeleteMediaAccessDenied
	}

	if err := s.repo.Postgres.Comment.DeleteByMedia(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete comments for media(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Postgres.Media.Delete(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete media(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Postgres.User.IncrementCounts(ctx, media.UserID, -1, 0, 0); err != nil {
		s.logger.Sugar().Errorf("failed to decrement media count for user(%s): %s", media.UserID.String(), err.Error())
	}
	s.invalidateOwner(ctx, media.UserID)

	return &media.Media, nil
}

func (s *mediaService) AddComment(ctx context.Context, actor uuid.UUID, mediaID uuid.UUID, body string) (*model.Comment, error) {
	if _, err := s.Get(ctx, mediaID); err != nil {
		return nil, err
	}

	comment := model.Comment{
		MediaID: mediaID,
		UserID:  actor,
		Body:    body,
	}
	createdComment, err := s.repo.Postgres.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create comment for media(%s): %s", mediaID.String(), err.Error())
		return nil, ErrInternal
	}

	return createdComment, nil
}

func (s *mediaService) Comments(ctx context.Context, mediaID uuid.UUID) ([]*model.Comment, error) {
	if _, err := s.Get(ctx, mediaID); err != nil {
		return nil, err
	}

	comments, err := s.repo.Postgres.Comment.FindByMedia(ctx, mediaID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comments for media(%s): %s", mediaID.String(), err.Error())
		return nil, ErrInternal
	}

	return comments, nil
}

func (s *mediaService) invalidateOwner(ctx context.Context, owner uuid.UUID) {
	if err := s.repo.Redis.Del(ctx, redisrepo.UserKey(owner.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate user(%s) cache: %s", owner.String(), err.Error())
	}
}
