package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sergio11/instangular-rest-api/internal/model"
	"github.com/sergio11/instangular-rest-api/internal/repository"
	"github.com/sergio11/instangular-rest-api/internal/repository/redisrepo"
	"go.uber.org/zap"
)

type followService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newFollowService(logger *zap.Logger, repo *repository.Repository) Follow {
	return &followService{
		logger: logger,
		repo:   repo,
	}
}

func (s *followService) Follow(ctx context.Context, follower uuid.UUID, followed uuid.UUID) (*model.FollowEdge, error) {
	if follower == followed {
		return nil, ErrCanNotFollow
	}

	if _, err := s.repo.Postgres.User.FindByID(ctx, followed); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s): %s", followed.String(), err.Error())
		return nil, ErrInternal
	}

	edge := model.FollowEdge{
		Follower:  follower,
		Followed:  followed,
		CreatedAt: time.Now(),
	}
	inserted, err := s.repo.Postgres.Follow.Insert(ctx, edge)
	if err != nil {
		s.logger.Sugar().Errorf("failed to insert follow edge(%s -> %s): %s", follower.String(), followed.String(), err.Error())
		return nil, ErrInternal
	}

	// A duplicate follow is a no-op: the edge set is unchanged, so the
	// counters must stay unchanged too.
	if inserted {
		s.adjustCounts(ctx, follower, followed, 1)
		s.invalidate(ctx, follower, followed)
	}

	return &edge, nil
}

// Unfollow removes the edge if present. Removing a non-existent edge is not
// an error: the result is the same either way.
func (s *followService) Unfollow(ctx context.Context, follower uuid.UUID, followed uuid.UUID) (*model.FollowEdge, error) {
	removed, err := s.repo.Postgres.Follow.Delete(ctx, follower, followed)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete follow edge(%s -> %s): %s", follower.String(), followed.String(), err.Error())
		return nil, ErrInternal
	}

	if removed {
		s.adjustCounts(ctx, follower, followed, -1)
		s.invalidate(ctx, follower, followed)
	}

	return &model.FollowEdge{
		Follower: follower,
		Followed: followed,
	}, nil
}

func (s *followService) Follows(ctx context.Context, userID uuid.UUID) ([]*model.UserSummary, error) {
	cacheKey := redisrepo.FollowsKey(userID.String())
	cached, err := redisrepo.GetMany[model.UserSummary](s.repo.Redis.Default, ctx, cacheKey)
	if err == nil {
		return cached, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get follows(%s) from redis: %s", userID.String(), err.Error())
	}

	follows, err := s.repo.Postgres.Follow.FindFollows(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find follows(%s) from postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.SetJSON(ctx, cacheKey, follows, time.Minute*10); err != nil {
		s.logger.Sugar().Errorf("failed to set follows(%s) in redis: %s", userID.String(), err.Error())
	}

	return follows, nil
}

func (s *followService) FollowedBy(ctx context.Context, userID uuid.UUID) ([]*model.UserSummary, error) {
	cacheKey := redisrepo.FollowedByKey(userID.String())
	cached, err := redisrepo.GetMany[model.UserSummary](s.repo.Redis.Default, ctx, cacheKey)
	if err == nil {
		return cached, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get followed-by(%s) from redis: %s", userID.String(), err.Error())
	}

	followers, err := s.repo.Postgres.Follow.FindFollowedBy(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find followed-by(%s) from postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.SetJSON(ctx, cacheKey, followers, time.Minute*10); err != nil {
		s.logger.Sugar().Errorf("failed to set followed-by(%s) in redis: %s", userID.String(), err.Error())
	}

	return followers, nil
}

// adjustCounts bumps the cached counters on both user rows. The counters are
// advisory; a failure here is logged and not surfaced.
func (s *followService) adjustCounts(ctx context.Context, follower uuid.UUID, followed uuid.UUID, delta int) {
	if err := s.repo.Postgres.User.IncrementCounts(ctx, follower, 0, delta, 0); err != nil {
		s.logger.Sugar().Errorf("failed to adjust follows count for user(%s): %s", follower.String(), err.Error())
	}
	if err := s.repo.Postgres.User.IncrementCounts(ctx, followed, 0, 0, delta); err != nil {
		s.logger.Sugar().Errorf("failed to adjust followed-by count for user(%s): %s", followed.String(), err.Error())
	}
}

func (s *followService) invalidate(ctx context.Context, follower uuid.UUID, followed uuid.UUID) {
	if err := s.repo.Redis.Del(
		ctx,
		redisrepo.UserKey(follower.String()),
		redisrepo.UserKey(followed.String()),
		redisrepo.FollowsKey(follower.String()),
		redisrepo.FollowedByKey(followed.String()),
	).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate follow caches(%s, %s): %s", follower.String(), followed.String(), err.Error())
	}
}
