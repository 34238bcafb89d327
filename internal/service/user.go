package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sergio11/instangular-rest-api/internal/dto"
	"github.com/sergio11/instangular-rest-api/internal/model"
	"github.com/sergio11/instangular-rest-api/internal/repository"
	"github.com/sergio11/instangular-rest-api/internal/repository/redisrepo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newUserService(logger *zap.Logger, repo *repository.Repository) User {
	return &userService{
		logger: logger,
		repo:   repo,
	}
}

// FindByID resolves a user through the redis cache, falling back to postgres
// and filling the cache on a miss.
func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	userCache, err := redisrepo.Get[model.User](s.repo.Redis.Default, ctx, redisrepo.UserKey(id.String()))
	if err == nil && userCache != nil {
		return userCache, nil
	}

	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", id.String(), err.Error())
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.SetJSON(ctx, redisrepo.UserKey(id.String()), user, time.Hour*3); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id.String(), err.Error())
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*dto.GetUserDto, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.GetUserDtoFromUser(*user), nil
}

func (s *userService) List(ctx context.Context, limit int, skip int) ([]*dto.GetUserDto, error) {
	users, err := s.repo.Postgres.User.List(ctx, limit, skip)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list users from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	result := make([]*dto.GetUserDto, 0, len(users))
	for _, user := range users {
		result = append(result, dto.GetUserDtoFromUser(*user))
	}

	return result, nil
}

func (s *userService) Update(ctx context.Context, user model.User, updates map[string]interface{}) (*dto.GetUserDto, error) {
	sanitized := make(map[string]interface{}, len(updates))
	for field, value := range updates {
		switch field {
		case "fullname", "username", "email", "website", "biography", "mobile_number":
			sanitized[field] = value
		case "password":
			password, ok := value.(string)
			if !ok {
				continue
			}

			passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
			if err != nil {
				s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
				return nil, ErrInternal
			}
			sanitized["password_hash"] = string(passwordHash)
		}
	}

	if err := s.repo.Postgres.User.UpdateByID(ctx, user.ID, sanitized); err != nil {
		s.logger.Sugar().Errorf("failed to update user(%s): %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Del(ctx, redisrepo.UserKey(user.ID.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate user(%s) cache: %s", user.ID.String(), err.Error())
	}

	updated, err := s.repo.Postgres.User.FindByID(ctx, user.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return dto.GetUserDtoFromUser(*updated), nil
}

// Delete removes the account and everything hanging off it: follow edges in
// both directions, owned media with their comments, and finally the user
// row. The cascade is explicit so each step stays visible and testable.
func (s *userService) Delete(ctx context.Context, user model.User) (*dto.GetUserDto, error) {
	follows, err := s.repo.Postgres.Follow.FindFollows(ctx, user.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find follows for user(%s): %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	followers, err := s.repo.Postgres.Follow.FindFollowedBy(ctx, user.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find followed-by for user(%s): %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Postgres.Follow.DeleteAllForUser(ctx, user.ID); err != nil {
		s.logger.Sugar().Errorf("failed to delete follow edges for user(%s): %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Postgres.Media.DeleteAllForUser(ctx, user.ID); err != nil {
		s.logger.Sugar().Errorf("failed to delete media for user(%s): %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Postgres.User.Delete(ctx, user.ID); err != nil {
		s.logger.Sugar().Errorf("failed to delete user(%s): %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	// The counterpart list caches still name the deleted user; drop them
	// along with the user's own keys.
	keys := []string{
		redisrepo.UserKey(user.ID.String()),
		redisrepo.FollowsKey(user.ID.String()),
		redisrepo.FollowedByKey(user.ID.String()),
	}
	for _, followed := range follows {
		keys = append(keys, redisrepo.FollowedByKey(followed.ID.String()))
	}
	for _, follower := range followers {
		keys = append(keys, redisrepo.FollowsKey(follower.ID.String()))
	}
	if err := s.repo.Redis.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate user(%s) caches: %s", user.ID.String(), err.Error())
	}

	return dto.GetUserDtoFromUser(user), nil
}
