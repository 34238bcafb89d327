package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sergio11/instangular-rest-api/internal/config"
	"github.com/sergio11/instangular-rest-api/internal/dto"
	"github.com/sergio11/instangular-rest-api/internal/model"
	"github.com/sergio11/instangular-rest-api/internal/rabbitmq"
	"github.com/sergio11/instangular-rest-api/internal/repository"
	"go.uber.org/zap"
)

// Publisher dispatches messages for external collaborators (the mail
// service). Satisfied by *rabbitmq.MQConn.
type Publisher interface {
	Publish(queue string, body []byte) error
}

// SocialVerifier checks a third-party social token out-of-band.
type SocialVerifier interface {
	Verify(ctx context.Context, userID string, accessToken string) error
}

type Account interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.SignUpResult, error)
	ConfirmAccount(ctx context.Context, token string) error
	SignIn(ctx context.Context, username string, password string) (string, error)
	SignInWithFacebook(ctx context.Context, facebookID string, accessToken string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.GetUserDto, error)
	List(ctx context.Context, limit int, skip int) ([]*dto.GetUserDto, error)
	Update(ctx context.Context, user model.User, updates map[string]interface{}) (*dto.GetUserDto, error)
	Delete(ctx context.Context, user model.User) (*dto.GetUserDto, error)
}

type Follow interface {
	Follow(ctx context.Context, follower uuid.UUID, followed uuid.UUID) (*model.FollowEdge, error)
	Unfollow(ctx context.Context, follower uuid.UUID, followed uuid.UUID) (*model.FollowEdge, error)
	Follows(ctx context.Context, userID uuid.UUID) ([]*model.UserSummary, error)
	FollowedBy(ctx context.Context, userID uuid.UUID) ([]*model.UserSummary, error)
}

type Media interface {
	Create(ctx context.Context, owner uuid.UUID, req dto.CreateMediaRequest) (*model.Media, error)
	Get(ctx context.Context, id uuid.UUID) (*model.MediaWithOwner, error)
	ListOwn(ctx context.Context, owner uuid.UUID, limit int, skip int) ([]*model.Media, error)
	Search(ctx context.Context, lat float64, lon float64) ([]*model.Media, error)
	Remove(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*model.Media, error)
	AddComment(ctx context.Context, actor uuid.UUID, mediaID uuid.UUID, body string) (*model.Comment, error)
	Comments(ctx context.Context, mediaID uuid.UUID) ([]*model.Comment, error)
}

type Service struct {
	Account
	User
	Follow
	Media
}

func New(logger *zap.Logger, cfg *config.Config, repo *repository.Repository, mq Publisher, verifier SocialVerifier) *Service {
	userService := newUserService(logger, repo)
	return &Service{
		Account: newAccountService(logger, cfg, repo, mq, verifier),
		User:    userService,
		Follow:  newFollowService(logger, repo),
		Media:   newMediaService(logger, cfg, repo),
	}
}

var _ Publisher = (*rabbitmq.MQConn)(nil)
