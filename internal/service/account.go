package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sergio11/instangular-rest-api/internal/config"
	"github.com/sergio11/instangular-rest-api/internal/dto"
	"github.com/sergio11/instangular-rest-api/internal/model"
	"github.com/sergio11/instangular-rest-api/internal/rabbitmq"
	"github.com/sergio11/instangular-rest-api/internal/repository"
	"github.com/sergio11/instangular-rest-api/internal/repository/postgres"
	"github.com/sergio11/instangular-rest-api/internal/repository/redisrepo"
	"github.com/sergio11/instangular-rest-api/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type accountService struct {
	logger   *zap.Logger
	cfg      *config.Config
	repo     *repository.Repository
	mq       Publisher
	verifier SocialVerifier
}

func newAccountService(logger *zap.Logger, cfg *config.Config, repo *repository.Repository, mq Publisher, verifier SocialVerifier) Account {
	return &accountService{
		logger:   logger,
		cfg:      cfg,
		repo:     repo,
		mq:       mq,
		verifier: verifier,
	}
}

func (s *accountService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.SignUpResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	existing, err := s.repo.Postgres.User.FindByEmail(ctx, req.Email)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find user by email(%s): %s", req.Email, err.Error())
		return nil, ErrInternal
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return nil, ErrInternal
	}

	confirmationToken := utils.NewRandomToken(utils.ConfirmationTokenLength)
	issuedAt := time.Now()

	newUser := model.User{
		Fullname:             req.Fullname,
		Username:             req.Username,
		Email:                req.Email,
		PasswordHash:         string(passwordHash),
		Website:              req.Website,
		Biography:            req.Biography,
		MobileNumber:         req.MobileNumber,
		Active:               false,
		ConfirmationToken:    &confirmationToken,
		ConfirmationIssuedAt: &issuedAt,
	}
	createdUser, err := s.repo.Postgres.User.Create(ctx, newUser)
	if err != nil {
		// A concurrent signup may win the race past the existence check;
		// the storage-level unique index reports it the same way.
		if postgres.IsUniqueViolation(err) {
			return nil, ErrUserAlreadyExists
		}

		s.logger.Sugar().Errorf("failed to create user in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	if err := s.publishMailToken(rabbitmq.CONFIRMATION_MAIL_QUEUE, createdUser.Email, confirmationToken); err != nil {
		return nil, ErrInternal
	}

	return &dto.SignUpResult{
		ID:      createdUser.ID.String(),
		Message: "User successfully registered, check your email for more information",
	}, nil
}

func (s *accountService) ConfirmAccount(ctx context.Context, token string) error {
	user, err := s.repo.Postgres.User.FindByConfirmationToken(ctx, token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrInvalidConfirmationToken
		}

		s.logger.Sugar().Errorf("failed to find user by confirmation token: %s", err.Error())
		return ErrInternal
	}

	if err := s.repo.Postgres.User.Activate(ctx, user.ID); err != nil {
		s.logger.Sugar().Errorf("failed to activate user(%s): %s", user.ID.String(), err.Error())
		return ErrInternal
	}

	if err := s.repo.Redis.Del(ctx, redisrepo.UserKey(user.ID.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate user(%s) cache: %s", user.ID.String(), err.Error())
	}

	return nil
}

// SignIn checks existence, then password, then the active flag, in that
// order: unknown username and wrong password are indistinguishable to the
// caller, and a disabled account is only revealed after a password match.
func (s *accountService) SignIn(ctx context.Context, username string, password string) (string, error) {
	user, err := s.repo.Postgres.User.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", ErrLoginFail
		}

		s.logger.Sugar().Errorf("failed to find user by username(%s): %s", username, err.Error())
		return "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrLoginFail
	}

	if !user.Active {
		return "", ErrAccountDisabled
	}

	token, err := utils.GenerateSessionToken(user.ID.String(), []byte(s.cfg.Auth.JWTSecret), s.cfg.Auth.SessionExpiry)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate session token: %s", err.Error())
		return "", ErrInternal
	}

	return token, nil
}

func (s *accountService) SignInWithFacebook(ctx context.Context, facebookID string, accessToken string) (string, error) {
	if err := s.verifier.Verify(ctx, facebookID, accessToken); err != nil {
		return "", ErrLoginFailWithFacebook
	}

	user, err := s.repo.Postgres.User.FindByFacebookID(ctx, facebookID)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find user by facebook id(%s): %s", facebookID, err.Error())
		return "", ErrInternal
	}

	if user == nil {
		user, err = s.createFacebookUser(ctx, facebookID)
		if err != nil {
			return "", err
		}
	}

	token, err := utils.GenerateSessionToken(user.ID.String(), []byte(s.cfg.Auth.JWTSecret), s.cfg.Auth.SessionExpiry)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate session token: %s", err.Error())
		return "", ErrInternal
	}

	return token, nil
}

// createFacebookUser provisions a local account bound to the social
// identity. It is active immediately; the social provider already proved
// ownership of the identity.
func (s *accountService) createFacebookUser(ctx context.Context, facebookID string) (*model.User, error) {
	// The account has no local password; an unguessable one keeps the
	// local sign-in path closed.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(utils.NewRandomToken(32)), 10)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return nil, ErrInternal
	}

	newUser := model.User{
		Fullname:     fmt.Sprintf("Facebook user %s", facebookID),
		Username:     fmt.Sprintf("fb%s", facebookID),
		Email:        fmt.Sprintf("%s@facebook.local", facebookID),
		PasswordHash: string(passwordHash),
		Active:       true,
		FacebookID:   &facebookID,
	}
	createdUser, err := s.repo.Postgres.User.Create(ctx, newUser)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			// Concurrent federated logins for the same identity: the loser
			// picks up the winner's record.
			user, findErr := s.repo.Postgres.User.FindByFacebookID(ctx, facebookID)
			if findErr != nil {
				s.logger.Sugar().Errorf("failed to find user by facebook id(%s): %s", facebookID, findErr.Error())
				return nil, ErrInternal
			}
			return user, nil
		}

		s.logger.Sugar().Errorf("failed to create facebook user in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return createdUser, nil
}

func (s *accountService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.Postgres.User.FindByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", ErrNoSuchUserExist
		}

		s.logger.Sugar().Errorf("failed to find user by email(%s): %s", email, err.Error())
		return "", ErrInternal
	}

	if user.ResetToken != nil && user.ResetIssuedAt != nil && time.Since(*user.ResetIssuedAt) < s.cfg.Auth.ResetWindow {
		return "", ErrPasswordAlreadyRequested
	}

	resetToken := utils.NewRandomToken(utils.ConfirmationTokenLength)
	if err := s.repo.Postgres.User.SetResetToken(ctx, user.ID, resetToken, time.Now()); err != nil {
		s.logger.Sugar().Errorf("failed to set reset token for user(%s): %s", user.ID.String(), err.Error())
		return "", ErrInternal
	}

	if err := s.publishMailToken(rabbitmq.RESET_PASSWORD_MAIL_QUEUE, user.Email, resetToken); err != nil {
		return "", ErrInternal
	}

	message := fmt.Sprintf(
		"We have sent an email to %s. It contains an activation link for you to click to activate your account.",
		user.Email,
	)
	return message, nil
}

func (s *accountService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	issuedAfter := time.Now().Add(-s.cfg.Auth.ResetWindow)
	user, err := s.repo.Postgres.User.FindByResetToken(ctx, token, issuedAfter)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrInvalidConfirmationToken
		}

		s.logger.Sugar().Errorf("failed to find user by reset token: %s", err.Error())
		return ErrInternal
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 10)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return ErrInternal
	}

	if err := s.repo.Postgres.User.ResetPassword(ctx, user.ID, string(passwordHash)); err != nil {
		s.logger.Sugar().Errorf("failed to reset password for user(%s): %s", user.ID.String(), err.Error())
		return ErrInternal
	}

	if err := s.repo.Redis.Del(ctx, redisrepo.UserKey(user.ID.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate user(%s) cache: %s", user.ID.String(), err.Error())
	}

	return nil
}

func (s *accountService) publishMailToken(queue string, email string, token string) error {
	queueData, err := json.Marshal(&dto.MailTokenDto{
		Email: email,
		Token: token,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal json: %s", err.Error())
		return err
	}

	if err := s.mq.Publish(queue, queueData); err != nil {
		s.logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", queue, err.Error())
		return err
	}

	return nil
}
