package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis). A nil throttle
// disables lockout entirely.
type LoginThrottle interface {
	// TooManyAttempts reports whether the key has exhausted its attempts.
	TooManyAttempts(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Clear(ctx context.Context, key string) error
}

// AuthService implements registration, login, token identity lookup, profile
// updates, and account deletion.
type AuthService struct {
	users       ports.UserRepository
	credentials *CredentialStore
	tokens      *TokenService
	throttle    LoginThrottle
	logger      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	credentials *CredentialStore,
	tokens *TokenService,
	throttle LoginThrottle,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		throttle:    throttle,
		logger:      logger,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	hash, err := s.credentials.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        domain.NormalizeEmail(in.Email),
		PasswordHash: hash,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password return the same domain.ErrInvalidCredentials so the response
// never reveals which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	key := domain.NormalizeEmail(email)

	if s.throttle != nil {
		locked, err := s.throttle.TooManyAttempts(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if locked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, key)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.credentials.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, key)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Clear(ctx, key); err != nil {
			s.logger.Warn().Err(err).Msg("failed to clear login throttle")
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		// The token was valid but points at a deleted account.
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = domain.NormalizeEmail(*in.Email)
	}
	if in.Password != nil {
		hash, err := s.credentials.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", userID).Msg("profile updated")
	return updated, nil
}

func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", userID).Msg("account deleted")
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}
