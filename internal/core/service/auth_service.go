package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// AuthService implements registration and login.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user with a hashed password and returns a token for it.
// A duplicate email fails with domain.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, domain.Invalid("email", "is required")
	}
	if input.Password == "" {
		return nil, domain.Invalid("password", "is required")
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, domain.Invalid("password", "must be at most 72 bytes")
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("password hashing failed")
		return nil, err
	}

	now := s.now()
	user, err := s.users.Insert(ctx, &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(domain.TokenClaims{SubjectID: user.ID})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Login checks credentials and issues a token. Unknown emails and wrong
// passwords both fail with domain.ErrInvalidCredentials and cost one hash
// verification each.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if dummy := s.dummy(); dummy != "" {
			_, _ = s.hasher.Verify(password, dummy)
		}
		s.log.Debug().Msg("login failed: unknown email")
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("password verification failed")
		return nil, err
	}
	if !ok {
		s.log.Debug().Str("user_id", user.ID).Msg("login failed: wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.TokenClaims{SubjectID: user.ID})
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

// dummy returns a hash to verify against when the email is unknown.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			s.log.Warn().Err(err).Msg("dummy hash unavailable")
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
