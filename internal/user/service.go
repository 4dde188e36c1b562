package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arkasetya/field-booking-backend/internal/auth"
)

const minPasswordLength = 8

// TokenPair is the credential set handed out on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput carries a signup request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
}

// ProfileUpdate patches the caller's own account. Nil fields are kept.
type ProfileUpdate struct {
	Name     *string
	Phone    *string
	Password *string
}

// Service defines business logic related to users and authentication.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*User, error)

	List(ctx context.Context, filter Filter) ([]*User, int, error)
	ChangeRole(ctx context.Context, id string, role Role) (*User, error)
	Deactivate(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	tokens *auth.JWTManager
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, tokens *auth.JWTManager) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*User, *TokenPair, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, nil, ErrEmailRequired
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, nil, ErrNameRequired
	}
	if len(in.Password) < minPasswordLength {
		return nil, nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password failed: %w", err)
	}

	u := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         RoleCustomer,
		IsActive:     true,
	}

	// The unique index on email is the source of truth; a lookup first
	// would still race with concurrent signups.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("user_id", u.ID).Msg("user registered")
	return u, pair, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, *TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !u.IsActive {
		return nil, nil, ErrInactiveUser
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	// Best effort; a failed timestamp write must not fail the login.
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID).Msg("update last login failed")
	}
	u.LastLoginAt = &now

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Refresh trades a valid refresh token for a new token pair. The user
// is re-read so a deactivation or role change takes effect immediately.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	return s.issueTokens(u)
}

func (s *service) issueTokens(u *User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("sign access token failed: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token failed: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		u.Name = name
	}
	if in.Phone != nil {
		u.Phone = in.Phone
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password failed: %w", err)
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ChangeRole(ctx context.Context, id string, role Role) (*User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Role = role

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", id).Str("role", string(role)).Msg("user role changed")
	return u, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.IsActive = false

	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	log.Info().Str("user_id", id).Msg("user deactivated")
	return nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
