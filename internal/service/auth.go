package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/book_library/internal/domain"
	"github.com/Skotchmaster/book_library/internal/hash"
	"github.com/Skotchmaster/book_library/internal/logging"
	"github.com/Skotchmaster/book_library/internal/models"
	"github.com/Skotchmaster/book_library/internal/repo"
	"github.com/Skotchmaster/book_library/internal/tokens"
	"github.com/Skotchmaster/book_library/internal/transport"
)

const defaultRoleName = "USER"

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      EventPublisher
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register", "username", req.Username)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", domain.ErrValidation)
	}

	// Username first, then email: two distinct conflict messages.
	if _, err := s.Repo.GetUserByUsername(ctx, req.Username); err == nil {
		l.Warn("register_conflict", "reason", "username taken")
		return nil, fmt.Errorf("username already in use: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Repo.GetUserByEmail(ctx, req.Email); err == nil {
		l.Warn("register_conflict", "reason", "email taken")
		return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	fullName := req.FullName
	if fullName == "" {
		fullName = req.Username
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		FullName:     fullName,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	role, err := s.Repo.GetOrCreateRole(ctx, defaultRoleName, "Standard user")
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AssignRole(ctx, &user, role); err != nil {
		return nil, err
	}
	user.Roles = append(user.Roles, *role)

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("register_success", "user_id", user.ID)
	return s.authResponse(&user)
}

// Login accepts a username or an email as the identifier. A missing
// user and a wrong password look identical to the caller.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "identifier", identifier)

	if identifier == "" || password == "" {
		return nil, fmt.Errorf("credentials are required: %w", domain.ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.Repo.GetUserByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Warn("login_failed", "reason", "unknown identifier")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "wrong password")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		l.Warn("login_failed", "reason", "account disabled")
		return nil, fmt.Errorf("account is disabled: %w", domain.ErrForbidden)
	}

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("login_success", "user_id", user.ID)
	return s.authResponse(user)
}

// Refresh validates the refresh token and reissues both tokens
// (rotation). Validation is stateless; there is no revocation list.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		l.Warn("refresh_failed", "reason", "invalid token")
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.Repo.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled: %w", domain.ErrForbidden)
	}

	l.Info("refresh_success", "user_id", user.ID)
	return s.authResponse(user)
}

func (s *AuthService) authResponse(user *models.User) (*transport.AuthResponse, error) {
	now := time.Now()
	access, err := tokens.SignAccessToken(user.Username, s.JWTSecret, now.Add(tokens.AccessTTL))
	if err != nil {
		return nil, err
	}
	refresh, err := tokens.SignRefreshToken(user.Username, s.RefreshSecret, now.Add(tokens.RefreshTTL))
	if err != nil {
		return nil, err
	}

	return &transport.AuthResponse{
		Token:        access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Roles:        roleNames(user),
		CreatedAt:    user.CreatedAt.Format(timeLayout),
	}, nil
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "error", err)
	}
}
