package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/book_library/internal/domain"
	"github.com/Skotchmaster/book_library/internal/tokens"
	"github.com/Skotchmaster/book_library/internal/transport"
)

func TestAuthService_Register_SuccessAndConflicts(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, transport.RegisterRequest{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "alice", resp.Username)
	assert.Contains(t, resp.Roles, "USER")

	claims, err := tokens.AccessClaimsFromToken(resp.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	// Same username again.
	_, err = svc.Register(ctx, transport.RegisterRequest{
		Username: "alice",
		Email:    "other@x.com",
		Password: "secret2",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Same email, different username.
	_, err = svc.Register(ctx, transport.RegisterRequest{
		Username: "bob",
		Email:    "alice@x.com",
		Password: "secret2",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.RegisterRequest
	}{
		{name: "empty username", req: transport.RegisterRequest{Email: "a@x.com", Password: "secret"}},
		{name: "empty email", req: transport.RegisterRequest{Username: "a", Password: "secret"}},
		{name: "empty password", req: transport.RegisterRequest{Username: "a", Email: "a@x.com"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	mustCreateUser(t, svc.Repo, "alice", "alice@x.com", "secret1", false)

	resp, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	claims, err := tokens.AccessClaimsFromToken(resp.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	// Email works as the identifier too.
	resp, err = svc.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)

	// Wrong password and unknown user look the same.
	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user := mustCreateUser(t, svc.Repo, "carol", "carol@x.com", "secret1", false)
	user.IsActive = false
	require.NoError(t, svc.Repo.SaveUser(ctx, user))

	_, err := svc.Login(ctx, "carol", "secret1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthService_Refresh_Rotation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	mustCreateUser(t, svc.Repo, "alice", "alice@x.com", "secret1", false)

	first, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	resp, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := tokens.AccessClaimsFromToken(resp.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}

func TestAuthService_Refresh_FailsClosed(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	mustCreateUser(t, svc.Repo, "alice", "alice@x.com", "secret1", false)

	expired, err := tokens.SignRefreshToken("alice", testRefreshSecret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	access, err := tokens.SignAccessToken("alice", testJWTSecret, time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expired},
		{name: "garbage", token: "garbage"},
		{name: "access token instead of refresh", token: access},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Refresh(ctx, tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Refresh_UnknownSubject(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	token, err := tokens.SignRefreshToken("ghost", testRefreshSecret, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Register_PublishesEvent(t *testing.T) {
	svc := newAuthService(t)
	pub := &stubPublisher{}
	svc.Producer = pub
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "user_events", pub.events[0].Topic)
}
