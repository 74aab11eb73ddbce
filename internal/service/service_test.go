package service

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/book_library/internal/hash"
	"github.com/Skotchmaster/book_library/internal/models"
	"github.com/Skotchmaster/book_library/internal/repo"
)

var (
	testJWTSecret     = []byte("test-jwt-secret")
	testRefreshSecret = []byte("test-refresh-secret")
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Role{}, &models.Book{}, &models.Favorite{}))

	return repo.New(db)
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	return &AuthService{
		Repo:          newTestRepo(t),
		JWTSecret:     testJWTSecret,
		RefreshSecret: testRefreshSecret,
	}
}

// stubPublisher records published events in memory.
type stubPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	Topic string
	Key   string
	Event any
}

func (p *stubPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func mustCreateUser(t *testing.T, r *repo.GormRepo, username, email, password string, isAdmin bool) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		FullName:     username,
		IsAdmin:      isAdmin,
		IsActive:     true,
	}
	require.NoError(t, r.CreateUser(context.Background(), user))
	return user
}

func mustCreateBook(t *testing.T, r *repo.GormRepo, title, author string) *models.Book {
	t.Helper()

	book := &models.Book{Title: title, Author: author, Category: "fiction"}
	require.NoError(t, r.CreateBook(context.Background(), book))
	return book
}
