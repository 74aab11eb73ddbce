package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/book_library/internal/hash"
	authmw "github.com/Skotchmaster/book_library/internal/middleware/auth"
	"github.com/Skotchmaster/book_library/internal/models"
	"github.com/Skotchmaster/book_library/internal/repo"
	"github.com/Skotchmaster/book_library/internal/service"
	"github.com/Skotchmaster/book_library/internal/tokens"
	"github.com/Skotchmaster/book_library/internal/transport"
)

var (
	testJWTSecret     = []byte("test-jwt-secret")
	testRefreshSecret = []byte("test-refresh-secret")
)

type testEnv struct {
	E  *echo.Echo
	DB *gorm.DB
	R  *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Role{}, &models.Book{}, &models.Favorite{}))

	r := repo.New(db)
	authSvc := &service.AuthService{Repo: r, JWTSecret: testJWTSecret, RefreshSecret: testRefreshSecret}
	adminSvc := &service.AdminService{Repo: r}
	bookSvc := &service.BookService{Repo: r}
	favSvc := &service.FavoriteService{Repo: r}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:     &AuthHTTP{Svc: authSvc},
		BookHandler:     &BookHTTP{Svc: bookSvc},
		FavoriteHandler: &FavoriteHTTP{Svc: favSvc},
		AdminHandler:    &AdminHTTP{Svc: adminSvc},
		AuthMW:          &authmw.Middleware{JWTSecret: testJWTSecret, Admin: adminSvc},
	})

	return &testEnv{E: e, DB: db, R: r}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, transport.ApiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	var resp transport.ApiResponse
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

func (env *testEnv) createUser(t *testing.T, username, email, password string, isAdmin bool) *models.User {
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
	require.NoError(t, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) accessToken(t *testing.T, username string) string {
	t.Helper()

	token, err := tokens.SignAccessToken(username, testJWTSecret, time.Now().Add(tokens.AccessTTL))
	require.NoError(t, err)
	return token
}

func TestRegisterEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "secret1",
	}

	rec, resp := env.do(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, data["token"])
	require.NotEmpty(t, data["refreshToken"])
	require.Equal(t, "alice", data["username"])

	// Registering the same username again is a conflict.
	rec, resp = env.do(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, resp.Success)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@x.com", "secret1", false)

	rec, resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	rec, resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, resp.Success)
}

func TestRefreshEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@x.com", "secret1", false)

	refresh, err := tokens.SignRefreshToken("alice", testRefreshSecret, time.Now().Add(tokens.RefreshTTL))
	require.NoError(t, err)

	rec, resp := env.do(t, http.MethodPost, "/api/auth/refresh", refresh, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	rec, _ = env.do(t, http.MethodPost, "/api/auth/refresh", "bogus", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/auth/refresh", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminGate(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "root", "root@x.com", "secret1", true)
	env.createUser(t, "alice", "alice@x.com", "secret1", false)

	// No token.
	rec, _ := env.do(t, http.MethodGet, "/api/admin/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token, but not an admin.
	rec, _ = env.do(t, http.MethodGet, "/api/admin/users", env.accessToken(t, "alice"), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Token for a user that no longer exists.
	rec, _ = env.do(t, http.MethodGet, "/api/admin/users", env.accessToken(t, "ghost"), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Admin token passes.
	rec, resp := env.do(t, http.MethodGet, "/api/admin/users", env.accessToken(t, "root"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
}

func TestAdminBookCRUD(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "root", "root@x.com", "secret1", true)
	token := env.accessToken(t, "root")

	rec, resp := env.do(t, http.MethodPost, "/api/admin/books", token, map[string]string{
		"title": "Dune", "author": "Frank Herbert", "category": "scifi",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	id := int(data["id"].(float64))
	require.NotZero(t, id)

	// The book is publicly readable without a token.
	rec, resp = env.do(t, http.MethodGet, "/api/books", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Data.([]any), 1)

	// Missing book id is a soft envelope, not a 404.
	rec, resp = env.do(t, http.MethodGet, "/api/books/9999", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, resp.Success)

	rec, _ = env.do(t, http.MethodDelete, "/api/admin/books/9999", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoritesSoftErrors(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "alice@x.com", "secret1", false)
	token := env.accessToken(t, "alice")

	book := &models.Book{Title: "Dune", Author: "Frank Herbert"}
	require.NoError(t, env.DB.Create(book).Error)

	// Favorites endpoints require a bearer token.
	rec, _ := env.do(t, http.MethodPost, "/api/favorites", "", map[string]uint{
		"userId": alice.ID, "bookId": book.ID,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, resp := env.do(t, http.MethodPost, "/api/favorites", token, map[string]uint{
		"userId": alice.ID, "bookId": book.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	// Duplicate add: soft conflict with HTTP 200.
	rec, resp = env.do(t, http.MethodPost, "/api/favorites", token, map[string]uint{
		"userId": alice.ID, "bookId": book.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, resp.Success)

	// Probe for a pair that is not favorited: soft miss.
	rec, resp = env.do(t, http.MethodGet, "/api/favorites/check?userId=999&bookId=999", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, resp.Success)

	// Removing an unknown favorite id: soft miss.
	rec, resp = env.do(t, http.MethodDelete, "/api/favorites/9999", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, resp.Success)
}
