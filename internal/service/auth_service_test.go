package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vahid343/food-save-city/internal/config"
	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Active = false
	return nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password, role string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		Name:         "Test User",
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginSuccess(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "ana", "pass12345", model.RoleManager, true)
	svc := NewAuthService(repo, testAuthConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "pass12345"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleManager, resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "ana", "pass12345", model.RoleManager, true)
	svc := NewAuthService(repo, testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "wrong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "ana", "pass12345", model.RoleOperator, false)
	svc := NewAuthService(repo, testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "pass12345"})
	require.Error(t, err)
}

func TestRefreshRoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "ana", "pass12345", model.RoleOperator, true)
	svc := NewAuthService(repo, testAuthConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "pass12345"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "ana", refreshed.User.Username)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testAuthConfig())

	_, err := svc.Refresh(context.Background(), "not-a-token")
	require.Error(t, err)
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "ana", "pass12345", model.RoleOperator, true)
	svc := NewAuthService(repo, testAuthConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "pass12345"})
	require.NoError(t, err)

	require.NoError(t, repo.Deactivate(context.Background(), u.ID))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testAuthConfig())

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "marko",
		Name:     "Marko",
		Password: "longenough",
		Role:     model.RoleOperator,
	})
	require.NoError(t, err)
	assert.True(t, resp.Active)

	stored, err := repo.FindByUsername(context.Background(), "marko")
	require.NoError(t, err)
	assert.NotEqual(t, "longenough", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("longenough")))
}
