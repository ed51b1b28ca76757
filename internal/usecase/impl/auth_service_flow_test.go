package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"passgate/config"
	"passgate/internal/domain/entity"
	domainerrors "passgate/internal/domain/errors"
	"passgate/internal/domain/repository"
	"passgate/internal/domain/service"
	infraauth "passgate/internal/infra/auth"
	"passgate/internal/infra/ratelimit"
	"passgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryCredentialStore is a map-backed CredentialRepository that also acts
// as its own TransactionManager, so the full login/signup/change-password
// paths can run against real hashing and token signing without a database.
type memoryCredentialStore struct {
	mu    sync.Mutex
	creds map[uuid.UUID]*entity.Credential
}

func newMemoryCredentialStore() *memoryCredentialStore {
	return &memoryCredentialStore{creds: make(map[uuid.UUID]*entity.Credential)}
}

func (s *memoryCredentialStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

func (s *memoryCredentialStore) CredentialRepo() repository.CredentialRepository {
	return s
}

func (s *memoryCredentialStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.creds[id]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}

	return copyCredential(cred), nil
}

func (s *memoryCredentialStore) FindByUsername(_ context.Context, username string) (*entity.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cred := range s.creds {
		if cred.Username == username {
			return copyCredential(cred), nil
		}
	}

	return nil, repository.ErrCredentialNotFound
}

func (s *memoryCredentialStore) FindByEmail(_ context.Context, email string) (*entity.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cred := range s.creds {
		if cred.Email == email {
			return copyCredential(cred), nil
		}
	}

	return nil, repository.ErrCredentialNotFound
}

func (s *memoryCredentialStore) Create(_ context.Context, cred *entity.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.creds {
		if existing.Username == cred.Username {
			return repository.ErrUsernameTaken
		}
		if existing.Email == cred.Email {
			return repository.ErrEmailTaken
		}
	}

	now := time.Now()
	cred.ID = uuid.New()
	cred.CreatedAt = now
	cred.UpdatedAt = now
	s.creds[cred.ID] = copyCredential(cred)

	return nil
}

func (s *memoryCredentialStore) UpdatePasswordHash(_ context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.creds[id]
	if !ok {
		return repository.ErrCredentialNotFound
	}
	cred.PasswordHash = passwordHash
	cred.UpdatedAt = time.Now()

	return nil
}

func copyCredential(cred *entity.Credential) *entity.Credential {
	clone := *cred

	return &clone
}

// newLiveAuthService wires the service to the real bcrypt hasher, real JWT
// issuer, and real sliding-window limiter, over the in-memory store.
func newLiveAuthService(t *testing.T, mutate ...func(*config.AuthConfig)) (usecase.AuthUsecase, service.TokenIssuer) {
	t.Helper()

	authCfg := &config.AuthConfig{
		TokenSecret:       "flow-test-secret",
		TokenTTL:          time.Hour,
		PasswordMinLength: 8,
		MaxFailedAttempts: 3,
		FailureWindow:     15 * time.Minute,
		HasherTimeout:     5 * time.Second,
	}
	for _, fn := range mutate {
		fn(authCfg)
	}
	cfg := &config.Config{Auth: authCfg}

	issuer, err := infraauth.NewJWTIssuer(cfg)
	require.NoError(t, err)

	store := newMemoryCredentialStore()
	svc, err := NewAuthService(AuthServiceParams{
		TxManager:      store,
		CredentialRepo: store,
		Hasher:         infraauth.NewBcryptHasher(bcrypt.MinCost),
		TokenIssuer:    issuer,
		Limiter:        ratelimit.NewWindowLimiter(cfg),
		Config:         cfg,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return svc, issuer
}

func TestAuthService_SignUpLoginChangePasswordFlow(t *testing.T) {
	ctx := context.Background()
	svc, issuer := newLiveAuthService(t)

	signUp, err := svc.SignUp(ctx, usecase.SignUpInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "first-password",
	})
	require.NoError(t, err)
	require.NotNil(t, signUp.Credential)
	assert.NotEqual(t, uuid.Nil, signUp.Credential.ID)
	assert.NotEmpty(t, signUp.AccessToken)

	claims, err := issuer.Verify(signUp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, signUp.Credential.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	login, err := svc.Login(ctx, usecase.LoginInput{Username: "alice", Password: "first-password"})
	require.NoError(t, err)
	assert.Equal(t, signUp.Credential.ID, login.Credential.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), login.ExpiresAt, time.Minute)

	claims, err = issuer.Verify(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, signUp.Credential.ID, claims.UserID)

	err = svc.ChangePassword(ctx, usecase.ChangePasswordInput{
		UserID:      claims.UserID,
		OldPassword: "first-password",
		NewPassword: "second-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, usecase.LoginInput{Username: "alice", Password: "first-password"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	login, err = svc.Login(ctx, usecase.LoginInput{Username: "alice", Password: "second-password"})
	require.NoError(t, err)
	assert.Equal(t, signUp.Credential.ID, login.Credential.ID)
}

func TestAuthService_LockoutAfterRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLiveAuthService(t)

	_, err := svc.SignUp(ctx, usecase.SignUpInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "real-password",
	})
	require.NoError(t, err)

	for range 3 {
		_, err := svc.Login(ctx, usecase.LoginInput{Username: "bob", Password: "wrong-password"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}

	// Once the window is full even the right password is refused.
	_, err = svc.Login(ctx, usecase.LoginInput{Username: "bob", Password: "real-password"})
	assert.ErrorIs(t, err, domainerrors.ErrRateLimited)
}

func TestAuthService_SuccessfulLoginResetsFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLiveAuthService(t)

	_, err := svc.SignUp(ctx, usecase.SignUpInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "real-password",
	})
	require.NoError(t, err)

	for range 2 {
		_, err := svc.Login(ctx, usecase.LoginInput{Username: "carol", Password: "wrong-password"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}

	_, err = svc.Login(ctx, usecase.LoginInput{Username: "carol", Password: "real-password"})
	require.NoError(t, err)

	// The reset gives the account its full allowance back.
	for range 2 {
		_, err := svc.Login(ctx, usecase.LoginInput{Username: "carol", Password: "wrong-password"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}
	_, err = svc.Login(ctx, usecase.LoginInput{Username: "carol", Password: "real-password"})
	require.NoError(t, err)
}
