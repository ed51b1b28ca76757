package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"passgate/config"
	"passgate/internal/domain/repository"
	mockRepo "passgate/internal/mocks/repository"
	mockSvc "passgate/internal/mocks/service"
	"passgate/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testDummyHash = "$2a$04$dummyhashdummyhashdummyhashdummyhashdummyhashdummyha"

// authServiceFixture bundles the mocked dependencies behind a constructed
// service so each test only states the expectations it cares about.
type authServiceFixture struct {
	txManager *mockRepo.MockTransactionManager
	credRepo  *mockRepo.MockCredentialRepository
	hasher    *mockSvc.MockPasswordHasher
	issuer    *mockSvc.MockTokenIssuer
	limiter   *mockSvc.MockLoginLimiter
	service   usecase.AuthUsecase
}

func newAuthServiceFixture(t *testing.T, mutate ...func(*config.AuthConfig)) *authServiceFixture {
	t.Helper()

	fx := &authServiceFixture{
		txManager: mockRepo.NewMockTransactionManager(t),
		credRepo:  mockRepo.NewMockCredentialRepository(t),
		hasher:    mockSvc.NewMockPasswordHasher(t),
		issuer:    mockSvc.NewMockTokenIssuer(t),
		limiter:   mockSvc.NewMockLoginLimiter(t),
	}

	// The constructor pre-computes the dummy hash.
	fx.hasher.EXPECT().
		Hash(dummyVerifyPassword).
		Return(testDummyHash, nil).
		Once()

	authCfg := &config.AuthConfig{
		TokenSecret:       "test-secret",
		TokenTTL:          time.Hour,
		PasswordMinLength: 8,
		MaxFailedAttempts: 5,
		FailureWindow:     15 * time.Minute,
		HasherTimeout:     time.Second,
	}
	for _, fn := range mutate {
		fn(authCfg)
	}

	service, err := NewAuthService(AuthServiceParams{
		TxManager:      fx.txManager,
		CredentialRepo: fx.credRepo,
		Hasher:         fx.hasher,
		TokenIssuer:    fx.issuer,
		Limiter:        fx.limiter,
		Config:         &config.Config{Auth: authCfg},
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	fx.service = service

	return fx
}

// expectTransaction makes Execute run its callback against a factory that
// hands out the fixture's credential repository mock.
func (fx *authServiceFixture) expectTransaction(t *testing.T) {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().CredentialRepo().Return(fx.credRepo)

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}
