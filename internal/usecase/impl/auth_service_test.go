package impl

import (
	"context"
	"testing"
	"time"

	"passgate/config"
	"passgate/internal/domain/entity"
	domainerrors "passgate/internal/domain/errors"
	"passgate/internal/domain/repository"
	"passgate/internal/domain/service"
	"passgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login_Success(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	cred := &entity.Credential{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "stored-hash",
	}

	fx.limiter.EXPECT().Allow(ctx, "alice").Return(true, nil)
	fx.credRepo.EXPECT().FindByUsername(ctx, "alice").Return(cred, nil)
	fx.hasher.EXPECT().Verify("s3cretpass", "stored-hash").Return(true, nil)
	fx.limiter.EXPECT().Reset(ctx, "alice").Return(nil)
	fx.issuer.EXPECT().Issue(cred.ID, "alice").Return("signed-token", nil)
	fx.issuer.EXPECT().TTL().Return(time.Hour)

	output, err := fx.service.Login(ctx, usecase.LoginInput{Username: "alice", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), output.ExpiresAt, time.Minute)
	assert.Equal(t, cred, output.Credential)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	cred := &entity.Credential{ID: uuid.New(), Username: "alice", PasswordHash: "stored-hash"}

	fx.limiter.EXPECT().Allow(ctx, "alice").Return(true, nil)
	fx.credRepo.EXPECT().FindByUsername(ctx, "alice").Return(cred, nil)
	fx.hasher.EXPECT().Verify("wrongpass", "stored-hash").Return(false, nil)
	fx.limiter.EXPECT().RecordFailure(ctx, "alice").Return(nil)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Username: "alice", Password: "wrongpass"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	fx.limiter.EXPECT().Allow(ctx, "ghost").Return(true, nil)
	fx.credRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrCredentialNotFound)
	// The dummy verify keeps timing indistinguishable from the wrong-password path.
	fx.hasher.EXPECT().Verify("whatever1", testDummyHash).Return(false, nil)
	fx.limiter.EXPECT().RecordFailure(ctx, "ghost").Return(nil)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Username: "ghost", Password: "whatever1"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_RateLimited(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	fx.limiter.EXPECT().Allow(ctx, "alice").Return(false, nil)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Username: "alice", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domainerrors.ErrRateLimited)
}

func TestAuthService_Login_CorruptHash(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	cred := &entity.Credential{ID: uuid.New(), Username: "alice", PasswordHash: "not-a-hash"}

	fx.limiter.EXPECT().Allow(ctx, "alice").Return(true, nil)
	fx.credRepo.EXPECT().FindByUsername(ctx, "alice").Return(cred, nil)
	fx.hasher.EXPECT().Verify("s3cretpass", "not-a-hash").Return(false, service.ErrCorruptHash)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Username: "alice", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domainerrors.ErrCorruptHash)
}

func TestAuthService_Login_HasherTimeout(t *testing.T) {
	fx := newAuthServiceFixture(t, func(cfg *config.AuthConfig) {
		cfg.HasherTimeout = 10 * time.Millisecond
	})
	ctx := context.Background()

	cred := &entity.Credential{ID: uuid.New(), Username: "alice", PasswordHash: "stored-hash"}

	fx.limiter.EXPECT().Allow(ctx, "alice").Return(true, nil)
	fx.credRepo.EXPECT().FindByUsername(ctx, "alice").Return(cred, nil)
	fx.hasher.EXPECT().
		Verify("s3cretpass", "stored-hash").
		RunAndReturn(func(string, string) (bool, error) {
			time.Sleep(200 * time.Millisecond)

			return true, nil
		})

	_, err := fx.service.Login(ctx, usecase.LoginInput{Username: "alice", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domainerrors.ErrHasherTimeout)
}

func TestAuthService_SignUp_Success(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	newID := uuid.New()

	fx.hasher.EXPECT().Hash("s3cretpass").Return("new-hash", nil)
	fx.expectTransaction(t)
	fx.credRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrCredentialNotFound)
	fx.credRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(nil, repository.ErrCredentialNotFound)
	fx.credRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Credential")).
		RunAndReturn(func(_ context.Context, cred *entity.Credential) error {
			cred.ID = newID

			return nil
		})
	fx.issuer.EXPECT().Issue(newID, "alice").Return("signed-token", nil)
	fx.issuer.EXPECT().TTL().Return(time.Hour)

	output, err := fx.service.SignUp(ctx, usecase.SignUpInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), output.ExpiresAt, time.Minute)
	assert.Equal(t, newID, output.Credential.ID)
	assert.Equal(t, "new-hash", output.Credential.PasswordHash)
}

func TestAuthService_SignUp_WeakPassword(t *testing.T) {
	fx := newAuthServiceFixture(t)

	_, err := fx.service.SignUp(context.Background(), usecase.SignUpInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, domainerrors.ErrWeakPassword)
}

func TestAuthService_SignUp_TakenCombinations(t *testing.T) {
	tests := []struct {
		name          string
		usernameTaken bool
		emailTaken    bool
		wantErr       error
	}{
		{"username taken", true, false, domainerrors.ErrUsernameTaken},
		{"email taken", false, true, domainerrors.ErrEmailTaken},
		{"both taken", true, true, domainerrors.ErrUsernameAndEmailTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newAuthServiceFixture(t)
			ctx := context.Background()

			fx.hasher.EXPECT().Hash("s3cretpass").Return("new-hash", nil)
			fx.expectTransaction(t)

			if tt.usernameTaken {
				fx.credRepo.EXPECT().
					FindByUsername(ctx, "alice").
					Return(&entity.Credential{ID: uuid.New(), Username: "alice"}, nil)
			} else {
				fx.credRepo.EXPECT().
					FindByUsername(ctx, "alice").
					Return(nil, repository.ErrCredentialNotFound)
			}
			if tt.emailTaken {
				fx.credRepo.EXPECT().
					FindByEmail(ctx, "alice@example.com").
					Return(&entity.Credential{ID: uuid.New(), Email: "alice@example.com"}, nil)
			} else {
				fx.credRepo.EXPECT().
					FindByEmail(ctx, "alice@example.com").
					Return(nil, repository.ErrCredentialNotFound)
			}

			_, err := fx.service.SignUp(ctx, usecase.SignUpInput{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "s3cretpass",
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_SignUp_LosesInsertRace(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("s3cretpass").Return("new-hash", nil)
	fx.expectTransaction(t)
	fx.credRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrCredentialNotFound)
	fx.credRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(nil, repository.ErrCredentialNotFound)
	// A concurrent signup won between the pre-checks and the insert.
	fx.credRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Credential")).
		Return(repository.ErrUsernameTaken)

	_, err := fx.service.SignUp(ctx, usecase.SignUpInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestAuthService_SignUp_TokenDisabled(t *testing.T) {
	fx := newAuthServiceFixture(t, func(cfg *config.AuthConfig) {
		cfg.DisableSignupToken = true
	})
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("s3cretpass").Return("new-hash", nil)
	fx.expectTransaction(t)
	fx.credRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrCredentialNotFound)
	fx.credRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(nil, repository.ErrCredentialNotFound)
	fx.credRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Credential")).Return(nil)

	output, err := fx.service.SignUp(ctx, usecase.SignUpInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.Empty(t, output.AccessToken)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	cred := &entity.Credential{ID: userID, Username: "alice", PasswordHash: "old-hash"}

	fx.credRepo.EXPECT().FindByID(ctx, userID).Return(cred, nil)
	fx.hasher.EXPECT().Verify("oldpassword", "old-hash").Return(true, nil)
	fx.hasher.EXPECT().Hash("newpassword").Return("new-hash", nil)
	fx.credRepo.EXPECT().UpdatePasswordHash(ctx, userID, "new-hash").Return(nil)

	err := fx.service.ChangePassword(ctx, usecase.ChangePasswordInput{
		UserID:      userID,
		OldPassword: "oldpassword",
		NewPassword: "newpassword",
	})
	require.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	cred := &entity.Credential{ID: userID, Username: "alice", PasswordHash: "old-hash"}

	fx.credRepo.EXPECT().FindByID(ctx, userID).Return(cred, nil)
	fx.hasher.EXPECT().Verify("wrongoldpw", "old-hash").Return(false, nil)

	err := fx.service.ChangePassword(ctx, usecase.ChangePasswordInput{
		UserID:      userID,
		OldPassword: "wrongoldpw",
		NewPassword: "newpassword",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_ChangePassword_WeakNewPassword(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	cred := &entity.Credential{ID: userID, Username: "alice", PasswordHash: "old-hash"}

	fx.credRepo.EXPECT().FindByID(ctx, userID).Return(cred, nil)
	fx.hasher.EXPECT().Verify("oldpassword", "old-hash").Return(true, nil)

	err := fx.service.ChangePassword(ctx, usecase.ChangePasswordInput{
		UserID:      userID,
		OldPassword: "oldpassword",
		NewPassword: "short",
	})
	assert.ErrorIs(t, err, domainerrors.ErrWeakPassword)
}

func TestAuthService_ChangePassword_UnknownUser(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.credRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrCredentialNotFound)

	err := fx.service.ChangePassword(ctx, usecase.ChangePasswordInput{
		UserID:      userID,
		OldPassword: "oldpassword",
		NewPassword: "newpassword",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Whoami(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	cred := &entity.Credential{ID: userID, Username: "alice", Email: "alice@example.com"}
	fx.credRepo.EXPECT().FindByID(ctx, userID).Return(cred, nil)

	output, err := fx.service.Whoami(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, cred, output.Credential)
}

func TestAuthService_Whoami_UnknownUser(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.credRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrCredentialNotFound)

	_, err := fx.service.Whoami(ctx, userID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
