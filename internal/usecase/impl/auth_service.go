// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"passgate/config"
	deliverycontext "passgate/internal/delivery/context"
	"passgate/internal/domain/entity"
	domainerrors "passgate/internal/domain/errors"
	"passgate/internal/domain/repository"
	"passgate/internal/domain/service"
	"passgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyVerifyPassword feeds the hasher when the username does not exist, so a
// login against an unknown username costs the same as one against a wrong
// password. Without it, response timing would reveal which usernames exist.
const dummyVerifyPassword = "correct horse battery staple"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager      repository.TransactionManager
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	tokenIssuer    service.TokenIssuer
	limiter        service.LoginLimiter
	logger         *slog.Logger

	passwordMinLength int
	hasherTimeout     time.Duration
	signupToken       bool
	dummyHash         string
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	TokenIssuer    service.TokenIssuer
	Limiter        service.LoginLimiter
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) (usecase.AuthUsecase, error) {
	// Pre-compute the dummy hash once so the unknown-username path does not
	// pay an extra Hash call per request.
	dummyHash, err := params.Hasher.Hash(dummyVerifyPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare dummy hash")
	}

	auth := params.Config.Auth

	return &authService{
		txManager:         params.TxManager,
		credentialRepo:    params.CredentialRepo,
		hasher:            params.Hasher,
		tokenIssuer:       params.TokenIssuer,
		limiter:           params.Limiter,
		logger:            params.Logger,
		passwordMinLength: auth.PasswordMinLength,
		hasherTimeout:     auth.HasherTimeout,
		signupToken:       !auth.DisableSignupToken,
		dummyHash:         dummyHash,
	}, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login authenticates a username/password pair and issues a session token.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	allowed, err := srv.limiter.Allow(ctx, input.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check login limiter")
	}
	if !allowed {
		srv.log(ctx).Warn("Login blocked by limiter", slog.String("username", input.Username))

		return nil, domainerrors.ErrRateLimited
	}

	cred, err := srv.credentialRepo.FindByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		// Burn the same verify cost as the known-username path before
		// rejecting, and count the attempt against the limiter.
		if _, verifyErr := srv.verifyWithTimeout(ctx, input.Password, srv.dummyHash); verifyErr != nil {
			srv.log(ctx).Error("Dummy verify failed", slog.Any("error", verifyErr))
		}

		return nil, srv.failLogin(ctx, input.Username)
	}
	if err != nil {
		return nil, err
	}

	match, err := srv.verifyWithTimeout(ctx, input.Password, cred.PasswordHash)
	if err != nil {
		if errors.Is(err, service.ErrCorruptHash) {
			srv.log(ctx).Error("Stored hash is corrupt", slog.String("userID", cred.ID.String()))

			return nil, domainerrors.ErrCorruptHash.WrapMessage("stored hash failed to parse")
		}

		return nil, err
	}
	if !match {
		return nil, srv.failLogin(ctx, input.Username)
	}

	if err := srv.limiter.Reset(ctx, input.Username); err != nil {
		return nil, errors.Wrap(err, "failed to reset login limiter")
	}

	token, err := srv.tokenIssuer.Issue(cred.ID, cred.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Info("Login succeeded", slog.String("userID", cred.ID.String()))

	return &usecase.LoginOutput{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(srv.tokenIssuer.TTL()),
		Credential:  cred,
	}, nil
}

// failLogin records a failed attempt and returns the generic credential error.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (srv *authService) failLogin(ctx context.Context, username string) error {
	if err := srv.limiter.RecordFailure(ctx, username); err != nil {
		return errors.Wrap(err, "failed to record login failure")
	}

	return domainerrors.ErrInvalidCredentials
}

// SignUp registers a new credential. Username and email collisions are
// reported distinctly, including the case where both are taken.
func (srv *authService) SignUp(ctx context.Context, input usecase.SignUpInput) (*usecase.SignUpOutput, error) {
	if err := srv.checkPasswordPolicy(input.Password); err != nil {
		return nil, err
	}

	// Hash outside the transaction so a slow hasher never holds a database
	// transaction open.
	passwordHash, err := srv.hashWithTimeout(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	cred := &entity.Credential{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		credRepo := repoFactory.CredentialRepo()

		usernameTaken, err := credentialExists(func() (*entity.Credential, error) {
			return credRepo.FindByUsername(ctx, input.Username)
		})
		if err != nil {
			return err
		}
		emailTaken, err := credentialExists(func() (*entity.Credential, error) {
			return credRepo.FindByEmail(ctx, input.Email)
		})
		if err != nil {
			return err
		}

		switch {
		case usernameTaken && emailTaken:
			return domainerrors.ErrUsernameAndEmailTaken
		case usernameTaken:
			return domainerrors.ErrUsernameTaken
		case emailTaken:
			return domainerrors.ErrEmailTaken
		}

		// A concurrent signup can still win between the checks and the
		// insert; the unique indexes are the real arbiter.
		if err := credRepo.Create(ctx, cred); err != nil {
			switch {
			case errors.Is(err, repository.ErrUsernameTaken):
				return domainerrors.ErrUsernameTaken
			case errors.Is(err, repository.ErrEmailTaken):
				return domainerrors.ErrEmailTaken
			}

			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Signup succeeded", slog.String("userID", cred.ID.String()))

	output := &usecase.SignUpOutput{Credential: cred}
	if srv.signupToken {
		token, err := srv.tokenIssuer.Issue(cred.ID, cred.Username)
		if err != nil {
			return nil, errors.Wrap(err, "failed to issue token")
		}
		output.AccessToken = token
		output.ExpiresAt = time.Now().Add(srv.tokenIssuer.TTL())
	}

	return output, nil
}

// ChangePassword rotates a verified caller's password. The caller's identity
// comes from a token already verified at the delivery boundary.
func (srv *authService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	cred, err := srv.credentialRepo.FindByID(ctx, input.UserID)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		// The account vanished after the token was issued.
		return domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return err
	}

	match, err := srv.verifyWithTimeout(ctx, input.OldPassword, cred.PasswordHash)
	if err != nil {
		if errors.Is(err, service.ErrCorruptHash) {
			srv.log(ctx).Error("Stored hash is corrupt", slog.String("userID", cred.ID.String()))

			return domainerrors.ErrCorruptHash.WrapMessage("stored hash failed to parse")
		}

		return err
	}
	if !match {
		return domainerrors.ErrInvalidCredentials
	}

	if err := srv.checkPasswordPolicy(input.NewPassword); err != nil {
		return err
	}

	newHash, err := srv.hashWithTimeout(ctx, input.NewPassword)
	if err != nil {
		return err
	}

	if err := srv.credentialRepo.UpdatePasswordHash(ctx, cred.ID, newHash); err != nil {
		return err
	}

	srv.log(ctx).Info("Password changed", slog.String("userID", cred.ID.String()))

	return nil
}

// Whoami resolves a verified caller's credential.
func (srv *authService) Whoami(ctx context.Context, userID uuid.UUID) (*usecase.WhoamiOutput, error) {
	cred, err := srv.credentialRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	return &usecase.WhoamiOutput{Credential: cred}, nil
}

// checkPasswordPolicy enforces the configured minimum length.
func (srv *authService) checkPasswordPolicy(password string) error {
	if len(password) < srv.passwordMinLength {
		return domainerrors.ErrWeakPassword.WrapMessage(
			fmt.Sprintf("password must be at least %d characters", srv.passwordMinLength))
	}

	return nil
}

// hashWithTimeout runs the hasher off the request goroutine, bounded by the
// configured timeout. The hasher goroutine writes to a buffered channel so it
// never leaks when the caller has already given up.
func (srv *authService) hashWithTimeout(ctx context.Context, password string) (string, error) {
	type hashResult struct {
		hash string
		err  error
	}

	resultCh := make(chan hashResult, 1)
	go func() {
		hash, err := srv.hasher.Hash(password)
		resultCh <- hashResult{hash: hash, err: err}
	}()

	timer := time.NewTimer(srv.hasherTimeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		if res.err != nil {
			return "", errors.Wrap(res.err, "failed to hash password")
		}

		return res.hash, nil
	case <-timer.C:
		return "", domainerrors.ErrHasherTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// verifyWithTimeout runs hash verification off the request goroutine, bounded
// by the configured timeout.
func (srv *authService) verifyWithTimeout(ctx context.Context, password, hash string) (bool, error) {
	type verifyResult struct {
		match bool
		err   error
	}

	resultCh := make(chan verifyResult, 1)
	go func() {
		match, err := srv.hasher.Verify(password, hash)
		resultCh <- verifyResult{match: match, err: err}
	}()

	timer := time.NewTimer(srv.hasherTimeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		return res.match, res.err
	case <-timer.C:
		return false, domainerrors.ErrHasherTimeout
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// credentialExists adapts a lookup into a taken/not-taken answer, passing
// through unexpected store failures.
func credentialExists(find func() (*entity.Credential, error)) (bool, error) {
	_, err := find()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return false, nil
	}

	return false, err
}
