package main

import (
	"context"
	"log/slog"
	"os"

	"passgate/config"
	"passgate/internal/delivery"
	"passgate/internal/delivery/http"
	"passgate/internal/delivery/http/middleware"
	"passgate/internal/delivery/http/router/handler"
	"passgate/internal/domain/service"
	"passgate/internal/infra/auth"
	logs "passgate/internal/infra/log"
	"passgate/internal/infra/persistence/postgres"
	"passgate/internal/infra/ratelimit"
	"passgate/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewCredentialRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			auth.NewJWTIssuer,
			ratelimit.NewWindowLimiter,
		),
	)
}

// newPasswordHasher selects the hash scheme from config. Both schemes verify
// hashes they produced themselves; switching the scheme only affects newly
// stored hashes once existing users change their password.
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth.HashAlgorithm == "argon2id" {
		return auth.NewArgon2idHasher()
	}

	return auth.NewBcryptHasher(cfg.Auth.BcryptCost)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
