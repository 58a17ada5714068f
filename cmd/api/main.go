package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/apiwat-s/screenscout-api/internal/auth"
	"github.com/apiwat-s/screenscout-api/internal/config"
	"github.com/apiwat-s/screenscout-api/internal/discovery"
	"github.com/apiwat-s/screenscout-api/internal/handler"
	"github.com/apiwat-s/screenscout-api/internal/mailer"
	"github.com/apiwat-s/screenscout-api/internal/provider"
	"github.com/apiwat-s/screenscout-api/internal/repository"
	"github.com/apiwat-s/screenscout-api/internal/usecase"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	movieRepo := repository.NewMovieMongoRepository(ctx, &logger, db)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	var googleVerifier usecase.GoogleTokenVerifier
	if cfg.GoogleClientID != "" {
		googleVerifier = provider.NewGoogleVerifier(cfg.GoogleClientID)
	}

	m := mailer.New(&logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, issuer, googleVerifier, m, &logger)
	userUsecase := usecase.NewUserUsecase(userRepo)
	movieUsecase := usecase.NewMovieUsecase(movieRepo)

	router := handler.NewRouter(handler.RouterParams{
		Logger:             &logger,
		TokenIssuer:        issuer,
		AuthHandler:        handler.NewAuthHandler(authUsecase, &logger),
		UserHandler:        handler.NewUserHandler(userUsecase, &logger),
		MovieHandler:       handler.NewMovieHandler(movieUsecase, &logger),
		GoogleLoginEnabled: googleVerifier != nil,
	})

	registrar, err := discovery.Register(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register with consul")
	}
	defer registrar.Deregister()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Int("port", cfg.Port).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down server")
	}
}
