// @title						Donor Finder API
// @version					1.0
// @description				Find, rank and contact nearby blood donors.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "donor-finder-api/docs"
	"donor-finder-api/internal/auth"
	"donor-finder-api/internal/config"
	"donor-finder-api/internal/handler"
	"donor-finder-api/internal/logger"
	"donor-finder-api/internal/presence"
	"donor-finder-api/internal/repository"
	"donor-finder-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	logger.Setup(config.LogLevel, config.Environment)
	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)
	if err := repo.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("cannot reach db")
	}
	if err := repo.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("cannot migrate db")
	}

	// Presence store
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("cannot connect to redis")
	}

	// Initialize layers
	tracker := presence.NewTracker(rdb, config.InactiveTimeout)
	tokens := auth.NewTokenManager(config.JWTSecret, config.TokenDuration)

	accountService := service.NewAccountService(repo, tokens, tracker)
	profileService := service.NewProfileService(repo, tracker)
	donorService := service.NewDonorService(repo, tracker)
	messageService := service.NewMessageService(repo)
	activityService := service.NewActivityService(repo, tracker)

	r := handler.NewRouter(handler.Handlers{
		Accounts: handler.NewAccountHandler(accountService, tokens.Duration(), !config.IsDevelopment()),
		Profiles: handler.NewProfileHandler(profileService),
		Donors:   handler.NewDonorHandler(donorService),
		Messages: handler.NewMessageHandler(messageService),
		Activity: handler.NewActivityHandler(activityService),
	}, tokens, repo)

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}
