package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/export/job"
	"github.com/alfrdzley/openmusic-api-v3/internal/infrastructure/email"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared"
	"github.com/alfrdzley/openmusic-api-v3/pkg/container"
	"github.com/alfrdzley/openmusic-api-v3/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using system environment")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize container")
	}
	defer c.Cleanup()

	mailer := email.NewSMTPSender(
		c.Config.SMTP.Host,
		c.Config.SMTP.Port,
		c.Config.SMTP.From,
	)

	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeExportPlaylist, job.NewExportPlaylistHandler(c.PlaylistRepo, mailer))

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("worker starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("worker failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("worker shutting down")
	srv.Shutdown()
	log.Info().Msg("worker stopped")
}
