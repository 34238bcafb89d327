package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/sergio11/instangular-rest-api/internal/config"
	"github.com/sergio11/instangular-rest-api/internal/handler"
	"github.com/sergio11/instangular-rest-api/internal/migrations"
	"github.com/sergio11/instangular-rest-api/internal/rabbitmq"
	"github.com/sergio11/instangular-rest-api/internal/repository"
	"github.com/sergio11/instangular-rest-api/internal/service"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := godotenv.Load(".env"); err != nil {
		logger.Sugar().Warnf("failed to load .env file: %s", err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Sugar().Fatalf("failed to load config: %s", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMigrations(ctx, cfg); err != nil {
		logger.Sugar().Fatalf("failed to run migrations: %s", err.Error())
	}

	db, err := pgxpool.New(ctx, cfg.Postgres.DSN())
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	mq, err := rabbitmq.Connect(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to rabbitmq: %s", err.Error())
	}
	defer mq.Close()

	repo := repository.New(db, rdb)
	services := service.New(logger, cfg, repo, mq, service.NewFacebookVerifier())
	handlers := handler.New(services, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handlers.InitRoutes(),
	}

	go func() {
		logger.Sugar().Infof("starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("failed to run server: %s", err.Error())
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down server gracefully: %s", err.Error())
	}
}

func runMigrations(ctx context.Context, cfg *config.Config) error {
	db, err := sql.Open("pgx", cfg.Postgres.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
