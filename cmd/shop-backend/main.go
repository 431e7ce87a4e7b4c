package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/denred/online-store-backend/internal/auth"
	"github.com/denred/online-store-backend/internal/config"
	"github.com/denred/online-store-backend/internal/db"
	"github.com/denred/online-store-backend/internal/events"
	"github.com/denred/online-store-backend/internal/file"
	httpapi "github.com/denred/online-store-backend/internal/http"
	"github.com/denred/online-store-backend/internal/mail"
	"github.com/denred/online-store-backend/internal/order"
	"github.com/denred/online-store-backend/internal/payment"
	"github.com/denred/online-store-backend/internal/product"
	"github.com/denred/online-store-backend/internal/storage"
	"github.com/denred/online-store-backend/internal/subscriber"
	"github.com/denred/online-store-backend/internal/user"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[shop-backend] ", log.LstdFlags|log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("run migrations: %v", err)
		}
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {
		logger.Fatalf("load AWS config: %v", err)
	}

	rabbitConn := events.MustDialRabbit(cfg.RabbitURL, logger)
	defer rabbitConn.Close()

	publisher, err := events.NewPublisher(rabbitConn)
	if err != nil {
		logger.Fatalf("create event publisher: %v", err)
	}

	mailer := mail.NewSESMailer(ses.NewFromConfig(awsCfg), cfg.SenderEmail)
	if err := events.StartOrderCreatedConsumer(ctx, rabbitConn, mailer, logger); err != nil {
		logger.Fatalf("start order.created consumer: %v", err)
	}

	encryptor := auth.NewEncryptor()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	users := user.NewService(user.NewPostgresRepository(pool), encryptor)
	products := product.NewService(product.NewPostgresRepository(pool))
	orders := order.NewService(order.NewPostgresRepository(pool), users, products, publisher, logger)
	payments := payment.NewService(payment.NewPostgresRepository(pool), publisher, logger)
	subscribers := subscriber.NewService(subscriber.NewPostgresRepository(pool))
	authSvc := auth.NewService(users, encryptor, tokens)

	store := storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket)
	files := file.NewService(file.NewPostgresRepository(pool), store, logger)

	handler := httpapi.NewHandler(orders, products, users, authSvc, files, payments, subscribers, logger)
	router := httpapi.NewRouter(handler, cfg.CORSAllowOrigins)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("shop-backend listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Printf("publisher close error: %v", err)
	}
}
