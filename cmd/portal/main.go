package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/alphasourceai/upload-portal/internal/config"
	"github.com/alphasourceai/upload-portal/internal/infrastructure/dynamo"
	signerinfra "github.com/alphasourceai/upload-portal/internal/infrastructure/signer"
	"github.com/alphasourceai/upload-portal/internal/infrastructure/smtp"
	transporthttp "github.com/alphasourceai/upload-portal/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Signed URLs come from the external signing service when one is
	// configured; otherwise the portal presigns against S3 directly.
	var urlSigner signerinfra.Signer
	switch {
	case cfg.SignerServiceURL != "" && cfg.SignerAPIKey != "":
		urlSigner = signerinfra.NewHTTPSigner(cfg.SignerServiceURL, cfg.SignerAPIKey)
	case cfg.Bucket != "":
		s3Client := signerinfra.NewS3Client(cfg)
		urlSigner = signerinfra.NewS3Signer(s3Client, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	default:
		log.Println("WARN: no signer configured; signed-upload-url will fail")
	}

	// SMTP mailer (nil when unconfigured; request creation then reports
	// missing configuration instead of silently dropping mail).
	mailer := smtp.NewMailer(cfg)
	if mailer == nil {
		log.Println("WARN: SMTP not configured; magic-link delivery disabled")
	}

	deps := &transporthttp.Deps{
		Requests: dynamo.NewRequestRepo(dynamoClient, cfg.DynamoTables.Requests, cfg.DynamoTables.Sessions),
		Sessions: dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		Files:    dynamo.NewFileRepo(dynamoClient, cfg.DynamoTables.Files),
		Accounts: dynamo.NewAccountRepo(dynamoClient, cfg.DynamoTables.Accounts),
		Signer:   urlSigner,
		Mailer:   mailer,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Upload portal starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
