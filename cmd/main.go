package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	restctx "github.com/dtroode/clinic-server/internal/api/rest/context"
	"github.com/dtroode/clinic-server/internal/api/rest/router"
	restServer "github.com/dtroode/clinic-server/internal/api/rest/server"
	"github.com/dtroode/clinic-server/internal/config"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/mail"
	"github.com/dtroode/clinic-server/internal/metrics"
	"github.com/dtroode/clinic-server/internal/model"
	"github.com/dtroode/clinic-server/internal/password"
	"github.com/dtroode/clinic-server/internal/repository/postgres"
	"github.com/dtroode/clinic-server/internal/resetcode"
	"github.com/dtroode/clinic-server/internal/server"
	"github.com/dtroode/clinic-server/internal/service"
	storage "github.com/dtroode/clinic-server/internal/storage/minio"
	"github.com/dtroode/clinic-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig(".env")
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	tokenIssuer, err := token.NewJWT(token.Settings{
		Secret:        cfg.JWT.Secret,
		Issuer:        cfg.JWT.Issuer,
		Audience:      cfg.JWT.Audience,
		ExpiryMinutes: cfg.JWT.ExpiryMinutes,
	})
	if err != nil {
		logger.Fatal("failed to initialize token issuer", "error", err)
	}

	mailer, err := mail.NewSMTP(mail.Settings{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		logger.Fatal("failed to initialize mailer", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	credentialRepo := postgres.NewCredentialRepository(db)
	adminRepo := postgres.NewAdminRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	historyRepo := postgres.NewHistoryRepository(db)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
		Region: cfg.Storage.Region,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	imageStore, err := storage.NewImageStore(ctx, minioClient, storage.Options{
		Bucket: cfg.Storage.Bucket,
		Region: cfg.Storage.Region,
		Prefix: "images",
	})
	if err != nil {
		logger.Fatal("failed to initialize image storage", "error", err)
	}

	appMetrics := metrics.New()
	hasher := password.NewBcrypt(cfg.Bcrypt.Cost)
	images := service.NewImages(imageStore, cfg.HTTP.PublicURL, logger)
	guard := service.NewGuard(historyRepo, logger)

	authService := service.NewAuth(credentialRepo, hasher, tokenIssuer, resetcode.NewStore(), mailer, appMetrics, logger)
	registrationService := service.NewRegistration(credentialRepo, adminRepo, doctorRepo, patientRepo, historyRepo, hasher, images, logger)
	directoryService := service.NewDirectory(adminRepo, doctorRepo, patientRepo, logger)
	recordsService := service.NewRecords(credentialRepo, doctorRepo, patientRepo, historyRepo, hasher, images, guard, logger)

	r := router.New(
		router.Services{
			Auth:         authService,
			Registration: registrationService,
			Directory:    directoryService,
			Records:      recordsService,
			Images:       images,
			Tokens:       tokenIssuer,
			Guard:        guard,
			Database:     db,
		},
		router.Options{
			MaxBodyBytes:  cfg.HTTP.MaxBodyBytes,
			RatePerMinute: cfg.RateLimit.PerMinute,
			RateBurst:     cfg.RateLimit.Burst,
		},
		restctx.NewManager(),
		appMetrics,
		logger,
	)
	httpServer := restServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
