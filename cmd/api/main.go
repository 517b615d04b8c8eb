package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/max-knopp/intellio/internal/config"
	"github.com/max-knopp/intellio/internal/infra/auth"
	"github.com/max-knopp/intellio/internal/infra/database"
	"github.com/max-knopp/intellio/internal/infra/http/handlers"
	"github.com/max-knopp/intellio/internal/infra/http/middleware"
	"github.com/max-knopp/intellio/internal/infra/integration/automation"
	"github.com/max-knopp/intellio/internal/infra/integration/cargo"
	"github.com/max-knopp/intellio/internal/infra/logger"
	"github.com/max-knopp/intellio/internal/infra/mail"
	"github.com/max-knopp/intellio/internal/infra/queue"
	"github.com/max-knopp/intellio/internal/infra/worker"
	"github.com/max-knopp/intellio/internal/usecase"
)

func main() {
	log := logger.New("intellio-api")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Postgres")
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	userRepo := database.NewUserRepository(db)
	memberRepo := database.NewOrgMemberRepository(db)
	dispatchLogRepo := database.NewDispatchLogRepository(db)
	digestLogRepo := database.NewDigestLogRepository(db)

	// Integrations
	outreachClient := cargo.NewClient(cfg.OutreachAPIToken, cfg.OutreachAPIURL)
	digestClient := automation.NewClient(cfg.DigestWebhookURL, cfg.DigestAPIKey)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)

	// Background workers
	alertWorker := queue.NewWorker(rabbitMQ.Ch, mailSender, log)
	go alertWorker.Start(queue.QueueName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	digestWorker := worker.NewDailyDigestWorker(leadRepo, digestLogRepo, digestClient, log)
	go digestWorker.Start(ctx)

	// UseCases
	receiveLeadUC := usecase.NewReceiveLeadUseCase(leadRepo, userRepo, producer, log)
	dispatchUC := usecase.NewDispatchLeadUseCase(leadRepo, memberRepo, outreachClient, dispatchLogRepo, log)
	lifecycleUC := usecase.NewLeadLifecycleUseCase(leadRepo, memberRepo, dispatchUC, log)

	// Handlers
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	webhookHandler := handlers.NewWebhookHandler(receiveLeadUC, cfg.WebhookAPIKey, log)
	leadHandler := handlers.NewLeadHandler(leadRepo, lifecycleUC, log)
	healthHandler := handlers.NewHealthHandler(db)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Api-Key"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/webhook/leads", webhookHandler.Handle)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtManager))

		r.Get("/leads", leadHandler.HandleGetInbox)
		r.Post("/leads/{id}/send", leadHandler.HandleSend)
		r.Post("/leads/{id}/reject", leadHandler.HandleReject)
		r.Post("/leads/{id}/commented", leadHandler.HandleMarkCommented)
		r.Patch("/leads/{id}/status", leadHandler.HandleSetStatus)
		r.Patch("/leads/{id}/notes", leadHandler.HandleUpdateNotes)
		r.Patch("/leads/{id}/message", leadHandler.HandleUpdateMessage)
		r.Patch("/leads/{id}/comment", leadHandler.HandleUpdateComment)
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("intellio API listening")

	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server failed")
	}
}
