package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/fazalurrehmanAI/hospital-receptionist/cmd/mainconfig"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/api/router"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/assistant"
	appconfig "github.com/fazalurrehmanAI/hospital-receptionist/internal/config"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/doctors"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/faq"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/notify"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/observability/metrics"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/patients"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/schedule"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/triage"
	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

// Per-IP budget for the generative endpoints.
const (
	aiRateLimit = 1.0
	aiRateBurst = 5
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting hospital-receptionist API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Record collections.
	patientRepo, err := patients.NewFileRepository(filepath.Join(cfg.DataDir, "patients.json"))
	if err != nil {
		logger.Error("failed to load patients", "error", err)
		os.Exit(1)
	}
	doctorRepo, err := doctors.NewRepository(filepath.Join(cfg.DataDir, "doctors.json"))
	if err != nil {
		logger.Error("failed to load doctors", "error", err)
		os.Exit(1)
	}
	faqRepo, err := faq.NewRepository(filepath.Join(cfg.DataDir, "faqs.json"))
	if err != nil {
		logger.Error("failed to load faqs", "error", err)
		os.Exit(1)
	}
	diseaseMap, err := triage.LoadDiseaseMap(filepath.Join(cfg.DataDir, "disease_map.json"))
	if err != nil {
		logger.Error("failed to load disease map", "error", err)
		os.Exit(1)
	}
	slotRepo, err := schedule.NewRepository(filepath.Join(cfg.DataDir, "appointments.json"))
	if err != nil {
		logger.Error("failed to load appointments", "error", err)
		os.Exit(1)
	}

	m := metrics.New(nil)

	// AWS wiring is shared by SES, SQS and Bedrock.
	awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	// Email delivery.
	var sender notify.EmailSender
	switch cfg.EmailProvider {
	case "sendgrid":
		if sg := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger.Named("notify")); sg != nil {
			sender = sg
		}
	case "ses":
		if ses := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger.Named("notify")); ses != nil {
			sender = ses
		}
	}
	if sender == nil {
		sender = notify.NewStubEmailSender(logger.Named("notify"))
	}

	// Notification queue and worker.
	var notifySvc *notify.Service
	if cfg.UseMemoryQueue || cfg.NotificationQueueURL == "" {
		notifySvc = notify.NewService(notify.NewMemoryQueue(128), sender, doctorRepo, m, logger.Named("notify"))
	} else {
		queue := notify.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.NotificationQueueURL)
		notifySvc = notify.NewService(queue, sender, doctorRepo, m, logger.Named("notify"))
	}
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go notifySvc.Run(workerCtx)

	// Generative assistant: Bedrock primary with Gemini fallback.
	var primary, fallback assistant.LLMClient
	if cfg.BedrockModelID != "" {
		primary = assistant.NewBedrockLLMClient(bedrockruntime.NewFromConfig(awsCfg))
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := assistant.NewGeminiLLMClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer gemini.Close()
		fallback = gemini
	}
	var llm assistant.LLMClient
	switch {
	case primary != nil && fallback != nil:
		llm = assistant.NewFallbackLLMClient(primary, fallback, logger.Named("assistant"))
	case primary != nil:
		llm = primary
	case fallback != nil:
		llm = fallback
	default:
		logger.Error("no generative model configured, set BEDROCK_MODEL_ID or GEMINI_API_KEY")
		os.Exit(1)
	}
	assistantSvc := assistant.NewService(llm, cfg.BedrockModelID, logger.Named("assistant"))

	// Optional redis cache for generated answers.
	var answerCache *faq.AnswerCache
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		answerCache = faq.NewAnswerCache(redis.NewClient(opts), cfg.AnswerCacheTTL)
	}

	// Services and handlers.
	scheduleSvc := schedule.NewService(slotRepo, patientRepo, notifySvc, m, logger.Named("schedule"), cfg.PaymentInstructions)
	faqSvc := faq.NewService(faqRepo, answerCache, assistantSvc, m, logger.Named("faq"))
	matcher := triage.NewMatcher(diseaseMap, doctorRepo, logger.Named("triage"))

	r := router.New(&router.Config{
		Logger:             logger,
		PatientsHandler:    patients.NewHandler(patientRepo, logger.Named("patients")),
		DoctorsHandler:     doctors.NewHandler(doctorRepo),
		TriageHandler:      triage.NewHandler(matcher, logger.Named("triage")),
		ScheduleHandler:    schedule.NewHandler(scheduleSvc, logger.Named("schedule")),
		FAQHandler:         faq.NewHandler(faqSvc, logger.Named("faq")),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AIRateLimit:        aiRateLimit,
		AIRateBurst:        aiRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	stopWorker()

	logger.Info("server stopped")
}
