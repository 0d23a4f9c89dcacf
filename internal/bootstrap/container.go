package bootstrap

import (
	"context"
	"log"
	"time"

	"careerpilot-be/internal/config"
	"careerpilot-be/internal/controller"
	"careerpilot-be/internal/handler"
	"careerpilot-be/internal/pkg/logger"
	"careerpilot-be/internal/pkg/mailer"
	"careerpilot-be/internal/pkg/ratelimit"
	"careerpilot-be/internal/repository/implementation"
	"careerpilot-be/internal/repository/unitofwork"
	"careerpilot-be/internal/service"
	"careerpilot-be/internal/websocket"
	"careerpilot-be/pkg/embedding"
	"careerpilot-be/pkg/export"
	"careerpilot-be/pkg/llm/factory"

	pktNats "careerpilot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	OAuthController       controller.IOAuthController
	UserController        controller.IUserController
	ContactController     controller.IContactController
	ResumeController      controller.IResumeController
	CoverLetterController controller.ICoverLetterController
	InterviewController   controller.IInterviewController
	ChatController        controller.IChatController
	ResourceController    controller.IResourceController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus (in-process ingestion pipeline)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmBaseURL := cfg.Ai.OllamaBaseURL
	llmAPIKey := ""
	if cfg.Ai.LLMProvider == "openai" {
		llmBaseURL = cfg.Ai.OpenAIBaseURL
		llmAPIKey = cfg.Ai.OpenAIKey
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		llmAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	aiLimiter := ratelimit.NewRedisLimiter(rdb, cfg.Ai.AiRequestsPerMin, time.Minute, "ai_rl")

	pdfRenderer := export.NewPDFRenderer()

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, sysLogger)
	userService := service.NewUserService(uowFactory)

	contactService := service.NewContactService(uowFactory)
	resumeService := service.NewResumeService(
		uowFactory,
		publisherService,
		embeddingProvider,
		natsPub,
		pdfRenderer,
		sysLogger,
	)
	coverLetterService := service.NewCoverLetterService(
		uowFactory,
		llmProvider,
		aiLimiter,
		cfg.Ai.PromptTokenLimit,
		sysLogger,
	)
	interviewService := service.NewInterviewService(
		uowFactory,
		llmProvider,
		aiLimiter,
		cfg.Ai.PromptTokenLimit,
		sysLogger,
	)
	chatService := service.NewChatService(
		llmProvider,
		aiLimiter,
		cfg.Ai.PromptTokenLimit,
		sysLogger,
	)
	resourceService := service.NewResourceService(cfg.Keys.SearchAPI, "", sysLogger)

	// Notification Domain
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		NotificationHandler:   notifHandler,
		WebSocketHub:          wsHub,
		AuthController:        controller.NewAuthController(authService),
		OAuthController:       controller.NewOAuthController(oauthService),
		UserController:        controller.NewUserController(userService),
		ContactController:     controller.NewContactController(contactService),
		ResumeController:      controller.NewResumeController(resumeService),
		CoverLetterController: controller.NewCoverLetterController(coverLetterService),
		InterviewController:   controller.NewInterviewController(interviewService),
		ChatController:        controller.NewChatController(chatService),
		ResourceController:    controller.NewResourceController(resourceService),

		ConsumerService: consumerService,

		Logger: sysLogger,
	}
}
