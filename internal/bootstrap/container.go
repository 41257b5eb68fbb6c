package bootstrap

import (
	"context"
	"log"

	"inkfeed-be/internal/config"
	"inkfeed-be/internal/controller"
	"inkfeed-be/internal/handler"
	"inkfeed-be/internal/pkg/logger"
	"inkfeed-be/internal/pkg/mailer"
	"inkfeed-be/internal/repository/implementation"
	"inkfeed-be/internal/repository/memory"
	"inkfeed-be/internal/repository/unitofwork"
	"inkfeed-be/internal/service"
	pktCache "inkfeed-be/pkg/cache"
	pktNats "inkfeed-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController       controller.INoteController
	FeedController       controller.IFeedController
	EngagementController controller.IEngagementController
	CommentController    controller.ICommentController

	// Notification inbox REST surface
	NotificationHandler *handler.NotificationHandler

	// Background recorder (Exposed for main.go to run)
	NotificationService *service.NotificationService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" && cfg.SMTP.Email != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	} else {
		log.Println("[WARN] SMTP is not configured, notification emails are disabled")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (event mirror, optional)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis (feed count cache, optional)
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
	countCache := pktCache.NewFeedCountCache(rdb)

	// In-memory author projection cache shared by the read paths
	authorCache := memory.NewAuthorCache()
	authors := service.NewAuthorResolver(authorCache)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.EventsTopic, pubSub, natsPub)

	noteService := service.NewNoteService(uowFactory, publisherService, countCache)
	engagementService := service.NewEngagementService(uowFactory, publisherService, countCache, authors)
	commentService := service.NewCommentService(uowFactory, publisherService, countCache, authors)
	feedService := service.NewFeedService(uowFactory, countCache, authors)

	// 3.5 Notification System
	notifLogger := logger.NewIsolatedLogger("logs/notification.log")
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(
		pubSub,
		cfg.App.EventsTopic,
		uowFactory,
		notifRepo,
		emailService,
		notifLogger,
	)

	notifHandler := handler.NewNotificationHandler(notifService, sysLogger)

	// 4. Controllers
	// Note: We return the container with public fields for the server to register
	return &Container{
		NoteController:       controller.NewNoteController(noteService),
		FeedController:       controller.NewFeedController(feedService),
		EngagementController: controller.NewEngagementController(engagementService),
		CommentController:    controller.NewCommentController(commentService),

		NotificationHandler: notifHandler,
		NotificationService: notifService,
	}
}
