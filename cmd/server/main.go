package main

import (
	"encoding/gob"
	"log/slog"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/config"
	"github.com/amaan1133/eagle/internal/database"
	"github.com/amaan1133/eagle/internal/handlers"
	"github.com/amaan1133/eagle/internal/middleware"
	"github.com/amaan1133/eagle/internal/notify"
	"github.com/amaan1133/eagle/internal/realtime"
	"github.com/amaan1133/eagle/internal/repository"
	"github.com/amaan1133/eagle/internal/services"
	"github.com/amaan1133/eagle/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.Error("failed to initialize upload storage", "error", err)
		os.Exit(1)
	}

	// Repositories
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Out-of-band delivery
	hub := realtime.NewHub()
	notifier := notify.NewDispatcher(notificationRepo, userRepo, cfg.TelegramBotToken, logger)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	companyService := services.NewCompanyService(companyRepo)
	userService := services.NewUserService(userRepo, companyRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, notifier)
	commentService := services.NewCommentService(commentRepo, taskRepo, notifier)
	messageService := services.NewMessageService(messageRepo, userRepo, notifier, hub)
	attachmentService := services.NewAttachmentService(attachmentRepo, taskRepo, store)
	reminderService := services.NewReminderService(reminderRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)
	messageHandler := handlers.NewMessageHandler(messageService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, cfg.TelegramBotUsername)
	eventsHandler := handlers.NewEventsHandler(hub)

	gob.Register(uint64(0))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(sessions.Sessions("eagle_session", cookie.NewStore([]byte(cfg.SessionSecret))))

	api := router.Group("/api")
	{
		api.POST("/login", authHandler.Login)
		api.GET("/companies", companyHandler.List)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(authService))
		{
			authed.POST("/logout", authHandler.Logout)
			authed.GET("/me", authHandler.Me)
			authed.PUT("/me/contact", userHandler.UpdateContact)

			authed.GET("/events", eventsHandler.Stream)

			authed.GET("/tasks", taskHandler.List)
			authed.GET("/tasks/stats", taskHandler.Stats)
			authed.GET("/tasks/:id", taskHandler.Get)
			authed.PUT("/tasks/:id/status", taskHandler.UpdateStatus)

			authed.GET("/tasks/:id/comments", commentHandler.List)
			authed.POST("/tasks/:id/comments", commentHandler.Add)
			authed.GET("/comments/unread", commentHandler.UnreadCount)

			authed.GET("/tasks/:id/attachments", attachmentHandler.List)
			authed.POST("/tasks/:id/attachments", attachmentHandler.Upload)
			authed.GET("/attachments/:id", attachmentHandler.Download)
			authed.DELETE("/attachments/:id", attachmentHandler.Delete)

			authed.GET("/messages", messageHandler.ListCompany)
			authed.POST("/messages", messageHandler.PostCompany)
			authed.GET("/messages/private", messageHandler.ListPrivate)
			authed.POST("/messages/private", messageHandler.PostPrivate)
			authed.GET("/messages/private/:id", messageHandler.ListThread)

			authed.GET("/reminders", reminderHandler.List)
			authed.GET("/reminders/upcoming", reminderHandler.Upcoming)

			authed.GET("/notifications", notificationHandler.List)
			authed.POST("/notifications/subscribe", notificationHandler.Subscribe)
			authed.GET("/notifications/subscription", notificationHandler.Subscription)
			authed.GET("/notifications/telegram-bot", notificationHandler.TelegramBot)

			admin := authed.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/companies", companyHandler.Create)

				admin.GET("/users", userHandler.ListCompany)
				admin.GET("/users/all", userHandler.ListAll)
				admin.POST("/users", userHandler.Create)
				admin.PUT("/users/:id/deactivate", userHandler.Deactivate)
				admin.PUT("/users/:id/reactivate", userHandler.Reactivate)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.POST("/tasks", taskHandler.Assign)
				admin.PUT("/tasks/:id", taskHandler.AdminUpdate)
				admin.DELETE("/tasks/:id", taskHandler.Delete)

				admin.POST("/reminders", reminderHandler.Create)
				admin.DELETE("/reminders/:id", reminderHandler.Delete)
			}
		}
	}

	logger.Info("starting server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
