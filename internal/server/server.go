package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meeladheeraj/todolist-Apis/internal/config"
	"github.com/meeladheeraj/todolist-Apis/internal/database"
	"github.com/meeladheeraj/todolist-Apis/internal/handler"
	"github.com/meeladheeraj/todolist-Apis/internal/middleware"
	"github.com/meeladheeraj/todolist-Apis/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	log.Println("Schema up to date")

	r := gin.Default()
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	cardRepo := repository.NewCardRepository(db)
	tagRepo := repository.NewTagRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Handlers
	authHandler := handler.NewAuthHandler(userRepo)
	projectHandler := handler.NewProjectHandler(projectRepo, userRepo, activityRepo)
	statusHandler := handler.NewStatusHandler(statusRepo, projectRepo, activityRepo)
	cardHandler := handler.NewCardHandler(cardRepo, statusRepo, projectRepo, tagRepo, activityRepo)
	tagHandler := handler.NewTagHandler(tagRepo, projectRepo, activityRepo)
	commentHandler := handler.NewCommentHandler(commentRepo, cardRepo, projectRepo, activityRepo)
	activityHandler := handler.NewActivityHandler(activityRepo, cardRepo, projectRepo)

	// Public routes
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password/:token", authHandler.ResetPassword)

	// Protected routes - require authentication
	authorized := api.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, userRepo))
	{
		authorized.GET("/auth/me", authHandler.Me)

		// Project routes
		authorized.GET("/projects", projectHandler.GetAll)
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects/:id", projectHandler.GetByID)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)
		authorized.POST("/projects/:id/members", projectHandler.AddMember)
		authorized.DELETE("/projects/:id/members/:userId", projectHandler.RemoveMember)

		// Status routes
		authorized.GET("/projects/:id/statuses", statusHandler.GetAll)
		authorized.POST("/projects/:id/statuses", statusHandler.Create)
		authorized.PUT("/projects/:id/statuses/reorder", statusHandler.Reorder)
		authorized.GET("/statuses/:id", statusHandler.GetByID)
		authorized.PUT("/statuses/:id", statusHandler.Update)
		authorized.DELETE("/statuses/:id", statusHandler.Delete)
		authorized.GET("/statuses/:id/cards", cardHandler.GetByStatus)
		authorized.PUT("/statuses/:id/cards/reorder", cardHandler.Reorder)

		// Card routes
		authorized.GET("/projects/:id/cards", cardHandler.GetAll)
		authorized.POST("/projects/:id/cards", cardHandler.Create)
		authorized.GET("/cards/:id", cardHandler.GetByID)
		authorized.PUT("/cards/:id", cardHandler.Update)
		authorized.DELETE("/cards/:id", cardHandler.Delete)
		authorized.POST("/cards/:id/tags", cardHandler.AddTag)
		authorized.DELETE("/cards/:id/tags/:tagId", cardHandler.RemoveTag)

		// Tag routes
		authorized.GET("/projects/:id/tags", tagHandler.GetAll)
		authorized.POST("/projects/:id/tags", tagHandler.Create)
		authorized.PUT("/tags/:id", tagHandler.Update)
		authorized.DELETE("/tags/:id", tagHandler.Delete)

		// Comment routes
		authorized.GET("/cards/:id/comments", commentHandler.GetAll)
		authorized.POST("/cards/:id/comments", commentHandler.Create)
		authorized.PUT("/comments/:id", commentHandler.Update)
		authorized.DELETE("/comments/:id", commentHandler.Delete)

		// Activity routes
		authorized.GET("/projects/:id/activities", activityHandler.GetByProject)
		authorized.GET("/cards/:id/activities", activityHandler.GetByCard)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %s", err)
	}

	if err := database.Close(s.DB); err != nil {
		log.Printf("Failed to close database: %s", err)
	}

	log.Println("Server exited properly")
}
