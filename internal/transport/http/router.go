package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/pedrohsilva/tarefas-api/internal/auth"
	"github.com/pedrohsilva/tarefas-api/internal/repository"
	"github.com/pedrohsilva/tarefas-api/internal/transport/http/handler"
	"github.com/pedrohsilva/tarefas-api/internal/transport/http/middleware"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	userHandler *handler.UserHandler,
	tokens *auth.TokenIssuer,
	userRepo repository.UserRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	currentUser := middleware.CurrentUser(tokens, userRepo, logger)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome"})
	})

	v1 := r.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", currentUser, authHandler.Refresh)
	authRoutes.GET("/me", currentUser, authHandler.Me)

	tasks := v1.Group("/tarefas", currentUser)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.GetByID)
	tasks.PATCH("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	users := v1.Group("/usuarios", currentUser)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.GetByID)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	return r
}
