package router

import (
	"github.com/gin-gonic/gin"
	"github.com/notesapp/backend/config"
	"github.com/notesapp/backend/internal/app/controller"
	"github.com/notesapp/backend/internal/middleware"
)

type Router struct {
	authController *controller.AuthController
	noteController *controller.NoteController
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	noteController *controller.NoteController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController: authController,
		noteController: noteController,
		authMiddleware: authMiddleware,
		config:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Notes API is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/reset-password/:token", r.authController.ResetPassword)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
		}

		users := api.Group("/users", r.authMiddleware.Authenticate())
		{
			users.GET("/me", r.authController.GetMe)
			users.PUT("/me", r.authController.UpdateMe)
			users.PUT("/change-password", r.authController.ChangePassword)
		}

		notes := api.Group("/notes", r.authMiddleware.Authenticate())
		{
			notes.POST("", r.noteController.CreateNote)
			notes.GET("", r.noteController.ListNotes)
			notes.GET("/:id", r.noteController.GetNote)
			notes.PUT("/:id", r.noteController.UpdateNote)
			notes.PATCH("/:id/state", r.noteController.UpdateNoteState)
			notes.DELETE("/:id", r.noteController.DeleteNote)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
