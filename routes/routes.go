package routes

import (
	"net/http"

	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(kb *services.KnowledgeBase) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	analysis := services.NewAnalysisService(kb)
	hub := services.NewChatHub()

	analyzeCtrl := controllers.NewAnalyzeController(analysis)
	chatCtrl := controllers.NewChatController(hub)
	scanCtrl := controllers.NewScanController(analysis)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Core analysis API; works anonymously, uses the stored ledger when a
	// valid token is attached
	api := r.Group("/api")
	api.Use(middlewares.OptionalAuth())
	{
		api.POST("/analyze", analyzeCtrl.Analyze)
		api.POST("/chat", chatCtrl.Chat)
		api.POST("/scan", scanCtrl.Scan)
	}

	r.GET("/ws/chat", chatCtrl.ChatWS)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/preferences", controllers.GetPreferences)
		user.PUT("/preferences", controllers.UpdatePreferences)
	}

	return r
}

// CORS open for local dev (Next.js -> this API); tighten in production
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
