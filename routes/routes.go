package routes

import (
	"net/http"
	"time"

	"clearcare/handlers"
	"clearcare/middleware"
	"clearcare/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterEstimateRoutes registers the estimate pipeline endpoints.
func RegisterEstimateRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/estimate", hb.EstimateHandler)
		api.GET("/context/:sessionID", hb.GetContextHandler)
		api.DELETE("/session/:sessionID", hb.ClearSessionHandler)
	}
}

// RegisterInputRoutes registers the voice and card input endpoints.
func RegisterInputRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/input")
	{
		api.POST("/voice", hb.VoiceHandler)
		api.POST("/card", hb.UploadCardHandler)
	}
}

// RegisterSpeechRoutes registers spoken-playback endpoints.
func RegisterSpeechRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/speak", hb.SpeakHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterEstimateRoutes(r, hb)
	RegisterInputRoutes(r, hb)
	RegisterSpeechRoutes(r, hb)
	RegisterHealthRoute(r)
}
