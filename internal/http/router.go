package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"venue-scout/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
// Si verifier es nil las rutas de lugares guardados quedan abiertas.
func NewRouter(
	logger *zap.Logger,
	corsOrigins []string,
	verifier *service.TokenVerifier,
	sessionH *SessionHandler,
	venueH *VenueHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(corsOrigins), jsonContentTypeMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sessions := r.Group("/sessions")
	sessions.POST("", sessionH.CreateSession)
	sessions.GET("/:id", sessionH.GetSession)
	sessions.DELETE("/:id", sessionH.DisposeSession)
	sessions.POST("/:id/messages", sessionH.PostMessage)
	sessions.GET("/:id/venues", sessionH.GetVenues)
	sessions.DELETE("/:id/notifications/:nid", sessionH.DismissNotification)

	venues := r.Group("/venues")
	venues.GET("/random", venueH.RandomPlaces)
	venues.GET("/insights", venueH.Insights)
	venues.POST("/decorate", venueH.Decorate)

	saved := venues.Group("/saved")
	if verifier != nil {
		saved.Use(JWTAuthMiddleware(verifier))
	}
	saved.GET("", venueH.ListSaved)
	saved.POST("", venueH.SaveVenue)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
