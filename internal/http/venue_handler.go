package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"venue-scout/internal/domain"
	"venue-scout/internal/service"
)

// VenueHandler expone los lugares decorados y los guardados.
type VenueHandler struct {
	logger *zap.Logger
	venues *service.VenueService
}

func NewVenueHandler(logger *zap.Logger, venues *service.VenueService) *VenueHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VenueHandler{logger: logger, venues: venues}
}

// RandomPlaces maneja GET /venues/random?event_type=.
func (h *VenueHandler) RandomPlaces(c *gin.Context) {
	views, err := h.venues.RandomPlaces(c.Request.Context(), c.Query("event_type"))
	if err != nil {
		writeError(c, h.logger, "random places failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"venues": views})
}

// Insights maneja GET /venues/insights?name=.
func (h *VenueHandler) Insights(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	series, insights := h.venues.Decorator().Insights(name)
	c.JSON(http.StatusOK, gin.H{
		"name":     name,
		"traffic":  series,
		"insights": insights,
	})
}

// Decorate maneja POST /venues/decorate. Es un paso de vista: nada se guarda.
func (h *VenueHandler) Decorate(c *gin.Context) {
	var req struct {
		Venues []domain.Venue `json:"venues"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid decorate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"venues": h.venues.Decorator().DecorateAll(req.Venues)})
}

// ListSaved maneja GET /venues/saved.
func (h *VenueHandler) ListSaved(c *gin.Context) {
	views, err := h.venues.ListSaved(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list saved venues failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"venues": views})
}

// SaveVenue maneja POST /venues/saved.
func (h *VenueHandler) SaveVenue(c *gin.Context) {
	var venue domain.Venue
	if err := c.ShouldBindJSON(&venue); err != nil {
		h.logger.Warn("invalid save venue request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	fields := []zap.Field{zap.String("venue", venue.Name)}
	if claims, ok := GetAuthClaims(c); ok {
		fields = append(fields, zap.String("user_id", claims.UserID))
	}

	saved, err := h.venues.Save(c.Request.Context(), venue)
	if err != nil {
		writeError(c, h.logger, "save venue failed", err)
		return
	}
	h.logger.Info("venue saved", fields...)
	c.JSON(http.StatusCreated, gin.H{"venue": saved})
}
