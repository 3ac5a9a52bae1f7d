package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"venue-scout/internal/domain"
	"venue-scout/internal/service"
)

// SessionHandler expone las conversaciones con el asistente.
type SessionHandler struct {
	logger   *zap.Logger
	sessions *service.SessionRegistry
	venues   *service.VenueService
}

func NewSessionHandler(logger *zap.Logger, sessions *service.SessionRegistry, venues *service.VenueService) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{logger: logger, sessions: sessions, venues: venues}
}

type sessionResponse struct {
	ID            string                `json:"id"`
	State         domain.SessionState   `json:"state"`
	History       []domain.Message      `json:"history"`
	Notifications []domain.Notification `json:"notifications"`
}

type replyResponse struct {
	Kind    domain.ReplyKind       `json:"kind"`
	Message string                 `json:"message"`
	Venues  []domain.VenueView     `json:"venues,omitempty"`
	Traffic *domain.TrafficSummary `json:"traffic,omitempty"`
}

func (h *SessionHandler) sessionView(s *service.ConversationSession) sessionResponse {
	return sessionResponse{
		ID:            s.ID().String(),
		State:         s.State(),
		History:       s.History(),
		Notifications: h.sessions.Notices().Pending(s.ID().String()),
	}
}

func (h *SessionHandler) replyView(reply domain.AssistantReply) replyResponse {
	resp := replyResponse{Kind: reply.Kind(), Message: reply.Text()}
	if venues, ok := reply.(domain.VenueReply); ok {
		resp.Venues = h.venues.Decorator().DecorateAll(service.VenuesWithReplyContext(venues))
		resp.Traffic = venues.Traffic
	}
	return resp
}

func (h *SessionHandler) lookup(c *gin.Context) (*service.ConversationSession, bool) {
	session, err := h.sessions.Get(domain.ConversationID(c.Param("id")))
	if err != nil {
		writeError(c, h.logger, "session lookup failed", err)
		return nil, false
	}
	return session, true
}

// CreateSession maneja POST /sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session := h.sessions.Create(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"session": h.sessionView(session)})
}

// GetSession maneja GET /sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": h.sessionView(session)})
}

// PostMessage maneja POST /sessions/:id/messages.
func (h *SessionHandler) PostMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, ok := h.lookup(c)
	if !ok {
		return
	}

	reply, err := session.Send(c.Request.Context(), req.Text)
	if err != nil {
		status, body := statusFor(err)
		h.logger.Warn("send message failed", zap.String("conversation_id", session.ID().String()), zap.Error(err))
		c.JSON(status, gin.H{"error": body, "session": h.sessionView(session)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":   h.replyView(reply),
		"session": h.sessionView(session),
	})
}

// GetVenues maneja GET /sessions/:id/venues.
func (h *SessionHandler) GetVenues(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	views, _, err := h.venues.SessionVenues(c.Request.Context(), session.ID())
	if err != nil {
		writeError(c, h.logger, "session venues failed", err)
		return
	}
	if views == nil {
		views = []domain.VenueView{}
	}
	c.JSON(http.StatusOK, gin.H{"venues": views})
}

// DismissNotification maneja DELETE /sessions/:id/notifications/:nid.
func (h *SessionHandler) DismissNotification(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	if !h.sessions.Notices().Dismiss(session.ID().String(), c.Param("nid")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DisposeSession maneja DELETE /sessions/:id.
func (h *SessionHandler) DisposeSession(c *gin.Context) {
	if err := h.sessions.Dispose(c.Request.Context(), domain.ConversationID(c.Param("id"))); err != nil {
		writeError(c, h.logger, "dispose session failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
