package handler

import (
	"context"
	"net/http"

	"signal-desk/internal/session"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// SessionService is the session registry the HTTP layer drives.
type SessionService interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	Dispatch(ctx context.Context, id string, ev session.Event) (session.Snapshot, error)
	Snapshot(ctx context.Context, id string) (session.Snapshot, error)
}

type Handler struct {
	tracer   trace.Tracer
	sessions SessionService
	hub      *Hub
}

func New(tracer trace.Tracer, sessions SessionService, hub *Hub) *Handler {
	if hub == nil {
		hub = NewHub()
	}
	return &Handler{
		tracer:   tracer,
		sessions: sessions,
		hub:      hub,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/assets", h.GetAssets)
	r.GET("/api/timeframes", h.GetTimeframes)
	r.GET("/api/sessions/:id", h.GetSession)
	r.POST("/api/sessions/:id/events", h.PostEvent)
	r.GET("/api/sessions/:id/ws", h.StreamSession)
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
