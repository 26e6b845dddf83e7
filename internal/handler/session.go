package handler

import (
	"errors"
	"net/http"
	"strings"

	"signal-desk/internal/domain"
	"signal-desk/internal/service"
	"signal-desk/internal/session"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type eventRequest struct {
	Type      string `json:"type" binding:"required"`
	AssetID   string `json:"asset_id"`
	Timeframe string `json:"timeframe"`
	SignalID  string `json:"signal_id"`
	Status    string `json:"status"`
	Secret    string `json:"secret"`
}

func (r eventRequest) event() session.Event {
	ev := session.Event{
		Type:      session.EventType(strings.ToLower(strings.TrimSpace(r.Type))),
		Timeframe: strings.TrimSpace(r.Timeframe),
		SignalID:  strings.TrimSpace(r.SignalID),
		Status:    domain.SignalStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		Secret:    r.Secret,
	}
	if a, ok := domain.FindAsset(strings.ToUpper(strings.TrimSpace(r.AssetID))); ok {
		ev.Asset = a
	}
	return ev
}

// GetSession godoc
// @Summary      Get a session snapshot
// @Description  Returns the snapshot for a session id, creating the session on first use
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID (letters, digits, dash, underscore)"
// @Success      200  {object}  session.Snapshot
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/sessions/{id} [get]
func (h *Handler) GetSession(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-session")
	defer span.End()

	id := c.Param("id")
	span.SetAttributes(attribute.String("session.id", id))

	snap, err := h.sessions.Snapshot(ctx, id)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// PostEvent godoc
// @Summary      Dispatch a session event
// @Description  Applies one event to the session. Rejected events answer 409 with the unchanged snapshot so clients can re-render
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id     path      string        true  "Session ID"
// @Param        event  body      eventRequest  true  "Event to dispatch"
// @Success      200    {object}  session.Snapshot
// @Failure      400    {object}  map[string]string
// @Failure      409    {object}  map[string]interface{}
// @Failure      500    {object}  map[string]string
// @Router       /api/sessions/{id}/events [post]
func (h *Handler) PostEvent(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.post-event")
	defer span.End()

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event body: " + err.Error()})
		return
	}
	ev := req.event()
	id := c.Param("id")
	span.SetAttributes(
		attribute.String("session.id", id),
		attribute.String("session.event", string(ev.Type)),
	)

	snap, err := h.sessions.Dispatch(ctx, id, ev)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, snap)
	case errors.Is(err, service.ErrInvalidSessionID), !session.IsRejection(err):
		h.writeSessionError(c, err)
	default:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "snapshot": snap})
	}
}

func (h *Handler) writeSessionError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidSessionID) || errors.Is(err, session.ErrUnknownEvent) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
