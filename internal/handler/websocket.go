package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamSession godoc
// @Summary      Stream session snapshots
// @Description  Upgrades to a websocket that receives the current snapshot and then one snapshot per accepted or rejected event
// @Tags         sessions
// @Param        id   path      string  true  "Session ID"
// @Success      101  {object}  session.Snapshot
// @Failure      400  {object}  map[string]string
// @Router       /api/sessions/{id}/ws [get]
func (h *Handler) StreamSession(c *gin.Context) {
	sess, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeSessionError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &client{conn: conn}
	h.hub.add(sess, cl)

	if err := cl.writeJSON(sess.Snapshot()); err != nil {
		h.hub.remove(sess.ID(), cl)
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.hub.remove(sess.ID(), cl)
			return
		}
	}
}
