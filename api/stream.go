package api

import (
	"io"

	"github.com/Domenick1991/flightboard/internal/stream"
	"github.com/gin-gonic/gin"
)

type StreamHandler struct {
	hub *stream.Hub
}

func NewStreamHandler(hub *stream.Hub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

func (h *StreamHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.stream)
}

// stream bridges one hub subscription onto a server-sent-events response.
// The hub owns delivery semantics; this handler only drains the connection's
// queue until the hub closes it or the client goes away.
func (h *StreamHandler) stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	conn := h.hub.Subscribe()
	defer h.hub.Unsubscribe(conn)

	c.Stream(func(w io.Writer) bool {
		select {
		case frame, ok := <-conn.Frames():
			if !ok {
				return false
			}
			c.SSEvent(frame.Event, string(frame.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
