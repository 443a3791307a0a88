package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/middleware"
	"github.com/amaan1133/eagle/internal/realtime"
)

// EventsHandler streams live events to a connected client.
type EventsHandler struct {
	hub *realtime.Hub
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream subscribes the caller to their company room and personal room and
// relays events as server-sent events until the client disconnects.
func (h *EventsHandler) Stream(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	sub := h.hub.Subscribe(
		realtime.CompanyRoom(actor.CompanyID),
		realtime.UserRoom(actor.ID),
	)
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent(event.Name, event.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
