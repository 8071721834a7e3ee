package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/services"
)

// EventsController streams booking/room/task events to dashboards over SSE,
// so the UI can refresh availability grids without polling.
type EventsController struct {
	Hub *services.EventHub
}

func NewEventsController(hub *services.EventHub) *EventsController {
	return &EventsController{Hub: hub}
}

// GET /api/events
func (ctrl *EventsController) Stream(c *gin.Context) {
	events, cancel := ctrl.Hub.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.Type, ev.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
