package notification

import (
	"bufio"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hackagra/mindverse-api/services/notify"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
	"github.com/hackagra/mindverse-api/utils/sse"
)

// heartbeatInterval keeps idle SSE connections from being closed by proxies
const heartbeatInterval = 30 * time.Second

// NotificationHandler streams notifications to connected clients
type NotificationHandler struct {
	hub *notify.Hub
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// Stream opens an SSE stream delivering the caller's notifications as they
// are published.
func (h *NotificationHandler) Stream(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	// Set SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")
	c.Set("X-Accel-Buffering", "no") // Disable nginx buffering

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		// The Fiber context is not valid inside the stream writer goroutine
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		pubsub := h.hub.Subscribe(ctx, userID)
		defer pubsub.Close()

		if err := sse.Send(w, sse.Event{Event: "connected", Data: fiber.Map{"user_id": userID}}); err != nil {
			return
		}

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		ch := pubsub.Channel()
		for {
			select {
			case msg, open := <-ch:
				if !open {
					return
				}
				if err := sse.SendNotification(w, msg.Payload); err != nil {
					// Client disconnected
					return
				}
			case <-heartbeat.C:
				if err := sse.Send(w, sse.Event{Event: "heartbeat", Data: "ping"}); err != nil {
					return
				}
			}
		}
	})

	return nil
}
