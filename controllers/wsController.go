package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamIssueEvents bridges the Redis issue-event channel to a websocket so
// open dashboards see status changes without polling.
// GET /api/ws/issues
func StreamIssueEvents(c *gin.Context) {
	if eventStream == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event stream not configured"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "websocket upgrade failed: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	sub := eventStream.Subscribe(ctx)

	writeChan := make(chan []byte, 100)
	writerDone := make(chan struct{})

	go func() {
		defer conn.Close()
		defer close(writerDone)
		for msg := range writeChan {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
	}()

	go func() {
		defer close(writeChan)
		relayEvents(writeChan, writerDone, sub.Channel())
	}()

	// Reads only detect the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if err := sub.Close(); err != nil {
				log.Printf("failed to close issue-event subscription: %v", err)
			}
			break
		}
	}
}

// relayEvents forwards subscription payloads until the source closes or the
// writer goes away. The done case keeps a full buffer from blocking the
// forwarder forever after the writer has exited.
func relayEvents(dst chan<- []byte, done <-chan struct{}, src <-chan *redis.Message) {
	for msg := range src {
		select {
		case dst <- []byte(msg.Payload):
		case <-done:
			return
		}
	}
}
