package handlers

import (
	"net/http"
	"sync"
	"time"

	"project-board-api/internal/board"
	"project-board-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// wsClient implements realtime.Client by wrapping a websocket connection.
// Sends arrive from whichever request goroutine performed a mutation, so
// they can overlap; gorilla/websocket allows only one concurrent writer
// (WriteControl is exempt), hence the mutex.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) Send(message []byte) bool {
	if c == nil || c.conn == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return false
	}
	return true
}

func (c *wsClient) Close() {
	if c != nil && c.conn != nil {
		_ = c.conn.Close()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is already handled at Gin level; allow upgrade from any origin here
		return true
	},
}

// WebSocketHandler handles GET /api/ws?projectId=...
// It upgrades the connection and subscribes the client to the project's
// event topic after a membership check. JWT middleware must have run.
func WebSocketHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	projectID := c.Query("projectId")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId query param is required"})
		return
	}
	if !requireParticipant(c, projectID, userID) {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithField("error", err).Warn("websocket upgrade failed")
		return
	}

	topic := board.ProjectTopic(projectID)
	client := &wsClient{conn: conn}
	hub := realtime.GetHub()
	hub.Subscribe(topic, client)

	// Heartbeat: send periodic pings; close on error
	pingTicker := time.NewTicker(30 * time.Second)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-pingTicker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					// ping failed; reader loop will exit on next error
					return
				}
			}
		}
	}()
	defer func() {
		close(done)
		pingTicker.Stop()
		hub.Unsubscribe(topic, client)
		client.Close()
	}()

	// Reader loop: drain messages and keep connection alive via pong handler
	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			// Normal close or error; exit loop
			return
		}
	}
}
