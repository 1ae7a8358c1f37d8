package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/komunitech/komunitech/internal/realtime"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Subscriber hands out a user's live event stream.
type Subscriber interface {
	Subscribe(userID uint) (<-chan realtime.Event, func())
}

type NotificationStreamHandler struct {
	hub Subscriber
}

func NewNotificationStreamHandler(hub Subscriber) *NotificationStreamHandler {
	return &NotificationStreamHandler{hub: hub}
}

// Stream godoc
// @Summary Live notification feed over websocket
// @Description Pass the JWT as ?token= since browsers cannot set headers on the handshake.
// @Tags notifications
// @Param token query string true "JWT"
// @Router /ws/notifications [get]
func (h *NotificationStreamHandler) Stream(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response
		log.Debug().Err(err).Uint("user_id", uid).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	events, unsubscribe := h.hub.Subscribe(uid)
	defer unsubscribe()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// reader: only control frames are expected; exit when the peer goes away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Debug().Err(err).Uint("user_id", uid).Msg("notification stream write")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
