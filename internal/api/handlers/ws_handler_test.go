package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/komunitech/komunitech/internal/realtime"
	"github.com/komunitech/komunitech/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationStreamDeliversOwnEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := realtime.NewHub(nil, "", zerolog.Nop())

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		c.Set("claims", &types.Claims{UserID: 42})
	}, NewNotificationStreamHandler(hub).Stream)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.SubscriberCount(42) == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(7, realtime.Event{Type: "notification", Data: "not yours"})
	hub.Publish(42, realtime.Event{Type: "notification", Data: "halo"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev realtime.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, uint(42), ev.UserID)
	assert.Equal(t, "halo", ev.Data)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.SubscriberCount(42) == 0 }, time.Second, 10*time.Millisecond)
}
