package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// Publishes race in from many request goroutines; every write must still
// reach the peer and none may overlap on the connection.
func TestWsClient_ConcurrentSends(t *testing.T) {
	const (
		writers          = 8
		messagesPerWrite = 20
	)

	upg := websocket.Upgrader{}
	srvDone := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upg.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := &wsClient{conn: conn}

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < messagesPerWrite; j++ {
					client.Send([]byte("event"))
				}
			}()
		}
		wg.Wait()
		client.Close()
		close(srvDone)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	received := 0
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		received++
	}
	<-srvDone
	require.Equal(t, writers*messagesPerWrite, received)
}
