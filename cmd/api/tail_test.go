package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTail(t *testing.T) {
	subscribed := make(chan subscribeMessage, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var msg subscribeMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		subscribed <- msg

		_ = conn.WriteMessage(websocket.TextMessage, []byte(
			`{"id":"evt-1","type":"push","repository":"octo/app","sender":"hubot","timestamp":"2026-01-02T03:04:05Z","verified":true}`))
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := tail(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), []string{"push"}, &out)
	require.Error(t, err) // server closed the stream

	msg := <-subscribed
	assert.Equal(t, subscribeMessage{Type: "subscribe", Events: []string{"push"}}, msg)
	assert.Contains(t, out.String(), "octo/app")
	assert.Contains(t, out.String(), "evt-1")
	assert.Contains(t, out.String(), "verified=true")
}
