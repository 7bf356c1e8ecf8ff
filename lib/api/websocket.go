package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

// @Summary	Open websocket for realtime render statistics
// @Router		/api/ws [get]
// @Tags		stats
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		// Upgrade already replied to the client
		a.logger.Warn("couldn't make websocket", slog.Any("err", err))
		return
	}
	a.addClient(ws)

	done := make(chan struct{})
	go a.websocketWriter(ws, done)

	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}
	close(done)
	a.removeClient(ws)
}

func (a *Api) addClient(ws *websocket.Conn) {
	a.wsMu.Lock()
	defer a.wsMu.Unlock()
	a.wsClients[ws] = true
	a.Stats.SetWsClients(len(a.wsClients))
}

func (a *Api) removeClient(ws *websocket.Conn) {
	a.wsMu.Lock()
	defer a.wsMu.Unlock()
	delete(a.wsClients, ws)
	a.Stats.SetWsClients(len(a.wsClients))
}

func (a *Api) websocketWriter(ws *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(a.StatsInterval)
	defer func() {
		ticker.Stop()
		err := ws.Close()
		if err != nil {
			a.logger.Debug(fmt.Sprintf("could not close websocket: %s", err))
		}
	}()
	timeout := 10 * time.Second

	// push once straight away so clients don't start out empty
	for {
		packet, err := json.Marshal(a.Stats.Snapshot())
		if err != nil {
			return
		}
		err = ws.SetWriteDeadline(time.Now().Add(timeout))
		if err != nil {
			a.logger.Warn("could not set write deadline", slog.Any("err", err))
			return
		}
		if err := ws.WriteMessage(websocket.TextMessage, packet); err != nil {
			return
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
