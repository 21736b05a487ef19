package main

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveMenuHandler godoc
//
//	@Summary		Subscribe to live menu updates
//	@Description	Upgrades to a WebSocket pushing MENU_UPDATE messages; server to client only
//	@Tags			menu
//	@Router			/ws [get]
func (app *application) liveMenuHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}

	app.hub.Register(conn)

	// no client->server protocol is defined; the read loop only detects the
	// peer going away so the hub can drop the connection
	go func() {
		defer app.hub.Unregister(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
