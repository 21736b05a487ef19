package notifier

import "github.com/foodcanteen/foodmenu/internal/domain"

// Conn is the slice of *websocket.Conn the hub needs. Tests substitute fakes.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Notifier is the push port the menu pipeline depends on.
type Notifier interface {
	Register(conn Conn)
	Unregister(conn Conn)
	Broadcast(menu []domain.Food)
}

// MenuUpdateMessage is the single message shape sent to live clients.
type MenuUpdateMessage struct {
	Type string        `json:"type"`
	Menu []domain.Food `json:"menu"`
}

const MessageTypeMenuUpdate = "MENU_UPDATE"
