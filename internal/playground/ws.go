package playground

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is the incoming websocket message format shared by both
// streams.
type clientMessage struct {
	Type   string  `json:"type"`
	Value  string  `json:"value,omitempty"`
	Target string  `json:"target,omitempty"`
	Layout *layout `json:"layout,omitempty"`
}

// serverMessage is the outgoing websocket message format.
type serverMessage struct {
	Type    string `json:"type"`
	State   any    `json:"state,omitempty"`
	Target  string `json:"target,omitempty"`
	On      bool   `json:"on,omitempty"`
	Content string `json:"content,omitempty"`
}

// wsConn serializes writes. Timer callbacks and the read loop both send.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
	name string
}

func newWSConn(conn *websocket.Conn, name string) *wsConn {
	return &wsConn{conn: conn, name: name}
}

func (c *wsConn) send(msg serverMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		log.Printf("playground: %s websocket write: %v", c.name, err)
	}
}

func (c *wsConn) sendError(message string) {
	c.send(serverMessage{Type: "error", Content: message})
}

// readLoop decodes client messages until the connection closes.
func (c *wsConn) readLoop(handle func(clientMessage)) {
	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("playground: %s websocket read: %v", c.name, err)
			}
			return
		}
		handle(msg)
	}
}
