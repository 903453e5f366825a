package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"botdeck/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 2 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// stateFrame is the wire shape of one feed message.
type stateFrame struct {
	Type  string      `json:"type"`
	State store.State `json:"state"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan stateFrame
}

// Hub fans state snapshots out to websocket clients. Each new client gets
// the current state immediately, then every subsequent change.
type Hub struct {
	st         *store.Store
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan store.State
}

func NewHub(st *store.Store) *Hub {
	return &Hub{
		st:         st,
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan store.State, 16),
	}
}

// Run drives the hub until ctx is cancelled. It owns the clients map; all
// membership changes and broadcasts go through its channels.
func (h *Hub) Run(ctx context.Context) {
	updates, cancel := h.st.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			c.send <- stateFrame{Type: "INITIAL", State: h.st.State()}

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case snap := <-updates:
			frame := stateFrame{Type: "UPDATE", State: snap}
			for c := range h.clients {
				select {
				case c.send <- frame:
				default:
					// Slow consumer, drop it so the hub never blocks.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Serve upgrades the request and attaches the connection to the hub.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	cl := &client{
		hub:  h,
		conn: conn,
		send: make(chan stateFrame, 16),
	}
	h.register <- cl

	go cl.writePump()
	go cl.readPump()
}

// readPump drains inbound frames so pongs are processed; the feed is
// one-way and client messages are discarded.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
