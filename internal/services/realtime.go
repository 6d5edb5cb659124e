package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024
)

// Event fan-out types for board mutations.
const (
	EventCardCreated   = "card.created"
	EventCardUpdated   = "card.updated"
	EventCardDeleted   = "card.deleted"
	EventCardMoved     = "card.moved"
	EventCardDue       = "card.due"
	EventColumnCreated = "column.created"
	EventColumnUpdated = "column.updated"
	EventColumnDeleted = "column.deleted"
	EventColumnMoved   = "column.moved"
	EventBoardUpdated  = "board.updated"
)

// BoardEvent is the message pushed to every client watching a board.
type BoardEvent struct {
	Type    string `json:"type"`
	BoardID string `json:"boardId"`
	Data    any    `json:"data,omitempty"`
	User    string `json:"user,omitempty"`
}

// Client is one WebSocket subscriber to one board.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	boardID string
	userID  string
}

func NewClient(hub *Hub, conn *websocket.Conn, boardID, userID string) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 16),
		boardID: boardID,
		userID:  userID,
	}
}

// Hub fans board events out to the WebSocket clients subscribed to each
// board. Rooms are keyed by board id.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{rooms: map[string]map[*Client]bool{}}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[c.boardID] == nil {
		h.rooms[c.boardID] = map[*Client]bool{}
	}
	h.rooms[c.boardID][c] = true
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[c.boardID]
	if room == nil {
		return
	}
	if room[c] {
		delete(room, c)
		close(c.send)
	}
	if len(room) == 0 {
		delete(h.rooms, c.boardID)
	}
}

// Broadcast pushes an event to every client watching the board. Slow clients
// are dropped rather than blocking the sender.
func (h *Hub) Broadcast(event BoardEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("realtime: marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[event.BoardID] {
		select {
		case c.send <- payload:
		default:
			// client is not keeping up; the read pump will clean it up
			go h.Unregister(c)
		}
	}
}

// ReadPump keeps the connection alive and discards client messages; the
// stream is server-to-client only.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("realtime: read error: %v", err)
			}
			break
		}
	}
}

// WritePump pumps events from the hub to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
