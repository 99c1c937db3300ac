package coursews

import (
	"encoding/json"
	"sync"

	"github.com/alanluk2226/Workoutapp/internal/models"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"
)

const seatsMessageType = "course.seats"

// Hub fans course seat changes out to every connected client.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	stopOnce   sync.Once
	logger     zerolog.Logger
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

type SeatsMessage struct {
	Type                string              `json:"type"`
	CourseID            int64               `json:"course_id"`
	CurrentParticipants int                 `json:"current_participants"`
	MaxParticipants     int                 `json:"max_participants"`
	Status              models.CourseStatus `json:"status"`
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		logger:     logger.With().Str("component", "seat_feed").Logger(),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return newClient(hub, conn, 32)
}

func newClient(hub *Hub, conn *websocket.Conn, buffer int) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, buffer),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			h.drop(client)
		case payload := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					h.drop(client)
				}
			}
		case <-h.done:
			for client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

// Stop ends Run and closes every client send queue.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// CourseSeatsChanged never blocks the caller; a full queue drops the update.
func (h *Hub) CourseSeatsChanged(course models.Course) {
	payload, err := json.Marshal(SeatsMessage{
		Type:                seatsMessageType,
		CourseID:            course.ID,
		CurrentParticipants: course.CurrentParticipants,
		MaxParticipants:     course.MaxParticipants,
		Status:              course.Status,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("course_id", course.ID).Msg("encode seat update")
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn().Int64("course_id", course.ID).Msg("seat feed queue full")
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
}

// ReadPump only watches for the peer going away; the feed is one-way.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
