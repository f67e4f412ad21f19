package server

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Snapshots queued per client before it is considered too slow.
	sendBuffer = 16
)

// ControlMessage is a command sent by a live feed client.
type ControlMessage struct {
	Type  string  `json:"type"` // play, pause, reset, step, speed
	Speed float64 `json:"speed,omitempty"`
}

// Client is one live feed websocket connection.
type Client struct {
	hub            *Hub
	conn           *websocket.Conn
	send           chan []byte
	maxMessageSize int64
}

// NewClient creates a client for an upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn, maxMessageSize int64) *Client {
	return &Client{
		hub:            hub,
		conn:           conn,
		send:           make(chan []byte, sendBuffer),
		maxMessageSize: maxMessageSize,
	}
}

// Register adds the client to the hub. It returns false when the hub has
// already shut down.
func (c *Client) Register() bool {
	select {
	case c.hub.register <- c:
		return true
	case <-c.hub.done:
		return false
	}
}

// ReadPump reads control messages from the connection until it closes.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(c.maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("live feed connection closed unexpectedly",
					zap.String("op", "server.Client.ReadPump"),
					zap.Error(err),
				)
			}
			return
		}

		var msg ControlMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.hub.logger.Warn("failed to parse live feed control message",
				zap.String("op", "server.Client.ReadPump"),
				zap.Error(err),
			)
			continue
		}
		if err := c.handleControl(msg); err != nil {
			c.hub.logger.Warn("live feed control message rejected",
				zap.String("op", "server.Client.ReadPump"),
				zap.String("type", msg.Type),
				zap.Error(err),
			)
		}
	}
}

func (c *Client) handleControl(msg ControlMessage) error {
	ctrl := c.hub.ctrl
	switch strings.ToLower(msg.Type) {
	case "play":
		return ctrl.Play()
	case "pause":
		ctrl.Pause()
	case "reset":
		ctrl.Reset()
	case "step":
		_, err := ctrl.StepOnce()
		return err
	case "speed":
		return ctrl.SetSpeed(msg.Speed)
	default:
		return errors.New("unknown control message type " + msg.Type)
	}
	return nil
}

// WritePump writes queued snapshots to the connection, one per message.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
