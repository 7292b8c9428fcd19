package players

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/sheepshead/protocol"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	sendBuffer = 32
)

var (
	ErrPlayerGone = errors.New("player has disconnected")
	ErrSlowPlayer = errors.New("player is not keeping up with messages")
)

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

// Player represents a seat holder at a table
type Player interface {
	ID() string
	Name() string
	Send(msg protocol.OutboundMessage) error
	// Listen delivers the player's messages to inbound until the player goes
	// away, then reports the player itself on leave.
	Listen(inbound chan<- protocol.InboundMessage, leave chan<- Player)
	// Close hangs up on the player. Listen returns soon after.
	Close()
}

type WSPlayer struct {
	id     string
	name   string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	logger *zap.Logger
}

// NewWSPlayer constructs a player on an upgraded websocket and starts
// writing to it.
func NewWSPlayer(id, name string, ws *websocket.Conn, logger *zap.Logger) *WSPlayer {
	player := &WSPlayer{
		id:     id,
		name:   name,
		conn:   ws,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		logger: logger.With(zap.String("player_id", id)),
	}
	go player.writePump()
	return player
}

func (p *WSPlayer) ID() string {
	return p.id
}

func (p *WSPlayer) Name() string {
	return p.name
}

// Send queues msg for the player. It never blocks the caller.
func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	select {
	case <-p.done:
		return ErrPlayerGone
	default:
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case p.send <- data:
		return nil
	default:
		return ErrSlowPlayer
	}
}

// Close hangs up on the player.
func (p *WSPlayer) Close() {
	p.once.Do(func() { close(p.done) })
}

// Listen is the read pump.
func (p *WSPlayer) Listen(inbound chan<- protocol.InboundMessage, leave chan<- Player) {
	defer func() {
		p.Close()
		select {
		case leave <- p:
		case <-time.After(writeWait):
			p.logger.Warn("table did not hear player leave")
		}
	}()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Warn("websocket closed", zap.Error(err))
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil || !msg.Command.Inbound() {
			p.logger.Debug("unreadable message", zap.ByteString("data", data), zap.Error(err))
			p.Send(protocol.OutboundMessage{
				PlayerID: p.id,
				Command:  protocol.Error,
				Error:    "unreadable message",
			})
			continue
		}
		msg.PlayerID = p.id

		select {
		case inbound <- msg:
		case <-p.done:
			return
		}
	}
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				p.Close()
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				p.Close()
				return
			}

		case <-p.done:
			p.flush()
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			p.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// flush writes whatever was queued before the player was closed.
func (p *WSPlayer) flush() {
	for {
		select {
		case msg := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

// Players represents all players at a table
type Players []Player

// NewPlayers returns a set of Players
func NewPlayers(p ...Player) Players {
	return Players(p)
}

// AddPlayer adds a player to a set of Players
func AddPlayer(ps Players, p Player) Players {
	if _, ok := ps.Find(p.ID()); !ok {
		return Players(append(ps, p))
	}
	return ps
}

// Find finds a player by id
func (ps Players) Find(id string) (Player, bool) {
	for _, p := range ps {
		if got := p.ID(); got == id {
			return p, true
		}
	}
	return nil, false
}

// Names lists player names in order.
func (ps Players) Names() []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Name())
	}
	return names
}
