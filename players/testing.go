package players

import (
	"sync"
	"time"

	"github.com/minaorangina/sheepshead/protocol"
)

// TestPlayer is an in-memory Player. Tests act for it with Do and read what
// the table sent it with Next or Received.
type TestPlayer struct {
	id   string
	name string

	in   chan protocol.InboundMessage
	out  chan protocol.OutboundMessage
	once sync.Once

	m        sync.Mutex
	received []protocol.OutboundMessage
}

func NewTestPlayer(id, name string) *TestPlayer {
	return &TestPlayer{
		id:   id,
		name: name,
		in:   make(chan protocol.InboundMessage, 16),
		out:  make(chan protocol.OutboundMessage, 256),
	}
}

func (tp *TestPlayer) ID() string {
	return tp.id
}

func (tp *TestPlayer) Name() string {
	return tp.name
}

func (tp *TestPlayer) Send(msg protocol.OutboundMessage) error {
	tp.m.Lock()
	tp.received = append(tp.received, msg)
	tp.m.Unlock()

	select {
	case tp.out <- msg:
	default:
	}
	return nil
}

func (tp *TestPlayer) Listen(inbound chan<- protocol.InboundMessage, leave chan<- Player) {
	for msg := range tp.in {
		msg.PlayerID = tp.id
		inbound <- msg
	}
	leave <- tp
}

// Do sends msg to the table as this player.
func (tp *TestPlayer) Do(msg protocol.InboundMessage) {
	tp.in <- msg
}

// Leave disconnects the player.
func (tp *TestPlayer) Leave() {
	tp.once.Do(func() { close(tp.in) })
}

// Close is Leave, for when the table hangs up.
func (tp *TestPlayer) Close() {
	tp.Leave()
}

// Next waits up to d for the next message sent to the player.
func (tp *TestPlayer) Next(d time.Duration) (protocol.OutboundMessage, bool) {
	select {
	case msg := <-tp.out:
		return msg, true
	case <-time.After(d):
		return protocol.OutboundMessage{}, false
	}
}

// NextOf waits up to d for a message with the given command, skipping
// others.
func (tp *TestPlayer) NextOf(cmd protocol.Cmd, d time.Duration) (protocol.OutboundMessage, bool) {
	deadline := time.After(d)
	for {
		select {
		case msg := <-tp.out:
			if msg.Command == cmd {
				return msg, true
			}
		case <-deadline:
			return protocol.OutboundMessage{}, false
		}
	}
}

// Received returns everything sent to the player so far.
func (tp *TestPlayer) Received() []protocol.OutboundMessage {
	tp.m.Lock()
	defer tp.m.Unlock()
	return append([]protocol.OutboundMessage{}, tp.received...)
}

func APlayer(id, name string) *TestPlayer {
	return NewTestPlayer(id, name)
}

// SomePlayers returns n test players with fresh IDs.
func SomePlayers(n int) []*TestPlayer {
	names := []string{"Harry", "Sally", "Marie", "Pierre", "Grace", "Alan"}
	ps := make([]*TestPlayer, 0, n)
	for i := 0; i < n; i++ {
		ps = append(ps, NewTestPlayer(NewID(), names[i%len(names)]))
	}
	return ps
}
