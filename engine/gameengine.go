package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/minaorangina/sheepshead/game"
	"github.com/minaorangina/sheepshead/players"
	"github.com/minaorangina/sheepshead/protocol"
	"go.uber.org/zap"
)

// PlayState represents the state of the table
// idle -> no hand dealt yet
// inProgress -> hand in progress
// handOver -> last hand finished, waiting for the next deal
type PlayState int

const (
	Idle PlayState = iota
	InProgress
	HandOver
)

func (ps PlayState) String() string {
	switch ps {
	case Idle:
		return "idle"
	case InProgress:
		return "inProgress"
	case HandOver:
		return "handOver"
	}
	return ""
}

// GameEngine represents one table
type GameEngine interface {
	ID() string
	CreatorID() string
	Players() players.Players
	PlayState() PlayState
	Phase() string
	AddPlayer(players.Player) error
	Receive(protocol.InboundMessage)
	Listen(ctx context.Context)
}

type GameEngineOpts struct {
	GameID       string
	CreatorID    string
	Rules        game.Ruleset
	SeedFn       func() string
	Logger       *zap.Logger
	RegisterCh   chan players.Player
	UnregisterCh chan players.Player
	InboundCh    chan protocol.InboundMessage
}

// gameEngine owns a Table. Every change to the table happens on the Listen
// goroutine; the mutex only guards what other goroutines may read.
type gameEngine struct {
	id           string
	creatorID    string
	table        *Table
	logger       *zap.Logger
	registerCh   chan players.Player
	unregisterCh chan players.Player
	inboundCh    chan protocol.InboundMessage

	mu        sync.RWMutex
	players   players.Players
	playState PlayState
	phase     string
}

// NewGameEngine constructs a table. Call Listen to run it.
func NewGameEngine(opts GameEngineOpts) (*gameEngine, error) {
	if opts.GameID == "" {
		return nil, fmt.Errorf("game ID required")
	}
	if opts.Rules == (game.Ruleset{}) {
		opts.Rules = game.DefaultRuleset()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RegisterCh == nil {
		opts.RegisterCh = make(chan players.Player)
	}
	if opts.UnregisterCh == nil {
		opts.UnregisterCh = make(chan players.Player)
	}
	if opts.InboundCh == nil {
		opts.InboundCh = make(chan protocol.InboundMessage)
	}

	return &gameEngine{
		id:           opts.GameID,
		creatorID:    opts.CreatorID,
		table:        NewTable(opts.Rules, opts.SeedFn),
		logger:       opts.Logger.With(zap.String("game_id", opts.GameID)),
		registerCh:   opts.RegisterCh,
		unregisterCh: opts.UnregisterCh,
		inboundCh:    opts.InboundCh,
		players:      players.Players{},
	}, nil
}

func (ge *gameEngine) ID() string {
	return ge.id
}

func (ge *gameEngine) CreatorID() string {
	return ge.creatorID
}

// Players returns the connected players.
func (ge *gameEngine) Players() players.Players {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return append(players.Players{}, ge.players...)
}

func (ge *gameEngine) PlayState() PlayState {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.playState
}

// Phase is the current hand's phase, or "" before the first deal.
func (ge *gameEngine) Phase() string {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.phase
}

// AddPlayer hands p to the Listen loop to be seated.
func (ge *gameEngine) AddPlayer(p players.Player) error {
	if _, ok := ge.Players().Find(p.ID()); !ok && len(ge.Players()) >= game.NumSeats {
		return ErrTableFull
	}
	ge.registerCh <- p
	return nil
}

// Receive forwards InboundMessages from Players for sorting
func (ge *gameEngine) Receive(msg protocol.InboundMessage) {
	ge.inboundCh <- msg
}

// Listen runs the table until ctx is done.
func (ge *gameEngine) Listen(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ge.logger.Info("table closed")
			return

		case joiner := <-ge.registerCh:
			ge.register(joiner)

		case gone := <-ge.unregisterCh:
			ge.unregister(gone)

		case msg := <-ge.inboundCh:
			ge.handle(msg)
		}
	}
}

func (ge *gameEngine) register(joiner players.Player) {
	seat, err := ge.table.Sit(joiner.ID(), joiner.Name())
	if err != nil {
		ge.logger.Info("turned player away", zap.String("player_id", joiner.ID()), zap.Error(err))
		joiner.Send(ErrorMessage(err))
		return
	}

	ge.mu.Lock()
	ps := players.Players{}
	var replaced players.Player
	for _, p := range ge.players {
		if p.ID() != joiner.ID() {
			ps = append(ps, p)
		} else if p != joiner {
			replaced = p
		}
	}
	ge.players = players.AddPlayer(ps, joiner)
	ge.mu.Unlock()

	// The old connection's leave arrives later and is ignored by unregister.
	if replaced != nil {
		ge.logger.Info("player reconnected", zap.String("player_id", joiner.ID()))
		replaced.Close()
	}

	go joiner.Listen(ge.inboundCh, ge.unregisterCh)

	ge.logger.Info("player seated",
		zap.String("player_id", joiner.ID()),
		zap.String("name", joiner.Name()),
		zap.Int("seat", int(seat)))

	hello := protocol.OutboundMessage{
		PlayerID: joiner.ID(),
		Command:  protocol.Hello,
		Seat:     intRef(int(seat)),
		Message:  fmt.Sprintf("You are in seat %d.", seat),
	}
	joiner.Send(hello)

	for _, p := range ge.Players() {
		p.Send(buildNewJoinerMessage(joiner, seat, p))
	}

	if ge.table.State() != nil {
		joiner.Send(ge.messageFor(Event{Command: protocol.State}, joiner.ID()))
	}
}

// unregister drops gone unless a newer connection has taken its place.
func (ge *gameEngine) unregister(gone players.Player) {
	id := gone.ID()
	ge.mu.Lock()
	if current, ok := ge.players.Find(id); !ok || current != gone {
		ge.mu.Unlock()
		ge.logger.Debug("stale connection left", zap.String("player_id", id))
		return
	}
	ps := players.Players{}
	for _, p := range ge.players {
		if p.ID() != id {
			ps = append(ps, p)
		}
	}
	ge.players = ps
	ge.mu.Unlock()

	ge.table.Stand(id)
	ge.logger.Info("player left", zap.String("player_id", id))
}

func (ge *gameEngine) handle(msg protocol.InboundMessage) {
	p, ok := ge.Players().Find(msg.PlayerID)
	if !ok {
		ge.logger.Warn("message from unknown player", zap.String("player_id", msg.PlayerID))
		return
	}
	seat, _ := ge.table.SeatOf(msg.PlayerID)

	log := ge.logger.With(
		zap.String("player_id", msg.PlayerID),
		zap.Int("seat", int(seat)),
		zap.Stringer("command", msg.Command))

	events, err := ge.table.Apply(seat, msg)
	if err != nil {
		if game.KindOf(err) == game.InternalConsistencyFault {
			log.Error("hand is broken", zap.Error(err))
		} else {
			log.Debug("command rejected", zap.Error(err), zap.Stringer("kind", game.KindOf(err)))
		}
		out := ErrorMessage(err)
		out.PlayerID = p.ID()
		p.Send(out)
		return
	}
	log.Debug("command applied", zap.String("phase", ge.table.Phase()))

	ge.mu.Lock()
	ge.phase = ge.table.Phase()
	switch {
	case ge.table.InHand():
		ge.playState = InProgress
	case ge.table.State() != nil:
		ge.playState = HandOver
	}
	ge.mu.Unlock()

	for _, ev := range events {
		ge.deliver(ev)
	}
}

func (ge *gameEngine) deliver(ev Event) {
	for _, p := range ge.Players() {
		seat, _ := ge.table.SeatOf(p.ID())
		if ev.To != game.NoSeat && ev.To != seat {
			continue
		}
		if err := p.Send(ge.messageFor(ev, p.ID())); err != nil {
			ge.logger.Warn("could not send", zap.String("player_id", p.ID()), zap.Error(err))
		}
	}
}

func (ge *gameEngine) messageFor(ev Event, playerID string) protocol.OutboundMessage {
	seat, _ := ge.table.SeatOf(playerID)
	msg := ge.table.Message(ev, seat)
	msg.PlayerID = playerID
	return msg
}

func buildNewJoinerMessage(joiner players.Player, seat game.Seat, recipient players.Player) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: recipient.ID(),
		Command:  protocol.NewJoiner,
		Message:  fmt.Sprintf("%s has joined the game!", joiner.Name()),
		Joiner: &protocol.Player{
			PlayerID: joiner.ID(),
			Name:     joiner.Name(),
			Seat:     int(seat),
		},
	}
}

func intRef(n int) *int {
	return &n
}
