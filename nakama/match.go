package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/minaorangina/sheepshead/engine"
	"github.com/minaorangina/sheepshead/game"
	"github.com/minaorangina/sheepshead/protocol"
)

const tickRate = 1

// MatchState is the authoritative state Nakama hands back on every call.
type MatchState struct {
	Table *engine.Table
	// Presences maps user ID to the connection to send to.
	Presences map[string]runtime.Presence
}

// Label is the searchable match label.
type Label struct {
	Game  string `json:"game"`
	Open  int    `json:"open"`
	Phase string `json:"phase"`
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit reads the house rule from the match params, falling back to
// the runtime environment.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	rules := game.DefaultRuleset()
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if v, err := strconv.ParseBool(env["sheepshead_require_picker_has_suit_to_call"]); err == nil {
			rules.RequirePickerHasSuitToCall = v
		}
	}
	if v, ok := params["requirePickerHasSuitToCall"].(bool); ok {
		rules.RequirePickerHasSuitToCall = v
	}

	state := &MatchState{
		Table:     engine.NewTable(rules, nil),
		Presences: map[string]runtime.Presence{},
	}
	logger.Debug("MatchInit: house rule %v", rules.RequirePickerHasSuitToCall)
	return state, tickRate, buildLabel(state)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	ms, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if _, seated := ms.Table.SeatOf(presence.GetUserId()); seated {
		return ms, true, ""
	}
	if ms.Table.Full() {
		return ms, false, "Match full"
	}
	return ms, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	ms, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, p := range presences {
		seat, err := ms.Table.Sit(p.GetUserId(), p.GetUsername())
		if err != nil {
			logger.Warn("MatchJoin: could not seat %s: %v", p.GetUserId(), err)
			sendTo(dispatcher, logger, p, engine.ErrorMessage(err))
			continue
		}
		ms.Presences[p.GetUserId()] = p

		n := int(seat)
		sendTo(dispatcher, logger, p, protocol.OutboundMessage{
			PlayerID: p.GetUserId(),
			Command:  protocol.Hello,
			Seat:     &n,
		})

		joined := protocol.OutboundMessage{
			Command: protocol.NewJoiner,
			Joiner:  &protocol.Player{PlayerID: p.GetUserId(), Name: p.GetUsername(), Seat: n},
		}
		for _, other := range ms.Presences {
			joined.PlayerID = other.GetUserId()
			sendTo(dispatcher, logger, other, joined)
		}

		if ms.Table.State() != nil {
			msg := ms.Table.Message(engine.Event{Command: protocol.State, To: seat}, seat)
			msg.PlayerID = p.GetUserId()
			sendTo(dispatcher, logger, p, msg)
		}
	}

	updateLabel(ms, dispatcher, logger)
	return ms
}

func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	ms, ok := state.(*MatchState)
	if !ok {
		return state
	}
	for _, p := range presences {
		delete(ms.Presences, p.GetUserId())
		ms.Table.Stand(p.GetUserId())
	}
	updateLabel(ms, dispatcher, logger)
	return ms
}

// MatchLoop applies each client message in arrival order.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	ms, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, m := range messages {
		mh.handle(ms, dispatcher, logger, m)
	}
	return ms
}

func (mh *matchHandler) handle(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, m runtime.MatchData) {
	userID := m.GetUserId()
	sender, ok := ms.Presences[userID]
	if !ok {
		logger.Warn("MatchLoop: message from %s who is not at the table", userID)
		return
	}

	cmd, ok := CommandFor(m.GetOpCode())
	if !ok {
		logger.Warn("MatchLoop: Unknown opcode received: %d", m.GetOpCode())
		sendTo(dispatcher, logger, sender, engine.ErrorMessage(engine.ErrUnknownCommand))
		return
	}

	var msg protocol.InboundMessage
	if data := m.GetData(); len(data) > 0 {
		if err := json.Unmarshal(data, &msg); err != nil {
			sendTo(dispatcher, logger, sender, engine.ErrorMessage(&game.Error{Kind: game.MalformedAction, Reason: err}))
			return
		}
	}
	msg.PlayerID = userID
	msg.Command = cmd

	seat, _ := ms.Table.SeatOf(userID)
	events, err := ms.Table.Apply(seat, msg)
	if err != nil {
		if game.KindOf(err) == game.InternalConsistencyFault {
			logger.Error("MatchLoop: hand is broken: %v", err)
		}
		out := engine.ErrorMessage(err)
		out.PlayerID = userID
		sendTo(dispatcher, logger, sender, out)
		return
	}

	for _, ev := range events {
		for id, p := range ms.Presences {
			s, _ := ms.Table.SeatOf(id)
			if ev.To != game.NoSeat && ev.To != s {
				continue
			}
			out := ms.Table.Message(ev, s)
			out.PlayerID = id
			sendTo(dispatcher, logger, p, out)
		}
	}
	updateLabel(ms, dispatcher, logger)
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Info("MatchTerminate: closing table")
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

func sendTo(dispatcher runtime.MatchDispatcher, logger runtime.Logger, p runtime.Presence, msg protocol.OutboundMessage) {
	op, ok := OpCodeFor(msg.Command)
	if !ok {
		logger.Error("no op code for %s", msg.Command)
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("could not encode %s: %v", msg.Command, err)
		return
	}
	if err := dispatcher.BroadcastMessage(op, data, []runtime.Presence{p}, nil, true); err != nil {
		logger.Warn("could not send %s to %s: %v", msg.Command, p.GetUserId(), err)
	}
}

func buildLabel(ms *MatchState) string {
	label := Label{
		Game:  MatchName,
		Open:  game.NumSeats - len(ms.Table.Seated()),
		Phase: ms.Table.Phase(),
	}
	data, _ := json.Marshal(label)
	return string(data)
}

func updateLabel(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if err := dispatcher.MatchLabelUpdate(buildLabel(ms)); err != nil {
		logger.Warn("could not update label: %v", err)
	}
}
