package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/sheepshead/engine"
	"github.com/minaorangina/sheepshead/game"
	"github.com/minaorangina/sheepshead/players"
	"go.uber.org/zap"
)

var (
	ErrUnknownGameID           = errors.New("unknown game ID")
	ErrUnknownPlayerID         = errors.New("unknown player ID")
	ErrFnUnknownInactiveGameID = func(gameID string) error {
		return fmt.Errorf("pending game with id \"%s\" does not exist", gameID)
	}
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrDuplicateGameID    = errors.New("game ID already in use")
)

// PendingPlayer is someone who has been given a seat token but may not
// have connected yet.
type PendingPlayer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type GameStore interface {
	FindGame(gameID string) engine.GameEngine
	FindActiveGame(gameID string) engine.GameEngine
	FindInactiveGame(gameID string) engine.GameEngine
	FindPendingPlayer(gameID, playerID string) *PendingPlayer
	PendingPlayers(gameID string) []PendingPlayer
	AddInactiveGame(engine.GameEngine) error
	AddPendingPlayer(gameID, playerID, name string) error
	AddPlayerToGame(gameID string, player players.Player) error
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	mu      sync.RWMutex
	logger  *zap.Logger
	Games   map[string]engine.GameEngine
	pending map[string][]PendingPlayer
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore(logger *zap.Logger) *InMemoryGameStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryGameStore{
		logger:  logger,
		Games:   map[string]engine.GameEngine{},
		pending: map[string][]PendingPlayer{},
	}
}

func (s *InMemoryGameStore) FindGame(ID string) engine.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.Games[ID]
	if !ok {
		return nil
	}
	return game
}

// FindActiveGame finds a game that has dealt at least one hand.
func (s *InMemoryGameStore) FindActiveGame(ID string) engine.GameEngine {
	game := s.FindGame(ID)
	if game == nil || game.PlayState() == engine.Idle {
		return nil
	}
	return game
}

// FindInactiveGame finds a game that is still waiting for its first deal.
func (s *InMemoryGameStore) FindInactiveGame(ID string) engine.GameEngine {
	game := s.FindGame(ID)
	if game == nil || game.PlayState() != engine.Idle {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) FindPendingPlayer(gameID, playerID string) *PendingPlayer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, info := range s.pending[gameID] {
		if info.PlayerID == playerID {
			found := info
			return &found
		}
	}
	return nil
}

// PendingPlayers lists everyone holding a seat token for gameID.
func (s *InMemoryGameStore) PendingPlayers(gameID string) []PendingPlayer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]PendingPlayer{}, s.pending[gameID]...)
}

func (s *InMemoryGameStore) AddInactiveGame(game engine.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.Games[game.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGameID, game.ID())
	}

	s.Games[game.ID()] = game
	s.logger.Info("game created", zap.String("game_id", game.ID()), zap.String("creator_id", game.CreatorID()))
	return nil
}

// AddPendingPlayer reserves one of the table's five seats for a player who
// will connect later. Seats can only be reserved before the first deal.
func (s *InMemoryGameStore) AddPendingPlayer(gameID, playerID, name string) error {
	ge := s.FindGame(gameID)
	if ge == nil {
		return ErrFnUnknownInactiveGameID(gameID)
	}
	if ge.PlayState() != engine.Idle {
		return ErrGameAlreadyStarted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending[gameID]) >= game.NumSeats {
		return engine.ErrTableFull
	}
	s.pending[gameID] = append(s.pending[gameID], PendingPlayer{PlayerID: playerID, Name: name})

	s.logger.Info("seat reserved",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.Int("reserved", len(s.pending[gameID])))
	return nil
}

// AddPlayerToGame seats a connected player. Only players holding a
// reservation get in; they may reconnect at any point in a hand.
func (s *InMemoryGameStore) AddPlayerToGame(gameID string, player players.Player) error {
	game := s.FindGame(gameID)
	if game == nil {
		return ErrUnknownGameID
	}
	if s.FindPendingPlayer(gameID, player.ID()) == nil {
		return ErrUnknownPlayerID
	}
	return game.AddPlayer(player)
}
