package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/sheepshead/engine"
	"github.com/minaorangina/sheepshead/game"
	"github.com/minaorangina/sheepshead/players"
	"github.com/minaorangina/sheepshead/store"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NewGameReq struct {
	Name string `json:"name"`
}

type PendingGameRes struct {
	GameID   string   `json:"game_id"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Admin    bool     `json:"is_admin"`
	Players  []string `json:"players"`
	Token    string   `json:"token"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type GetGameRes struct {
	GameID  string   `json:"game_id"`
	Status  string   `json:"status"`
	Players []string `json:"players"`
	Phase   string   `json:"phase"`
}

type ServerOpts struct {
	Store       store.GameStore
	Rules       game.Ruleset
	TokenSecret string
	TokenTTL    time.Duration
	StaticDir   string
	Logger      *zap.Logger
	// Context bounds every table the server creates.
	Context context.Context
}

// GameServer is a game server
type GameServer struct {
	store  store.GameStore
	rules  game.Ruleset
	tokens *Tokens
	logger *zap.Logger
	ctx    context.Context
	http.Server
}

const gameIDLength = 6

func NewGameID() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, gameIDLength)
	for i := range code {
		code[i] = letters[rand.Intn(len(letters))]
	}
	return string(code)
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) *GameServer {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Rules == (game.Ruleset{}) {
		opts.Rules = game.DefaultRuleset()
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 12 * time.Hour
	}

	s := &GameServer{
		store:  opts.Store,
		rules:  opts.Rules,
		tokens: NewTokens(opts.TokenSecret, opts.TokenTTL),
		logger: opts.Logger,
		ctx:    opts.Context,
	}

	router := http.NewServeMux()
	if opts.StaticDir != "" {
		router.Handle("/", http.FileServer(http.Dir(opts.StaticDir)))
	}
	router.HandleFunc("/health", s.HandleHealth)
	router.HandleFunc("/new", s.HandleNewGame)
	router.HandleFunc("/game/", s.HandleFindGame)
	router.HandleFunc("/join", s.HandleJoinGame)
	router.HandleFunc("/ws", s.HandleWS)

	stdLog := zap.NewStdLog(opts.Logger)
	var h http.Handler = router
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.CombinedLoggingHandler(stdLog.Writer(), h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(stdLog), handlers.PrintRecoveryStack(true))(h)

	s.Handler = h
	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

func (g *GameServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		g.writeParseError(err, w)
		return
	}
	if data.Name == "" {
		http.Error(w, "Missing player name", http.StatusBadRequest)
		return
	}

	playerID := players.NewID()
	ge, err := g.createGame(playerID)
	if err != nil {
		g.logger.Error("could not create game", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := g.store.AddPendingPlayer(ge.ID(), playerID, data.Name); err != nil {
		g.logger.Error("could not seat creator", zap.String("game_id", ge.ID()), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	token, err := g.tokens.Issue(SeatClaims{GameID: ge.ID(), PlayerID: playerID, Name: data.Name})
	if err != nil {
		g.logger.Error("could not issue token", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, PendingGameRes{
		GameID:   ge.ID(),
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    true,
		Players:  []string{data.Name},
		Token:    token,
	})
}

// createGame starts a table under a fresh game ID.
func (g *GameServer) createGame(creatorID string) (engine.GameEngine, error) {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		var ge engine.GameEngine
		ge, err = engine.NewGameEngine(engine.GameEngineOpts{
			GameID:    NewGameID(),
			CreatorID: creatorID,
			Rules:     g.rules,
			Logger:    g.logger,
		})
		if err != nil {
			return nil, err
		}

		err = g.store.AddInactiveGame(ge)
		if errors.Is(err, store.ErrDuplicateGameID) {
			continue
		}
		if err != nil {
			return nil, err
		}

		// get hub running
		go ge.Listen(g.ctx)
		return ge, nil
	}
	return nil, err
}

func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gameID := strings.TrimPrefix(r.URL.Path, "/game/")
	if gameID == "" {
		http.Error(w, "missing game ID", http.StatusBadRequest)
		return
	}

	ge := g.store.FindGame(gameID)
	if ge == nil {
		http.Error(w, unknownGameIDMsg(gameID), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, GetGameRes{
		GameID:  gameID,
		Status:  ge.PlayState().String(),
		Players: g.pendingNames(gameID),
		Phase:   ge.Phase(),
	})
}

func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		g.writeParseError(err, w)
		return
	}

	if data.GameID == "" {
		http.Error(w, "Missing game ID", http.StatusBadRequest)
		return
	}
	if data.Name == "" {
		http.Error(w, "Missing player name", http.StatusBadRequest)
		return
	}

	if g.store.FindGame(data.GameID) == nil {
		http.Error(w, unknownGameIDMsg(data.GameID), http.StatusBadRequest)
		return
	}

	playerID := players.NewID()
	err = g.store.AddPendingPlayer(data.GameID, playerID, data.Name)
	switch {
	case errors.Is(err, engine.ErrTableFull), errors.Is(err, store.ErrGameAlreadyStarted):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		g.logger.Error("could not reserve seat", zap.String("game_id", data.GameID), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	token, err := g.tokens.Issue(SeatClaims{GameID: data.GameID, PlayerID: playerID, Name: data.Name})
	if err != nil {
		g.logger.Error("could not issue token", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, PendingGameRes{
		GameID:   data.GameID,
		PlayerID: playerID,
		Name:     data.Name,
		Players:  g.pendingNames(data.GameID),
		Token:    token,
	})
}

// HandleWS upgrades a seat token holder and hands them to their table.
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}

	claims, err := g.tokens.Parse(raw)
	if err != nil {
		g.logger.Info("rejected token", zap.Error(err))
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	log := g.logger.With(zap.String("game_id", claims.GameID), zap.String("player_id", claims.PlayerID))

	if g.store.FindGame(claims.GameID) == nil {
		http.Error(w, unknownGameIDMsg(claims.GameID), http.StatusBadRequest)
		return
	}
	if g.store.FindPendingPlayer(claims.GameID, claims.PlayerID) == nil {
		http.Error(w, "unknown player ID", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		log.Warn("could not upgrade to websocket", zap.Error(err))
		return
	}

	player := players.NewWSPlayer(claims.PlayerID, claims.Name, conn, g.logger)
	if err := g.store.AddPlayerToGame(claims.GameID, player); err != nil {
		log.Info("could not add player to game", zap.Error(err))
		player.Send(engine.ErrorMessage(err))
		player.Close()
		return
	}
	log.Info("player connected")
}

func (g *GameServer) pendingNames(gameID string) []string {
	names := []string{}
	for _, p := range g.store.PendingPlayers(gameID) {
		names = append(names, p.Name)
	}
	return names
}

func (g *GameServer) writeParseError(err error, w http.ResponseWriter) {
	if err == io.EOF {
		http.Error(w, "Missing body", http.StatusBadRequest)
		return
	}
	g.logger.Debug("bad request body", zap.Error(err))
	http.Error(w, "Malformed body", http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
