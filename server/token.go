package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

var ErrBadToken = errors.New("invalid seat token")

// SeatClaims identify a player at a table.
type SeatClaims struct {
	GameID   string
	PlayerID string
	Name     string
}

// Tokens signs and checks seat tokens. A token is handed out by /new and
// /join and presented on /ws.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(c SeatClaims) (string, error) {
	if c.GameID == "" || c.PlayerID == "" {
		return "", fmt.Errorf("game and player are required")
	}
	now := t.now()
	claims := jwt.MapClaims{
		"iss":       "sheepshead",
		"sub":       c.PlayerID,
		"iat":       now.Unix(),
		"exp":       now.Add(t.ttl).Unix(),
		"game_id":   c.GameID,
		"player_id": c.PlayerID,
		"name":      c.Name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) Parse(raw string) (SeatClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return SeatClaims{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return SeatClaims{}, ErrBadToken
	}

	c := SeatClaims{
		GameID:   stringClaim(claims, "game_id"),
		PlayerID: stringClaim(claims, "player_id"),
		Name:     stringClaim(claims, "name"),
	}
	if c.GameID == "" || c.PlayerID == "" {
		return SeatClaims{}, fmt.Errorf("%w: missing claims", ErrBadToken)
	}
	return c, nil
}

func stringClaim(claims jwt.MapClaims, name string) string {
	s, _ := claims[name].(string)
	return s
}
