// Command cli replays a deal from its seed, and optionally plays the hand
// out on autopilot.
package main

import (
	"flag"
	"os"

	"github.com/minaorangina/sheepshead/deck"
	"github.com/minaorangina/sheepshead/game"
	"github.com/minaorangina/sheepshead/internal/logging"
	"github.com/minaorangina/sheepshead/players"
	"go.uber.org/zap"
)

func main() {
	seed := flag.String("seed", "", "seed to deal from (random if empty)")
	dealer := flag.Int("dealer", 0, "dealer seat, 0-4")
	play := flag.Bool("play", false, "play the hand out")
	houseRule := flag.Bool("house-rule", false, "picker must hold the called suit")
	flag.Parse()

	logger, err := logging.New("info", true)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if *seed == "" {
		*seed = players.NewID()
	}
	rules := game.DefaultRuleset()
	rules.RequirePickerHasSuitToCall = *houseRule

	s, err := game.TryNewHand(game.Seat(*dealer), *seed, rules)
	if err != nil {
		logger.Fatal("could not deal", zap.String("seed", *seed), zap.Int("dealer", *dealer), zap.Error(err))
	}

	out := os.Stdout
	sendText(out, "%s\n", renderView(game.POV(s, game.NoSeat)))
	if !*play {
		return
	}

	if err := autoPlay(s, func(line string) { sendText(out, "%s\n", line) }); err != nil {
		logger.Fatal("hand broke", zap.String("seed", *seed), zap.Error(err))
	}
	sendText(out, "%s\n", renderView(game.POV(s, game.NoSeat)))
}

// autoPlay finishes the hand on autopilot: the first bidder picks, the
// picker buries their first cards and makes the last legal call, which is
// a partner call whenever one is allowed, and every seat then plays its
// first legal card.
func autoPlay(s *game.State, say func(string)) error {
	picker := game.CurrentBidder(s)
	if err := game.ApplyBid(s, picker, game.Pick); err != nil {
		return err
	}
	say(game.DescribeBid(s, picker, game.Pick))

	if err := game.TakeBlind(s, picker); err != nil {
		return err
	}
	bury := append([]deck.Card{}, s.Hands[picker][:s.Rules.BuryCount]...)
	if err := game.ApplyBury(s, picker, bury); err != nil {
		return err
	}

	calls := game.LegalCalls(s, picker)
	call := calls[len(calls)-1]
	if err := game.ApplyCall(s, picker, call); err != nil {
		return err
	}
	say(game.Announcement(s, call))

	for s.Phase == game.PhasePlay {
		seat := s.Turn
		card := game.LegalPlays(s, seat)[0]
		tricks := game.TricksPlayed(s)
		if err := game.ApplyPlay(s, seat, card); err != nil {
			return err
		}
		say(game.DescribePlay(seat, card))
		if game.TricksPlayed(s) > tricks {
			say(game.DescribeTrick(s.LastTrick))
		}
		if err := game.CheckInvariants(s); err != nil {
			return err
		}
	}

	points, err := game.Tally(s)
	if err != nil {
		return err
	}
	say(game.DescribeTally(points))
	return nil
}
