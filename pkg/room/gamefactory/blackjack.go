package gamefactory

import (
	"github.com/sirupsen/logrus"

	"secretdeck-server/internal/config"
	"secretdeck-server/pkg/playable"
	"secretdeck-server/pkg/playable/blackjack"
)

type blackjackFactory struct{}

// options builds game options from the configured defaults, with any
// client-supplied overrides applied on top
func (b blackjackFactory) options(additionalData playable.AdditionalData) blackjack.Options {
	game := config.Instance().Game

	opts := blackjack.DefaultOptions()
	opts.NumDecks = game.NumDecks
	opts.MaxRounds = game.MaxRounds
	opts.SwapsPerRound = game.SwapsPerRound
	opts.StartingChips = game.StartingChips
	opts.TargetBalance = game.TargetBalance
	opts.BustLimit = game.BustLimit

	if seed, ok := additionalData.GetInt("seed"); ok {
		opts.Seed = int64(seed)
	}

	if numDecks, ok := additionalData.GetInt("numDecks"); ok {
		opts.NumDecks = numDecks
	}

	if maxRounds, ok := additionalData.GetInt("maxRounds"); ok {
		opts.MaxRounds = maxRounds
	}

	return opts
}

func (b blackjackFactory) CreateGame(playerID int64, additionalData playable.AdditionalData) (playable.Playable, error) {
	opts := b.options(additionalData)

	game, err := blackjack.NewGame(logrus.WithField("game", "secret-deck-blackjack"), playerID, opts)
	if err != nil {
		return nil, err
	}

	return game, nil
}

func (b blackjackFactory) Details(additionalData playable.AdditionalData) (string, error) {
	return "Secret Deck Blackjack", nil
}
