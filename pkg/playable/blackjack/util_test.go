package blackjack

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"secretdeck-server/pkg/deck"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Seed = 42
	return opts
}

func testGame(t *testing.T, opts Options) *Game {
	t.Helper()
	game, err := NewGame(logrus.StandardLogger(), 1, opts)
	assert.NoError(t, err)
	assert.NotNil(t, game)
	return game
}

// startRound drives a fresh game through the betting phase into a dealt round
func startRound(t *testing.T, game *Game, bet int) {
	t.Helper()
	assert.NoError(t, game.AddBet(bet))
	assert.NoError(t, game.ConfirmBet())
	assert.Equal(t, StatePlaying, game.State())
	assert.Equal(t, RoundStateStart, game.RoundState())
}

// quietRules hold no surprises for hands without secret cards: the hold
// slots never fire, the discard slot only matters on a replace, and the
// draw slot merely reveals the dealer
func quietRules() [activeRules]Rule {
	return [activeRules]Rule{
		HoldRule{Effect: HoldRaiseBustLimit},
		DiscardRule{Effect: DiscardRaiseBustLimit},
		DrawRule{Effect: DrawRevealDealerHand},
		HoldRule{Effect: HoldRaiseBustLimit},
	}
}

// setCards overrides the dealt cards, e.g. "10c,9d" or "!5c,7c"
func setCards(h *Hand, cards string) {
	h.cards = deck.CardsFromString(cards)
	h.selected = noSelection
	h.extraPoints = 0
	h.halvePoints = false
}
