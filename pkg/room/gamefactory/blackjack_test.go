package gamefactory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"secretdeck-server/pkg/playable"
)

func Test_blackjackFactory_Details(t *testing.T) {
	name, err := factories["secret-deck-blackjack"].Details(playable.AdditionalData{})
	assert.NoError(t, err)
	assert.Equal(t, "Secret Deck Blackjack", name)
}

func Test_blackjackFactory_CreateGame(t *testing.T) {
	a := assert.New(t)

	game, err := factories["secret-deck-blackjack"].CreateGame(1, playable.AdditionalData{
		"seed":      float64(42),
		"maxRounds": float64(2),
	})
	a.NoError(err)
	a.NotNil(game)
	a.Equal("Secret Deck Blackjack", game.Name())

	_, err = Get("secret-deck-blackjack")
	a.NoError(err)

	_, err = Get("craps")
	a.Error(err)
}
