package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"secretdeck-server/pkg/deck"
)

func TestHand_softPoints(t *testing.T) {
	a := assert.New(t)

	tests := map[string]int{
		"10c,9d":       19,
		"14s,13s":      21,
		"14s,14d":      12,
		"14s,9c,5d":    15,
		"14s,14d,14h":  13,
		"10c,10d,10h":  30,
		"2c,3d":        5,
		"":             0,
	}

	for cards, expected := range tests {
		h := newHand()
		setCards(h, cards)
		a.Equal(expected, h.softPoints(), "cards: %s", cards)
	}
}

func TestHand_IsPair(t *testing.T) {
	a := assert.New(t)

	h := newHand()
	setCards(h, "10c,10d")
	a.True(h.IsPair())

	setCards(h, "10c,9d")
	a.False(h.IsPair())

	setCards(h, "10c,10d,10h")
	a.False(h.IsPair())
}

func TestHand_Split(t *testing.T) {
	a := assert.New(t)

	h := newHand()
	setCards(h, "10c,9d")
	h.wager = 100

	split, err := h.Split()
	a.Equal(ErrNotAPair, err)
	a.Nil(split)

	setCards(h, "10c,10d")
	split, err = h.Split()
	a.NoError(err)
	a.Equal("10c", h.cards.String())
	a.Equal("10d", split.cards.String())
	a.Equal(100, h.Wager())
	a.Equal(100, split.Wager())
}

func TestHand_selection(t *testing.T) {
	a := assert.New(t)

	h := newHand()
	setCards(h, "10c,9d")

	a.Nil(h.SelectedCard())

	_, err := h.ReplaceSelected(deck.CardFromString("5c"))
	a.Equal(ErrNoSelection, err)

	a.Error(h.Select(2))
	a.Error(h.Select(-1))

	a.NoError(h.Select(1))
	a.Equal("9d", deck.CardToString(h.SelectedCard()))

	removed, err := h.ReplaceSelected(deck.CardFromString("!5c"))
	a.NoError(err)
	a.Equal("9d", deck.CardToString(removed))
	a.Equal("10c,!5c", h.cards.String())
	a.Nil(h.SelectedCard())

	a.NoError(h.Select(0))
	h.Deselect()
	a.Nil(h.SelectedCard())
}

func TestHand_reset(t *testing.T) {
	a := assert.New(t)

	h := newHand()
	setCards(h, "10c,9d")
	h.wager = 250
	h.extraPoints = 5
	h.halvePoints = true
	a.NoError(h.Select(0))

	h.reset()
	a.Empty(h.Cards())
	a.Equal(250, h.Wager())
	a.Equal(0, h.ExtraPoints())
	a.False(h.halvePoints)
	a.Nil(h.SelectedCard())
}
