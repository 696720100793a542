package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card := CardFromString("14s")
	a.Equal(Ace, card.Rank)
	a.Equal(Spades, card.Suit)
	a.False(card.Secret)

	card = CardFromString("!5c")
	a.Equal(5, card.Rank)
	a.Equal(Clubs, card.Suit)
	a.True(card.Secret)

	a.Equal(Diamonds, CardFromString("2D").Suit)
	a.Equal(Hearts, CardFromString("10h").Suit)

	a.Nil(CardFromString(""))

	a.Panics(func() {
		CardFromString("15s")
	})

	a.Panics(func() {
		CardFromString("5x")
	})
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("A♠", CardFromString("14s").String())
	a.Equal("J♣", CardFromString("11c").String())
	a.Equal("Q♢", CardFromString("12d").String())
	a.Equal("K♡", CardFromString("13h").String())
	a.Equal("2♣", CardFromString("2c").String())
}

func TestCard_BlackjackValue(t *testing.T) {
	a := assert.New(t)
	a.Equal(2, CardFromString("2c").BlackjackValue())
	a.Equal(10, CardFromString("10c").BlackjackValue())
	a.Equal(10, CardFromString("11c").BlackjackValue())
	a.Equal(10, CardFromString("13s").BlackjackValue())
	a.Equal(11, CardFromString("14h").BlackjackValue())

	a.Panics(func() {
		c := &Card{Rank: 1, Suit: Clubs}
		c.BlackjackValue()
	})
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	a.True(CardFromString("5c").Equal(CardFromString("5c")))
	a.False(CardFromString("5c").Equal(CardFromString("5d")))
	a.False(CardFromString("5c").Equal(CardFromString("!5c")))
}

func TestCardsToString(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("2c,!10d,14s")
	a.Equal("2c,!10d,14s", CardsToString(cards))
	a.Equal("", CardToString(nil))
	a.Empty(CardsFromString(""))
}
