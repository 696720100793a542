package blackjack

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"secretdeck-server/pkg/playable"
)

func TestNewGame_optionValidation(t *testing.T) {
	a := assert.New(t)

	run := func(mutate func(*Options)) error {
		opts := testOptions()
		mutate(&opts)
		_, err := NewGame(logrus.StandardLogger(), 1, opts)
		return err
	}

	a.NoError(run(func(o *Options) {}))
	a.Error(run(func(o *Options) { o.NumDecks = 0 }))
	a.Error(run(func(o *Options) { o.MaxRounds = 0 }))
	a.Error(run(func(o *Options) { o.SwapsPerRound = -1 }))
	a.Error(run(func(o *Options) { o.StartingChips = 0 }))
	a.Error(run(func(o *Options) { o.TargetBalance = o.StartingChips }))
	a.Error(run(func(o *Options) { o.BustLimit = 20 }))
}

func TestNewGame_opensBetting(t *testing.T) {
	a := assert.New(t)

	game := testGame(t, testOptions())
	a.Equal(StateBetting, game.State())
	a.Equal(RoundStateEnd, game.RoundState())
	a.Equal(10000, game.stats.Chips())
	a.Equal(1, game.progress.CurrentRound())
	a.Equal(3, game.progress.SwapsRemaining())
	a.Equal(208, game.shoe.Remaining())
}

func TestGame_betting(t *testing.T) {
	a := assert.New(t)

	opts := testOptions()
	opts.StartingChips = 500
	opts.TargetBalance = 1000000
	game := testGame(t, opts)

	// a bet beyond the balance leaves everything untouched
	a.Equal(ErrInsufficientChips, game.AddBet(600))
	a.Equal(500, game.stats.Chips())
	a.Equal(0, game.stats.TotalBets())

	a.Equal(ErrNoBetPlaced, game.ConfirmBet())
	a.Equal(StateBetting, game.State())

	a.NoError(game.AddBet(200))
	a.NoError(game.AddBet(100))
	a.NoError(game.ResetBets())
	a.Equal(500, game.stats.Chips())

	a.NoError(game.AddBet(300))
	a.NoError(game.ConfirmBet())
	a.Equal(StatePlaying, game.State())
	a.Equal(300, game.playerHands[0].Wager())
}

func TestGame_actionsOutsideTheirPhase(t *testing.T) {
	a := assert.New(t)

	game := testGame(t, testOptions())

	a.Equal(ErrRoundNotInProgress, game.Hit(0))
	a.Equal(ErrRoundNotInProgress, game.Stand())
	a.Equal(ErrRoundNotInProgress, game.Replace())
	a.Equal(ErrRoundNotInProgress, game.DoubleDown())
	a.Equal(ErrRoundNotInProgress, game.Split())
	a.Error(game.PurchaseItem(ItemPeekCards))
	a.Error(game.EndShopping())

	startRound(t, game, 100)
	a.Error(game.AddBet(100))
	a.Error(game.ConfirmBet())
	a.Error(game.ResetBets())
}

func TestGame_shoppingFlow(t *testing.T) {
	a := assert.New(t)

	game := testGame(t, testOptions())
	startRound(t, game, 100)
	game.rules = quietRules()
	rulesBefore := game.rules

	setCards(game.playerHands[0], "10c,9d,5h")
	setCards(game.dealerHand, "10s,9s")
	a.NoError(game.Stand())

	a.Equal(StateShopping, game.State())
	a.Equal(2, game.progress.CurrentRound())
	a.Equal(9900, game.stats.Chips())

	a.Equal(ErrInsufficientChips, game.PurchaseItem(ItemAllIn))
	a.Error(game.PurchaseItem(ItemType("monocle")))

	a.NoError(game.PurchaseItem(ItemPeekCards))
	a.Equal(4900, game.stats.Chips())
	a.True(game.stats.HasItem(ItemPeekCards))

	// items cannot be used in the shop
	_, err := game.UseItem(ItemPeekCards)
	a.Equal(ErrItemNotUsable, err)

	a.NoError(game.EndShopping())
	a.Equal(StateBetting, game.State())
	a.Equal(3, game.progress.SwapsRemaining())
	a.NotEqual(rulesBefore, game.rules)
}

func TestGame_useItems(t *testing.T) {
	a := assert.New(t)

	game := testGame(t, testOptions())

	_, err := game.UseItem(ItemRevealDealer)
	a.Equal(ErrItemNotOwned, err)

	game.stats.AddItem(ItemRevealDealer)
	game.stats.AddItem(ItemPeekCards)
	game.stats.AddItem(ItemPreventBust)

	// playing-phase items are rejected during betting
	_, err = game.UseItem(ItemRevealDealer)
	a.Equal(ErrItemNotUsable, err)

	startRound(t, game, 100)
	game.rules = quietRules()

	_, err = game.UseItem(ItemRevealDealer)
	a.NoError(err)
	a.True(game.dealerRevealed)
	a.False(game.stats.HasItem(ItemRevealDealer))

	peeked, err := game.UseItem(ItemPeekCards)
	a.NoError(err)
	a.Len(peeked, 2)

	// the next draw is the first previewed card
	setCards(game.playerHands[0], "2c,3d")
	a.NoError(game.Hit(0))
	a.Same(peeked[0], game.playerHands[0].Cards()[2])

	_, err = game.UseItem(ItemPreventBust)
	a.NoError(err)
	a.True(game.burstPrevention)
}

func TestGame_useItem_allIn(t *testing.T) {
	a := assert.New(t)

	game := testGame(t, testOptions())
	game.stats.AddItem(ItemAllIn)

	_, err := game.UseItem(ItemAllIn)
	a.NoError(err)
	a.Equal(0, game.stats.Chips())
	a.Equal(10000, game.stats.TotalBets())
	a.Equal(10, game.bonusMultiplier)

	a.NoError(game.ConfirmBet())
	a.Equal(10000, game.playerHands[0].Wager())
}

func TestGame_gameOver_lastRound(t *testing.T) {
	a := assert.New(t)

	opts := testOptions()
	opts.MaxRounds = 1
	game := testGame(t, opts)

	_, over := game.GetEndOfGameDetails()
	a.False(over)

	startRound(t, game, 100)
	game.rules = quietRules()

	setCards(game.playerHands[0], "10c,9d,5h")
	setCards(game.dealerHand, "10s,9s")
	a.NoError(game.Stand())

	a.Equal(StateGameOver, game.State())

	details, over := game.GetEndOfGameDetails()
	a.True(over)
	a.False(details.PlayerWon)
	a.Equal(-100, details.BalanceAdjustment)

	// everything is rejected once the game has ended
	a.Equal(ErrGameIsOver, game.SetGameState(StateBetting))
	_, _, err := game.Action(1, &playable.PayloadIn{Subject: "bet"})
	a.Equal(ErrGameIsOver, err)
}

func TestGame_gameOver_targetReached(t *testing.T) {
	a := assert.New(t)

	opts := testOptions()
	opts.TargetBalance = 10100
	game := testGame(t, opts)
	startRound(t, game, 100)
	game.rules = quietRules()

	setCards(game.playerHands[0], "10c,9d")
	setCards(game.dealerHand, "10s,8s")
	a.NoError(game.Stand())

	a.Equal(StateGameOver, game.State())

	details, over := game.GetEndOfGameDetails()
	a.True(over)
	a.True(details.PlayerWon)
	a.Equal(200, details.BalanceAdjustment)
}

func TestGame_SetGameState(t *testing.T) {
	a := assert.New(t)

	game := testGame(t, testOptions())

	// betting to playing goes through the bet confirmation
	a.Equal(ErrNoBetPlaced, game.SetGameState(StatePlaying))

	a.NoError(game.AddBet(100))
	a.NoError(game.SetGameState(StatePlaying))
	a.Equal(StatePlaying, game.State())

	a.Error(game.SetGameState(StateShopping))
	a.Error(game.SetGameState(StateBetting))
}

func TestGame_CompleteRound(t *testing.T) {
	a := assert.New(t)

	game := testGame(t, testOptions())

	a.NoError(game.CompleteRound(true, 500))
	a.Equal(10500, game.stats.Chips())
	a.Equal(StateShopping, game.State())
	a.Equal(2, game.progress.CurrentRound())
}

func TestGame_Action(t *testing.T) {
	a := assert.New(t)

	game := testGame(t, testOptions())

	_, _, err := game.Action(2, &playable.PayloadIn{Subject: "bet"})
	a.Error(err)

	_, _, err = game.Action(1, &playable.PayloadIn{Subject: "dance"})
	a.Error(err)

	resp, update, err := game.Action(1, &playable.PayloadIn{
		Subject:        "bet",
		AdditionalData: playable.AdditionalData{"amount": float64(100)},
	})
	a.NoError(err)
	a.True(update)
	a.Equal("OK", resp.Value)
	a.Equal(100, game.stats.TotalBets())

	_, _, err = game.Action(1, &playable.PayloadIn{Subject: "confirm-bet"})
	a.NoError(err)
	a.Equal(StatePlaying, game.State())

	game.rules = quietRules()

	_, _, err = game.Action(1, &playable.PayloadIn{
		Subject:        "select-card",
		AdditionalData: playable.AdditionalData{"hand": float64(0), "card": float64(1)},
	})
	a.NoError(err)
	a.NotNil(game.playerHands[0].SelectedCard())

	_, _, err = game.Action(1, &playable.PayloadIn{Subject: "replace"})
	a.NoError(err)
	a.Equal(2, game.progress.SwapsRemaining())

	setCards(game.playerHands[0], "10c,9d")
	setCards(game.dealerHand, "10s,9s")
	_, _, err = game.Action(1, &playable.PayloadIn{Subject: "stand"})
	a.NoError(err)
	a.Equal(StateShopping, game.State())

	_, _, err = game.Action(1, &playable.PayloadIn{
		Subject:        "buy-item",
		AdditionalData: playable.AdditionalData{"item": "reveal-dealer"},
	})
	a.NoError(err)
	a.True(game.stats.HasItem(ItemRevealDealer))

	_, _, err = game.Action(1, &playable.PayloadIn{Subject: "end-shopping"})
	a.NoError(err)
	a.Equal(StateBetting, game.State())
}

func TestGame_Action_useItemPeek(t *testing.T) {
	a := assert.New(t)

	game := testGame(t, testOptions())
	game.stats.AddItem(ItemPeekCards)
	startRound(t, game, 100)
	game.rules = quietRules()

	resp, update, err := game.Action(1, &playable.PayloadIn{
		Subject:        "use-item",
		AdditionalData: playable.AdditionalData{"item": "peek-cards"},
		Context:        "ctx-1",
	})
	a.NoError(err)
	a.True(update)
	a.Equal("peek", resp.Key)
	a.Equal("ctx-1", resp.Context)
}

func TestGame_GetPlayerState(t *testing.T) {
	a := assert.New(t)

	game := testGame(t, testOptions())
	startRound(t, game, 100)
	game.rules = quietRules()

	_, err := game.GetPlayerState(2)
	a.Error(err)

	resp, err := game.GetPlayerState(1)
	a.NoError(err)

	state, ok := resp.Data.(*playerStateJSON)
	a.True(ok)
	a.Equal(StatePlaying, state.GameState)
	a.Equal(1, state.Round)
	a.Equal(6, state.MaxRounds)
	a.Equal(9900, state.Chips)
	a.Len(state.Hands, 1)

	// the dealer's hole card stays hidden until revealed
	a.Nil(state.Dealer.Cards[0])
	a.False(state.Dealer.Revealed)

	game.revealDealer()
	resp, err = game.GetPlayerState(1)
	a.NoError(err)
	state = resp.Data.(*playerStateJSON)
	a.True(state.Dealer.Revealed)
	a.NotNil(state.Dealer.Cards[0])
}

func TestGame_availableActions(t *testing.T) {
	a := assert.New(t)

	game := testGame(t, testOptions())
	a.Contains(game.availableActions(), ActionBet)
	a.NotContains(game.availableActions(), ActionConfirmBet)

	a.NoError(game.AddBet(100))
	a.Contains(game.availableActions(), ActionConfirmBet)

	a.NoError(game.ConfirmBet())
	game.rules = quietRules()
	actions := game.availableActions()
	a.Contains(actions, ActionHit)
	a.Contains(actions, ActionStand)
	a.NotContains(actions, ActionReplace)

	a.NoError(game.SelectCard(0, 0))
	a.Contains(game.availableActions(), ActionReplace)

	setCards(game.playerHands[0], "10c,10d")
	a.Contains(game.availableActions(), ActionSplit)
}

func TestGame_Name(t *testing.T) {
	a := assert.New(t)
	game := testGame(t, testOptions())
	a.Equal("Secret Deck Blackjack", game.Name())
	a.Equal("secret-deck-blackjack", game.Key())
}
