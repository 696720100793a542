package blackjack

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"secretdeck-server/internal/rng"
	"secretdeck-server/pkg/deck"
	"secretdeck-server/pkg/playable"
)

// Game is a single-player session of Secret Deck Blackjack
type Game struct {
	playerID int64
	options  Options
	logger   logrus.FieldLogger
	logChan  chan []*playable.LogMessage
	rng      rng.Generator

	shoe     *deck.Shoe
	stats    *PlayerStats
	progress *GameProgress
	rules    [activeRules]Rule

	state      GameState
	roundState RoundState

	playerHands []*Hand
	dealerHand  *Hand

	isSplit      bool
	isDoubleDown bool

	discardBustRaises int
	holdBustRaises    int
	scalarBonus       float64
	bonusMultiplier   int
	burstPrevention   bool
	dealerRevealed    bool

	lastResults []*HandResult

	done      bool
	playerWon bool
}

// NewGame returns a new game for the given player
func NewGame(logger logrus.FieldLogger, playerID int64, options Options) (*Game, error) {
	if options.NumDecks < 1 {
		return nil, errors.New("shoe requires at least one deck")
	}

	if options.MaxRounds < 1 {
		return nil, errors.New("max rounds must be at least one")
	}

	if options.SwapsPerRound < 0 {
		return nil, errors.New("swaps per round cannot be negative")
	}

	if options.StartingChips <= 0 {
		return nil, errors.New("starting chips must be greater than zero")
	}

	if options.TargetBalance <= options.StartingChips {
		return nil, errors.New("target balance must exceed the starting chips")
	}

	if options.BustLimit < 21 {
		return nil, errors.New("bust limit cannot be below 21")
	}

	var gen rng.Generator = rng.Crypto{}
	if options.Seed != 0 {
		gen = rng.NewSeeded(options.Seed)
	}

	g := &Game{
		playerID:        playerID,
		options:         options,
		logger:          logger,
		logChan:         make(chan []*playable.LogMessage, 256),
		rng:             gen,
		shoe:            deck.NewShoe(options.NumDecks, gen),
		stats:           NewPlayerStats(options.StartingChips),
		progress:        NewGameProgress(options.MaxRounds, options.TargetBalance, options.SwapsPerRound),
		state:           StatePreparation,
		roundState:      RoundStateEnd,
		playerHands:     []*Hand{newHand()},
		dealerHand:      newHand(),
		scalarBonus:     1,
		bonusMultiplier: 1,
	}

	g.sendLogMessage("New game started (target: ${%d} in %d rounds)", options.TargetBalance, options.MaxRounds)
	g.beginPreparation()
	return g, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	return "Secret Deck Blackjack"
}

// Key returns a unique key
func (g *Game) Key() string {
	return "secret-deck-blackjack"
}

// State returns the outer game state
func (g *Game) State() GameState {
	return g.state
}

// RoundState returns the state of the current round
func (g *Game) RoundState() RoundState {
	return g.roundState
}

// Stats returns the player's chip economy
func (g *Game) Stats() *PlayerStats {
	return g.stats
}

// Progress returns the round counter and swap allowance
func (g *Game) Progress() *GameProgress {
	return g.progress
}

// setState transitions the outer state machine and runs the phase handler
func (g *Game) setState(state GameState) {
	if g.state == state {
		return
	}

	g.logger.WithFields(logrus.Fields{
		"from": g.state,
		"to":   state,
	}).Debug("game state changed")

	g.state = state

	switch state {
	case StatePreparation:
		g.beginPreparation()
	case StatePlaying:
		if err := g.startOfRound(); err != nil {
			g.logger.WithError(err).Error("could not start round")
		}
	case StateGameOver:
		g.sendLogMessage("Game over")
	}
}

// beginPreparation resets round-local state and rolls fresh secret rules,
// then opens betting
func (g *Game) beginPreparation() {
	g.stats.ResetBets()
	g.progress.ResetSwaps()
	g.rules = randomRules(g.rng)

	g.playerHands = g.playerHands[:1]
	g.playerHands[0].reset()
	g.playerHands[0].wager = 0
	g.dealerHand.reset()
	g.roundState = RoundStateEnd

	g.setState(StateBetting)
}

// SetGameState requests an outer state transition. Only the canonical
// forward edges are legal; anything else is rejected with the state
// unchanged.
func (g *Game) SetGameState(state GameState) error {
	if g.done {
		return ErrGameIsOver
	}

	switch {
	case state == StateBetting && g.state == StatePreparation:
		g.setState(StateBetting)
	case state == StatePlaying && g.state == StateBetting:
		return g.ConfirmBet()
	case state == StatePreparation && g.state == StateShopping:
		g.setState(StatePreparation)
	default:
		return fmt.Errorf("cannot transition from %s to %s", g.state, state)
	}

	return nil
}

// AddBet moves chips from the balance into the pending bet
func (g *Game) AddBet(amount int) error {
	if g.state != StateBetting {
		return fmt.Errorf("cannot bet from state: %s", g.state)
	}

	if !g.stats.AddBet(amount) {
		return ErrInsufficientChips
	}

	return nil
}

// ResetBets returns the pending bet to the balance
func (g *Game) ResetBets() error {
	if g.state != StateBetting {
		return fmt.Errorf("cannot reset bets from state: %s", g.state)
	}

	g.stats.ResetBets()
	return nil
}

// ConfirmBet commits the pending bet to the primary hand's wager and starts
// the round
func (g *Game) ConfirmBet() error {
	if g.state != StateBetting {
		return fmt.Errorf("cannot confirm a bet from state: %s", g.state)
	}

	if g.stats.TotalBets() == 0 {
		return ErrNoBetPlaced
	}

	g.playerHands[0].wager = g.stats.TotalBets()
	g.sendLogMessage("Bet ${%d} confirmed", g.playerHands[0].wager)
	g.setState(StatePlaying)
	return nil
}

// StartOfRound deals a fresh round. Normally invoked by the playing-phase
// transition; calling it again mid-round is rejected.
func (g *Game) StartOfRound() error {
	if g.state != StatePlaying {
		return fmt.Errorf("cannot deal from state: %s", g.state)
	}

	if g.roundState == RoundStateStart {
		return fmt.Errorf("round already in progress")
	}

	return g.startOfRound()
}

// Hit draws a card for the player hand at the given index
func (g *Game) Hit(handIndex int) error {
	if g.state != StatePlaying {
		return ErrRoundNotInProgress
	}

	if handIndex < 0 || handIndex >= len(g.playerHands) {
		return fmt.Errorf("no hand at index %d", handIndex)
	}

	return g.hit(g.playerHands[handIndex])
}

// Stand resolves the round
func (g *Game) Stand() error {
	if g.state != StatePlaying {
		return ErrRoundNotInProgress
	}

	return g.stand()
}

// SelectCard selects a card for a later replace
func (g *Game) SelectCard(handIndex, cardIndex int) error {
	if g.state != StatePlaying || g.roundState != RoundStateStart {
		return ErrRoundNotInProgress
	}

	if handIndex < 0 || handIndex >= len(g.playerHands) {
		return fmt.Errorf("no hand at index %d", handIndex)
	}

	// only one card may be selected across all hands
	for i, h := range g.playerHands {
		if i != handIndex {
			h.Deselect()
		}
	}

	return g.playerHands[handIndex].Select(cardIndex)
}

// Replace swaps the selected card for a biased draw from the shoe
func (g *Game) Replace() error {
	if g.state != StatePlaying {
		return ErrRoundNotInProgress
	}

	return g.replace()
}

// DoubleDown doubles the primary wager, draws one card, and stands
func (g *Game) DoubleDown() error {
	if g.state != StatePlaying {
		return ErrRoundNotInProgress
	}

	return g.doubleDown()
}

// Split splits the primary pair into two hands
func (g *Game) Split() error {
	if g.state != StatePlaying {
		return ErrRoundNotInProgress
	}

	return g.split()
}

// completeRound runs the transient round-end check after a stand: the game
// ends on reaching the target balance or exhausting the rounds, otherwise
// the shop opens for the next round
func (g *Game) completeRound() {
	g.setState(StateRoundEnd)

	if g.stats.Chips() >= g.progress.TargetBalance() {
		g.endGame(true)
		return
	}

	if g.progress.IsLastRound() {
		g.endGame(false)
		return
	}

	g.progress.AdvanceRound()
	g.setState(StateShopping)
}

// CompleteRound credits an external round outcome and runs the round-end
// transition. Exposed for observers driving the session from outside the
// normal action flow.
func (g *Game) CompleteRound(playerWon bool, amount int) error {
	if g.done {
		return ErrGameIsOver
	}

	if playerWon {
		g.stats.AddChips(amount)
	}

	g.stats.ResetBets()
	g.completeRound()
	return nil
}

// endGame finishes the session
func (g *Game) endGame(playerWon bool) {
	g.done = true
	g.playerWon = playerWon
	g.setState(StateGameOver)

	g.logger.WithFields(logrus.Fields{
		"won":   playerWon,
		"chips": g.stats.Chips(),
		"round": g.progress.CurrentRound(),
	}).Info("game over")
}

// PurchaseItem buys a consumable during the shopping phase
func (g *Game) PurchaseItem(item ItemType) error {
	if g.state != StateShopping {
		return fmt.Errorf("cannot purchase items from state: %s", g.state)
	}

	data, ok := GetItemData(item)
	if !ok {
		return fmt.Errorf("unknown item: %s", item)
	}

	if !g.stats.RemoveChips(data.Cost) {
		return ErrInsufficientChips
	}

	g.stats.AddItem(item)
	g.sendLogMessage("Purchased %s for ${%d}", data.Name, data.Cost)
	return nil
}

// UseItem consumes an owned item. The returned cards are only set for the
// peek item.
func (g *Game) UseItem(item ItemType) (deck.Hand, error) {
	data, ok := GetItemData(item)
	if !ok {
		return nil, fmt.Errorf("unknown item: %s", item)
	}

	if !g.stats.HasItem(item) {
		return nil, ErrItemNotOwned
	}

	if g.state != data.UsableIn {
		return nil, ErrItemNotUsable
	}

	var peeked deck.Hand
	switch item {
	case ItemPeekCards:
		cards := g.shoe.Peek(2)
		if cards == nil {
			return nil, fmt.Errorf("not enough cards to peek")
		}

		peeked = cards
	case ItemRevealDealer:
		g.revealDealer()
	case ItemPreventBust:
		g.burstPrevention = true
	case ItemAllIn:
		chips := g.stats.Chips()
		if chips == 0 {
			return nil, ErrInsufficientChips
		}

		g.stats.AddBet(chips)
		g.bonusMultiplier = allInBonusMultiplier
	default:
		panic(fmt.Sprintf("unknown item: %s", item))
	}

	g.stats.UseItem(item)
	g.sendLogMessage("Used %s", data.Name)
	return peeked, nil
}

// EndShopping closes the shop and prepares the next round
func (g *Game) EndShopping() error {
	if g.state != StateShopping {
		return fmt.Errorf("cannot end shopping from state: %s", g.state)
	}

	g.setState(StatePreparation)
	return nil
}

// Action performs with a message
// If playerResponse is not null, that's the response sent directly to the client
// If updateState is true, it will trigger a state update for all connected clients
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if playerID != g.playerID {
		return nil, false, fmt.Errorf("player %d is not in this game", playerID)
	}

	if g.done {
		return nil, false, ErrGameIsOver
	}

	action, err := ActionFromString(message.Subject)
	if err != nil {
		return nil, false, err
	}

	switch action {
	case ActionBet:
		amount, _ := message.AdditionalData.GetInt("amount")
		if err := g.AddBet(amount); err != nil {
			return nil, false, err
		}
	case ActionResetBets:
		if err := g.ResetBets(); err != nil {
			return nil, false, err
		}
	case ActionConfirmBet:
		if err := g.ConfirmBet(); err != nil {
			return nil, false, err
		}
	case ActionHit:
		handIndex, _ := message.AdditionalData.GetInt("hand")
		if err := g.Hit(handIndex); err != nil {
			return nil, false, err
		}
	case ActionStand:
		if err := g.Stand(); err != nil {
			return nil, false, err
		}
	case ActionSelectCard:
		handIndex, _ := message.AdditionalData.GetInt("hand")
		cardIndex, ok := message.AdditionalData.GetInt("card")
		if !ok {
			return nil, false, errors.New("card index is required")
		}

		if err := g.SelectCard(handIndex, cardIndex); err != nil {
			return nil, false, err
		}
	case ActionReplace:
		if err := g.Replace(); err != nil {
			return nil, false, err
		}
	case ActionDoubleDown:
		if err := g.DoubleDown(); err != nil {
			return nil, false, err
		}
	case ActionSplit:
		if err := g.Split(); err != nil {
			return nil, false, err
		}
	case ActionBuyItem:
		name, _ := message.AdditionalData.GetString("item")
		item, err := ItemFromString(name)
		if err != nil {
			return nil, false, err
		}

		if err := g.PurchaseItem(item); err != nil {
			return nil, false, err
		}
	case ActionUseItem:
		name, _ := message.AdditionalData.GetString("item")
		item, err := ItemFromString(name)
		if err != nil {
			return nil, false, err
		}

		peeked, err := g.UseItem(item)
		if err != nil {
			return nil, false, err
		}

		if peeked != nil {
			return &playable.Response{
				Key:     "peek",
				Value:   g.Key(),
				Data:    peeked,
				Context: message.Context,
			}, true, nil
		}
	case ActionEndShopping:
		if err := g.EndShopping(); err != nil {
			return nil, false, err
		}
	default:
		panic(fmt.Sprintf("unhandled action: %s", action))
	}

	return playable.OK(message.Context), true, nil
}

// GetPlayerState returns the current state of the game for the player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	if playerID != g.playerID {
		return nil, fmt.Errorf("player %d is not in this game", playerID)
	}

	return &playable.Response{
		Key:   "game",
		Value: g.Key(),
		Data:  g.getPlayerState(),
	}, nil
}

// GetEndOfGameDetails returns the details after a game is over
// If the game is still in progress, nil will be returned and the second param will be false
func (g *Game) GetEndOfGameDetails() (*playable.GameOverDetails, bool) {
	if !g.done {
		return nil, false
	}

	return &playable.GameOverDetails{
		PlayerWon:         g.playerWon,
		BalanceAdjustment: g.stats.Chips() - g.options.StartingChips,
		Log: endOfGameLog{
			Results: g.lastResults,
			Rules:   marshalRules(g.rules),
			Rounds:  g.progress.CurrentRound(),
		},
	}, true
}

// LogChan should return a channel that a game will send log messages to
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// sendLogMessage sends a game-log entry without blocking
func (g *Game) sendLogMessage(format string, a ...interface{}) {
	if g.logChan == nil {
		return
	}

	select {
	case g.logChan <- playable.SimpleLogMessageSlice(g.playerID, format, a...):
	default:
	}
}
