package blackjack

import (
	"encoding/json"

	"secretdeck-server/pkg/deck"
)

// endOfGameLog is attached to the game-over details. The secret rules are
// only disclosed here, after the session has ended.
type endOfGameLog struct {
	Results []*HandResult     `json:"results"`
	Rules   []json.RawMessage `json:"rules"`
	Rounds  int               `json:"rounds"`
}

type handJSON struct {
	Cards    deck.Hand `json:"cards"`
	Points   int       `json:"points"`
	Wager    int       `json:"wager"`
	Selected int       `json:"selected"`
	Busted   bool      `json:"busted"`
}

type dealerJSON struct {
	Cards    deck.Hand `json:"cards"`
	Points   int       `json:"points"`
	Revealed bool      `json:"revealed"`
}

type playerStateJSON struct {
	GameState      GameState     `json:"gameState"`
	RoundState     RoundState    `json:"roundState"`
	Round          int           `json:"round"`
	MaxRounds      int           `json:"maxRounds"`
	SwapsRemaining int           `json:"swapsRemaining"`
	Chips          int           `json:"chips"`
	TotalBets      int           `json:"totalBets"`
	TargetBalance  int           `json:"targetBalance"`
	BustLimit      int           `json:"bustLimit"`
	Hands          []*handJSON   `json:"hands"`
	Dealer         *dealerJSON   `json:"dealer"`
	Results        []*HandResult `json:"results"`
	Items          map[ItemType]int `json:"items"`
	Shop           []ItemData    `json:"shop,omitempty"`
	Actions        []Action      `json:"actions"`
	GameOver       bool          `json:"gameOver"`
	PlayerWon      bool          `json:"playerWon"`
}

// getPlayerState builds the client view. The dealer's hole card is masked
// until revealed, and the rules stay hidden for the whole game.
func (g *Game) getPlayerState() *playerStateJSON {
	hands := make([]*handJSON, len(g.playerHands))
	for i, h := range g.playerHands {
		g.recomputeHoldEffects(h)
		points := g.countPoints(h)

		hands[i] = &handJSON{
			Cards:    h.cards.Clone(),
			Points:   points,
			Wager:    h.wager,
			Selected: h.selected,
			Busted:   points > g.bustLimit(),
		}
	}

	state := &playerStateJSON{
		GameState:      g.state,
		RoundState:     g.roundState,
		Round:          g.progress.CurrentRound(),
		MaxRounds:      g.options.MaxRounds,
		SwapsRemaining: g.progress.SwapsRemaining(),
		Chips:          g.stats.Chips(),
		TotalBets:      g.stats.TotalBets(),
		TargetBalance:  g.progress.TargetBalance(),
		BustLimit:      g.bustLimit(),
		Hands:          hands,
		Dealer:         g.dealerState(),
		Results:        g.lastResults,
		Items:          g.stats.Items(),
		Actions:        g.availableActions(),
		GameOver:       g.done,
		PlayerWon:      g.playerWon,
	}

	if g.state == StateShopping {
		state.Shop = ItemCatalog()
	}

	return state
}

// dealerState masks the hole card with a nil entry until the dealer is
// revealed; the visible point total excludes the hidden card
func (g *Game) dealerState() *dealerJSON {
	cards := g.dealerHand.cards
	if len(cards) == 0 {
		return &dealerJSON{Cards: deck.Hand{}, Revealed: g.dealerRevealed}
	}

	if g.dealerRevealed {
		return &dealerJSON{
			Cards:    cards.Clone(),
			Points:   g.countPoints(g.dealerHand),
			Revealed: true,
		}
	}

	visible := &Hand{cards: cards[1:].Clone()}
	masked := append(deck.Hand{nil}, visible.cards...)

	return &dealerJSON{
		Cards:  masked,
		Points: g.countPoints(visible),
	}
}

// availableActions lists the actions legal in the current state
func (g *Game) availableActions() []Action {
	if g.done {
		return []Action{}
	}

	switch g.state {
	case StateBetting:
		actions := []Action{ActionBet, ActionResetBets}
		if g.stats.TotalBets() > 0 {
			actions = append(actions, ActionConfirmBet)
		}

		if g.stats.HasItem(ItemAllIn) {
			actions = append(actions, ActionUseItem)
		}

		return actions
	case StatePlaying:
		if g.roundState != RoundStateStart {
			return []Action{}
		}

		actions := []Action{ActionHit, ActionStand, ActionSelectCard}

		if g.progress.HasSwapsRemaining() && g.selectedHand() != nil {
			actions = append(actions, ActionReplace)
		}

		primary := g.playerHands[0]
		if !g.isSplit && g.stats.CanAfford(primary.Wager()) {
			actions = append(actions, ActionDoubleDown)

			if primary.IsPair() {
				actions = append(actions, ActionSplit)
			}
		}

		for item, count := range g.stats.Items() {
			if data, ok := GetItemData(item); ok && count > 0 && data.UsableIn == StatePlaying {
				actions = append(actions, ActionUseItem)
				break
			}
		}

		return actions
	case StateShopping:
		return []Action{ActionBuyItem, ActionEndShopping}
	}

	return []Action{}
}
