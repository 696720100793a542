package blackjack

import (
	"encoding/json"
	"fmt"
)

// Action represents an action a player can take
type Action string

// action constants
const (
	ActionBet         Action = "bet"
	ActionResetBets   Action = "reset-bets"
	ActionConfirmBet  Action = "confirm-bet"
	ActionHit         Action = "hit"
	ActionStand       Action = "stand"
	ActionSelectCard  Action = "select-card"
	ActionReplace     Action = "replace"
	ActionDoubleDown  Action = "double-down"
	ActionSplit       Action = "split"
	ActionBuyItem     Action = "buy-item"
	ActionUseItem     Action = "use-item"
	ActionEndShopping Action = "end-shopping"
)

var allowedActions = map[Action]bool{
	ActionBet:         true,
	ActionResetBets:   true,
	ActionConfirmBet:  true,
	ActionHit:         true,
	ActionStand:       true,
	ActionSelectCard:  true,
	ActionReplace:     true,
	ActionDoubleDown:  true,
	ActionSplit:       true,
	ActionBuyItem:     true,
	ActionUseItem:     true,
	ActionEndShopping: true,
}

// ActionFromString returns an action for the given string
func ActionFromString(s string) (Action, error) {
	if _, ok := allowedActions[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	switch a {
	case ActionBet:
		return "Bet"
	case ActionResetBets:
		return "Reset Bets"
	case ActionConfirmBet:
		return "Confirm Bet"
	case ActionHit:
		return "Hit"
	case ActionStand:
		return "Stand"
	case ActionSelectCard:
		return "Select Card"
	case ActionReplace:
		return "Replace"
	case ActionDoubleDown:
		return "Double Down"
	case ActionSplit:
		return "Split"
	case ActionBuyItem:
		return "Buy Item"
	case ActionUseItem:
		return "Use Item"
	case ActionEndShopping:
		return "End Shopping"
	}

	panic("unknown action")
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}
