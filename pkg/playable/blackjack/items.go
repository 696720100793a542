package blackjack

import "fmt"

// ItemType identifies a consumable item
type ItemType string

// item types
const (
	// ItemPeekCards previews the next two cards the shoe will deal
	ItemPeekCards ItemType = "peek-cards"

	// ItemRevealDealer reveals the dealer's hole card
	ItemRevealDealer ItemType = "reveal-dealer"

	// ItemPreventBust intercepts one bust and refunds the wager
	ItemPreventBust ItemType = "prevent-bust"

	// ItemAllIn bets the entire balance with a 10x bonus multiplier
	ItemAllIn ItemType = "all-in"
)

// allInBonusMultiplier is the payout multiplier granted by the all-in item
const allInBonusMultiplier = 10

// ItemData describes a purchasable item
type ItemData struct {
	Type        ItemType `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Cost        int      `json:"cost"`

	// UsableIn is the game state the item may be used in
	UsableIn GameState `json:"usableIn"`
}

var itemCatalog = map[ItemType]ItemData{
	ItemPeekCards: {
		Type:        ItemPeekCards,
		Name:        "Crystal Ball",
		Description: "Reveals the next two cards you would draw",
		Cost:        5000,
		UsableIn:    StatePlaying,
	},
	ItemRevealDealer: {
		Type:        ItemRevealDealer,
		Name:        "X-Ray Specs",
		Description: "Reveals the dealer's hidden card",
		Cost:        3000,
		UsableIn:    StatePlaying,
	},
	ItemPreventBust: {
		Type:        ItemPreventBust,
		Name:        "Safety Net",
		Description: "Prevents one bust and returns your bet",
		Cost:        7000,
		UsableIn:    StatePlaying,
	},
	ItemAllIn: {
		Type:        ItemAllIn,
		Name:        "High Roller",
		Description: "Go all-in with 10x potential return",
		Cost:        10000,
		UsableIn:    StateBetting,
	},
}

// ItemFromString returns the item type for the given identifier
func ItemFromString(s string) (ItemType, error) {
	if _, ok := itemCatalog[ItemType(s)]; ok {
		return ItemType(s), nil
	}

	return "", fmt.Errorf("unknown item for identifier: %s", s)
}

// GetItemData returns the catalog entry for the item type
func GetItemData(item ItemType) (ItemData, bool) {
	data, ok := itemCatalog[item]
	return data, ok
}

// ItemCatalog returns the full item catalog
func ItemCatalog() []ItemData {
	items := make([]ItemData, 0, len(itemCatalog))
	for _, item := range []ItemType{ItemPeekCards, ItemRevealDealer, ItemPreventBust, ItemAllIn} {
		items = append(items, itemCatalog[item])
	}

	return items
}
