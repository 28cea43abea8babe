package pantry

import (
	"strings"

	"github.com/google/uuid"
)

// StockCommand is one parsed natural-language instruction against the stock
type StockCommand struct {
	Action   CommandAction
	Item     string
	Quantity float64
	Unit     string
}

// CommandAction is the verb of a stock command
type CommandAction string

const (
	ActionAdd    CommandAction = "add"
	ActionRemove CommandAction = "remove"
	ActionUpdate CommandAction = "update"
)

// CommandOutcome describes what applying one command did
type CommandOutcome struct {
	Command StockCommand
	// Created is the new product for an unmatched add, nil otherwise
	Created *Product
	// Updated is the matched product after mutation, nil otherwise
	Updated *Product
	// Dropped is true when a remove/update matched nothing
	Dropped bool
}

// ApplyCommands applies parsed commands to the product collection.
//
// Matching is a case-insensitive substring test on the product name; the
// first match wins. An unmatched add creates a new product; unmatched
// remove/update commands are silently dropped. Removing never drives a
// quantity below zero.
func ApplyCommands(foyerID uuid.UUID, products []*Product, commands []StockCommand) ([]CommandOutcome, error) {
	outcomes := make([]CommandOutcome, 0, len(commands))

	for _, cmd := range commands {
		switch cmd.Action {
		case ActionAdd, ActionRemove, ActionUpdate:
		default:
			return nil, ErrUnknownAction
		}

		match := matchProduct(products, cmd.Item)
		outcome := CommandOutcome{Command: cmd}

		switch {
		case match == nil && cmd.Action == ActionAdd:
			created, err := NewProduct(foyerID, cmd.Item, cmd.Quantity, cmd.Unit, "", 1, nil)
			if err != nil {
				return nil, err
			}
			products = append(products, created)
			outcome.Created = created

		case match == nil:
			outcome.Dropped = true

		case cmd.Action == ActionAdd:
			match.AddQuantity(cmd.Quantity)
			outcome.Updated = match

		case cmd.Action == ActionRemove:
			match.AddQuantity(-cmd.Quantity)
			outcome.Updated = match

		case cmd.Action == ActionUpdate:
			match.SetQuantity(cmd.Quantity)
			outcome.Updated = match
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// matchProduct finds the first product whose name contains item, ignoring case
func matchProduct(products []*Product, item string) *Product {
	needle := strings.ToLower(strings.TrimSpace(item))
	if needle == "" {
		return nil
	}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			return p
		}
	}
	return nil
}
