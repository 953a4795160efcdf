package domain

import "errors"

var (
	MessageSuccessDownloadList = "success download shopping list"
	MessageFailedDownloadList  = "failed to download shopping list"

	// ErrInconsistentCatalog marks a cart ingredient reference that cannot
	// be resolved. The composition path makes this impossible, so hitting
	// it means the catalog was corrupted outside this service.
	ErrInconsistentCatalog = errors.New("shopping cart references a missing ingredient")
)

// ShoppingListItem is one summed purchase line: all occurrences of the
// ingredient across the cart's recipes collapsed into a single total.
type ShoppingListItem struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Total int    `json:"total"`
}
