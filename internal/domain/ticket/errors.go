package ticket

import "errors"

var (
	ErrFoyerIDRequired   = errors.New("foyer id is required")
	ErrStoreNameRequired = errors.New("store name is required")
	ErrItemNameRequired  = errors.New("line item name is required")
	ErrNegativeQuantity  = errors.New("line item quantity cannot be negative")
)
