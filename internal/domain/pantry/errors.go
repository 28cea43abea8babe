package pantry

import "errors"

var (
	ErrFoyerIDRequired   = errors.New("foyer id is required")
	ErrNameRequired      = errors.New("product name is required")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrNegativeThreshold = errors.New("minimum threshold cannot be negative")
	ErrUnknownAction     = errors.New("unknown stock command action")
)
