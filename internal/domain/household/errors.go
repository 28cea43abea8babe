package household

import "errors"

var (
	ErrMemberIDRequired = errors.New("member id is required")
	ErrFoyerIDRequired  = errors.New("foyer id is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrUnknownPlan      = errors.New("unknown subscription plan")
	ErrUnknownRole      = errors.New("unknown role")
)
