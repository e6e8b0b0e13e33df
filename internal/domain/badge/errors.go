package badge

import "errors"

var (
	ErrUnknownBadgeType     = errors.New("unknown badge type")
	ErrInvalidWalletAddress = errors.New("invalid wallet address")
	ErrInvalidPhase         = errors.New("phase_completed is too long")
	ErrDuplicateAward       = errors.New("badge already awarded to this user")
	ErrAwardNotFound        = errors.New("award not found")
	ErrIllegalTransition    = errors.New("illegal award status transition")
	ErrInvalidOutcome       = errors.New("invalid mint outcome")
	ErrUnauthorized         = errors.New("authenticated user required")
)
