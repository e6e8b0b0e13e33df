package badge

import (
	"database/sql"
	"fmt"
	"strings"
)

const (
	maxTxRefLength = 66
	maxPhaseLength = 100
)

// normalize trims the reported reference and checks the outcome is a legal
// target of the Pending -> Minted | Failed machine.
func (o Outcome) normalize() (Outcome, error) {
	o.TxRef = strings.TrimSpace(o.TxRef)

	switch o.Status {
	case StatusMinted:
		if o.TxRef == "" {
			return o, fmt.Errorf("%w: minted outcome requires a transaction reference", ErrInvalidOutcome)
		}
	case StatusFailed:
	default:
		return o, fmt.Errorf("%w: status %q is not a terminal status", ErrInvalidOutcome, o.Status)
	}

	if len(o.TxRef) > maxTxRefLength {
		return o, fmt.Errorf("%w: transaction reference longer than %d characters", ErrInvalidOutcome, maxTxRefLength)
	}
	return o, nil
}

func (o Outcome) nullTxRef() sql.NullString {
	return sql.NullString{String: o.TxRef, Valid: o.TxRef != ""}
}

// matches reports whether a has already reached exactly outcome o.
func (o Outcome) matches(a *Award) bool {
	return a.Status == o.Status && a.TxRef() == o.TxRef
}

// resolveUnapplied decides the result for an award the conditional update did
// not touch. Terminal states are immutable, so reading current after the
// update is safe: an identical outcome is a replay, anything else is illegal.
func resolveUnapplied(current *Award, o Outcome) (*Award, error) {
	if current.Status.IsTerminal() && o.matches(current) {
		return current, nil
	}
	if !current.Status.IsTerminal() {
		return nil, fmt.Errorf("award %s still %s after conditional update", current.ID, current.Status)
	}
	return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current.Status, o.Status)
}
