package badge

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status is the mint lifecycle state of an award
type Status string

const (
	StatusPending Status = "pending"
	StatusMinted  Status = "minted"
	StatusFailed  Status = "failed"
)

// IsTerminal reports whether no further transition is allowed out of s.
func (s Status) IsTerminal() bool {
	return s == StatusMinted || s == StatusFailed
}

// Award is one user's claim to one badge type, tracked through its mint lifecycle.
type Award struct {
	ID             uuid.UUID      `db:"id"`
	UserID         uuid.UUID      `db:"user_id"`
	BadgeType      string         `db:"badge_type"`
	WalletAddress  string         `db:"wallet_address"`
	Status         Status         `db:"status"`
	TransactionRef sql.NullString `db:"transaction_ref"`
	PhaseCompleted string         `db:"phase_completed"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// TxRef returns the transaction reference or "" when unset.
func (a *Award) TxRef() string {
	if !a.TransactionRef.Valid {
		return ""
	}
	return a.TransactionRef.String
}

// Outcome is a reported mint result. An empty TxRef means none was reported.
type Outcome struct {
	Status Status
	TxRef  string
}

// Minted builds a successful mint outcome.
func Minted(txRef string) Outcome {
	return Outcome{Status: StatusMinted, TxRef: txRef}
}

// Failed builds a failed mint outcome; txRef may be empty.
func Failed(txRef string) Outcome {
	return Outcome{Status: StatusFailed, TxRef: txRef}
}
