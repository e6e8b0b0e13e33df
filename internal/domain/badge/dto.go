package badge

import (
	"time"

	"github.com/google/uuid"
)

// RegisterAwardRequest for POST /badges.
// Catalog membership and wallet shape are checked by the service so they
// surface as UNKNOWN_BADGE_TYPE / INVALID_WALLET_ADDRESS.
type RegisterAwardRequest struct {
	BadgeType      string `json:"badge_type" validate:"required"`
	WalletAddress  string `json:"wallet_address" validate:"required"`
	PhaseCompleted string `json:"phase_completed" validate:"omitempty,max=100"`
}

// OutcomeRequest for POST /badges/{id}/outcome and PATCH /badges/{id}/update_status
type OutcomeRequest struct {
	Status         string  `json:"status" validate:"required,badge_status"`
	TransactionRef *string `json:"transaction_ref" validate:"omitempty,max=66"`
}

// Outcome converts the request to a domain outcome
func (r *OutcomeRequest) Outcome() Outcome {
	o := Outcome{Status: Status(r.Status)}
	if r.TransactionRef != nil {
		o.TxRef = *r.TransactionRef
	}
	return o
}

// AwardResponse represents an award in API responses
type AwardResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	BadgeType        string    `json:"badge_type"`
	BadgeName        string    `json:"badge_name"`
	BadgeDescription string    `json:"badge_description"`
	WalletAddress    string    `json:"wallet_address"`
	Status           Status    `json:"status"`
	TransactionRef   *string   `json:"transaction_ref"`
	PhaseCompleted   string    `json:"phase_completed"`
	IsMinted         bool      `json:"is_minted"`
	IsPending        bool      `json:"is_pending"`
	IsFailed         bool      `json:"is_failed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AwardResponseFromEntity converts entity to response
func AwardResponseFromEntity(a *Award) AwardResponse {
	resp := AwardResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		BadgeType:        a.BadgeType,
		BadgeDescription: DescriptionFor(a.BadgeType),
		WalletAddress:    a.WalletAddress,
		Status:           a.Status,
		PhaseCompleted:   a.PhaseCompleted,
		IsMinted:         a.Status == StatusMinted,
		IsPending:        a.Status == StatusPending,
		IsFailed:         a.Status == StatusFailed,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}

	if bt, ok := LookupBadgeType(a.BadgeType); ok {
		resp.BadgeName = bt.DisplayName
	}
	if a.TransactionRef.Valid {
		ref := a.TransactionRef.String
		resp.TransactionRef = &ref
	}
	return resp
}

// AwardListResponse converts a slice of awards, keeping order
func AwardListResponse(awards []*Award) []AwardResponse {
	items := make([]AwardResponse, 0, len(awards))
	for _, a := range awards {
		items = append(items, AwardResponseFromEntity(a))
	}
	return items
}

// BadgeTypeResponse is one catalog entry
type BadgeTypeResponse struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CatalogResponse converts the catalog for GET /badges/types
func CatalogResponse(types []BadgeType) []BadgeTypeResponse {
	items := make([]BadgeTypeResponse, 0, len(types))
	for _, bt := range types {
		items = append(items, BadgeTypeResponse{
			Type:        bt.Key,
			Name:        bt.DisplayName,
			Description: DescriptionFor(bt.Key),
		})
	}
	return items
}
