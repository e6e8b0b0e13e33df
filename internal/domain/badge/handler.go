package badge

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/startupquest/quest-api/internal/middleware"
	"github.com/startupquest/quest-api/internal/pkg/errorhandler"
	"github.com/startupquest/quest-api/internal/pkg/jwt"
	"github.com/startupquest/quest-api/internal/pkg/logger"
	"github.com/startupquest/quest-api/internal/pkg/response"
	"github.com/startupquest/quest-api/internal/pkg/validator"
)

// Handler handles badge HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates badge handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /badges
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req RegisterAwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	award, err := h.service.RegisterAward(r.Context(), userID, req.BadgeType, req.WalletAddress, req.PhaseCompleted)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, AwardResponseFromEntity(award))
}

// ListMy handles GET /badges
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	h.listForUser(w, r, middleware.GetUserID(r.Context()))
}

// ListUserBadges handles GET /badges/user_badges?user_id=
// Without user_id it lists the caller's own badges.
func (h *Handler) ListUserBadges(w http.ResponseWriter, r *http.Request) {
	target := middleware.GetUserID(r.Context())
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid user_id")
			return
		}
		target = id
	}
	h.listForUser(w, r, target)
}

func (h *Handler) listForUser(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	awards, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, AwardListResponse(awards))
}

// ListTypes handles GET /badges/types
func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	response.OK(w, CatalogResponse(h.service.ListCatalog()))
}

// ListByType handles GET /badges/types/{type}/awards
func (h *Handler) ListByType(w http.ResponseWriter, r *http.Request) {
	awards, err := h.service.ListByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, AwardListResponse(awards))
}

// GetByID handles GET /badges/{id}
// Founders only see their own awards; the minting worker may read any.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid award ID")
		return
	}

	var award *Award
	switch middleware.GetRole(ctx) {
	case jwt.RoleMinter, jwt.RoleAdmin:
		award, err = h.service.GetAward(ctx, id)
	default:
		award, err = h.service.GetOwnedAward(ctx, middleware.GetUserID(ctx), id)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, AwardResponseFromEntity(award))
}

// UpdateStatus handles PATCH /badges/{id}/update_status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.decodeOutcome(w, r)
	if !ok {
		return
	}

	award, err := h.service.UpdateStatusByOwner(r.Context(), middleware.GetUserID(r.Context()), id, req.Outcome())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, AwardResponseFromEntity(award))
}

// ReportOutcome handles POST /badges/{id}/outcome
func (h *Handler) ReportOutcome(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.decodeOutcome(w, r)
	if !ok {
		return
	}

	award, err := h.service.ReportOutcome(r.Context(), id, req.Outcome())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, AwardResponseFromEntity(award))
}

func (h *Handler) decodeOutcome(w http.ResponseWriter, r *http.Request) (uuid.UUID, *OutcomeRequest, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid award ID")
		return uuid.Nil, nil, false
	}

	var req OutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return uuid.Nil, nil, false
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return uuid.Nil, nil, false
	}

	return id, &req, true
}

// writeError maps ledger errors to stable codes. Duplicates and illegal
// transitions are steady-state outcomes and are not logged as failures.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := http.StatusInternalServerError, "", ""

	switch {
	case errors.Is(err, ErrUnknownBadgeType):
		status, code, message = http.StatusUnprocessableEntity, "UNKNOWN_BADGE_TYPE", "Unknown badge type"
	case errors.Is(err, ErrInvalidWalletAddress):
		status, code, message = http.StatusUnprocessableEntity, "INVALID_WALLET_ADDRESS", "Wallet address must be 0x followed by 40 hex characters"
	case errors.Is(err, ErrInvalidPhase):
		status, code, message = http.StatusUnprocessableEntity, "VALIDATION_ERROR", "phase_completed is too long"
	case errors.Is(err, ErrInvalidOutcome):
		status, code, message = http.StatusUnprocessableEntity, "INVALID_OUTCOME", err.Error()
	case errors.Is(err, ErrDuplicateAward):
		status, code, message = http.StatusConflict, "DUPLICATE_AWARD", "Badge already awarded to this user"
	case errors.Is(err, ErrIllegalTransition):
		status, code, message = http.StatusConflict, "ILLEGAL_TRANSITION", "Award already has a different final status"
	case errors.Is(err, ErrAwardNotFound):
		status, code, message = http.StatusNotFound, "AWARD_NOT_FOUND", "Award not found"
	case errors.Is(err, ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required"
	default:
		errorhandler.HandleInternal(r.Context(), w, err)
		return
	}

	logger.FromContext(r.Context()).Debug().
		Str("error_code", code).
		Err(err).
		Msg("badge request rejected")
	response.Error(w, status, code, message)
}
