package badge

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/startupquest/quest-api/internal/pkg/logger"
	"github.com/startupquest/quest-api/internal/pkg/validator"
)

// Service is the badge ledger: award registration, mint reconciliation and
// read access. Only this service writes to the store.
type Service struct {
	repo   Repository
	events Publisher
	now    func() time.Time
}

// NewService creates badge service
func NewService(repo Repository, events Publisher) *Service {
	if events == nil {
		events = NopPublisher{}
	}
	return &Service{
		repo:   repo,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RegisterAward records a pending award for (userID, badgeType).
// Uniqueness is enforced by the store's insert, so of several concurrent calls
// for the same pair exactly one succeeds and the rest get ErrDuplicateAward.
func (s *Service) RegisterAward(ctx context.Context, userID uuid.UUID, badgeType, walletAddress, phaseCompleted string) (*Award, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	badgeType = strings.TrimSpace(badgeType)
	if _, ok := LookupBadgeType(badgeType); !ok {
		return nil, ErrUnknownBadgeType
	}

	walletAddress = strings.TrimSpace(walletAddress)
	if !validator.IsWalletAddress(walletAddress) {
		return nil, ErrInvalidWalletAddress
	}

	phaseCompleted = strings.TrimSpace(phaseCompleted)
	if len(phaseCompleted) > maxPhaseLength {
		return nil, ErrInvalidPhase
	}

	now := s.now()
	award := &Award{
		ID:             uuid.New(),
		UserID:         userID,
		BadgeType:      badgeType,
		WalletAddress:  walletAddress,
		Status:         StatusPending,
		PhaseCompleted: phaseCompleted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, award); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("award_id", award.ID.String()).
		Str("user_id", userID.String()).
		Str("badge_type", badgeType).
		Msg("badge award registered")

	s.publish(ctx, newEvent(EventAwardRegistered, award))
	return award, nil
}

// ReportOutcome applies a mint outcome reported by the external minting worker.
// Replaying the outcome already recorded returns the award unchanged.
func (s *Service) ReportOutcome(ctx context.Context, awardID uuid.UUID, outcome Outcome) (*Award, error) {
	return s.transition(ctx, awardID, uuid.Nil, outcome)
}

// UpdateStatusByOwner is the owner-restricted mutation path. It follows the
// same state machine as ReportOutcome; awards owned by someone else are
// reported as not found.
func (s *Service) UpdateStatusByOwner(ctx context.Context, userID, awardID uuid.UUID, outcome Outcome) (*Award, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	return s.transition(ctx, awardID, userID, outcome)
}

func (s *Service) transition(ctx context.Context, awardID, owner uuid.UUID, outcome Outcome) (*Award, error) {
	outcome, err := outcome.normalize()
	if err != nil {
		return nil, err
	}

	award, err := s.repo.Transition(ctx, awardID, owner, outcome.Status, outcome.nullTxRef(), s.now())
	if err != nil {
		return nil, err
	}

	if award != nil {
		evt := logger.FromContext(ctx).Info()
		if award.Status == StatusFailed {
			evt = logger.FromContext(ctx).Warn()
		}
		evt.Str("award_id", award.ID.String()).
			Str("status", string(award.Status)).
			Str("transaction_ref", award.TxRef()).
			Bool("by_owner", owner != uuid.Nil).
			Msg("badge award status updated")

		eventType := EventAwardMinted
		if award.Status == StatusFailed {
			eventType = EventAwardFailed
		}
		s.publish(ctx, newEvent(eventType, award))
		return award, nil
	}

	current, err := s.repo.GetByID(ctx, awardID)
	if err != nil {
		return nil, err
	}
	if current == nil || (owner != uuid.Nil && current.UserID != owner) {
		return nil, ErrAwardNotFound
	}

	resolved, err := resolveUnapplied(current, outcome)
	if err != nil {
		if errors.Is(err, ErrIllegalTransition) {
			logger.FromContext(ctx).Debug().
				Str("award_id", awardID.String()).
				Str("current_status", string(current.Status)).
				Str("reported_status", string(outcome.Status)).
				Msg("rejected mint outcome for terminal award")
		}
		return nil, err
	}

	logger.FromContext(ctx).Debug().
		Str("award_id", awardID.String()).
		Str("status", string(resolved.Status)).
		Msg("mint outcome replay ignored")
	return resolved, nil
}

// GetAward returns any award by id
func (s *Service) GetAward(ctx context.Context, awardID uuid.UUID) (*Award, error) {
	award, err := s.repo.GetByID(ctx, awardID)
	if err != nil {
		return nil, err
	}
	if award == nil {
		return nil, ErrAwardNotFound
	}
	return award, nil
}

// GetOwnedAward returns the award only when it belongs to userID
func (s *Service) GetOwnedAward(ctx context.Context, userID, awardID uuid.UUID) (*Award, error) {
	award, err := s.GetAward(ctx, awardID)
	if err != nil {
		return nil, err
	}
	if award.UserID != userID {
		return nil, ErrAwardNotFound
	}
	return award, nil
}

// ListForUser returns the user's awards, most recent first
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Award, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByUser(ctx, userID)
}

// ListByType returns every award of one badge type, most recent first
func (s *Service) ListByType(ctx context.Context, badgeType string) ([]*Award, error) {
	if _, ok := LookupBadgeType(badgeType); !ok {
		return nil, ErrUnknownBadgeType
	}
	return s.repo.ListByType(ctx, badgeType)
}

// ListCatalog returns the static badge catalog
func (s *Service) ListCatalog() []BadgeType {
	return Catalog()
}

// publish never fails the caller; the award is already committed.
func (s *Service) publish(ctx context.Context, event Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("event", string(event.Type)).
			Str("award_id", event.AwardID.String()).
			Msg("failed to publish badge event")
	}
}
