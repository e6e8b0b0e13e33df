package badge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/startupquest/quest-api/internal/pkg/errorhandler"
	"github.com/startupquest/quest-api/internal/pkg/logger"
)

const uniqueAwardConstraint = "badge_awards_user_type_key"

// Repository defines badge ledger data access.
// Create and Transition are single statements; callers rely on them being atomic.
type Repository interface {
	Create(ctx context.Context, award *Award) error
	GetByID(ctx context.Context, id uuid.UUID) (*Award, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Award, error)
	ListByType(ctx context.Context, badgeType string) ([]*Award, error)
	// Transition moves a pending award to a terminal status. When owner is not
	// uuid.Nil the update is also scoped to that user. Returns nil, nil when no
	// pending row matched.
	Transition(ctx context.Context, id, owner uuid.UUID, status Status, txRef sql.NullString, at time.Time) (*Award, error)
	CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type repository struct {
	db *sqlx.DB
}

const awardSelectColumns = `
	id, user_id, badge_type, wallet_address, status, transaction_ref,
	phase_completed, created_at, updated_at
`

// NewRepository creates the Postgres-backed badge ledger
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, award *Award) error {
	query := `
		INSERT INTO badge_awards (
			id, user_id, badge_type, wallet_address, status, transaction_ref,
			phase_completed, created_at, updated_at
		) VALUES (
			:id, :user_id, :badge_type, :wallet_address, :status, :transaction_ref,
			:phase_completed, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, award)
	if err != nil {
		mapped := mapCreateDBError(err)
		if !errors.Is(mapped, ErrDuplicateAward) {
			evt := logger.FromContext(ctx).Error().
				Str("query", "badge_awards.create").
				Str("award_id", award.ID.String()).
				Str("user_id", award.UserID.String()).
				Str("badge_type", award.BadgeType).
				Err(err)

			var pqErr *pq.Error
			if errors.As(err, &pqErr) {
				evt = evt.
					Str("pg_code", string(pqErr.Code)).
					Str("pg_constraint", pqErr.Constraint)
			}
			evt.Msg("badge award insert failed")
		}
		return mapped
	}

	return nil
}

// mapCreateDBError turns the (user_id, badge_type) unique violation into
// ErrDuplicateAward. The losing writer of a concurrent insert lands here.
func mapCreateDBError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	if pqErr.Code == "23505" && (pqErr.Constraint == uniqueAwardConstraint || pqErr.Constraint == "") {
		return fmt.Errorf("%w: %w", ErrDuplicateAward, err)
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Award, error) {
	query := `SELECT ` + awardSelectColumns + ` FROM badge_awards WHERE id = $1`

	var award Award
	if err := r.db.GetContext(ctx, &award, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		errorhandler.LogDatabaseError(ctx, "badge_awards.get_by_id", err)
		return nil, err
	}
	return &award, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Award, error) {
	query := `
		SELECT ` + awardSelectColumns + ` FROM badge_awards
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	awards := []*Award{}
	if err := r.db.SelectContext(ctx, &awards, query, userID); err != nil {
		errorhandler.LogDatabaseError(ctx, "badge_awards.list_by_user", err)
		return nil, err
	}
	return awards, nil
}

func (r *repository) ListByType(ctx context.Context, badgeType string) ([]*Award, error) {
	query := `
		SELECT ` + awardSelectColumns + ` FROM badge_awards
		WHERE badge_type = $1
		ORDER BY created_at DESC, id DESC
	`

	awards := []*Award{}
	if err := r.db.SelectContext(ctx, &awards, query, badgeType); err != nil {
		errorhandler.LogDatabaseError(ctx, "badge_awards.list_by_type", err)
		return nil, err
	}
	return awards, nil
}

func (r *repository) Transition(ctx context.Context, id, owner uuid.UUID, status Status, txRef sql.NullString, at time.Time) (*Award, error) {
	query := `
		UPDATE badge_awards
		SET status = $2, transaction_ref = $3, updated_at = $4
		WHERE id = $1 AND status = 'pending'
	`
	args := []interface{}{id, status, txRef, at}
	if owner != uuid.Nil {
		query += ` AND user_id = $5`
		args = append(args, owner)
	}
	query += ` RETURNING ` + awardSelectColumns

	var award Award
	if err := r.db.GetContext(ctx, &award, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		errorhandler.LogDatabaseError(ctx, "badge_awards.transition", err)
		return nil, err
	}
	return &award, nil
}

func (r *repository) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM badge_awards
		WHERE status = 'pending' AND created_at < $1
	`, cutoff)
	return count, err
}
