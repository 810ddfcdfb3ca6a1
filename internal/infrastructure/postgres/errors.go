package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eventpill-api/internal/domain"
)

const (
	pgUniqueViolation = "23505"

	constraintEmail       = "accounts_email_key"
	constraintPendingCode = "accounts_pending_auth_code_key"
)

// mapPgErr translates driver errors into domain sentinels.
func mapPgErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", domain.ErrStoreTimeout, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case constraintEmail:
			return domain.ErrDuplicateEmail
		case constraintPendingCode:
			return domain.ErrCodeCollision
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStore, err)
}
