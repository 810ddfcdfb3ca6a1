package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eventpill-api/internal/domain"
	"github.com/eventpill-api/internal/pkg/id"
)

// querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AccountStore owns the accounts table. Every call runs under its own timeout.
type AccountStore struct {
	db      querier
	timeout time.Duration
}

func NewAccountStore(db querier, timeout time.Duration) *AccountStore {
	return &AccountStore{db: db, timeout: timeout}
}

const accountColumns = `id, email, auth_code, created_at, updated_at`

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return scanAccount(s.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE email = $1
	`, email))
}

// Create inserts a pending account. A taken email yields ErrDuplicateEmail and
// a code held by another pending account yields ErrCodeCollision.
func (s *AccountStore) Create(ctx context.Context, email, authCode string) (*domain.Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return scanAccount(s.db.QueryRow(ctx, `
		INSERT INTO accounts (id, email, auth_code)
		VALUES ($1, $2, $3)
		RETURNING `+accountColumns+`
	`, id.New(), email, authCode))
}

func (s *AccountStore) FindByCode(ctx context.Context, code string) (*domain.Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return scanAccount(s.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE auth_code = $1
		LIMIT 1
	`, code))
}

// ClearCode nulls the pending code and reports whether this call cleared it.
// Clearing an already-cleared or unknown account is a no-op returning false.
func (s *AccountStore) ClearCode(ctx context.Context, accountID string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	tag, err := s.db.Exec(ctx, `
		UPDATE accounts
		SET auth_code = NULL, updated_at = now()
		WHERE id = $1 AND auth_code IS NOT NULL
	`, accountID)
	if err != nil {
		return false, mapPgErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *AccountStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Email, &a.AuthCode, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapPgErr(err)
	}
	return &a, nil
}
