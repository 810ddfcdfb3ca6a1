package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eventpill-api/internal/domain"
	"github.com/eventpill-api/internal/pkg/otp"
)

// Operation is the error-log endpoint name for code redemption.
const Operation = "verifycode"

type Service interface {
	// VerifyCode redeems a pending code. Once cleared, the same code is rejected.
	VerifyCode(ctx context.Context, code string) error
}

type accountStore interface {
	FindByCode(ctx context.Context, code string) (*domain.Account, error)
	ClearCode(ctx context.Context, accountID string) (bool, error)
}

type errorLogger interface {
	Log(ctx context.Context, endpoint string, err error)
}

type service struct {
	accounts accountStore
	errLog   errorLogger
}

type ServiceDeps struct {
	Accounts accountStore
	ErrorLog errorLogger
}

func NewService(deps ServiceDeps) Service {
	return &service{accounts: deps.Accounts, errLog: deps.ErrorLog}
}

func (s *service) VerifyCode(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.NewValidationError("Authentication code is required")
	}
	if !otp.WellFormed(code) {
		return domain.ErrInvalidCode
	}

	acct, err := s.accounts.FindByCode(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrInvalidCode
	}
	if err != nil {
		return s.fault(ctx, fmt.Errorf("lookup code: %w", err))
	}

	// Concurrent redemptions may all pass the lookup; only the one that clears the code succeeds.
	cleared, err := s.accounts.ClearCode(ctx, acct.ID)
	if err != nil {
		return s.fault(ctx, fmt.Errorf("clear code for account %s: %w", acct.ID, err))
	}
	if !cleared {
		return domain.ErrInvalidCode
	}
	return nil
}

func (s *service) fault(ctx context.Context, err error) error {
	s.errLog.Log(ctx, Operation, err)
	return err
}
