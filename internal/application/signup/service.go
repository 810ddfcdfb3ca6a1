package signup

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventpill-api/internal/domain"
	"github.com/eventpill-api/internal/pkg/otp"
	"github.com/eventpill-api/internal/pkg/validate"
)

// Operation is the error-log endpoint name for signup.
const Operation = "signup"

// maxCodeAttempts bounds regeneration when a fresh code clashes with a pending one.
const maxCodeAttempts = 5

type Service interface {
	// Signup registers email with a fresh code and emails it.
	// The account is persisted before delivery, so a delivery failure leaves it pending.
	Signup(ctx context.Context, email string) (*domain.Account, error)
}

type accountStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, email, authCode string) (*domain.Account, error)
}

type codeSender interface {
	Deliver(ctx context.Context, to, code string) error
}

type errorLogger interface {
	Log(ctx context.Context, endpoint string, err error)
}

type service struct {
	accounts accountStore
	sender   codeSender
	errLog   errorLogger
	newCode  func() (string, error)
}

type ServiceDeps struct {
	Accounts accountStore
	Sender   codeSender
	ErrorLog errorLogger
	// NewCode defaults to otp.New.
	NewCode func() (string, error)
}

func NewService(deps ServiceDeps) Service {
	newCode := deps.NewCode
	if newCode == nil {
		newCode = otp.New
	}
	return &service{
		accounts: deps.Accounts,
		sender:   deps.Sender,
		errLog:   deps.ErrorLog,
		newCode:  newCode,
	}
}

func (s *service) Signup(ctx context.Context, email string) (*domain.Account, error) {
	email = validate.NormalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError("Email is required")
	}
	if err := validate.Struct(domain.SignupRequest{Email: email}); err != nil {
		return nil, domain.NewValidationError("Email must be valid and not exceed 254 characters")
	}

	_, err := s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrNotFound):
		return nil, s.fault(ctx, fmt.Errorf("lookup %s: %w", email, err))
	}

	acct, code, err := s.create(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, s.fault(ctx, err)
	}

	if err := s.sender.Deliver(ctx, acct.Email, code); err != nil {
		err = fmt.Errorf("%w: account %s: %w", domain.ErrNotification, acct.ID, err)
		s.errLog.Log(ctx, Operation, err)
		return nil, err
	}
	return acct, nil
}

// create inserts the account, drawing a new code whenever the previous one
// collides with another pending account.
func (s *service) create(ctx context.Context, email string) (*domain.Account, string, error) {
	for attempt := 1; ; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, "", err
		}
		acct, err := s.accounts.Create(ctx, email, code)
		if err == nil {
			return acct, code, nil
		}
		if !errors.Is(err, domain.ErrCodeCollision) || attempt == maxCodeAttempts {
			return nil, "", fmt.Errorf("create account %s: %w", email, err)
		}
	}
}

func (s *service) fault(ctx context.Context, err error) error {
	s.errLog.Log(ctx, Operation, err)
	return err
}
