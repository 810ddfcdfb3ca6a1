package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eventpill-api/internal/domain"
	"github.com/eventpill-api/internal/pkg/otp"
	"github.com/eventpill-api/internal/pkg/validate"
)

// Operation is the error-log endpoint name for the resend flow.
const Operation = "sendemail"

const (
	subject      = "Your eventPill Verification Code"
	bodyTemplate = "Your verification code is: %s"
)

type Service interface {
	// Deliver sends code to the address. Failures wrap domain.ErrTransport.
	Deliver(ctx context.Context, to, code string) error
	// SendCode validates a client-supplied address and code, then delivers it.
	SendCode(ctx context.Context, req domain.SendCodeRequest) error
}

type mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type errorLogger interface {
	Log(ctx context.Context, endpoint string, err error)
}

type service struct {
	mailer mailer
	errLog errorLogger
}

type ServiceDeps struct {
	Mailer   mailer
	ErrorLog errorLogger
}

func NewService(deps ServiceDeps) Service {
	return &service{mailer: deps.Mailer, errLog: deps.ErrorLog}
}

func (s *service) Deliver(ctx context.Context, to, code string) error {
	if err := s.mailer.SendEmail(ctx, to, subject, fmt.Sprintf(bodyTemplate, code)); err != nil {
		return fmt.Errorf("deliver code to %s: %w: %w", to, domain.ErrTransport, err)
	}
	return nil
}

func (s *service) SendCode(ctx context.Context, req domain.SendCodeRequest) error {
	email := validate.NormalizeEmail(req.Email)
	code := strings.TrimSpace(req.AuthCode)
	if email == "" || code == "" {
		return domain.NewValidationError("Email and authentication code are required")
	}
	req = domain.SendCodeRequest{Email: email, AuthCode: code}
	if err := validate.Struct(req); err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) && !verr.Failed("Email") {
			return domain.NewValidationError("Authentication code must be 6 digits")
		}
		return domain.NewValidationError("Email must be valid and not exceed 254 characters")
	}
	if !otp.WellFormed(code) {
		return domain.NewValidationError("Authentication code must be 6 digits")
	}
	if err := s.Deliver(ctx, email, code); err != nil {
		s.errLog.Log(ctx, Operation, err)
		return err
	}
	return nil
}
