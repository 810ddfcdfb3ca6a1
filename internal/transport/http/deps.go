package http

import (
	"context"

	"github.com/eventpill-api/internal/domain"
	jwtinfra "github.com/eventpill-api/internal/infrastructure/jwt"
)

// AccountStore is the minimal interface the router requires from the account store.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, email, authCode string) (*domain.Account, error)
	// FindByCode matches pending accounts only; cleared codes are never found.
	FindByCode(ctx context.Context, code string) (*domain.Account, error)
	// ClearCode reports false when the code was already cleared.
	ClearCode(ctx context.Context, accountID string) (bool, error)
}

// Mailer is the minimal interface the router requires from the mail transport.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// ErrorLog is the minimal interface the router requires from the error sink.
type ErrorLog interface {
	Log(ctx context.Context, endpoint string, err error)
	LogPanic(ctx context.Context, endpoint string, v any, stack []byte)
}

// TokenVerifier is the minimal interface the router requires to authenticate requests.
type TokenVerifier interface {
	Verify(tokenStr string) (*jwtinfra.Claims, error)
}
