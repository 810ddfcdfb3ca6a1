package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/eventpill-api/internal/domain"
	jwtinfra "github.com/eventpill-api/internal/infrastructure/jwt"
)

type tokenVerifier interface {
	Verify(tokenStr string) (*jwtinfra.Claims, error)
}

// Auth returns middleware that rejects requests without a valid Bearer JWT.
// A missing token is a 401; a token that fails verification is a 403.
func Auth(verifier tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := authenticate(verifier, r.Header.Get("Authorization"))
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, domain.ErrMissingCredential):
				writeJSONError(w, http.StatusUnauthorized, "Please provide a token")
			default:
				writeJSONError(w, http.StatusForbidden, "Invalid token")
			}
		})
	}
}

// authenticate verifies the second space-separated field of the header.
// The scheme itself is not checked, so "Basic abc" is verified as "abc".
func authenticate(verifier tokenVerifier, header string) error {
	_, token, _ := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrMissingCredential
	}
	if _, err := verifier.Verify(token); err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrInvalidCredential, err)
	}
	return nil
}
