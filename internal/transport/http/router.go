package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/eventpill-api/internal/application/notification"
	"github.com/eventpill-api/internal/application/signup"
	"github.com/eventpill-api/internal/application/verification"
	"github.com/eventpill-api/internal/config"
	"github.com/eventpill-api/internal/transport/http/handler"
	appmiddleware "github.com/eventpill-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Accounts AccountStore
	Mailer   Mailer
	ErrorLog ErrorLog
	Tokens   TokenVerifier
	// NewCode overrides code generation. Nil uses crypto/rand.
	NewCode func() (string, error)
}

// NewRouter builds and returns the application router.
// ctx bounds background work such as rate-limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(appmiddleware.Recover(deps.ErrorLog))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.Tokens)
	limiter := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, cfg.TrustProxyHeaders)

	notifSvc := notification.NewService(notification.ServiceDeps{
		Mailer:   deps.Mailer,
		ErrorLog: deps.ErrorLog,
	})
	signupSvc := signup.NewService(signup.ServiceDeps{
		Accounts: deps.Accounts,
		Sender:   notifSvc,
		ErrorLog: deps.ErrorLog,
		NewCode:  deps.NewCode,
	})
	verifySvc := verification.NewService(verification.ServiceDeps{
		Accounts: deps.Accounts,
		ErrorLog: deps.ErrorLog,
	})

	healthH := handler.NewHealthHandler()
	signupH := handler.NewSignupHandler(signupSvc)
	codeH := handler.NewCodeHandler(notifSvc, verifySvc)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthH.Health)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Limit)
			r.Use(authMw)

			r.Post("/signup", signupH.Signup)
			r.Post("/sendemail", codeH.SendEmail)
			r.Post("/verifycode", codeH.VerifyCode)
		})
	})

	return r
}
