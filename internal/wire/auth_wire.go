package wire

import (
	"rythmons/internal/adaptor"
	"rythmons/internal/data/repository"
	"rythmons/pkg/middleware"
	"rythmons/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAuth configures authentication routes. Credential endpoints share one
// per-IP rate limiter so guessing stays expensive.
func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	limiter := middleware.NewRateLimiter(config.RateLimit.AuthPerMinute)

	// ==================== PUBLIC AUTH ROUTES ====================
	r.With(limiter.Handler()).Route("/api/auth", func(r chi.Router) {
		r.Post("/sign-up", authHandler.SignUp)
		r.Post("/sign-in", authHandler.SignIn)
		r.Post("/forget-password", authHandler.ForgetPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
		r.Get("/google/login", authHandler.GoogleLogin)
		r.Get("/google/callback", authHandler.GoogleCallback)
	})

	// Session introspection carries no limiter, clients poll it
	r.Get("/api/auth/session", authHandler.Session)

	// ==================== PROTECTED AUTH ROUTES ====================
	auth := middleware.AuthSession(repo.Session, config.Session.CookieName, log)

	r.With(auth).Post("/api/auth/sign-out", authHandler.SignOut)
	r.With(auth).Patch("/api/auth/profile", authHandler.UpdateProfile)
	r.With(auth).Get("/api/private-data", authHandler.PrivateData)
}
