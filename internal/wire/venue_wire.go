package wire

import (
	"rythmons/internal/adaptor"
	"rythmons/internal/data/repository"
	"rythmons/pkg/middleware"
	"rythmons/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireVenue configures venue routes. Reads of a single venue are public,
// everything owner-scoped requires a session.
func wireVenue(
	r chi.Router,
	venueHandler *adaptor.VenueHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, config.Session.CookieName, log)

	r.Route("/api/venues", func(r chi.Router) {
		// ==================== PUBLIC VENUE ROUTES ====================
		r.Get("/genres", venueHandler.Genres)

		// ==================== PROTECTED VENUE ROUTES ====================
		r.With(auth).Get("/mine", venueHandler.MyVenues)
		r.With(auth).Get("/mine/{id}", venueHandler.MyVenue)
		r.With(auth).Post("/", venueHandler.Create)
		r.With(auth).Patch("/{id}", venueHandler.Update)
		r.With(auth).Delete("/{id}", venueHandler.Delete)

		// Static segments ("genres", "mine") win over the id wildcard
		r.Get("/{id}", venueHandler.GetByID)
	})
}
