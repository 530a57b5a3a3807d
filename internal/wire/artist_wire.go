package wire

import (
	"rythmons/internal/adaptor"
	"rythmons/internal/data/repository"
	"rythmons/pkg/middleware"
	"rythmons/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireArtist configures artist profile routes, all owner-scoped.
func wireArtist(
	r chi.Router,
	artistHandler *adaptor.ArtistHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, config.Session.CookieName, log)

	r.With(auth).Route("/api/artists", func(r chi.Router) {
		r.Get("/mine", artistHandler.MyArtists)
		r.Post("/", artistHandler.Create)
		r.Patch("/{id}", artistHandler.Update)
		r.Delete("/{id}", artistHandler.Delete)
	})
}
