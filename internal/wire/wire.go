package wire

import (
	"net/http"

	"rythmons/internal/adaptor"
	"rythmons/internal/data/repository"
	"rythmons/internal/oauth"
	"rythmons/internal/usecase"
	"rythmons/pkg/mailer"
	"rythmons/pkg/middleware"
	"rythmons/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Sender,
	google oauth.Provider,
	states oauth.StateStore,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, mail, google, states, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	trusted := utils.ComputeTrustedOrigins(config)
	logger.Info("Trusted origins computed", zap.Strings("origins", trusted.List()))

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(trusted))

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireVenue(r, handler.Venue, repo, config, logger)
	wireArtist(r, handler.Artist, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
