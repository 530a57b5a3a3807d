package usecase

import (
	"rythmons/internal/data/repository"
	"rythmons/internal/oauth"
	"rythmons/pkg/mailer"
	"rythmons/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Venue  VenueService
	Artist ArtistService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Sender,
	google oauth.Provider,
	states oauth.StateStore,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, mail, google, states, log),
		Venue:  NewVenueService(repo, log),
		Artist: NewArtistService(repo, log),
	}
}
