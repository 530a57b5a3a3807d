package adaptor

import (
	"rythmons/internal/usecase"
	"rythmons/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	Venue  *VenueHandler
	Artist *ArtistHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, config, log),
		Venue:  NewVenueHandler(service.Venue, log),
		Artist: NewArtistHandler(service.Artist, log),
	}
}
