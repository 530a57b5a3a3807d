package usecase

import (
	"context"
	"errors"
	"time"

	"rythmons/internal/data/entity"
	"rythmons/internal/data/repository"
	"rythmons/internal/dto/request"
	"rythmons/internal/dto/response"
	"rythmons/pkg/apperr"
	"rythmons/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxVenuesPerUser is the per-user venue quota.
const MaxVenuesPerUser = 5

const defaultCountry = "France"

// MusicGenres is the static catalog offered in venue/artist forms. Genre rows
// themselves are upserted on demand, so the two sets can diverge.
var MusicGenres = []string{
	"Pop",
	"Rock",
	"Folk",
	"Jazz",
	"Blues",
	"Electro",
	"Hip-Hop",
	"R&B",
	"Soul",
	"Funk",
	"Reggae",
	"Metal",
	"Punk",
	"Indie",
	"Classique",
	"World Music",
	"Chanson française",
	"Variété",
	"Acoustique",
	"DJ Set",
}

type VenueService interface {
	MyVenues(ctx context.Context, ownerID uuid.UUID) ([]*response.VenueResponse, error)
	MyVenue(ctx context.Context, ownerID, id uuid.UUID) (*response.VenueResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.VenueResponse, error)
	AllGenres() []string
	Create(ctx context.Context, ownerID uuid.UUID, req *request.VenueRequest) (*response.VenueResponse, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req *request.VenueUpdateRequest) (*response.VenueResponse, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (*response.DeleteResponse, error)
}

type venueService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVenueService(repo *repository.Repository, log *zap.Logger) VenueService {
	return &venueService{
		repo: repo,
		log:  log,
	}
}

func (s *venueService) MyVenues(ctx context.Context, ownerID uuid.UUID) ([]*response.VenueResponse, error) {
	venues, err := s.repo.Venue.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de charger vos lieux", err)
	}

	return response.NewVenueResponses(venues), nil
}

func (s *venueService) MyVenue(ctx context.Context, ownerID, id uuid.UUID) (*response.VenueResponse, error) {
	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de charger le lieu", err)
	}
	if venue == nil || venue.OwnerID != ownerID {
		// An owned read never reveals other users' venues
		return nil, apperr.New(apperr.CodeNotFound, "Lieu non trouvé")
	}

	return response.NewVenueResponse(venue), nil
}

func (s *venueService) GetByID(ctx context.Context, id uuid.UUID) (*response.VenueResponse, error) {
	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de charger le lieu", err)
	}
	if venue == nil {
		return nil, apperr.New(apperr.CodeNotFound, "Lieu non trouvé")
	}

	return response.NewVenueResponse(venue), nil
}

func (s *venueService) AllGenres() []string {
	return MusicGenres
}

func (s *venueService) Create(ctx context.Context, ownerID uuid.UUID, req *request.VenueRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Venue create validation failed", zap.Any("errors", errs))
		return nil, apperr.New(apperr.CodeValidation, utils.FormatValidationErrors(errs))
	}

	country := req.Country
	if country == "" {
		country = defaultCountry
	}

	now := time.Now()
	venue := &entity.Venue{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:     ownerID,
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Country:     country,
		VenueType:   entity.VenueType(req.VenueType),
		Capacity:    req.Capacity,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		LogoURL:     req.LogoURL,
		Images:      req.Images,
	}
	if venue.Images == nil {
		venue.Images = []string{}
	}

	if err := s.repo.Venue.Create(ctx, venue, req.GenreNames, MaxVenuesPerUser); err != nil {
		if errors.Is(err, repository.ErrQuotaExceeded) {
			return nil, apperr.New(apperr.CodeQuotaExceeded, "Vous avez atteint la limite de 5 lieux.")
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de créer le lieu", err)
	}

	s.log.Info("Venue created",
		zap.String("venue_id", venue.ID.String()),
		zap.String("owner_id", ownerID.String()))

	return response.NewVenueResponse(venue), nil
}

func (s *venueService) Update(ctx context.Context, ownerID, id uuid.UUID, req *request.VenueUpdateRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Venue update validation failed", zap.Any("errors", errs))
		return nil, apperr.New(apperr.CodeValidation, utils.FormatValidationErrors(errs))
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de modifier le lieu", err)
	}
	if venue == nil {
		return nil, apperr.New(apperr.CodeNotFound, "Lieu non trouvé")
	}
	if venue.OwnerID != ownerID {
		return nil, apperr.New(apperr.CodeForbidden, "Vous n'êtes pas autorisé à modifier ce lieu")
	}

	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Address != nil {
		venue.Address = *req.Address
	}
	if req.City != nil {
		venue.City = *req.City
	}
	if req.PostalCode != nil {
		venue.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		venue.Country = *req.Country
	}
	if req.VenueType != nil {
		venue.VenueType = entity.VenueType(*req.VenueType)
	}
	if req.Capacity != nil {
		venue.Capacity = req.Capacity
	}
	if req.Description != nil {
		venue.Description = req.Description
	}
	if req.PhotoURL != nil {
		venue.PhotoURL = req.PhotoURL
	}
	if req.LogoURL != nil {
		venue.LogoURL = req.LogoURL
	}
	if req.Images != nil {
		venue.Images = *req.Images
	}
	venue.UpdatedAt = time.Now()

	if err := s.repo.Venue.Update(ctx, venue, req.GenreNames); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "Lieu non trouvé")
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de modifier le lieu", err)
	}

	s.log.Info("Venue updated", zap.String("venue_id", venue.ID.String()))

	return response.NewVenueResponse(venue), nil
}

func (s *venueService) Delete(ctx context.Context, ownerID, id uuid.UUID) (*response.DeleteResponse, error) {
	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de supprimer le lieu", err)
	}
	if venue == nil {
		return nil, apperr.New(apperr.CodeNotFound, "Lieu non trouvé")
	}
	if venue.OwnerID != ownerID {
		return nil, apperr.New(apperr.CodeForbidden, "Vous n'êtes pas autorisé à supprimer ce lieu")
	}

	if err := s.repo.Venue.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "Lieu non trouvé")
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de supprimer le lieu", err)
	}

	s.log.Info("Venue deleted", zap.String("venue_id", id.String()))

	return &response.DeleteResponse{Success: true}, nil
}
