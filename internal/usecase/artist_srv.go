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

// MaxArtistsPerUser is the per-user artist quota.
const MaxArtistsPerUser = 5

type ArtistService interface {
	MyArtists(ctx context.Context, userID uuid.UUID) ([]*response.ArtistResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *request.ArtistRequest) (*response.ArtistResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *request.ArtistUpdateRequest) (*response.ArtistResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (*response.DeleteResponse, error)
}

type artistService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewArtistService(repo *repository.Repository, log *zap.Logger) ArtistService {
	return &artistService{
		repo: repo,
		log:  log,
	}
}

func (s *artistService) MyArtists(ctx context.Context, userID uuid.UUID) ([]*response.ArtistResponse, error) {
	artists, err := s.repo.Artist.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de charger vos artistes", err)
	}

	return response.NewArtistResponses(artists), nil
}

func (s *artistService) Create(ctx context.Context, userID uuid.UUID, req *request.ArtistRequest) (*response.ArtistResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Artist create validation failed", zap.Any("errors", errs))
		return nil, apperr.New(apperr.CodeValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	artist := &entity.Artist{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:           userID,
		StageName:        req.StageName,
		Bio:              req.Bio,
		Website:          req.Website,
		TechRequirements: req.TechRequirements,
		FeeMin:           req.FeeMin,
		FeeMax:           req.FeeMax,
	}

	if err := s.repo.Artist.Create(ctx, artist, req.Genres, MaxArtistsPerUser); err != nil {
		if errors.Is(err, repository.ErrQuotaExceeded) {
			return nil, apperr.New(apperr.CodeQuotaExceeded, "Vous avez atteint la limite de 5 artistes.")
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de créer l'artiste", err)
	}

	s.log.Info("Artist created",
		zap.String("artist_id", artist.ID.String()),
		zap.String("user_id", userID.String()))

	return response.NewArtistResponse(artist), nil
}

func (s *artistService) Update(ctx context.Context, userID, id uuid.UUID, req *request.ArtistUpdateRequest) (*response.ArtistResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Artist update validation failed", zap.Any("errors", errs))
		return nil, apperr.New(apperr.CodeValidation, utils.FormatValidationErrors(errs))
	}

	artist, err := s.repo.Artist.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de modifier l'artiste", err)
	}
	if artist == nil {
		return nil, apperr.New(apperr.CodeNotFound, "Artiste non trouvé")
	}
	if artist.UserID != userID {
		return nil, apperr.New(apperr.CodeForbidden, "Vous n'êtes pas autorisé à modifier cet artiste")
	}

	if req.StageName != nil {
		artist.StageName = *req.StageName
	}
	if req.Bio != nil {
		artist.Bio = req.Bio
	}
	if req.Website != nil {
		artist.Website = req.Website
	}
	if req.TechRequirements != nil {
		artist.TechRequirements = req.TechRequirements
	}
	if req.FeeMin != nil {
		artist.FeeMin = req.FeeMin
	}
	if req.FeeMax != nil {
		artist.FeeMax = req.FeeMax
	}
	artist.UpdatedAt = time.Now()

	if err := s.repo.Artist.Update(ctx, artist, req.Genres); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "Artiste non trouvé")
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de modifier l'artiste", err)
	}

	s.log.Info("Artist updated", zap.String("artist_id", artist.ID.String()))

	return response.NewArtistResponse(artist), nil
}

func (s *artistService) Delete(ctx context.Context, userID, id uuid.UUID) (*response.DeleteResponse, error) {
	artist, err := s.repo.Artist.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de supprimer l'artiste", err)
	}
	if artist == nil {
		return nil, apperr.New(apperr.CodeNotFound, "Artiste non trouvé")
	}
	if artist.UserID != userID {
		return nil, apperr.New(apperr.CodeForbidden, "Vous n'êtes pas autorisé à supprimer cet artiste")
	}

	if err := s.repo.Artist.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "Artiste non trouvé")
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de supprimer l'artiste", err)
	}

	s.log.Info("Artist deleted", zap.String("artist_id", id.String()))

	return &response.DeleteResponse{Success: true}, nil
}
