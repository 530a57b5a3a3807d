package usecase

import (
	"context"
	"fmt"
	"testing"

	"rythmons/internal/dto/request"
	"rythmons/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func venueReq(name string) *request.VenueRequest {
	return &request.VenueRequest{
		Name:       name,
		Address:    "12 rue de la République",
		City:       "Lyon",
		PostalCode: "69001",
		VenueType:  "BAR",
	}
}

func TestVenueCreateDefaultsCountry(t *testing.T) {
	svc := NewVenueService(newTestRepo(), zap.NewNop())
	ownerID := uuid.New()

	venue, err := svc.Create(context.Background(), ownerID, venueReq("Le Sucre"))
	require.NoError(t, err)
	require.Equal(t, "France", venue.Country)
	require.Equal(t, "Le Sucre", venue.Name)
	require.NotNil(t, venue.Images)
	require.Empty(t, venue.Images)
}

func TestVenueCreateAttachesGenres(t *testing.T) {
	svc := NewVenueService(newTestRepo(), zap.NewNop())

	req := venueReq("Le Sucre")
	req.GenreNames = []string{"Electro", "House"}

	venue, err := svc.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	require.Len(t, venue.Genres, 2)
	require.Equal(t, "Electro", venue.Genres[0].Name)
}

func TestVenueCreateRejectsBadPostalCode(t *testing.T) {
	svc := NewVenueService(newTestRepo(), zap.NewNop())

	req := venueReq("Le Sucre")
	req.PostalCode = "6900"

	_, err := svc.Create(context.Background(), uuid.New(), req)
	require.Error(t, err)
	require.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestVenueQuotaEnforced(t *testing.T) {
	svc := NewVenueService(newTestRepo(), zap.NewNop())
	ownerID := uuid.New()

	for i := 0; i < MaxVenuesPerUser; i++ {
		_, err := svc.Create(context.Background(), ownerID, venueReq(fmt.Sprintf("Salle %d", i)))
		require.NoError(t, err)
	}

	_, err := svc.Create(context.Background(), ownerID, venueReq("Une de trop"))
	require.Error(t, err)
	require.Equal(t, apperr.CodeQuotaExceeded, apperr.CodeOf(err))

	// The quota is per user, another owner still creates freely
	_, err = svc.Create(context.Background(), uuid.New(), venueReq("Autre salle"))
	require.NoError(t, err)
}

func TestVenueDeleteFreesQuota(t *testing.T) {
	svc := NewVenueService(newTestRepo(), zap.NewNop())
	ownerID := uuid.New()

	var lastID string
	for i := 0; i < MaxVenuesPerUser; i++ {
		v, err := svc.Create(context.Background(), ownerID, venueReq(fmt.Sprintf("Salle %d", i)))
		require.NoError(t, err)
		lastID = v.ID
	}

	_, err := svc.Delete(context.Background(), ownerID, mustParseUUID(t, lastID))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), ownerID, venueReq("Salle libérée"))
	require.NoError(t, err)
}

func TestVenueMyVenueHidesOthers(t *testing.T) {
	svc := NewVenueService(newTestRepo(), zap.NewNop())
	ownerID := uuid.New()

	venue, err := svc.Create(context.Background(), ownerID, venueReq("Le Sucre"))
	require.NoError(t, err)

	// Owner sees it
	got, err := svc.MyVenue(context.Background(), ownerID, mustParseUUID(t, venue.ID))
	require.NoError(t, err)
	require.Equal(t, venue.ID, got.ID)

	// Someone else gets not-found, not forbidden
	_, err = svc.MyVenue(context.Background(), uuid.New(), mustParseUUID(t, venue.ID))
	require.Error(t, err)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestVenueUpdatePartialAndGenreReplace(t *testing.T) {
	svc := NewVenueService(newTestRepo(), zap.NewNop())
	ownerID := uuid.New()

	req := venueReq("Le Sucre")
	req.GenreNames = []string{"Electro"}
	venue, err := svc.Create(context.Background(), ownerID, req)
	require.NoError(t, err)

	name := "Le Sucre Rooftop"
	genres := []string{"House", "Disco"}
	updated, err := svc.Update(context.Background(), ownerID, mustParseUUID(t, venue.ID), &request.VenueUpdateRequest{
		Name:       &name,
		GenreNames: &genres,
	})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)
	// Untouched fields persist
	require.Equal(t, "Lyon", updated.City)
	// Present genre list replaces the whole set
	require.Len(t, updated.Genres, 2)

	// Absent genre list leaves genres alone
	city := "Villeurbanne"
	updated, err = svc.Update(context.Background(), ownerID, mustParseUUID(t, venue.ID), &request.VenueUpdateRequest{
		City: &city,
	})
	require.NoError(t, err)
	require.Equal(t, city, updated.City)
	require.Len(t, updated.Genres, 2)
}

func TestVenueUpdateForbiddenForNonOwner(t *testing.T) {
	svc := NewVenueService(newTestRepo(), zap.NewNop())
	ownerID := uuid.New()

	venue, err := svc.Create(context.Background(), ownerID, venueReq("Le Sucre"))
	require.NoError(t, err)

	name := "Pris de force"
	_, err = svc.Update(context.Background(), uuid.New(), mustParseUUID(t, venue.ID), &request.VenueUpdateRequest{Name: &name})
	require.Error(t, err)
	require.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	_, err = svc.Delete(context.Background(), uuid.New(), mustParseUUID(t, venue.ID))
	require.Error(t, err)
	require.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
}

func TestVenueGetByIDUnknown(t *testing.T) {
	svc := NewVenueService(newTestRepo(), zap.NewNop())

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestAllGenresCatalog(t *testing.T) {
	svc := NewVenueService(newTestRepo(), zap.NewNop())

	genres := svc.AllGenres()
	require.Len(t, genres, 20)
	require.Contains(t, genres, "Chanson française")
	require.Contains(t, genres, "DJ Set")
}
