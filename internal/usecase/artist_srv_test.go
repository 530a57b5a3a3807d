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

func artistReq(stageName string) *request.ArtistRequest {
	return &request.ArtistRequest{StageName: stageName}
}

func TestArtistCreate(t *testing.T) {
	svc := NewArtistService(newTestRepo(), zap.NewNop())
	userID := uuid.New()

	req := artistReq("Les Ondes")
	bio := "Duo électro lyonnais"
	req.Bio = &bio
	req.Genres = []string{"Electro", "Pop"}

	artist, err := svc.Create(context.Background(), userID, req)
	require.NoError(t, err)
	require.Equal(t, "Les Ondes", artist.StageName)
	require.Equal(t, userID.String(), artist.UserID)
	require.Len(t, artist.Genres, 2)
}

func TestArtistCreateRequiresStageName(t *testing.T) {
	svc := NewArtistService(newTestRepo(), zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.New(), artistReq(""))
	require.Error(t, err)
	require.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestArtistQuotaEnforced(t *testing.T) {
	svc := NewArtistService(newTestRepo(), zap.NewNop())
	userID := uuid.New()

	for i := 0; i < MaxArtistsPerUser; i++ {
		_, err := svc.Create(context.Background(), userID, artistReq(fmt.Sprintf("Projet %d", i)))
		require.NoError(t, err)
	}

	_, err := svc.Create(context.Background(), userID, artistReq("Un de trop"))
	require.Error(t, err)
	require.Equal(t, apperr.CodeQuotaExceeded, apperr.CodeOf(err))

	_, err = svc.Create(context.Background(), uuid.New(), artistReq("Autre projet"))
	require.NoError(t, err)
}

func TestArtistMyArtistsScopedByUser(t *testing.T) {
	svc := NewArtistService(newTestRepo(), zap.NewNop())
	userA := uuid.New()
	userB := uuid.New()

	_, err := svc.Create(context.Background(), userA, artistReq("Projet A"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), userB, artistReq("Projet B"))
	require.NoError(t, err)

	artists, err := svc.MyArtists(context.Background(), userA)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	require.Equal(t, "Projet A", artists[0].StageName)
}

func TestArtistUpdatePartialAndGenreReplace(t *testing.T) {
	svc := NewArtistService(newTestRepo(), zap.NewNop())
	userID := uuid.New()

	req := artistReq("Les Ondes")
	req.Genres = []string{"Electro"}
	artist, err := svc.Create(context.Background(), userID, req)
	require.NoError(t, err)

	website := "https://lesondes.example.com"
	genres := []string{"House", "Disco"}
	updated, err := svc.Update(context.Background(), userID, mustParseUUID(t, artist.ID), &request.ArtistUpdateRequest{
		Website: &website,
		Genres:  &genres,
	})
	require.NoError(t, err)
	require.Equal(t, "Les Ondes", updated.StageName)
	require.NotNil(t, updated.Website)
	require.Len(t, updated.Genres, 2)
}

func TestArtistUpdateForbiddenForOtherUser(t *testing.T) {
	svc := NewArtistService(newTestRepo(), zap.NewNop())
	userID := uuid.New()

	artist, err := svc.Create(context.Background(), userID, artistReq("Les Ondes"))
	require.NoError(t, err)

	name := "Volé"
	_, err = svc.Update(context.Background(), uuid.New(), mustParseUUID(t, artist.ID), &request.ArtistUpdateRequest{StageName: &name})
	require.Error(t, err)
	require.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
}

func TestArtistDelete(t *testing.T) {
	svc := NewArtistService(newTestRepo(), zap.NewNop())
	userID := uuid.New()

	artist, err := svc.Create(context.Background(), userID, artistReq("Les Ondes"))
	require.NoError(t, err)

	result, err := svc.Delete(context.Background(), userID, mustParseUUID(t, artist.ID))
	require.NoError(t, err)
	require.True(t, result.Success)

	artists, err := svc.MyArtists(context.Background(), userID)
	require.NoError(t, err)
	require.Empty(t, artists)

	_, err = svc.Delete(context.Background(), userID, mustParseUUID(t, artist.ID))
	require.Error(t, err)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}
