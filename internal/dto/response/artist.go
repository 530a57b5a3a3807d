package response

import (
	"time"

	"rythmons/internal/data/entity"
)

type ArtistResponse struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	StageName        string          `json:"stageName"`
	Bio              *string         `json:"bio,omitempty"`
	Website          *string         `json:"website,omitempty"`
	TechRequirements *string         `json:"techRequirements,omitempty"`
	FeeMin           *int            `json:"feeMin,omitempty"`
	FeeMax           *int            `json:"feeMax,omitempty"`
	Genres           []GenreResponse `json:"genres"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func NewArtistResponse(artist *entity.Artist) *ArtistResponse {
	return &ArtistResponse{
		ID:               artist.ID.String(),
		UserID:           artist.UserID.String(),
		StageName:        artist.StageName,
		Bio:              artist.Bio,
		Website:          artist.Website,
		TechRequirements: artist.TechRequirements,
		FeeMin:           artist.FeeMin,
		FeeMax:           artist.FeeMax,
		Genres:           NewGenreResponses(artist.Genres),
		CreatedAt:        artist.CreatedAt,
		UpdatedAt:        artist.UpdatedAt,
	}
}

func NewArtistResponses(artists []*entity.Artist) []*ArtistResponse {
	resp := make([]*ArtistResponse, 0, len(artists))
	for _, artist := range artists {
		resp = append(resp, NewArtistResponse(artist))
	}
	return resp
}
