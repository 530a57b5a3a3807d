package response

import (
	"time"

	"rythmons/internal/data/entity"
)

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OwnerResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

type VenueResponse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"ownerId"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	PostalCode  string          `json:"postalCode"`
	Country     string          `json:"country"`
	VenueType   string          `json:"venueType"`
	Capacity    *int            `json:"capacity,omitempty"`
	Description *string         `json:"description,omitempty"`
	PhotoURL    *string         `json:"photoUrl,omitempty"`
	LogoURL     *string         `json:"logoUrl,omitempty"`
	Images      []string        `json:"images"`
	Genres      []GenreResponse `json:"genres"`
	Owner       *OwnerResponse  `json:"owner,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

func NewGenreResponses(genres []*entity.Genre) []GenreResponse {
	resp := make([]GenreResponse, 0, len(genres))
	for _, genre := range genres {
		resp = append(resp, GenreResponse{
			ID:   genre.ID.String(),
			Name: genre.Name,
		})
	}
	return resp
}

func NewVenueResponse(venue *entity.Venue) *VenueResponse {
	resp := &VenueResponse{
		ID:          venue.ID.String(),
		OwnerID:     venue.OwnerID.String(),
		Name:        venue.Name,
		Address:     venue.Address,
		City:        venue.City,
		PostalCode:  venue.PostalCode,
		Country:     venue.Country,
		VenueType:   string(venue.VenueType),
		Capacity:    venue.Capacity,
		Description: venue.Description,
		PhotoURL:    venue.PhotoURL,
		LogoURL:     venue.LogoURL,
		Images:      venue.Images,
		Genres:      NewGenreResponses(venue.Genres),
		CreatedAt:   venue.CreatedAt,
		UpdatedAt:   venue.UpdatedAt,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if venue.Owner != nil {
		resp.Owner = &OwnerResponse{
			ID:    venue.Owner.ID.String(),
			Name:  venue.Owner.Name,
			Image: venue.Owner.Image,
		}
	}
	return resp
}

func NewVenueResponses(venues []*entity.Venue) []*VenueResponse {
	resp := make([]*VenueResponse, 0, len(venues))
	for _, venue := range venues {
		resp = append(resp, NewVenueResponse(venue))
	}
	return resp
}
