package entity

import (
	"github.com/google/uuid"
)

type VenueType string

const (
	VenueTypeBar            VenueType = "BAR"
	VenueTypeClub           VenueType = "CLUB"
	VenueTypeConcertHall    VenueType = "CONCERT_HALL"
	VenueTypeFestival       VenueType = "FESTIVAL"
	VenueTypeCafe           VenueType = "CAFE"
	VenueTypeRestaurant     VenueType = "RESTAURANT"
	VenueTypeCulturalCenter VenueType = "CULTURAL_CENTER"
	VenueTypeTheater        VenueType = "THEATER"
	VenueTypeOpenAir        VenueType = "OPEN_AIR"
	VenueTypeOther          VenueType = "OTHER"
)

type Venue struct {
	Base
	OwnerID     uuid.UUID `db:"owner_id"`
	Name        string    `db:"name"`
	Address     string    `db:"address"`
	City        string    `db:"city"`
	PostalCode  string    `db:"postal_code"`
	Country     string    `db:"country"`
	VenueType   VenueType `db:"venue_type"`
	Capacity    *int      `db:"capacity"`
	Description *string   `db:"description"`
	PhotoURL    *string   `db:"photo_url"`
	LogoURL     *string   `db:"logo_url"`
	Images      []string  `db:"images"`

	// Loaded relations
	Genres []*Genre
	Owner  *OwnerSummary
}

// OwnerSummary is the redacted owner view exposed on public venue reads.
type OwnerSummary struct {
	ID    uuid.UUID `db:"id"`
	Name  string    `db:"name"`
	Image *string   `db:"image"`
}
