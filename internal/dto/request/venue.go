package request

type VenueRequest struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Address     string   `json:"address" validate:"required,min=5"`
	City        string   `json:"city" validate:"required,min=2"`
	PostalCode  string   `json:"postalCode" validate:"required,postalcode"`
	Country     string   `json:"country,omitempty"`
	VenueType   string   `json:"venueType" validate:"required,oneof=BAR CLUB CONCERT_HALL FESTIVAL CAFE RESTAURANT CULTURAL_CENTER THEATER OPEN_AIR OTHER"`
	Capacity    *int     `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Description *string  `json:"description,omitempty"`
	PhotoURL    *string  `json:"photoUrl,omitempty" validate:"omitempty,url"`
	LogoURL     *string  `json:"logoUrl,omitempty" validate:"omitempty,url"`
	GenreNames  []string `json:"genreNames,omitempty"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

// VenueUpdateRequest applies only the provided fields. A present GenreNames
// replaces the full genre set.
type VenueUpdateRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=2"`
	Address     *string   `json:"address,omitempty" validate:"omitempty,min=5"`
	City        *string   `json:"city,omitempty" validate:"omitempty,min=2"`
	PostalCode  *string   `json:"postalCode,omitempty" validate:"omitempty,postalcode"`
	Country     *string   `json:"country,omitempty"`
	VenueType   *string   `json:"venueType,omitempty" validate:"omitempty,oneof=BAR CLUB CONCERT_HALL FESTIVAL CAFE RESTAURANT CULTURAL_CENTER THEATER OPEN_AIR OTHER"`
	Capacity    *int      `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Description *string   `json:"description,omitempty"`
	PhotoURL    *string   `json:"photoUrl,omitempty" validate:"omitempty,url"`
	LogoURL     *string   `json:"logoUrl,omitempty" validate:"omitempty,url"`
	GenreNames  *[]string `json:"genreNames,omitempty"`
	Images      *[]string `json:"images,omitempty" validate:"omitempty,dive,url"`
}
