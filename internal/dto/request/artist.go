package request

type ArtistRequest struct {
	StageName        string   `json:"stageName" validate:"required,min=1"`
	Bio              *string  `json:"bio,omitempty"`
	Website          *string  `json:"website,omitempty" validate:"omitempty,url"`
	TechRequirements *string  `json:"techRequirements,omitempty"`
	FeeMin           *int     `json:"feeMin,omitempty" validate:"omitempty,gte=0"`
	FeeMax           *int     `json:"feeMax,omitempty" validate:"omitempty,gte=0"`
	Genres           []string `json:"genres,omitempty"`
}

type ArtistUpdateRequest struct {
	StageName        *string   `json:"stageName,omitempty" validate:"omitempty,min=1"`
	Bio              *string   `json:"bio,omitempty"`
	Website          *string   `json:"website,omitempty" validate:"omitempty,url"`
	TechRequirements *string   `json:"techRequirements,omitempty"`
	FeeMin           *int      `json:"feeMin,omitempty" validate:"omitempty,gte=0"`
	FeeMax           *int      `json:"feeMax,omitempty" validate:"omitempty,gte=0"`
	Genres           *[]string `json:"genres,omitempty"`
}
