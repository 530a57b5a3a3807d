package entity

import (
	"github.com/google/uuid"
)

type Artist struct {
	Base
	UserID           uuid.UUID `db:"user_id"`
	StageName        string    `db:"stage_name"`
	Bio              *string   `db:"bio"`
	Website          *string   `db:"website"`
	TechRequirements *string   `db:"tech_requirements"`
	FeeMin           *int      `db:"fee_min"`
	FeeMax           *int      `db:"fee_max"`

	// Loaded relations
	Genres []*Genre
}
