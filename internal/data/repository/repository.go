package repository

import (
	"rythmons/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Account      AccountRepository
	Session      SessionRepository
	Verification VerificationRepository
	Genre        GenreRepository
	Venue        VenueRepository
	Artist       ArtistRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	genres := NewGenreRepository(db, log)
	return &Repository{
		User:         NewUserRepository(db, log),
		Account:      NewAccountRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Verification: NewVerificationRepository(db, log),
		Genre:        genres,
		Venue:        NewVenueRepository(db, genres, log),
		Artist:       NewArtistRepository(db, genres, log),
	}
}
