package repository

import (
	"context"
	"fmt"
	"time"

	"rythmons/internal/data/entity"
	"rythmons/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	FindByVenueID(ctx context.Context, venueID uuid.UUID) ([]*entity.Genre, error)
	FindByArtistID(ctx context.Context, artistID uuid.UUID) ([]*entity.Genre, error)
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) FindByVenueID(ctx context.Context, venueID uuid.UUID) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name, g.created_at
		FROM genres g
		INNER JOIN venue_genres vg ON g.id = vg.genre_id
		WHERE vg.venue_id = $1
		ORDER BY g.name
	`

	return r.queryGenres(ctx, query, venueID)
}

func (r *genreRepository) FindByArtistID(ctx context.Context, artistID uuid.UUID) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name, g.created_at
		FROM genres g
		INNER JOIN artist_genres ag ON g.id = ag.genre_id
		WHERE ag.artist_id = $1
		ORDER BY g.name
	`

	return r.queryGenres(ctx, query, artistID)
}

func (r *genreRepository) queryGenres(ctx context.Context, query string, id uuid.UUID) ([]*entity.Genre, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to query genres", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.CreatedAt); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}

// upsertGenreTx resolves a genre name to its row inside an open transaction,
// creating it when unseen. The ON CONFLICT no-op update lets RETURNING work
// on the existing row.
func upsertGenreTx(ctx context.Context, tx pgx.Tx, name string) (*entity.Genre, error) {
	query := `
		INSERT INTO genres (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at
	`

	var genre entity.Genre
	err := tx.QueryRow(ctx, query, uuid.New(), name, time.Now()).Scan(
		&genre.ID,
		&genre.Name,
		&genre.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert genre %q: %w", name, err)
	}

	return &genre, nil
}
