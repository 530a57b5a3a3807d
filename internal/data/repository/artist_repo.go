package repository

import (
	"context"
	"fmt"

	"rythmons/internal/data/entity"
	"rythmons/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ArtistRepository interface {
	Create(ctx context.Context, artist *entity.Artist, genreNames []string, maxPerUser int) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Artist, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Artist, error)
	Update(ctx context.Context, artist *entity.Artist, genreNames *[]string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type artistRepository struct {
	db     database.PgxIface
	genres GenreRepository
	log    *zap.Logger
}

func NewArtistRepository(db database.PgxIface, genres GenreRepository, log *zap.Logger) ArtistRepository {
	return &artistRepository{
		db:     db,
		genres: genres,
		log:    log.With(zap.String("repository", "artist")),
	}
}

// Create mirrors the venue contract: quota check and insert in one transaction
// with the user row locked.
func (r *artistRepository) Create(ctx context.Context, artist *entity.Artist, genreNames []string, maxPerUser int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create artist: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, artist.UserID).Scan(&userID)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock user %s: %w", artist.UserID.String(), err)
	}

	var count int64
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM artists WHERE user_id = $1`, artist.UserID).Scan(&count)
	if err != nil {
		return fmt.Errorf("count artists for user %s: %w", artist.UserID.String(), err)
	}
	if count >= int64(maxPerUser) {
		return ErrQuotaExceeded
	}

	insert := `
		INSERT INTO artists (id, user_id, stage_name, bio, website, tech_requirements,
		                    fee_min, fee_max, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, insert,
		artist.ID,
		artist.UserID,
		artist.StageName,
		artist.Bio,
		artist.Website,
		artist.TechRequirements,
		artist.FeeMin,
		artist.FeeMax,
		artist.CreatedAt,
		artist.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert artist",
			zap.Error(err),
			zap.String("user_id", artist.UserID.String()),
		)
		return fmt.Errorf("insert artist: %w", err)
	}

	artist.Genres = nil
	for _, name := range genreNames {
		genre, err := upsertGenreTx(ctx, tx, name)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO artist_genres (artist_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			artist.ID, genre.ID)
		if err != nil {
			return fmt.Errorf("link genre %q: %w", name, err)
		}
		artist.Genres = append(artist.Genres, genre)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create artist: %w", err)
	}

	return nil
}

func (r *artistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Artist, error) {
	query := `
		SELECT id, user_id, stage_name, bio, website, tech_requirements,
		       fee_min, fee_max, created_at, updated_at
		FROM artists
		WHERE id = $1
	`

	var artist entity.Artist
	err := r.db.QueryRow(ctx, query, id).Scan(
		&artist.ID,
		&artist.UserID,
		&artist.StageName,
		&artist.Bio,
		&artist.Website,
		&artist.TechRequirements,
		&artist.FeeMin,
		&artist.FeeMax,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find artist by ID",
			zap.Error(err),
			zap.String("artist_id", id.String()),
		)
		return nil, fmt.Errorf("find artist by id %s: %w", id.String(), err)
	}

	if artist.Genres, err = r.genres.FindByArtistID(ctx, artist.ID); err != nil {
		return nil, err
	}

	return &artist, nil
}

func (r *artistRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Artist, error) {
	query := `
		SELECT id, user_id, stage_name, bio, website, tech_requirements,
		       fee_min, fee_max, created_at, updated_at
		FROM artists
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find artists by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find artists for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var artists []*entity.Artist
	for rows.Next() {
		var artist entity.Artist
		err := rows.Scan(
			&artist.ID,
			&artist.UserID,
			&artist.StageName,
			&artist.Bio,
			&artist.Website,
			&artist.TechRequirements,
			&artist.FeeMin,
			&artist.FeeMax,
			&artist.CreatedAt,
			&artist.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan artist row", zap.Error(err))
			return nil, fmt.Errorf("scan artist row: %w", err)
		}
		artists = append(artists, &artist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artist rows: %w", err)
	}

	for _, artist := range artists {
		if artist.Genres, err = r.genres.FindByArtistID(ctx, artist.ID); err != nil {
			return nil, err
		}
	}

	return artists, nil
}

func (r *artistRepository) Update(ctx context.Context, artist *entity.Artist, genreNames *[]string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update artist: %w", err)
	}
	defer tx.Rollback(ctx)

	update := `
		UPDATE artists
		SET stage_name = $2, bio = $3, website = $4, tech_requirements = $5,
		    fee_min = $6, fee_max = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := tx.Exec(ctx, update,
		artist.ID,
		artist.StageName,
		artist.Bio,
		artist.Website,
		artist.TechRequirements,
		artist.FeeMin,
		artist.FeeMax,
		artist.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update artist",
			zap.Error(err),
			zap.String("artist_id", artist.ID.String()),
		)
		return fmt.Errorf("update artist %s: %w", artist.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if genreNames != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM artist_genres WHERE artist_id = $1`, artist.ID); err != nil {
			return fmt.Errorf("clear artist genres: %w", err)
		}

		artist.Genres = nil
		for _, name := range *genreNames {
			genre, err := upsertGenreTx(ctx, tx, name)
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx,
				`INSERT INTO artist_genres (artist_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				artist.ID, genre.ID)
			if err != nil {
				return fmt.Errorf("link genre %q: %w", name, err)
			}
			artist.Genres = append(artist.Genres, genre)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update artist: %w", err)
	}

	if genreNames == nil {
		if artist.Genres, err = r.genres.FindByArtistID(ctx, artist.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *artistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete artist",
			zap.Error(err),
			zap.String("artist_id", id.String()),
		)
		return fmt.Errorf("delete artist %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

