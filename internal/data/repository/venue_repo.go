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

type VenueRepository interface {
	Create(ctx context.Context, venue *entity.Venue, genreNames []string, maxPerOwner int) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Venue, error)
	Update(ctx context.Context, venue *entity.Venue, genreNames *[]string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type venueRepository struct {
	db     database.PgxIface
	genres GenreRepository
	log    *zap.Logger
}

func NewVenueRepository(db database.PgxIface, genres GenreRepository, log *zap.Logger) VenueRepository {
	return &venueRepository{
		db:     db,
		genres: genres,
		log:    log.With(zap.String("repository", "venue")),
	}
}

// Create persists a venue with its genres. The quota check, the insert and the
// genre links run in one transaction with the owner row locked, so two
// concurrent creates cannot both pass the cap.
func (r *venueRepository) Create(ctx context.Context, venue *entity.Venue, genreNames []string, maxPerOwner int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create venue: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serializes concurrent creates by the same owner
	var ownerID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, venue.OwnerID).Scan(&ownerID)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock owner %s: %w", venue.OwnerID.String(), err)
	}

	var count int64
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM venues WHERE owner_id = $1`, venue.OwnerID).Scan(&count)
	if err != nil {
		return fmt.Errorf("count venues for owner %s: %w", venue.OwnerID.String(), err)
	}
	if count >= int64(maxPerOwner) {
		return ErrQuotaExceeded
	}

	insert := `
		INSERT INTO venues (id, owner_id, name, address, city, postal_code, country,
		                   venue_type, capacity, description, photo_url, logo_url,
		                   images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = tx.Exec(ctx, insert,
		venue.ID,
		venue.OwnerID,
		venue.Name,
		venue.Address,
		venue.City,
		venue.PostalCode,
		venue.Country,
		venue.VenueType,
		venue.Capacity,
		venue.Description,
		venue.PhotoURL,
		venue.LogoURL,
		venue.Images,
		venue.CreatedAt,
		venue.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert venue",
			zap.Error(err),
			zap.String("owner_id", venue.OwnerID.String()),
		)
		return fmt.Errorf("insert venue: %w", err)
	}

	venue.Genres = nil
	for _, name := range genreNames {
		genre, err := upsertGenreTx(ctx, tx, name)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO venue_genres (venue_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			venue.ID, genre.ID)
		if err != nil {
			return fmt.Errorf("link genre %q: %w", name, err)
		}
		venue.Genres = append(venue.Genres, genre)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create venue: %w", err)
	}

	return nil
}

func (r *venueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	query := `
		SELECT v.id, v.owner_id, v.name, v.address, v.city, v.postal_code, v.country,
		       v.venue_type, v.capacity, v.description, v.photo_url, v.logo_url,
		       v.images, v.created_at, v.updated_at,
		       u.id, u.name, u.image
		FROM venues v
		INNER JOIN users u ON u.id = v.owner_id
		WHERE v.id = $1
	`

	var venue entity.Venue
	var owner entity.OwnerSummary
	err := r.db.QueryRow(ctx, query, id).Scan(
		&venue.ID,
		&venue.OwnerID,
		&venue.Name,
		&venue.Address,
		&venue.City,
		&venue.PostalCode,
		&venue.Country,
		&venue.VenueType,
		&venue.Capacity,
		&venue.Description,
		&venue.PhotoURL,
		&venue.LogoURL,
		&venue.Images,
		&venue.CreatedAt,
		&venue.UpdatedAt,
		&owner.ID,
		&owner.Name,
		&owner.Image,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find venue by ID",
			zap.Error(err),
			zap.String("venue_id", id.String()),
		)
		return nil, fmt.Errorf("find venue by id %s: %w", id.String(), err)
	}

	venue.Owner = &owner
	if venue.Genres, err = r.genres.FindByVenueID(ctx, venue.ID); err != nil {
		return nil, err
	}

	return &venue, nil
}

func (r *venueRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Venue, error) {
	query := `
		SELECT id, owner_id, name, address, city, postal_code, country,
		       venue_type, capacity, description, photo_url, logo_url,
		       images, created_at, updated_at
		FROM venues
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find venues by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find venues for owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	var venues []*entity.Venue
	for rows.Next() {
		var venue entity.Venue
		err := rows.Scan(
			&venue.ID,
			&venue.OwnerID,
			&venue.Name,
			&venue.Address,
			&venue.City,
			&venue.PostalCode,
			&venue.Country,
			&venue.VenueType,
			&venue.Capacity,
			&venue.Description,
			&venue.PhotoURL,
			&venue.LogoURL,
			&venue.Images,
			&venue.CreatedAt,
			&venue.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan venue row", zap.Error(err))
			return nil, fmt.Errorf("scan venue row: %w", err)
		}
		venues = append(venues, &venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venue rows: %w", err)
	}

	for _, venue := range venues {
		if venue.Genres, err = r.genres.FindByVenueID(ctx, venue.ID); err != nil {
			return nil, err
		}
	}

	return venues, nil
}

// Update writes the venue fields and, when genreNames is non-nil, replaces the
// full genre set (not a merge).
func (r *venueRepository) Update(ctx context.Context, venue *entity.Venue, genreNames *[]string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update venue: %w", err)
	}
	defer tx.Rollback(ctx)

	update := `
		UPDATE venues
		SET name = $2, address = $3, city = $4, postal_code = $5, country = $6,
		    venue_type = $7, capacity = $8, description = $9, photo_url = $10,
		    logo_url = $11, images = $12, updated_at = $13
		WHERE id = $1
	`
	result, err := tx.Exec(ctx, update,
		venue.ID,
		venue.Name,
		venue.Address,
		venue.City,
		venue.PostalCode,
		venue.Country,
		venue.VenueType,
		venue.Capacity,
		venue.Description,
		venue.PhotoURL,
		venue.LogoURL,
		venue.Images,
		venue.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update venue",
			zap.Error(err),
			zap.String("venue_id", venue.ID.String()),
		)
		return fmt.Errorf("update venue %s: %w", venue.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if genreNames != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM venue_genres WHERE venue_id = $1`, venue.ID); err != nil {
			return fmt.Errorf("clear venue genres: %w", err)
		}

		venue.Genres = nil
		for _, name := range *genreNames {
			genre, err := upsertGenreTx(ctx, tx, name)
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx,
				`INSERT INTO venue_genres (venue_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				venue.ID, genre.ID)
			if err != nil {
				return fmt.Errorf("link genre %q: %w", name, err)
			}
			venue.Genres = append(venue.Genres, genre)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update venue: %w", err)
	}

	if genreNames == nil {
		if venue.Genres, err = r.genres.FindByVenueID(ctx, venue.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete venue",
			zap.Error(err),
			zap.String("venue_id", id.String()),
		)
		return fmt.Errorf("delete venue %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
