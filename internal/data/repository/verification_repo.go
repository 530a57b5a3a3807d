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

type VerificationRepository interface {
	Create(ctx context.Context, verification *entity.Verification) error
	FindValid(ctx context.Context, value string) (*entity.Verification, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIdentifier(ctx context.Context, identifier string) error
}

type verificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVerificationRepository(db database.PgxIface, log *zap.Logger) VerificationRepository {
	return &verificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "verification")),
	}
}

func (r *verificationRepository) Create(ctx context.Context, verification *entity.Verification) error {
	query := `
		INSERT INTO verifications (id, identifier, value, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		verification.ID,
		verification.Identifier,
		verification.Value,
		verification.ExpiresAt,
		verification.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create verification token",
			zap.Error(err),
			zap.String("identifier", verification.Identifier),
		)
		return fmt.Errorf("create verification for %s: %w", verification.Identifier, err)
	}

	return nil
}

func (r *verificationRepository) FindValid(ctx context.Context, value string) (*entity.Verification, error) {
	query := `
		SELECT id, identifier, value, expires_at, created_at
		FROM verifications
		WHERE value = $1
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var verification entity.Verification
	err := r.db.QueryRow(ctx, query, value).Scan(
		&verification.ID,
		&verification.Identifier,
		&verification.Value,
		&verification.ExpiresAt,
		&verification.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find verification token", zap.Error(err))
		return nil, fmt.Errorf("find verification: %w", err)
	}

	return &verification, nil
}

func (r *verificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM verifications WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete verification token",
			zap.Error(err),
			zap.String("verification_id", id.String()),
		)
		return fmt.Errorf("delete verification %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *verificationRepository) DeleteByIdentifier(ctx context.Context, identifier string) error {
	query := `DELETE FROM verifications WHERE identifier = $1`

	_, err := r.db.Exec(ctx, query, identifier)
	if err != nil {
		r.log.Error("Failed to delete verification tokens",
			zap.Error(err),
			zap.String("identifier", identifier),
		)
		return fmt.Errorf("delete verifications for %s: %w", identifier, err)
	}

	return nil
}
