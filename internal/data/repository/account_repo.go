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

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByUserAndProvider(ctx context.Context, userID uuid.UUID, providerID string) (*entity.Account, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

type accountRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccountRepository(db database.PgxIface, log *zap.Logger) AccountRepository {
	return &accountRepository{
		db:  db,
		log: log.With(zap.String("repository", "account")),
	}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, provider_id, account_id, password,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.UserID,
		account.ProviderID,
		account.AccountID,
		account.PasswordHash,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create account",
			zap.Error(err),
			zap.String("user_id", account.UserID.String()),
			zap.String("provider_id", account.ProviderID),
		)
		return fmt.Errorf("create %s account for user %s: %w", account.ProviderID, account.UserID.String(), err)
	}

	return nil
}

func (r *accountRepository) FindByUserAndProvider(ctx context.Context, userID uuid.UUID, providerID string) (*entity.Account, error) {
	query := `
		SELECT id, user_id, provider_id, account_id, password, created_at, updated_at
		FROM accounts
		WHERE user_id = $1 AND provider_id = $2
	`

	var account entity.Account
	err := r.db.QueryRow(ctx, query, userID, providerID).Scan(
		&account.ID,
		&account.UserID,
		&account.ProviderID,
		&account.AccountID,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("provider_id", providerID),
		)
		return nil, fmt.Errorf("find %s account for user %s: %w", providerID, userID.String(), err)
	}

	return &account, nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `
		UPDATE accounts
		SET password = $2, updated_at = $3
		WHERE user_id = $1 AND provider_id = 'credential'
	`

	result, err := r.db.Exec(ctx, query, userID, passwordHash, time.Now())
	if err != nil {
		r.log.Error("Failed to update password",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("update password for user %s: %w", userID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
