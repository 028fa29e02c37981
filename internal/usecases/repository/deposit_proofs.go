package repository

import (
	"context"
	"fmt"
	"log/slog"

	tx "github.com/Thiht/transactor/pgx"

	"github.com/finledger/commission-app/backend/internal/entities"
	"github.com/finledger/commission-app/backend/pkg/database"
)

type DepositProofsRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	transactor *tx.Transactor
}

func NewDepositProofsRepository(logger *slog.Logger, pg *database.Postgres) *DepositProofsRepository {
	return &DepositProofsRepository{logger: logger, db: pg.DBGetter, transactor: pg.Transactor}
}

func (r *DepositProofsRepository) InsertDepositProof(ctx context.Context, proof *entities.DepositProof) error {
	query := `INSERT INTO deposit_proofs (user_id, transaction_id, bank_name, proof_image_url)
              VALUES ($1, $2, $3, $4)
              RETURNING id, created_at`

	err := r.db(ctx).QueryRow(ctx, query,
		proof.UserID, proof.TransactionID, proof.BankName, proof.ProofImageURL,
	).Scan(&proof.ID, &proof.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert deposit proof: %w", err)
	}

	return nil
}
