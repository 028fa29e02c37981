package repository

import (
	"context"
	"fmt"
	"log/slog"

	tx "github.com/Thiht/transactor/pgx"

	"github.com/finledger/commission-app/backend/internal/entities"
	"github.com/finledger/commission-app/backend/pkg/database"
)

type InvitationsRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	transactor *tx.Transactor
}

func NewInvitationsRepository(logger *slog.Logger, pg *database.Postgres) *InvitationsRepository {
	return &InvitationsRepository{logger: logger, db: pg.DBGetter, transactor: pg.Transactor}
}

func (r *InvitationsRepository) InsertInvitation(ctx context.Context, inv *entities.Invitation) error {
	query := `INSERT INTO invitations (inviter_id, invited_id, invitation_code, status)
              VALUES ($1, $2, $3, $4)
              RETURNING id, created_at`

	err := r.db(ctx).QueryRow(ctx, query,
		inv.InviterID, inv.InvitedID, inv.InvitationCode, inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert invitation: %w", err)
	}

	return nil
}
