package bankrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/tespinoza/cuentaclara/internal/domain"
	"github.com/tespinoza/cuentaclara/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Get(ctx context.Context, accountID int) (*domain.BankSnapshot, error) {
	query := `SELECT account_id, reported_total, fetched_at FROM bank_snapshots WHERE account_id = $1`
	var snapshot domain.BankSnapshot
	err := r.db.QueryRow(ctx, query, accountID).Scan(&snapshot.AccountID, &snapshot.ReportedTotal, &snapshot.FetchedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find bank snapshot", zap.Error(err))
		return nil, err
	}
	return &snapshot, nil
}

func (r *Repository) Upsert(ctx context.Context, accountID int, total int64) error {
	query := `
		INSERT INTO bank_snapshots (account_id, reported_total, fetched_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (account_id)
		DO UPDATE SET reported_total = EXCLUDED.reported_total, fetched_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, accountID, total)
	if err != nil {
		zap.L().Error("can't save bank snapshot", zap.Error(err))
		return err
	}
	return nil
}
