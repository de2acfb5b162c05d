package expenserepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/tespinoza/cuentaclara/internal/domain"
	"github.com/tespinoza/cuentaclara/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Expense, error) {
	query := `
        SELECT id, account_id, title, amount, date, created_by, status
        FROM expenses
        WHERE id = $1
    `
	var expense domain.Expense
	err := r.db.QueryRow(ctx, query, id).Scan(
		&expense.ID, &expense.AccountID, &expense.Title, &expense.Amount,
		&expense.Date, &expense.CreatedBy, &expense.Status,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find expense", zap.Error(err))
		return nil, err
	}

	shares, err := r.findShares(ctx, []int{expense.ID})
	if err != nil {
		return nil, err
	}
	expense.Shares = shares[expense.ID]
	return &expense, nil
}

// FindByAccountID returns the account's expenses newest first, shares
// hydrated. Archived expenses are excluded unless includeArchived is set.
func (r *Repository) FindByAccountID(ctx context.Context, accountID int, includeArchived bool) ([]domain.Expense, error) {
	query := `
        SELECT id, account_id, title, amount, date, created_by, status
        FROM expenses
        WHERE account_id = $1 AND (status = 'ACTIVE' OR $2)
        ORDER BY date DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query, accountID, includeArchived)
	if err != nil {
		zap.L().Error("can't get expenses", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	var ids []int
	for rows.Next() {
		var expense domain.Expense
		err := rows.Scan(
			&expense.ID, &expense.AccountID, &expense.Title, &expense.Amount,
			&expense.Date, &expense.CreatedBy, &expense.Status,
		)
		if err != nil {
			zap.L().Error("can't scan expense row", zap.Error(err))
			return nil, err
		}
		expenses = append(expenses, expense)
		ids = append(ids, expense.ID)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	shares, err := r.findShares(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		expenses[i].Shares = shares[expenses[i].ID]
	}
	return expenses, nil
}

func (r *Repository) findShares(ctx context.Context, expenseIDs []int) (map[int][]domain.Share, error) {
	query := `
        SELECT id, expense_id, user_id, amount, status
        FROM expense_shares
        WHERE expense_id = ANY($1)
        ORDER BY id ASC
    `
	rows, err := r.db.Query(ctx, query, expenseIDs)
	if err != nil {
		zap.L().Error("can't get expense shares", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	shares := make(map[int][]domain.Share)
	for rows.Next() {
		var share domain.Share
		err := rows.Scan(&share.ID, &share.ExpenseID, &share.UserID, &share.Amount, &share.Status)
		if err != nil {
			zap.L().Error("can't scan share row", zap.Error(err))
			return nil, err
		}
		shares[share.ExpenseID] = append(shares[share.ExpenseID], share)
	}
	return shares, nil
}

// Save persists the expense and its shares as one unit.
func (r *Repository) Save(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO expenses (account_id, title, amount, date, created_by, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		err := r.db.QueryRow(ctx, query,
			expense.AccountID, expense.Title, expense.Amount, expense.Date,
			expense.CreatedBy, expense.Status,
		).Scan(&expense.ID)
		if err != nil {
			zap.L().Error("can't save expense", zap.Error(err))
			return err
		}
		return r.insertShares(ctx, expense)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// Update rewrites the expense row and, when replaceShares is set, replaces the
// full share set (delete-all, insert-new) in the same transaction.
func (r *Repository) Update(ctx context.Context, expense *domain.Expense, replaceShares bool) error {
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		query := `
			UPDATE expenses
			SET title = $1, amount = $2, date = $3, status = $4
			WHERE id = $5
		`
		_, err := r.db.Exec(ctx, query,
			expense.Title, expense.Amount, expense.Date, expense.Status, expense.ID,
		)
		if err != nil {
			zap.L().Error("can't update expense", zap.Error(err))
			return err
		}
		if !replaceShares {
			return nil
		}
		if _, err := r.db.Exec(ctx, `DELETE FROM expense_shares WHERE expense_id = $1`, expense.ID); err != nil {
			zap.L().Error("can't delete old shares", zap.Error(err))
			return err
		}
		return r.insertShares(ctx, expense)
	})
}

func (r *Repository) insertShares(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expense_shares (expense_id, user_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range expense.Shares {
		share := &expense.Shares[i]
		share.ExpenseID = expense.ID
		if err := r.db.QueryRow(ctx, query, share.ExpenseID, share.UserID, share.Amount, share.Status).Scan(&share.ID); err != nil {
			zap.L().Error("can't save expense share", zap.Error(err))
			return err
		}
	}
	return nil
}

func (r *Repository) FindShare(ctx context.Context, expenseID, userID int) (*domain.Share, error) {
	query := `
        SELECT id, expense_id, user_id, amount, status
        FROM expense_shares
        WHERE expense_id = $1 AND user_id = $2
    `
	var share domain.Share
	err := r.db.QueryRow(ctx, query, expenseID, userID).Scan(&share.ID, &share.ExpenseID, &share.UserID, &share.Amount, &share.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find share", zap.Error(err))
		return nil, err
	}
	return &share, nil
}

// SetShareStatus flips exactly one share, sibling shares untouched.
func (r *Repository) SetShareStatus(ctx context.Context, expenseID, userID int, status domain.ShareStatus) error {
	query := `
		UPDATE expense_shares
		SET status = $1
		WHERE expense_id = $2 AND user_id = $3
	`
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := r.db.Exec(ctx, query, status, expenseID, userID); err != nil {
			zap.L().Error("can't update share status", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// Delete hard-deletes the expenses and their shares. The id set goes to the
// backend as a single statement pair.
func (r *Repository) Delete(ctx context.Context, ids []int) error {
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := r.db.Exec(ctx, `DELETE FROM expense_shares WHERE expense_id = ANY($1)`, ids); err != nil {
			zap.L().Error("can't delete shares", zap.Error(err))
			return err
		}
		if _, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = ANY($1)`, ids); err != nil {
			zap.L().Error("can't delete expenses", zap.Error(err))
			return err
		}
		return nil
	})
}

// Archive soft-deletes by status; archived expenses drop out of the default
// listing but keep their shares.
func (r *Repository) Archive(ctx context.Context, ids []int) error {
	query := `UPDATE expenses SET status = 'ARCHIVED' WHERE id = ANY($1)`
	_, err := r.db.Exec(ctx, query, ids)
	if err != nil {
		zap.L().Error("can't archive expenses", zap.Error(err))
		return err
	}
	return nil
}
