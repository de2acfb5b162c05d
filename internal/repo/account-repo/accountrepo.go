package accountrepo

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

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Account, error) {
	query := `SELECT id, name, owner_id, bank_ref FROM accounts WHERE id = $1`
	var account domain.Account
	err := r.db.QueryRow(ctx, query, id).Scan(&account.ID, &account.Name, &account.OwnerID, &account.BankRef)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *Repository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (name, owner_id)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, account.Name, account.OwnerID).Scan(&account.ID)
	if err != nil {
		zap.L().Error("can't save account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) Rename(ctx context.Context, id int, name string) error {
	query := `UPDATE accounts SET name = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, name, id)
	if err != nil {
		zap.L().Error("can't rename account", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetBankRef(ctx context.Context, id int, ref string) error {
	query := `UPDATE accounts SET bank_ref = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, ref, id)
	if err != nil {
		zap.L().Error("can't set bank reference", zap.Error(err))
		return err
	}
	return nil
}

// Delete removes the account and everything referencing it in one
// transaction: shares, expenses, memberships, bank snapshot, account row.
func (r *Repository) Delete(ctx context.Context, id int) error {
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		statements := []string{
			`DELETE FROM expense_shares WHERE expense_id IN (SELECT id FROM expenses WHERE account_id = $1)`,
			`DELETE FROM expenses WHERE account_id = $1`,
			`DELETE FROM account_members WHERE account_id = $1`,
			`DELETE FROM bank_snapshots WHERE account_id = $1`,
			`DELETE FROM accounts WHERE id = $1`,
		}
		for _, query := range statements {
			if _, err := r.db.Exec(ctx, query, id); err != nil {
				zap.L().Error("can't delete account", zap.Error(err))
				return err
			}
		}
		return nil
	})
}

func (r *Repository) FindMember(ctx context.Context, accountID, userID int) (*domain.Membership, error) {
	query := `SELECT account_id, user_id, status FROM account_members WHERE account_id = $1 AND user_id = $2`
	var member domain.Membership
	err := r.db.QueryRow(ctx, query, accountID, userID).Scan(&member.AccountID, &member.UserID, &member.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find membership", zap.Error(err))
		return nil, err
	}
	return &member, nil
}

func (r *Repository) FindMembers(ctx context.Context, accountID int) ([]domain.Membership, error) {
	query := `SELECT account_id, user_id, status FROM account_members WHERE account_id = $1 ORDER BY invited_at ASC`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("can't get memberships", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		var member domain.Membership
		err := rows.Scan(&member.AccountID, &member.UserID, &member.Status)
		if err != nil {
			zap.L().Error("can't scan membership row", zap.Error(err))
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

func (r *Repository) AddMember(ctx context.Context, member *domain.Membership) error {
	query := `
		INSERT INTO account_members (account_id, user_id, status)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, member.AccountID, member.UserID, member.Status)
	if err != nil {
		zap.L().Error("can't add membership", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) UpdateMemberStatus(ctx context.Context, accountID, userID int, status domain.MembershipStatus) error {
	query := `
		UPDATE account_members
		SET status = $1
		WHERE account_id = $2 AND user_id = $3
	`
	_, err := r.db.Exec(ctx, query, status, accountID, userID)
	if err != nil {
		zap.L().Error("can't update membership status", zap.Error(err))
		return err
	}
	return nil
}

// DeleteMember is only reachable through invitation rejection; owner-driven
// member removal is rejected at the service layer.
func (r *Repository) DeleteMember(ctx context.Context, accountID, userID int) error {
	query := `DELETE FROM account_members WHERE account_id = $1 AND user_id = $2`
	_, err := r.db.Exec(ctx, query, accountID, userID)
	if err != nil {
		zap.L().Error("can't delete membership", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindForUser(ctx context.Context, userID int) ([]domain.UserAccount, error) {
	query := `
        SELECT a.id, a.name, a.owner_id, a.bank_ref, m.status
        FROM accounts a
        JOIN account_members m ON m.account_id = a.id
        WHERE m.user_id = $1
        ORDER BY a.id ASC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get accounts for user", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.UserAccount
	for rows.Next() {
		var acc domain.UserAccount
		err := rows.Scan(&acc.ID, &acc.Name, &acc.OwnerID, &acc.BankRef, &acc.MemberStatus)
		if err != nil {
			zap.L().Error("can't scan account row", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (r *Repository) FindWithBankRef(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT id, name, owner_id, bank_ref FROM accounts WHERE bank_ref <> '' ORDER BY id ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get accounts with bank reference", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var acc domain.Account
		err := rows.Scan(&acc.ID, &acc.Name, &acc.OwnerID, &acc.BankRef)
		if err != nil {
			zap.L().Error("can't scan account row", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}
