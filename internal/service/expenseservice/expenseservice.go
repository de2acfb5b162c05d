package expenseservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tespinoza/cuentaclara/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	FindByID(ctx context.Context, id int) (*domain.Expense, error)
	FindByAccountID(ctx context.Context, accountID int, includeArchived bool) ([]domain.Expense, error)
	Save(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense, replaceShares bool) error
	FindShare(ctx context.Context, expenseID, userID int) (*domain.Share, error)
	SetShareStatus(ctx context.Context, expenseID, userID int, status domain.ShareStatus) error
	Delete(ctx context.Context, ids []int) error
	Archive(ctx context.Context, ids []int) error
}

type AccountRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Account, error)
	FindMember(ctx context.Context, accountID, userID int) (*domain.Membership, error)
}

type Service struct {
	expenseRepo Repo
	accountRepo AccountRepo
}

func New(expenseRepo Repo, accountRepo AccountRepo) *Service {
	return &Service{
		expenseRepo: expenseRepo,
		accountRepo: accountRepo,
	}
}

// ExpenseUpdate carries the optional fields of an expense edit. A non-nil
// Shares slice replaces the whole share set; the caller is responsible for
// carrying forward PAID statuses of unchanged participants.
type ExpenseUpdate struct {
	Title  *string
	Amount *int64
	Date   *time.Time
	Shares []domain.Share
}

// AddExpense validates and persists an expense with its shares as one unit.
// Every share participant must be an accepted member of the account.
func (s *Service) AddExpense(ctx context.Context, accountID, actorID int, title string, amount int64, date time.Time, shares []domain.Share) (*domain.Expense, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title cannot be blank", domain.ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: at least one share required", domain.ErrValidation)
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
	}
	if err := s.checkParticipants(ctx, account, shares); err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		AccountID: accountID,
		Title:     title,
		Amount:    amount,
		Date:      date,
		CreatedBy: actorID,
		Status:    domain.ExpenseActive,
		Shares:    shares,
	}
	for i := range expense.Shares {
		if expense.Shares[i].Status == "" {
			expense.Shares[i].Status = domain.SharePending
		}
	}

	saved, err := s.expenseRepo.Save(ctx, expense)
	if err != nil {
		zap.L().Error("can't save expense", zap.Error(err))
		return nil, err
	}
	zap.L().Info("expense added", zap.Int("expenseID", saved.ID), zap.Int("accountID", accountID))
	return saved, nil
}

// UpdateExpense applies the provided fields. When shares are supplied, the
// prior share set is replaced wholesale: delete-all, insert-new.
func (s *Service) UpdateExpense(ctx context.Context, expenseID int, upd ExpenseUpdate) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, fmt.Errorf("%w: expense %d", domain.ErrNotFound, expenseID)
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be blank", domain.ErrValidation)
		}
		expense.Title = *upd.Title
	}
	if upd.Amount != nil {
		if *upd.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
		}
		expense.Amount = *upd.Amount
	}
	if upd.Date != nil {
		expense.Date = *upd.Date
	}

	replaceShares := upd.Shares != nil
	if replaceShares {
		if len(upd.Shares) == 0 {
			return nil, fmt.Errorf("%w: at least one share required", domain.ErrValidation)
		}
		account, err := s.accountRepo.FindByID(ctx, expense.AccountID)
		if err != nil {
			return nil, err
		}
		if err := s.checkParticipants(ctx, account, upd.Shares); err != nil {
			return nil, err
		}
		for i := range upd.Shares {
			if upd.Shares[i].Status == "" {
				upd.Shares[i].Status = domain.SharePending
			}
		}
		expense.Shares = upd.Shares
	}

	if err := s.expenseRepo.Update(ctx, expense, replaceShares); err != nil {
		zap.L().Error("can't update expense", zap.Error(err))
		return nil, err
	}
	return s.expenseRepo.FindByID(ctx, expenseID)
}

// ToggleShareStatus flips one participant's share PENDING <-> PAID without
// touching sibling shares. Archived expenses toggle like active ones.
func (s *Service) ToggleShareStatus(ctx context.Context, expenseID, userID int) (domain.ShareStatus, error) {
	share, err := s.expenseRepo.FindShare(ctx, expenseID, userID)
	if err != nil {
		return "", err
	}
	if share == nil {
		return "", fmt.Errorf("%w: no share for user %d on expense %d", domain.ErrNotFound, userID, expenseID)
	}

	next := share.Status.Toggled()
	if err := s.expenseRepo.SetShareStatus(ctx, expenseID, userID, next); err != nil {
		zap.L().Error("can't toggle share status", zap.Error(err))
		return "", err
	}
	return next, nil
}

func (s *Service) GetExpenses(ctx context.Context, accountID int) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.FindByAccountID(ctx, accountID, false)
	if err != nil {
		zap.L().Error("can't get expenses", zap.Error(err))
		return nil, err
	}
	return expenses, nil
}

// GetAllExpenses includes archived expenses, for the audit view.
func (s *Service) GetAllExpenses(ctx context.Context, accountID int) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.FindByAccountID(ctx, accountID, true)
	if err != nil {
		zap.L().Error("can't get expenses", zap.Error(err))
		return nil, err
	}
	return expenses, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id int) error {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return fmt.Errorf("%w: expense %d", domain.ErrNotFound, id)
	}
	return s.expenseRepo.Delete(ctx, []int{id})
}

// DeleteExpenses hands the whole id set to the backend in one request; batch
// atomicity is whatever the backend provides.
func (s *Service) DeleteExpenses(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no expense ids given", domain.ErrValidation)
	}
	return s.expenseRepo.Delete(ctx, ids)
}

func (s *Service) ArchiveExpense(ctx context.Context, id int) error {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return fmt.Errorf("%w: expense %d", domain.ErrNotFound, id)
	}
	return s.expenseRepo.Archive(ctx, []int{id})
}

func (s *Service) ArchiveExpenses(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no expense ids given", domain.ErrValidation)
	}
	return s.expenseRepo.Archive(ctx, ids)
}

// checkParticipants rejects duplicate participants and shares referencing
// anyone who is not an accepted member. The owner counts as accepted even
// without a membership row.
func (s *Service) checkParticipants(ctx context.Context, account *domain.Account, shares []domain.Share) error {
	seen := make(map[int]bool, len(shares))
	for _, share := range shares {
		if seen[share.UserID] {
			return fmt.Errorf("%w: duplicate share for user %d", domain.ErrValidation, share.UserID)
		}
		seen[share.UserID] = true
		if share.UserID == account.OwnerID {
			continue
		}
		member, err := s.accountRepo.FindMember(ctx, account.ID, share.UserID)
		if err != nil {
			return err
		}
		if member == nil || member.Status != domain.MembershipAccepted {
			return fmt.Errorf("%w: user %d is not an accepted member of account %d", domain.ErrValidation, share.UserID, account.ID)
		}
	}
	return nil
}
