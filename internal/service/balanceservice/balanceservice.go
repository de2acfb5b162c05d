package balanceservice

import (
	"context"

	"github.com/tespinoza/cuentaclara/internal/domain"
	"github.com/tespinoza/cuentaclara/pkg/split"
	"go.uber.org/zap"
)

type ExpenseRepo interface {
	FindByAccountID(ctx context.Context, accountID int, includeArchived bool) ([]domain.Expense, error)
}

type MemberRepo interface {
	FindMembers(ctx context.Context, accountID int) ([]domain.Membership, error)
}

type SnapshotRepo interface {
	Get(ctx context.Context, accountID int) (*domain.BankSnapshot, error)
}

type Service struct {
	expenseRepo  ExpenseRepo
	memberRepo   MemberRepo
	snapshotRepo SnapshotRepo
}

func New(expenseRepo ExpenseRepo, memberRepo MemberRepo, snapshotRepo SnapshotRepo) *Service {
	return &Service{
		expenseRepo:  expenseRepo,
		memberRepo:   memberRepo,
		snapshotRepo: snapshotRepo,
	}
}

type MemberBalance struct {
	UserID  int
	Pending int64
}

// Summary is the dashboard projection: total pending plus each accepted
// member's pending amount. Members with no shares show zero.
type Summary struct {
	TotalPending int64
	PerMember    []MemberBalance
}

// Reconciliation classifies the bank-reported figure against the computed
// pending total. BankTotal is nil when no figure exists yet.
type Reconciliation struct {
	Status      split.ReconcileStatus
	SystemTotal int64
	BankTotal   *int64
}

// GetSummary recomputes the projection from scratch on every call; there is
// no cached or incremental state to invalidate.
func (s *Service) GetSummary(ctx context.Context, accountID int) (*Summary, error) {
	expenses, err := s.expenseRepo.FindByAccountID(ctx, accountID, false)
	if err != nil {
		zap.L().Error("can't get expenses for summary", zap.Error(err))
		return nil, err
	}
	members, err := s.memberRepo.FindMembers(ctx, accountID)
	if err != nil {
		zap.L().Error("can't get members for summary", zap.Error(err))
		return nil, err
	}

	memberIDs := make([]int, 0, len(members))
	for _, m := range members {
		if m.Status == domain.MembershipAccepted {
			memberIDs = append(memberIDs, m.UserID)
		}
	}

	perMember := split.PerMember(expenses, memberIDs)
	summary := &Summary{
		TotalPending: split.PendingTotal(expenses),
	}
	for _, id := range memberIDs {
		summary.PerMember = append(summary.PerMember, MemberBalance{
			UserID:  id,
			Pending: perMember[id],
		})
	}
	return summary, nil
}

// Reconcile uses the explicitly reported figure when given, otherwise the
// latest stored bank snapshot, otherwise stays IDLE.
func (s *Service) Reconcile(ctx context.Context, accountID int, reported *int64) (*Reconciliation, error) {
	expenses, err := s.expenseRepo.FindByAccountID(ctx, accountID, false)
	if err != nil {
		zap.L().Error("can't get expenses for reconciliation", zap.Error(err))
		return nil, err
	}
	systemTotal := split.PendingTotal(expenses)

	bankTotal := reported
	if bankTotal == nil {
		snapshot, err := s.snapshotRepo.Get(ctx, accountID)
		if err != nil {
			zap.L().Error("can't get bank snapshot", zap.Error(err))
			return nil, err
		}
		if snapshot != nil {
			bankTotal = &snapshot.ReportedTotal
		}
	}

	return &Reconciliation{
		Status:      split.Reconcile(systemTotal, bankTotal),
		SystemTotal: systemTotal,
		BankTotal:   bankTotal,
	}, nil
}
