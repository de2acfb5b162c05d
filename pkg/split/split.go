// Package split holds the pure arithmetic behind expense splitting and the
// pending-balance/reconciliation projections. Amounts are integer minor units
// of a single currency.
package split

import (
	"fmt"

	"github.com/tespinoza/cuentaclara/internal/domain"
)

// Tolerance is the maximum absolute difference, in minor units, between the
// computed pending total and a bank-reported figure that still counts as a
// match. It absorbs the rounding drift Even leaves behind.
const Tolerance = 100

// ReconcileStatus classifies a bank figure against the computed pending total.
type ReconcileStatus string

const (
	ReconcileIdle     ReconcileStatus = "IDLE"
	ReconcileMatch    ReconcileStatus = "MATCH"
	ReconcileMismatch ReconcileStatus = "MISMATCH"
)

// Even splits total evenly across the participants, rounding each share
// half-up to the nearest minor unit. The shares may not sum to total when it
// is not evenly divisible; the drift is bounded by len(participantIDs)/2 and
// is deliberately not reassigned to any participant.
func Even(total int64, participantIDs []int) ([]domain.Share, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one participant required", domain.ErrValidation)
	}

	// Quotient and remainder separately so the half-up rounding cannot
	// overflow for totals near the int64 ceiling.
	n := int64(len(participantIDs))
	amount := total / n
	if 2*(total%n) >= n {
		amount++
	}

	shares := make([]domain.Share, 0, len(participantIDs))
	for _, id := range participantIDs {
		shares = append(shares, domain.Share{
			UserID: id,
			Amount: amount,
			Status: domain.SharePending,
		})
	}
	return shares, nil
}

// PendingTotal sums every PENDING share across the given expenses. It is
// order-independent and returns zero for an empty list.
func PendingTotal(expenses []domain.Expense) int64 {
	var total int64
	for _, e := range expenses {
		for _, s := range e.Shares {
			if s.Status == domain.SharePending {
				total += s.Amount
			}
		}
	}
	return total
}

// PendingForUser sums the PENDING shares belonging to userID.
func PendingForUser(expenses []domain.Expense, userID int) int64 {
	var total int64
	for _, e := range expenses {
		for _, s := range e.Shares {
			if s.UserID == userID && s.Status == domain.SharePending {
				total += s.Amount
			}
		}
	}
	return total
}

// PerMember returns the pending amount for each given member id. Members with
// no shares get a zero entry.
func PerMember(expenses []domain.Expense, memberIDs []int) map[int]int64 {
	totals := make(map[int]int64, len(memberIDs))
	for _, id := range memberIDs {
		totals[id] = 0
	}
	for _, e := range expenses {
		for _, s := range e.Shares {
			if s.Status != domain.SharePending {
				continue
			}
			if _, ok := totals[s.UserID]; ok {
				totals[s.UserID] += s.Amount
			}
		}
	}
	return totals
}

// Reconcile classifies a bank-reported total against the system total.
// A nil bank figure means no figure has been supplied yet.
func Reconcile(systemTotal int64, bankTotal *int64) ReconcileStatus {
	if bankTotal == nil {
		return ReconcileIdle
	}
	diff := *bankTotal - systemTotal
	if diff < 0 {
		diff = -diff
	}
	if diff < Tolerance {
		return ReconcileMatch
	}
	return ReconcileMismatch
}
