package split

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tespinoza/cuentaclara/internal/domain"
)

func TestEven(t *testing.T) {
	tests := []struct {
		name         string
		total        int64
		participants []int
		expected     []int64
		expectErr    bool
	}{
		{
			name:         "Single participant gets the full amount",
			total:        1000,
			participants: []int{1},
			expected:     []int64{1000},
		},
		{
			name:         "Even split is exact",
			total:        1200,
			participants: []int{1, 2},
			expected:     []int64{600, 600},
		},
		{
			name:         "Odd amount rounds half up",
			total:        1001,
			participants: []int{1, 2},
			expected:     []int64{501, 501},
		},
		{
			name:         "Three-way split rounds each share",
			total:        1000,
			participants: []int{1, 2, 3},
			expected:     []int64{333, 333, 333},
		},
		{
			name:         "Amount near the int64 ceiling keeps shares positive",
			total:        math.MaxInt64,
			participants: []int{1, 2, 3},
			expected:     []int64{3074457345618258602, 3074457345618258602, 3074457345618258602},
		},
		{
			name:         "Zero amount rejected",
			total:        0,
			participants: []int{1},
			expectErr:    true,
		},
		{
			name:         "Negative amount rejected",
			total:        -500,
			participants: []int{1},
			expectErr:    true,
		},
		{
			name:         "Empty participant set rejected",
			total:        1000,
			participants: nil,
			expectErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Even(tt.total, tt.participants)
			if tt.expectErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrValidation))
				return
			}
			assert.NoError(t, err)
			assert.Len(t, shares, len(tt.participants))
			for i, s := range shares {
				assert.Equal(t, tt.participants[i], s.UserID)
				assert.Equal(t, tt.expected[i], s.Amount)
				assert.Equal(t, domain.SharePending, s.Status)
			}
		})
	}
}

func TestEvenDriftBound(t *testing.T) {
	totals := []int64{1, 7, 99, 1000, 1001, 99999, 123457}
	for _, total := range totals {
		for n := 1; n <= 7; n++ {
			participants := make([]int, n)
			for i := range participants {
				participants[i] = i + 1
			}
			shares, err := Even(total, participants)
			assert.NoError(t, err)

			var sum int64
			for _, s := range shares {
				assert.GreaterOrEqual(t, s.Amount, int64(0))
				sum += s.Amount
			}
			drift := sum - total
			if drift < 0 {
				drift = -drift
			}
			assert.LessOrEqual(t, drift, int64(n/2),
				"total=%d n=%d sum=%d", total, n, sum)
		}
	}
}

func expenseWith(shares ...domain.Share) domain.Expense {
	return domain.Expense{Shares: shares}
}

func TestPendingTotal(t *testing.T) {
	expenses := []domain.Expense{
		expenseWith(
			domain.Share{UserID: 1, Amount: 600, Status: domain.SharePaid},
			domain.Share{UserID: 2, Amount: 600, Status: domain.SharePending},
		),
		expenseWith(
			domain.Share{UserID: 1, Amount: 250, Status: domain.SharePending},
			domain.Share{UserID: 2, Amount: 250, Status: domain.SharePending},
		),
	}

	assert.Equal(t, int64(1100), PendingTotal(expenses))

	reversed := []domain.Expense{expenses[1], expenses[0]}
	assert.Equal(t, PendingTotal(expenses), PendingTotal(reversed))

	assert.Equal(t, int64(0), PendingTotal(nil))
	assert.Equal(t, int64(0), PendingTotal([]domain.Expense{}))
}

func TestPendingForUser(t *testing.T) {
	expenses := []domain.Expense{
		expenseWith(
			domain.Share{UserID: 1, Amount: 600, Status: domain.SharePaid},
			domain.Share{UserID: 2, Amount: 600, Status: domain.SharePending},
		),
		expenseWith(
			domain.Share{UserID: 2, Amount: 300, Status: domain.SharePending},
		),
	}

	assert.Equal(t, int64(0), PendingForUser(expenses, 1))
	assert.Equal(t, int64(900), PendingForUser(expenses, 2))
	assert.Equal(t, int64(0), PendingForUser(expenses, 99))
}

func TestPerMember(t *testing.T) {
	expenses := []domain.Expense{
		expenseWith(
			domain.Share{UserID: 1, Amount: 500, Status: domain.SharePending},
			domain.Share{UserID: 2, Amount: 500, Status: domain.SharePaid},
		),
	}

	totals := PerMember(expenses, []int{1, 2, 3})
	assert.Equal(t, int64(500), totals[1])
	assert.Equal(t, int64(0), totals[2])
	assert.Equal(t, int64(0), totals[3])
	assert.Len(t, totals, 3)
}

func TestReconcile(t *testing.T) {
	bank := func(v int64) *int64 { return &v }

	tests := []struct {
		name     string
		system   int64
		bank     *int64
		expected ReconcileStatus
	}{
		{"No bank figure yet", 10000, nil, ReconcileIdle},
		{"Difference inside tolerance", 10000, bank(10050), ReconcileMatch},
		{"Exact match", 10000, bank(10000), ReconcileMatch},
		{"Difference at tolerance boundary", 10000, bank(10100), ReconcileMismatch},
		{"Difference above tolerance", 10000, bank(10200), ReconcileMismatch},
		{"Bank below system", 10000, bank(9850), ReconcileMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Reconcile(tt.system, tt.bank))
		})
	}
}
