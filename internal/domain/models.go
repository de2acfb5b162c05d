package domain

import "time"

type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "PENDING"
	MembershipAccepted MembershipStatus = "ACCEPTED"
)

type ExpenseStatus string

const (
	ExpenseActive   ExpenseStatus = "ACTIVE"
	ExpenseArchived ExpenseStatus = "ARCHIVED"
)

type ShareStatus string

const (
	SharePending ShareStatus = "PENDING"
	SharePaid    ShareStatus = "PAID"
)

// Toggled returns the opposite share status. Applying it twice returns the
// original status.
func (s ShareStatus) Toggled() ShareStatus {
	if s == SharePaid {
		return SharePending
	}
	return SharePaid
}

type Profile struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	FullName     string    `db:"full_name"`
	AvatarURL    string    `db:"avatar_url"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type Account struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	OwnerID   int       `db:"owner_id"`
	BankRef   string    `db:"bank_ref"`
	CreatedAt time.Time `db:"created_at"`

	// Members is hydrated by the account service, not scanned from the
	// accounts relation.
	Members []Membership
}

type Membership struct {
	AccountID int              `db:"account_id"`
	UserID    int              `db:"user_id"`
	Status    MembershipStatus `db:"status"`
	InvitedAt time.Time        `db:"invited_at"`

	Profile *Profile
}

// UserAccount is an account joined with the requesting user's membership
// status, as returned by the accounts-for-user listing.
type UserAccount struct {
	Account
	MemberStatus MembershipStatus `db:"member_status"`
}

type Expense struct {
	ID        int           `db:"id"`
	AccountID int           `db:"account_id"`
	Title     string        `db:"title"`
	Amount    int64         `db:"amount"`
	Date      time.Time     `db:"date"`
	CreatedBy int           `db:"created_by"`
	Status    ExpenseStatus `db:"status"`
	CreatedAt time.Time     `db:"created_at"`

	Shares []Share
}

type Share struct {
	ID        int         `db:"id"`
	ExpenseID int         `db:"expense_id"`
	UserID    int         `db:"user_id"`
	Amount    int64       `db:"amount"`
	Status    ShareStatus `db:"status"`
}

type BankSnapshot struct {
	AccountID     int       `db:"account_id"`
	ReportedTotal int64     `db:"reported_total"`
	FetchedAt     time.Time `db:"fetched_at"`
}
