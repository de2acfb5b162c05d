package repo

import (
	"github.com/tespinoza/cuentaclara/internal/pg"
	accountrepo "github.com/tespinoza/cuentaclara/internal/repo/account-repo"
	bankrepo "github.com/tespinoza/cuentaclara/internal/repo/bank-repo"
	expenserepo "github.com/tespinoza/cuentaclara/internal/repo/expense-repo"
	profilerepo "github.com/tespinoza/cuentaclara/internal/repo/profile-repo"
)

// Repositories holds the concrete repos; the same account and profile
// repos back several services, so the consumers narrow them to their
// own interfaces at wiring time.
type Repositories struct {
	Profile *profilerepo.Repository
	Account *accountrepo.Repository
	Expense *expenserepo.Repository
	Bank    *bankrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		Profile: profilerepo.New(conn),
		Account: accountrepo.New(conn, txManager),
		Expense: expenserepo.New(conn, txManager),
		Bank:    bankrepo.New(conn),
	}
}
