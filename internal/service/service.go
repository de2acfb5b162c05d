package service

import (
	"github.com/tespinoza/cuentaclara/internal/handlers/accounts"
	"github.com/tespinoza/cuentaclara/internal/handlers/auth"
	"github.com/tespinoza/cuentaclara/internal/handlers/balance"
	"github.com/tespinoza/cuentaclara/internal/handlers/expenses"

	pkgauth "github.com/tespinoza/cuentaclara/pkg/auth"

	"github.com/tespinoza/cuentaclara/internal/repo"
	accountservice "github.com/tespinoza/cuentaclara/internal/service/accountservice"
	authservice "github.com/tespinoza/cuentaclara/internal/service/authservice"
	balanceservice "github.com/tespinoza/cuentaclara/internal/service/balanceservice"
	expenseservice "github.com/tespinoza/cuentaclara/internal/service/expenseservice"
)

type Services struct {
	AuthService    auth.Service
	AccountService accounts.Service
	ExpenseService expenses.Service
	BalanceService balance.Service
}

func New(repo *repo.Repositories) *Services {
	authService := authservice.New(repo.Profile, &pkgauth.HashService{}, &pkgauth.JWTService{})
	accountService := accountservice.New(repo.Account, repo.Profile)
	expenseService := expenseservice.New(repo.Expense, repo.Account)
	balanceService := balanceservice.New(repo.Expense, repo.Account, repo.Bank)

	return &Services{
		AuthService:    authService,
		AccountService: accountService,
		ExpenseService: expenseService,
		BalanceService: balanceService,
	}
}
