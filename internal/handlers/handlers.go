package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/tespinoza/cuentaclara/docs"
	accounthandlers "github.com/tespinoza/cuentaclara/internal/handlers/accounts"
	authhandlers "github.com/tespinoza/cuentaclara/internal/handlers/auth"
	balancehandlers "github.com/tespinoza/cuentaclara/internal/handlers/balance"
	expensehandlers "github.com/tespinoza/cuentaclara/internal/handlers/expenses"
	"github.com/tespinoza/cuentaclara/internal/service"
	"github.com/tespinoza/cuentaclara/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Invite(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
	SetBankRef(w http.ResponseWriter, r *http.Request)
}

type ExpenseHandler interface {
	Add(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ToggleShare(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	BatchDelete(w http.ResponseWriter, r *http.Request)
	BatchArchive(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	Reconciliation(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	AccountHandler AccountHandler
	ExpenseHandler ExpenseHandler
	BalanceHandler BalanceHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		AccountHandler: accounthandlers.New(s.AccountService),
		ExpenseHandler: expensehandlers.New(s.ExpenseService),
		BalanceHandler: balancehandlers.New(s.BalanceService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", h.AuthHandler.Register)
		r.Post("/user/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Put("/user/profile", h.AuthHandler.UpdateProfile)

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", h.AccountHandler.List)
				r.Post("/", h.AccountHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", h.AccountHandler.Update)
					r.Delete("/", h.AccountHandler.Delete)
					r.Post("/invite", h.AccountHandler.Invite)
					r.Post("/accept", h.AccountHandler.Accept)
					r.Post("/reject", h.AccountHandler.Reject)
					r.Delete("/members/{uid}", h.AccountHandler.RemoveMember)
					r.Put("/bankref", h.AccountHandler.SetBankRef)

					r.Post("/expenses", h.ExpenseHandler.Add)
					r.Get("/expenses", h.ExpenseHandler.List)

					r.Get("/summary", h.BalanceHandler.Summary)
					r.Get("/reconciliation", h.BalanceHandler.Reconciliation)
				})
			})
			r.Route("/expenses", func(r chi.Router) {
				r.Post("/delete", h.ExpenseHandler.BatchDelete)
				r.Post("/archive", h.ExpenseHandler.BatchArchive)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", h.ExpenseHandler.Update)
					r.Delete("/", h.ExpenseHandler.Delete)
					r.Post("/shares/{uid}/toggle", h.ExpenseHandler.ToggleShare)
				})
			})
		})
	})

	return r
}
