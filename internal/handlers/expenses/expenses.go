package expenses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tespinoza/cuentaclara/internal/domain"
	"github.com/tespinoza/cuentaclara/internal/dto"
	"github.com/tespinoza/cuentaclara/internal/service/expenseservice"
	"github.com/tespinoza/cuentaclara/pkg/auth"
	"github.com/tespinoza/cuentaclara/pkg/utils"
)

type Service interface {
	AddExpense(ctx context.Context, accountID, actorID int, title string, amount int64, date time.Time, shares []domain.Share) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expenseID int, upd expenseservice.ExpenseUpdate) (*domain.Expense, error)
	ToggleShareStatus(ctx context.Context, expenseID, userID int) (domain.ShareStatus, error)
	GetExpenses(ctx context.Context, accountID int) ([]domain.Expense, error)
	GetAllExpenses(ctx context.Context, accountID int) ([]domain.Expense, error)
	DeleteExpense(ctx context.Context, id int) error
	DeleteExpenses(ctx context.Context, ids []int) error
	ArchiveExpense(ctx context.Context, id int) error
	ArchiveExpenses(ctx context.Context, ids []int) error
}

type ExpenseHandler struct {
	expenseService Service
}

func New(expenseService Service) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotAllowed):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toShares(in []dto.ShareDTO) []domain.Share {
	shares := make([]domain.Share, 0, len(in))
	for _, s := range in {
		shares = append(shares, domain.Share{
			UserID: s.UserID,
			Amount: s.Amount,
			Status: domain.ShareStatus(s.Status),
		})
	}
	return shares
}

func toExpenseDTO(expense *domain.Expense) dto.ExpenseResponseDTO {
	resp := dto.ExpenseResponseDTO{
		ID:        expense.ID,
		AccountID: expense.AccountID,
		Title:     expense.Title,
		Amount:    expense.Amount,
		Date:      expense.Date.Format(dto.DateLayout),
		CreatedBy: expense.CreatedBy,
		Status:    string(expense.Status),
		Shares:    make([]dto.ShareDTO, 0, len(expense.Shares)),
	}
	for _, s := range expense.Shares {
		resp.Shares = append(resp.Shares, dto.ShareDTO{
			UserID: s.UserID,
			Amount: s.Amount,
			Status: string(s.Status),
		})
	}
	return resp
}

// Add godoc
//
//	@Summary		Add an expense
//	@Description	Create an expense with its per-member shares as one unit
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Account ID"
//	@Param			request	body		dto.AddExpenseRequestDTO	true	"Expense payload"
//	@Success		200		{object}	dto.ExpenseResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{id}/expenses [post]
func (h *ExpenseHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	accountID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	var req dto.AddExpenseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	expense, err := h.expenseService.AddExpense(r.Context(), accountID, userID, req.Title, req.Amount, date, toShares(req.Shares))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toExpenseDTO(expense))
}

// List godoc
//
//	@Summary		List expenses
//	@Description	Active expenses newest first; pass all=true to include archived ones
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int		true	"Account ID"
//	@Param			all	query		bool	false	"Include archived expenses"
//	@Success		200	{array}		dto.ExpenseResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{id}/expenses [get]
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	var expenses []domain.Expense
	if r.URL.Query().Get("all") == "true" {
		expenses, err = h.expenseService.GetAllExpenses(r.Context(), accountID)
	} else {
		expenses, err = h.expenseService.GetExpenses(r.Context(), accountID)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]dto.ExpenseResponseDTO, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, toExpenseDTO(&expenses[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// Update godoc
//
//	@Summary		Update an expense
//	@Description	Apply the provided fields; a shares array replaces the whole share set
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Expense ID"
//	@Param			request	body		dto.UpdateExpenseRequestDTO	true	"Update payload"
//	@Success		200		{object}	dto.ExpenseResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Expense not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/expenses/{id} [put]
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	var req dto.UpdateExpenseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := expenseservice.ExpenseUpdate{
		Title:  req.Title,
		Amount: req.Amount,
	}
	if req.Date != nil {
		date, err := time.Parse(dto.DateLayout, *req.Date)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		upd.Date = &date
	}
	if req.Shares != nil {
		upd.Shares = toShares(req.Shares)
	}

	expense, err := h.expenseService.UpdateExpense(r.Context(), expenseID, upd)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toExpenseDTO(expense))
}

// ToggleShare godoc
//
//	@Summary		Toggle a share's paid status
//	@Description	Flips one participant's share between PENDING and PAID
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Expense ID"
//	@Param			uid	path		int	true	"User ID"
//	@Success		200	{object}	dto.ToggleShareResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Share not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/expenses/{id}/shares/{uid}/toggle [post]
func (h *ExpenseHandler) ToggleShare(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}
	userID, err := strconv.Atoi(chi.URLParam(r, "uid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	status, err := h.expenseService.ToggleShareStatus(r.Context(), expenseID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToggleShareResponseDTO{Status: string(status)})
}

// Delete godoc
//
//	@Summary		Delete an expense
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Expense ID"
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Expense not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	if err := h.expenseService.DeleteExpense(r.Context(), expenseID); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Expense deleted"})
}

// BatchDelete godoc
//
//	@Summary		Delete multiple expenses
//	@Description	The whole id set goes to the backend as one request
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ExpenseIDsRequestDTO	true	"Expense ids"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/expenses/delete [post]
func (h *ExpenseHandler) BatchDelete(w http.ResponseWriter, r *http.Request) {
	var req dto.ExpenseIDsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.expenseService.DeleteExpenses(r.Context(), req.IDs); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Expenses deleted"})
}

// BatchArchive godoc
//
//	@Summary		Archive multiple expenses
//	@Description	Soft delete; archived expenses drop out of the default listing
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ExpenseIDsRequestDTO	true	"Expense ids"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/expenses/archive [post]
func (h *ExpenseHandler) BatchArchive(w http.ResponseWriter, r *http.Request) {
	var req dto.ExpenseIDsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.expenseService.ArchiveExpenses(r.Context(), req.IDs); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Expenses archived"})
}
