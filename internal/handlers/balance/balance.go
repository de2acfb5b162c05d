package balance

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tespinoza/cuentaclara/internal/domain"
	"github.com/tespinoza/cuentaclara/internal/dto"
	"github.com/tespinoza/cuentaclara/internal/service/balanceservice"
	"github.com/tespinoza/cuentaclara/pkg/utils"
)

type Service interface {
	GetSummary(ctx context.Context, accountID int) (*balanceservice.Summary, error)
	Reconcile(ctx context.Context, accountID int, reported *int64) (*balanceservice.Reconciliation, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Summary godoc
//
//	@Summary		Account balance summary
//	@Description	Total pending amount plus each accepted member's pending amount
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Account ID"
//	@Success		200	{object}	dto.SummaryResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{id}/summary [get]
func (h *BalanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	summary, err := h.balanceService.GetSummary(r.Context(), accountID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := dto.SummaryResponseDTO{
		TotalPending: summary.TotalPending,
		PerMember:    make([]dto.MemberBalanceDTO, 0, len(summary.PerMember)),
	}
	for _, mb := range summary.PerMember {
		resp.PerMember = append(resp.PerMember, dto.MemberBalanceDTO{
			UserID:  mb.UserID,
			Pending: mb.Pending,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// Reconciliation godoc
//
//	@Summary		Bank reconciliation
//	@Description	Classifies the bank-reported total against the computed pending total; pass reported= to override the stored bank figure
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id			path		int		true	"Account ID"
//	@Param			reported	query		int		false	"Bank-reported total in minor units"
//	@Success		200			{object}	dto.ReconciliationResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid reported amount"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{id}/reconciliation [get]
func (h *BalanceHandler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	var reported *int64
	if raw := r.URL.Query().Get("reported"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid reported amount")
			return
		}
		reported = &value
	}

	rec, err := h.balanceService.Reconcile(r.Context(), accountID, reported)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.ReconciliationResponseDTO{
		Status:      string(rec.Status),
		SystemTotal: rec.SystemTotal,
		BankTotal:   rec.BankTotal,
	})
}
