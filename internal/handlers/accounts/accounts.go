package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tespinoza/cuentaclara/internal/domain"
	"github.com/tespinoza/cuentaclara/internal/dto"
	"github.com/tespinoza/cuentaclara/internal/service/accountservice"
	"github.com/tespinoza/cuentaclara/pkg/auth"
	"github.com/tespinoza/cuentaclara/pkg/utils"
)

type Service interface {
	CreateAccount(ctx context.Context, name string, ownerID int, inviteeIDs []int) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID, actorID int, name *string, inviteeIDs []int) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID, actorID int) error
	InviteByEmail(ctx context.Context, accountID, actorID int, email string) (*domain.Membership, error)
	Accept(ctx context.Context, accountID, userID int) error
	Reject(ctx context.Context, accountID, userID int) error
	RemoveMember(ctx context.Context, accountID, actorID, userID int) error
	ListForUser(ctx context.Context, userID int) (*accountservice.AccountPartitions, error)
	SetBankRef(ctx context.Context, accountID, actorID int, ref string) error
}

type AccountHandler struct {
	accountService Service
}

func New(accountService Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyMember):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotAllowed):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func accountID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func toAccountDTO(account *domain.Account) dto.AccountResponseDTO {
	resp := dto.AccountResponseDTO{
		ID:      account.ID,
		Name:    account.Name,
		OwnerID: account.OwnerID,
		BankRef: account.BankRef,
		Members: make([]dto.MemberDTO, 0, len(account.Members)),
	}
	for _, m := range account.Members {
		member := dto.MemberDTO{
			UserID: m.UserID,
			Status: string(m.Status),
		}
		if m.Profile != nil {
			member.FullName = m.Profile.FullName
			member.AvatarURL = m.Profile.AvatarURL
		}
		resp.Members = append(resp.Members, member)
	}
	return resp
}

// List godoc
//
//	@Summary		List my accounts
//	@Description	Accounts partitioned into active memberships and open invitations
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AccountListResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts [get]
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	partitions, err := h.accountService.ListForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := dto.AccountListResponseDTO{
		Active:      make([]dto.AccountResponseDTO, 0, len(partitions.Active)),
		Invitations: make([]dto.AccountResponseDTO, 0, len(partitions.Invitations)),
	}
	for i := range partitions.Active {
		resp.Active = append(resp.Active, toAccountDTO(&partitions.Active[i]))
	}
	for i := range partitions.Invitations {
		resp.Invitations = append(resp.Invitations, toAccountDTO(&partitions.Invitations[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// Create godoc
//
//	@Summary		Create an account
//	@Description	Create a shared account; the caller becomes owner, invitees start pending
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateAccountRequestDTO	true	"Account payload"
//	@Success		200		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts [post]
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateAccountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), req.Name, userID, req.InviteeIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toAccountDTO(account))
}

// Update godoc
//
//	@Summary		Update an account
//	@Description	Rename and/or invite new members; existing members are never removed here
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Account ID"
//	@Param			request	body		dto.UpdateAccountRequestDTO	true	"Update payload"
//	@Success		200		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{id} [put]
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	var req dto.UpdateAccountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accountService.UpdateAccount(r.Context(), id, userID, req.Name, req.InviteeIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toAccountDTO(account))
}

// Delete godoc
//
//	@Summary		Delete an account
//	@Description	Owner-only; cascades to all expenses, shares and memberships
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Account ID"
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not the owner"
//	@Failure		404	{object}	utils.Response	"Account not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{id} [delete]
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	if err := h.accountService.DeleteAccount(r.Context(), id, userID); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Account deleted"})
}

// Invite godoc
//
//	@Summary		Invite a user by email
//	@Description	Adds a pending membership for the profile with the given email
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Account ID"
//	@Param			request	body		dto.InviteRequestDTO	true	"Invite payload"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Invalid request body or self-invite"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Account or profile not found"
//	@Failure		409		{object}	utils.Response	"Already a member"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{id}/invite [post]
func (h *AccountHandler) Invite(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	var req dto.InviteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.accountService.InviteByEmail(r.Context(), id, userID, req.Email); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Invitation sent"})
}

// Accept godoc
//
//	@Summary		Accept an invitation
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Account ID"
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"No pending invitation"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{id}/accept [post]
func (h *AccountHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	if err := h.accountService.Accept(r.Context(), id, userID); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Invitation accepted"})
}

// Reject godoc
//
//	@Summary		Reject an invitation
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Account ID"
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"No pending invitation"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{id}/reject [post]
func (h *AccountHandler) Reject(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	if err := h.accountService.Reject(r.Context(), id, userID); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Invitation rejected"})
}

// RemoveMember godoc
//
//	@Summary		Remove a member
//	@Description	Not supported; always rejected
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Account ID"
//	@Param			uid	path		int	true	"User ID"
//	@Failure		403	{object}	utils.Response	"Removing members is not supported"
//	@Router			/api/accounts/{id}/members/{uid} [delete]
func (h *AccountHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}
	memberID, err := strconv.Atoi(chi.URLParam(r, "uid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.accountService.RemoveMember(r.Context(), id, userID, memberID); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Member removed"})
}

// SetBankRef godoc
//
//	@Summary		Set the bank reference
//	@Description	Owner-only; the reference must carry a valid Luhn check digit
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Account ID"
//	@Param			request	body		dto.BankRefRequestDTO	true	"Bank reference payload"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Invalid bank reference"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Not the owner"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/accounts/{id}/bankref [put]
func (h *AccountHandler) SetBankRef(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := accountID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	var req dto.BankRefRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.accountService.SetBankRef(r.Context(), id, userID, req.BankRef); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Bank reference saved"})
}
