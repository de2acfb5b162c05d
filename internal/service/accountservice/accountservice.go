package accountservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/tespinoza/cuentaclara/internal/domain"
	"github.com/tespinoza/cuentaclara/pkg/validate"
	"go.uber.org/zap"
)

type Repo interface {
	FindByID(ctx context.Context, id int) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Rename(ctx context.Context, id int, name string) error
	SetBankRef(ctx context.Context, id int, ref string) error
	Delete(ctx context.Context, id int) error
	FindMember(ctx context.Context, accountID, userID int) (*domain.Membership, error)
	FindMembers(ctx context.Context, accountID int) ([]domain.Membership, error)
	AddMember(ctx context.Context, member *domain.Membership) error
	UpdateMemberStatus(ctx context.Context, accountID, userID int, status domain.MembershipStatus) error
	DeleteMember(ctx context.Context, accountID, userID int) error
	FindForUser(ctx context.Context, userID int) ([]domain.UserAccount, error)
	FindWithBankRef(ctx context.Context) ([]domain.Account, error)
}

type ProfileRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	FindByIDs(ctx context.Context, ids []int) ([]domain.Profile, error)
}

type Service struct {
	accountRepo Repo
	profileRepo ProfileRepo
}

func New(accountRepo Repo, profileRepo ProfileRepo) *Service {
	return &Service{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
	}
}

// AccountPartitions splits a user's accounts the way the selection screen
// shows them: accounts they actively belong to and open invitations.
type AccountPartitions struct {
	Active      []domain.Account
	Invitations []domain.Account
}

// CreateAccount creates the account, makes the owner an ACCEPTED member and
// invites everyone else as PENDING. Self-invites are filtered, duplicates
// collapse.
func (s *Service) CreateAccount(ctx context.Context, name string, ownerID int, inviteeIDs []int) (*domain.Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: account name cannot be blank", domain.ErrValidation)
	}

	account, err := s.accountRepo.Create(ctx, &domain.Account{Name: name, OwnerID: ownerID})
	if err != nil {
		zap.L().Error("can't create account", zap.Error(err))
		return nil, err
	}

	owner := &domain.Membership{
		AccountID: account.ID,
		UserID:    ownerID,
		Status:    domain.MembershipAccepted,
	}
	if err := s.accountRepo.AddMember(ctx, owner); err != nil {
		zap.L().Error("can't add owner membership", zap.Error(err))
		return nil, err
	}

	seen := map[int]bool{ownerID: true}
	for _, inviteeID := range inviteeIDs {
		if seen[inviteeID] {
			continue
		}
		seen[inviteeID] = true

		member := &domain.Membership{
			AccountID: account.ID,
			UserID:    inviteeID,
			Status:    domain.MembershipPending,
		}
		if err := s.accountRepo.AddMember(ctx, member); err != nil {
			zap.L().Error("can't add membership", zap.Error(err))
			return nil, err
		}
	}

	zap.L().Info("account created", zap.Int("accountID", account.ID), zap.Int("ownerID", ownerID))
	return s.hydrate(ctx, account)
}

// UpdateAccount renames and adds new PENDING invitees. It never removes or
// demotes existing members: ids already present are skipped silently.
func (s *Service) UpdateAccount(ctx context.Context, accountID, actorID int, name *string, inviteeIDs []int) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
	}

	if account.OwnerID != actorID {
		member, err := s.accountRepo.FindMember(ctx, accountID, actorID)
		if err != nil {
			return nil, err
		}
		if member == nil || member.Status != domain.MembershipAccepted {
			return nil, fmt.Errorf("%w: only members can modify account %d", domain.ErrNotAllowed, accountID)
		}
	}

	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, fmt.Errorf("%w: account name cannot be blank", domain.ErrValidation)
		}
		if err := s.accountRepo.Rename(ctx, accountID, *name); err != nil {
			return nil, err
		}
		account.Name = *name
	}

	for _, inviteeID := range inviteeIDs {
		if inviteeID == account.OwnerID {
			continue
		}
		existing, err := s.accountRepo.FindMember(ctx, accountID, inviteeID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		member := &domain.Membership{
			AccountID: accountID,
			UserID:    inviteeID,
			Status:    domain.MembershipPending,
		}
		if err := s.accountRepo.AddMember(ctx, member); err != nil {
			return nil, err
		}
	}

	return s.hydrate(ctx, account)
}

// DeleteAccount is owner-only and cascades to expenses, shares, memberships
// and the bank snapshot in a single transaction.
func (s *Service) DeleteAccount(ctx context.Context, accountID, actorID int) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
	}
	if account.OwnerID != actorID {
		return fmt.Errorf("%w: only the owner can delete an account", domain.ErrNotAllowed)
	}

	if err := s.accountRepo.Delete(ctx, accountID); err != nil {
		zap.L().Error("can't delete account", zap.Error(err))
		return err
	}
	zap.L().Info("account deleted", zap.Int("accountID", accountID))
	return nil
}

// Invite adds a PENDING membership. Inviting the owner never creates a
// duplicate row and raises no error; inviting anyone already on the account
// fails with ErrAlreadyMember.
func (s *Service) Invite(ctx context.Context, accountID, userID int) (*domain.Membership, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
	}

	existing, err := s.accountRepo.FindMember(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	if userID == account.OwnerID {
		if existing != nil {
			return existing, nil
		}
		owner := &domain.Membership{
			AccountID: accountID,
			UserID:    userID,
			Status:    domain.MembershipAccepted,
		}
		if err := s.accountRepo.AddMember(ctx, owner); err != nil {
			return nil, err
		}
		return owner, nil
	}

	if existing != nil {
		return nil, fmt.Errorf("%w: user %d on account %d", domain.ErrAlreadyMember, userID, accountID)
	}

	member := &domain.Membership{
		AccountID: accountID,
		UserID:    userID,
		Status:    domain.MembershipPending,
	}
	if err := s.accountRepo.AddMember(ctx, member); err != nil {
		zap.L().Error("can't invite user", zap.Error(err))
		return nil, err
	}
	zap.L().Info("user invited", zap.Int("accountID", accountID), zap.Int("userID", userID))
	return member, nil
}

// InviteByEmail resolves the profile first; unknown emails and self-invites
// are rejected before any state changes.
func (s *Service) InviteByEmail(ctx context.Context, accountID, actorID int, email string) (*domain.Membership, error) {
	profile, err := s.FindProfileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile.ID == actorID {
		return nil, fmt.Errorf("%w: you cannot invite yourself", domain.ErrValidation)
	}
	return s.Invite(ctx, accountID, profile.ID)
}

// Accept moves the caller's own membership PENDING -> ACCEPTED.
func (s *Service) Accept(ctx context.Context, accountID, userID int) error {
	member, err := s.accountRepo.FindMember(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if member == nil || member.Status != domain.MembershipPending {
		return fmt.Errorf("%w: no pending invitation for user %d on account %d", domain.ErrNotFound, userID, accountID)
	}
	if err := s.accountRepo.UpdateMemberStatus(ctx, accountID, userID, domain.MembershipAccepted); err != nil {
		return err
	}
	zap.L().Info("invitation accepted", zap.Int("accountID", accountID), zap.Int("userID", userID))
	return nil
}

// Reject removes a PENDING membership row. Accepted members cannot leave this
// way; there is no demotion path.
func (s *Service) Reject(ctx context.Context, accountID, userID int) error {
	member, err := s.accountRepo.FindMember(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if member == nil || member.Status != domain.MembershipPending {
		return fmt.Errorf("%w: no pending invitation for user %d on account %d", domain.ErrNotFound, userID, accountID)
	}
	if err := s.accountRepo.DeleteMember(ctx, accountID, userID); err != nil {
		return err
	}
	zap.L().Info("invitation rejected", zap.Int("accountID", accountID), zap.Int("userID", userID))
	return nil
}

// RemoveMember always refuses. Removing members is intentionally unsupported;
// the caller gets a visible rejection instead of a silent no-op.
func (s *Service) RemoveMember(ctx context.Context, accountID, actorID, userID int) error {
	return fmt.Errorf("%w: removing members is not supported", domain.ErrNotAllowed)
}

// ListForUser partitions the user's accounts into active memberships and open
// invitations. Accounts the user owns always land in the active partition.
func (s *Service) ListForUser(ctx context.Context, userID int) (*AccountPartitions, error) {
	userAccounts, err := s.accountRepo.FindForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	partitions := &AccountPartitions{}
	for _, ua := range userAccounts {
		account, err := s.hydrate(ctx, &ua.Account)
		if err != nil {
			return nil, err
		}
		if ua.MemberStatus == domain.MembershipAccepted || ua.OwnerID == userID {
			partitions.Active = append(partitions.Active, *account)
		} else {
			partitions.Invitations = append(partitions.Invitations, *account)
		}
	}
	return partitions, nil
}

// Membership reports a user's status on an account. The owner always reads
// ACCEPTED, synthesized if the row was never inserted.
func (s *Service) Membership(ctx context.Context, accountID, userID int) (*domain.Membership, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
	}

	member, err := s.accountRepo.FindMember(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		if userID == account.OwnerID {
			return &domain.Membership{
				AccountID: accountID,
				UserID:    userID,
				Status:    domain.MembershipAccepted,
			}, nil
		}
		return nil, fmt.Errorf("%w: user %d is not on account %d", domain.ErrNotFound, userID, accountID)
	}
	return member, nil
}

func (s *Service) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: no profile with email %s", domain.ErrNotFound, email)
	}
	return profile, nil
}

// SetBankRef attaches the Luhn-validated bank reference that the balance feed
// polls for this account. Owner-only.
func (s *Service) SetBankRef(ctx context.Context, accountID, actorID int, ref string) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
	}
	if account.OwnerID != actorID {
		return fmt.Errorf("%w: only the owner can set the bank reference", domain.ErrNotAllowed)
	}
	if !validate.IsLuhn(ref) {
		return fmt.Errorf("%w: invalid bank reference number", domain.ErrValidation)
	}
	return s.accountRepo.SetBankRef(ctx, accountID, ref)
}

// hydrate attaches the member list, owner synthesized as ACCEPTED when the
// membership row is missing, profiles loaded in one query.
func (s *Service) hydrate(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	members, err := s.accountRepo.FindMembers(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	ownerPresent := false
	for _, m := range members {
		if m.UserID == account.OwnerID {
			ownerPresent = true
			break
		}
	}
	if !ownerPresent {
		members = append([]domain.Membership{{
			AccountID: account.ID,
			UserID:    account.OwnerID,
			Status:    domain.MembershipAccepted,
		}}, members...)
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	profiles, err := s.profileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*domain.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}
	for i := range members {
		members[i].Profile = byID[members[i].UserID]
	}

	account.Members = members
	return account, nil
}
