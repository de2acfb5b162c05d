package accountservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tespinoza/cuentaclara/internal/domain"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockProfileRepo) {
	ctrl := gomock.NewController(t)
	accountRepo := NewMockRepo(ctrl)
	profileRepo := NewMockProfileRepo(ctrl)
	service := New(accountRepo, profileRepo)
	defer ctrl.Finish()
	return service, accountRepo, profileRepo
}

func TestCreateAccount(t *testing.T) {
	service, accountRepo, profileRepo := NewMock(t)

	tests := []struct {
		name        string
		accountName string
		ownerID     int
		inviteeIDs  []int
		prepareMock func()
		expectedErr error
		checkResult func(t *testing.T, account *domain.Account)
	}{
		{
			name:        "Blank name is rejected",
			accountName: "   ",
			ownerID:     1,
			prepareMock: func() {},
			expectedErr: domain.ErrValidation,
		},
		{
			name:        "Owner becomes an accepted member",
			accountName: "Flat 12",
			ownerID:     1,
			inviteeIDs:  nil,
			prepareMock: func() {
				accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, account *domain.Account) (*domain.Account, error) {
						account.ID = 10
						return account, nil
					})
				accountRepo.EXPECT().AddMember(gomock.Any(), &domain.Membership{
					AccountID: 10,
					UserID:    1,
					Status:    domain.MembershipAccepted,
				}).Return(nil)
				accountRepo.EXPECT().FindMembers(gomock.Any(), 10).Return([]domain.Membership{
					{AccountID: 10, UserID: 1, Status: domain.MembershipAccepted},
				}, nil)
				profileRepo.EXPECT().FindByIDs(gomock.Any(), []int{1}).Return([]domain.Profile{{ID: 1}}, nil)
			},
			checkResult: func(t *testing.T, account *domain.Account) {
				assert.Equal(t, 10, account.ID)
				assert.Len(t, account.Members, 1)
				assert.Equal(t, domain.MembershipAccepted, account.Members[0].Status)
			},
		},
		{
			name:        "Invitees are pending, duplicates and self-invites collapse",
			accountName: "Road trip",
			ownerID:     1,
			inviteeIDs:  []int{2, 2, 1, 3},
			prepareMock: func() {
				accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, account *domain.Account) (*domain.Account, error) {
						account.ID = 11
						return account, nil
					})
				accountRepo.EXPECT().AddMember(gomock.Any(), &domain.Membership{
					AccountID: 11, UserID: 1, Status: domain.MembershipAccepted,
				}).Return(nil)
				accountRepo.EXPECT().AddMember(gomock.Any(), &domain.Membership{
					AccountID: 11, UserID: 2, Status: domain.MembershipPending,
				}).Return(nil)
				accountRepo.EXPECT().AddMember(gomock.Any(), &domain.Membership{
					AccountID: 11, UserID: 3, Status: domain.MembershipPending,
				}).Return(nil)
				accountRepo.EXPECT().FindMembers(gomock.Any(), 11).Return([]domain.Membership{
					{AccountID: 11, UserID: 1, Status: domain.MembershipAccepted},
					{AccountID: 11, UserID: 2, Status: domain.MembershipPending},
					{AccountID: 11, UserID: 3, Status: domain.MembershipPending},
				}, nil)
				profileRepo.EXPECT().FindByIDs(gomock.Any(), []int{1, 2, 3}).Return([]domain.Profile{
					{ID: 1}, {ID: 2}, {ID: 3},
				}, nil)
			},
			checkResult: func(t *testing.T, account *domain.Account) {
				assert.Len(t, account.Members, 3)
			},
		},
		{
			name:        "Repo failure bubbles up",
			accountName: "Flat 12",
			ownerID:     1,
			prepareMock: func() {
				accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("some error"))
			},
			expectedErr: errors.New("some error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			account, err := service.CreateAccount(context.Background(), tt.accountName, tt.ownerID, tt.inviteeIDs)
			if tt.expectedErr != nil {
				assert.Error(t, err)
				if errors.Is(tt.expectedErr, domain.ErrValidation) {
					assert.ErrorIs(t, err, domain.ErrValidation)
				}
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				if tt.checkResult != nil {
					tt.checkResult(t, account)
				}
			}
		})
	}
}

func TestUpdateAccount(t *testing.T) {
	service, accountRepo, profileRepo := NewMock(t)

	name := "Renamed"
	blank := "  "
	tests := []struct {
		name        string
		actorID     int
		newName     *string
		inviteeIDs  []int
		prepareMock func()
		expectedErr error
	}{
		{
			name:    "Unknown account",
			actorID: 1,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(nil, nil)
			},
			expectedErr: domain.ErrNotFound,
		},
		{
			name:    "Blank rename is rejected",
			actorID: 1,
			newName: &blank,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
			},
			expectedErr: domain.ErrValidation,
		},
		{
			name:    "Outsider cannot modify the account",
			actorID: 5,
			newName: &name,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
				accountRepo.EXPECT().FindMember(gomock.Any(), 10, 5).Return(nil, nil)
			},
			expectedErr: domain.ErrNotAllowed,
		},
		{
			name:    "Pending invitee cannot modify the account",
			actorID: 6,
			newName: &name,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
				accountRepo.EXPECT().FindMember(gomock.Any(), 10, 6).Return(&domain.Membership{
					AccountID: 10, UserID: 6, Status: domain.MembershipPending,
				}, nil)
			},
			expectedErr: domain.ErrNotAllowed,
		},
		{
			name:    "Accepted member may rename",
			actorID: 2,
			newName: &name,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1, Name: "Old"}, nil)
				accountRepo.EXPECT().FindMember(gomock.Any(), 10, 2).Return(&domain.Membership{
					AccountID: 10, UserID: 2, Status: domain.MembershipAccepted,
				}, nil)
				accountRepo.EXPECT().Rename(gomock.Any(), 10, "Renamed").Return(nil)
				accountRepo.EXPECT().FindMembers(gomock.Any(), 10).Return([]domain.Membership{
					{AccountID: 10, UserID: 1, Status: domain.MembershipAccepted},
					{AccountID: 10, UserID: 2, Status: domain.MembershipAccepted},
				}, nil)
				profileRepo.EXPECT().FindByIDs(gomock.Any(), []int{1, 2}).Return(nil, nil)
			},
		},
		{
			name:       "Rename and invite, owner and existing members skipped",
			actorID:    1,
			newName:    &name,
			inviteeIDs: []int{1, 2, 3},
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1, Name: "Old"}, nil)
				accountRepo.EXPECT().Rename(gomock.Any(), 10, "Renamed").Return(nil)
				accountRepo.EXPECT().FindMember(gomock.Any(), 10, 2).Return(&domain.Membership{AccountID: 10, UserID: 2, Status: domain.MembershipAccepted}, nil)
				accountRepo.EXPECT().FindMember(gomock.Any(), 10, 3).Return(nil, nil)
				accountRepo.EXPECT().AddMember(gomock.Any(), &domain.Membership{
					AccountID: 10, UserID: 3, Status: domain.MembershipPending,
				}).Return(nil)
				accountRepo.EXPECT().FindMembers(gomock.Any(), 10).Return([]domain.Membership{
					{AccountID: 10, UserID: 1, Status: domain.MembershipAccepted},
					{AccountID: 10, UserID: 2, Status: domain.MembershipAccepted},
					{AccountID: 10, UserID: 3, Status: domain.MembershipPending},
				}, nil)
				profileRepo.EXPECT().FindByIDs(gomock.Any(), []int{1, 2, 3}).Return(nil, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			account, err := service.UpdateAccount(context.Background(), 10, tt.actorID, tt.newName, tt.inviteeIDs)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Renamed", account.Name)
			}
		})
	}
}

func TestDeleteAccount(t *testing.T) {
	service, accountRepo, _ := NewMock(t)

	tests := []struct {
		name        string
		actorID     int
		prepareMock func()
		expectedErr error
	}{
		{
			name:    "Unknown account",
			actorID: 1,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(nil, nil)
			},
			expectedErr: domain.ErrNotFound,
		},
		{
			name:    "Non-owner is refused",
			actorID: 2,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
			},
			expectedErr: domain.ErrNotAllowed,
		},
		{
			name:    "Owner deletes",
			actorID: 1,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
				accountRepo.EXPECT().Delete(gomock.Any(), 10).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := service.DeleteAccount(context.Background(), 10, tt.actorID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInvite(t *testing.T) {
	service, accountRepo, _ := NewMock(t)

	tests := []struct {
		name           string
		userID         int
		prepareMock    func()
		expectedErr    error
		expectedStatus domain.MembershipStatus
	}{
		{
			name:   "New invitee is pending",
			userID: 2,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
				accountRepo.EXPECT().FindMember(gomock.Any(), 10, 2).Return(nil, nil)
				accountRepo.EXPECT().AddMember(gomock.Any(), &domain.Membership{
					AccountID: 10, UserID: 2, Status: domain.MembershipPending,
				}).Return(nil)
			},
			expectedStatus: domain.MembershipPending,
		},
		{
			name:   "Existing member conflicts",
			userID: 2,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
				accountRepo.EXPECT().FindMember(gomock.Any(), 10, 2).Return(&domain.Membership{
					AccountID: 10, UserID: 2, Status: domain.MembershipPending,
				}, nil)
			},
			expectedErr: domain.ErrAlreadyMember,
		},
		{
			name:   "Inviting the owner synthesizes an accepted row",
			userID: 1,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
				accountRepo.EXPECT().FindMember(gomock.Any(), 10, 1).Return(nil, nil)
				accountRepo.EXPECT().AddMember(gomock.Any(), &domain.Membership{
					AccountID: 10, UserID: 1, Status: domain.MembershipAccepted,
				}).Return(nil)
			},
			expectedStatus: domain.MembershipAccepted,
		},
		{
			name:   "Unknown account",
			userID: 2,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(nil, nil)
			},
			expectedErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			member, err := service.Invite(context.Background(), 10, tt.userID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, member)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedStatus, member.Status)
			}
		})
	}
}

func TestInviteByEmail(t *testing.T) {
	service, accountRepo, profileRepo := NewMock(t)

	tests := []struct {
		name        string
		email       string
		prepareMock func()
		expectedErr error
	}{
		{
			name:  "Unknown email",
			email: "nobody@example.com",
			prepareMock: func() {
				profileRepo.EXPECT().FindByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)
			},
			expectedErr: domain.ErrNotFound,
		},
		{
			name:  "Self-invite is rejected",
			email: "me@example.com",
			prepareMock: func() {
				profileRepo.EXPECT().FindByEmail(gomock.Any(), "me@example.com").Return(&domain.Profile{ID: 1}, nil)
			},
			expectedErr: domain.ErrValidation,
		},
		{
			name:  "Resolved invitee goes through the invite path",
			email: "friend@example.com",
			prepareMock: func() {
				profileRepo.EXPECT().FindByEmail(gomock.Any(), "friend@example.com").Return(&domain.Profile{ID: 2}, nil)
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
				accountRepo.EXPECT().FindMember(gomock.Any(), 10, 2).Return(nil, nil)
				accountRepo.EXPECT().AddMember(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			member, err := service.InviteByEmail(context.Background(), 10, 1, tt.email)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, member)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, member)
			}
		})
	}
}

func TestAcceptAndReject(t *testing.T) {
	service, accountRepo, _ := NewMock(t)

	t.Run("Accept moves pending to accepted", func(t *testing.T) {
		accountRepo.EXPECT().FindMember(gomock.Any(), 10, 2).Return(&domain.Membership{
			AccountID: 10, UserID: 2, Status: domain.MembershipPending,
		}, nil)
		accountRepo.EXPECT().UpdateMemberStatus(gomock.Any(), 10, 2, domain.MembershipAccepted).Return(nil)

		err := service.Accept(context.Background(), 10, 2)
		assert.NoError(t, err)
	})

	t.Run("Accept without a pending invitation", func(t *testing.T) {
		accountRepo.EXPECT().FindMember(gomock.Any(), 10, 2).Return(&domain.Membership{
			AccountID: 10, UserID: 2, Status: domain.MembershipAccepted,
		}, nil)

		err := service.Accept(context.Background(), 10, 2)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Reject drops the pending row", func(t *testing.T) {
		accountRepo.EXPECT().FindMember(gomock.Any(), 10, 2).Return(&domain.Membership{
			AccountID: 10, UserID: 2, Status: domain.MembershipPending,
		}, nil)
		accountRepo.EXPECT().DeleteMember(gomock.Any(), 10, 2).Return(nil)

		err := service.Reject(context.Background(), 10, 2)
		assert.NoError(t, err)
	})

	t.Run("Reject without a membership row", func(t *testing.T) {
		accountRepo.EXPECT().FindMember(gomock.Any(), 10, 2).Return(nil, nil)

		err := service.Reject(context.Background(), 10, 2)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRemoveMember(t *testing.T) {
	service, _, _ := NewMock(t)

	err := service.RemoveMember(context.Background(), 10, 1, 2)
	assert.ErrorIs(t, err, domain.ErrNotAllowed)
}

func TestListForUser(t *testing.T) {
	service, accountRepo, profileRepo := NewMock(t)

	accountRepo.EXPECT().FindForUser(gomock.Any(), 1).Return([]domain.UserAccount{
		{Account: domain.Account{ID: 10, OwnerID: 1}, MemberStatus: domain.MembershipAccepted},
		{Account: domain.Account{ID: 11, OwnerID: 2}, MemberStatus: domain.MembershipPending},
	}, nil)
	accountRepo.EXPECT().FindMembers(gomock.Any(), 10).Return([]domain.Membership{
		{AccountID: 10, UserID: 1, Status: domain.MembershipAccepted},
	}, nil)
	accountRepo.EXPECT().FindMembers(gomock.Any(), 11).Return([]domain.Membership{
		{AccountID: 11, UserID: 2, Status: domain.MembershipAccepted},
		{AccountID: 11, UserID: 1, Status: domain.MembershipPending},
	}, nil)
	profileRepo.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	partitions, err := service.ListForUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, partitions.Active, 1)
	assert.Len(t, partitions.Invitations, 1)
	assert.Equal(t, 10, partitions.Active[0].ID)
	assert.Equal(t, 11, partitions.Invitations[0].ID)
}

func TestMembership(t *testing.T) {
	service, accountRepo, _ := NewMock(t)

	t.Run("Owner without a row reads accepted", func(t *testing.T) {
		accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
		accountRepo.EXPECT().FindMember(gomock.Any(), 10, 1).Return(nil, nil)

		member, err := service.Membership(context.Background(), 10, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.MembershipAccepted, member.Status)
	})

	t.Run("Stranger is not found", func(t *testing.T) {
		accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
		accountRepo.EXPECT().FindMember(gomock.Any(), 10, 3).Return(nil, nil)

		member, err := service.Membership(context.Background(), 10, 3)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, member)
	})
}

func TestSetBankRef(t *testing.T) {
	service, accountRepo, _ := NewMock(t)

	tests := []struct {
		name        string
		actorID     int
		ref         string
		prepareMock func()
		expectedErr error
	}{
		{
			name:    "Valid reference set by the owner",
			actorID: 1,
			ref:     "79927398713",
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
				accountRepo.EXPECT().SetBankRef(gomock.Any(), 10, "79927398713").Return(nil)
			},
		},
		{
			name:    "Non-owner is refused",
			actorID: 2,
			ref:     "79927398713",
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
			},
			expectedErr: domain.ErrNotAllowed,
		},
		{
			name:    "Reference failing the checksum is rejected",
			actorID: 1,
			ref:     "79927398710",
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Account{ID: 10, OwnerID: 1}, nil)
			},
			expectedErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := service.SetBankRef(context.Background(), 10, tt.actorID, tt.ref)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
