package authservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tespinoza/cuentaclara/internal/domain"
	"github.com/tespinoza/cuentaclara/pkg/auth"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *auth.MockHashServiceInterface, *auth.MockJWTServiceInterface) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	hashService := auth.NewMockHashServiceInterface(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)

	service := New(repo, hashService, jwtService)
	defer ctrl.Finish()
	return service, repo, hashService, jwtService
}

func TestRegister(t *testing.T) {
	service, profileRepo, passwordHasher, _ := NewMock(t)

	tests := []struct {
		name          string
		email         string
		fullName      string
		password      string
		prepareMock   func()
		expectedErr   error
		expectedEmail string
	}{
		{
			name:     "Successful registration normalizes the email",
			email:    "  Tere@Example.COM ",
			fullName: "Tere Espinoza",
			password: "testpassword",
			prepareMock: func() {
				profileRepo.EXPECT().FindByEmail(gomock.Any(), "tere@example.com").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("testpassword").Return("hashedpassword", nil)
				profileRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
						assert.Equal(t, "icon:user", profile.AvatarURL)
						profile.ID = 1
						return profile, nil
					})
			},
			expectedEmail: "tere@example.com",
		},
		{
			name:        "Empty email is rejected",
			email:       "   ",
			fullName:    "Tere Espinoza",
			password:    "testpassword",
			prepareMock: func() {},
			expectedErr: domain.ErrValidation,
		},
		{
			name:     "Email already taken",
			email:    "tere@example.com",
			fullName: "Tere Espinoza",
			password: "testpassword",
			prepareMock: func() {
				profileRepo.EXPECT().FindByEmail(gomock.Any(), "tere@example.com").Return(&domain.Profile{ID: 1}, nil)
			},
			expectedErr: ErrEmailTaken,
		},
		{
			name:     "Hashing failure",
			email:    "tere@example.com",
			fullName: "Tere Espinoza",
			password: "",
			prepareMock: func() {
				profileRepo.EXPECT().FindByEmail(gomock.Any(), "tere@example.com").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("").Return("", errors.New("password cannot be empty"))
			},
			expectedErr: errors.New("password cannot be empty"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			profile, err := service.Register(context.Background(), tt.email, tt.fullName, tt.password)
			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedEmail, profile.Email)
				assert.Equal(t, 1, profile.ID)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	service, profileRepo, passwordHasher, _ := NewMock(t)

	tests := []struct {
		name        string
		prepareMock func()
		expectErr   bool
	}{
		{
			name: "Valid credentials",
			prepareMock: func() {
				profileRepo.EXPECT().FindByEmail(gomock.Any(), "tere@example.com").Return(&domain.Profile{
					ID: 1, Email: "tere@example.com", PasswordHash: "hashedpassword",
				}, nil)
				passwordHasher.EXPECT().ComparePassword("hashedpassword", "testpassword").Return(true)
			},
		},
		{
			name: "Unknown email",
			prepareMock: func() {
				profileRepo.EXPECT().FindByEmail(gomock.Any(), "tere@example.com").Return(nil, nil)
			},
			expectErr: true,
		},
		{
			name: "Wrong password",
			prepareMock: func() {
				profileRepo.EXPECT().FindByEmail(gomock.Any(), "tere@example.com").Return(&domain.Profile{
					ID: 1, Email: "tere@example.com", PasswordHash: "hashedpassword",
				}, nil)
				passwordHasher.EXPECT().ComparePassword("hashedpassword", "testpassword").Return(false)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			profile, err := service.Authenticate(context.Background(), "Tere@Example.com", "testpassword")
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, profile.ID)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service, _, _, jwtService := NewMock(t)

	t.Run("Token generated", func(t *testing.T) {
		jwtService.EXPECT().GenerateJWT(1, gomock.Any()).Return("some-jwt-token", nil)

		token, err := service.GenerateToken(1)
		assert.NoError(t, err)
		assert.Equal(t, "some-jwt-token", token)
	})

	t.Run("Generation failure", func(t *testing.T) {
		jwtService.EXPECT().GenerateJWT(1, gomock.Any()).Return("", errors.New("some error"))

		token, err := service.GenerateToken(1)
		assert.Error(t, err)
		assert.Empty(t, token)
	})
}

func TestUpdateProfile(t *testing.T) {
	service, profileRepo, _, _ := NewMock(t)

	tests := []struct {
		name        string
		fullName    string
		avatarURL   string
		prepareMock func()
		expectedErr error
	}{
		{
			name:      "Display fields change",
			fullName:  "Teresa Espinoza",
			avatarURL: "icon:sun",
			prepareMock: func() {
				profileRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.Profile{
					ID: 1, Email: "tere@example.com", FullName: "Tere", AvatarURL: "icon:user",
				}, nil)
				profileRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, profile *domain.Profile) error {
						assert.Equal(t, "Teresa Espinoza", profile.FullName)
						assert.Equal(t, "icon:sun", profile.AvatarURL)
						assert.Equal(t, "tere@example.com", profile.Email)
						return nil
					})
			},
		},
		{
			name:        "Blank name is rejected",
			fullName:    "  ",
			prepareMock: func() {},
			expectedErr: domain.ErrValidation,
		},
		{
			name:     "Unknown profile",
			fullName: "Teresa Espinoza",
			prepareMock: func() {
				profileRepo.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)
			},
			expectedErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			profile, err := service.UpdateProfile(context.Background(), 1, tt.fullName, tt.avatarURL)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Teresa Espinoza", profile.FullName)
			}
		})
	}
}
