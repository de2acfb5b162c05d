package profilerepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/tespinoza/cuentaclara/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := NewMock(t)
	query := `SELECT id, email, full_name, avatar_url, password_hash FROM profiles WHERE email = $1`

	tests := []struct {
		name      string
		email     string
		mockSetup func()
		expectErr bool
		result    *domain.Profile
	}{
		{
			name:  "Profile found",
			email: "tere@example.com",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "password_hash"}).
					AddRow(1, "tere@example.com", "Tere Espinoza", "icon:user", "hashed_password")
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs("tere@example.com").
					WillReturnRows(rows)
			},
			result: &domain.Profile{
				ID:           1,
				Email:        "tere@example.com",
				FullName:     "Tere Espinoza",
				AvatarURL:    "icon:user",
				PasswordHash: "hashed_password",
			},
		},
		{
			name:  "Profile not found",
			email: "nobody@example.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs("nobody@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			email: "tere@example.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs("tere@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByEmail(context.Background(), tt.email)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_FindByIDs(t *testing.T) {
	repo, mock := NewMock(t)
	query := `SELECT id, email, full_name, avatar_url, password_hash FROM profiles WHERE id = ANY($1)`

	t.Run("Profiles found", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "password_hash"}).
			AddRow(1, "tere@example.com", "Tere", "icon:user", "h1").
			AddRow(2, "ana@example.com", "Ana", "icon:user", "h2")
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs([]int{1, 2}).
			WillReturnRows(rows)

		profiles, err := repo.FindByIDs(context.Background(), []int{1, 2})
		assert.NoError(t, err)
		assert.Len(t, profiles, 2)
		assert.Equal(t, "ana@example.com", profiles[1].Email)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs([]int{1}).
			WillReturnError(errors.New("database error"))

		profiles, err := repo.FindByIDs(context.Background(), []int{1})
		assert.Error(t, err)
		assert.Nil(t, profiles)
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	query := `
		INSERT INTO profiles (email, full_name, avatar_url, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Profile created",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs("tere@example.com", "Tere Espinoza", "icon:user", "hashed_password").
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs("tere@example.com", "Tere Espinoza", "icon:user", "hashed_password").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			profile, err := repo.Create(context.Background(), &domain.Profile{
				Email:        "tere@example.com",
				FullName:     "Tere Espinoza",
				AvatarURL:    "icon:user",
				PasswordHash: "hashed_password",
			})
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, profile.ID)
			}
		})
	}
}

func TestRepository_Update(t *testing.T) {
	repo, mock := NewMock(t)
	query := `
		UPDATE profiles
		SET full_name = $1, avatar_url = $2
		WHERE id = $3
	`

	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs("Teresa", "icon:sun", 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), &domain.Profile{ID: 1, FullName: "Teresa", AvatarURL: "icon:sun"})
	assert.NoError(t, err)
}
