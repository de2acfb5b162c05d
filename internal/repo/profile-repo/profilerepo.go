package profilerepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/tespinoza/cuentaclara/internal/domain"
	"github.com/tespinoza/cuentaclara/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT id, email, full_name, avatar_url, password_hash FROM profiles WHERE email = $1`
	err := repo.db.QueryRow(ctx, query, email).Scan(&profile.ID, &profile.Email, &profile.FullName, &profile.AvatarURL, &profile.PasswordHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find profile by email", zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT id, email, full_name, avatar_url, password_hash FROM profiles WHERE id = $1`
	err := repo.db.QueryRow(ctx, query, id).Scan(&profile.ID, &profile.Email, &profile.FullName, &profile.AvatarURL, &profile.PasswordHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find profile", zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

func (repo *Repository) FindByIDs(ctx context.Context, ids []int) ([]domain.Profile, error) {
	query := `SELECT id, email, full_name, avatar_url, password_hash FROM profiles WHERE id = ANY($1)`
	rows, err := repo.db.Query(ctx, query, ids)
	if err != nil {
		zap.L().Error("can't find profiles", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var profile domain.Profile
		err := rows.Scan(&profile.ID, &profile.Email, &profile.FullName, &profile.AvatarURL, &profile.PasswordHash)
		if err != nil {
			zap.L().Error("can't scan profile row", zap.Error(err))
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (repo *Repository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	query := `
		INSERT INTO profiles (email, full_name, avatar_url, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := repo.db.QueryRow(ctx, query, profile.Email, profile.FullName, profile.AvatarURL, profile.PasswordHash).Scan(&profile.ID)
	if err != nil {
		zap.L().Error("can't save profile", zap.Error(err))
		return nil, err
	}
	return profile, nil
}

func (repo *Repository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, avatar_url = $2
		WHERE id = $3
	`
	_, err := repo.db.Exec(ctx, query, profile.FullName, profile.AvatarURL, profile.ID)
	if err != nil {
		zap.L().Error("can't update profile", zap.Error(err))
		return err
	}
	return nil
}
