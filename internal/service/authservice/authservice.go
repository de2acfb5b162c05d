package authservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tespinoza/cuentaclara/internal/domain"
	"github.com/tespinoza/cuentaclara/pkg/auth"
	"go.uber.org/zap"
)

type Repo interface {
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	FindByID(ctx context.Context, id int) (*domain.Profile, error)
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

type Service struct {
	profileRepo Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		profileRepo: repo,
		hashService: hashService,
		jwtService:  jwtService,
	}
}

var ErrEmailTaken = errors.New("email already registered")

func (s *Service) Register(ctx context.Context, email, fullName, password string) (*domain.Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || fullName == "" {
		return nil, fmt.Errorf("%w: email and full name are required", domain.ErrValidation)
	}

	existing, err := s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find profile: ", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		zap.L().Info("profile already exists", zap.String("email", email))
		return nil, ErrEmailTaken
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}

	profile := &domain.Profile{
		Email:        email,
		FullName:     fullName,
		AvatarURL:    "icon:user",
		PasswordHash: hashedPassword,
	}
	newProfile, err := s.profileRepo.Create(ctx, profile)
	if err != nil {
		zap.L().Error("can't create profile: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("profile successfully registered", zap.String("email", email))
	return newProfile, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil || profile == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, errors.New("invalid credentials")
	}
	if ok := s.hashService.ComparePassword(profile.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, errors.New("invalid credentials")
	}
	zap.L().Info("profile successfully authenticated", zap.String("email", email))
	return profile, nil
}

func (s *Service) GenerateToken(userID int) (string, error) {
	expirationTime := time.Now().Add(15 * time.Minute)

	token, err := s.jwtService.GenerateJWT(userID, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}

// UpdateProfile changes display fields only; email and password are fixed
// once registered.
func (s *Service) UpdateProfile(ctx context.Context, userID int, fullName, avatarURL string) (*domain.Profile, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("%w: full name cannot be blank", domain.ErrValidation)
	}

	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("can't find profile: ", zap.Error(err))
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: profile %d", domain.ErrNotFound, userID)
	}

	profile.FullName = fullName
	profile.AvatarURL = avatarURL
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		zap.L().Error("can't update profile: ", zap.Error(err))
		return nil, err
	}
	return profile, nil
}
