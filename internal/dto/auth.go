package dto

type RegisterRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type AuthResponseDTO struct {
	Message string `json:"message"`
}

type UpdateProfileRequestDTO struct {
	FullName  string `json:"full_name" validate:"required,min=1,max=255"`
	AvatarURL string `json:"avatar_url"`
}

type ProfileResponseDTO struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}
