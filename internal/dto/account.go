package dto

type CreateAccountRequestDTO struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	InviteeIDs []int  `json:"invitee_ids"`
}

type UpdateAccountRequestDTO struct {
	Name       *string `json:"name,omitempty"`
	InviteeIDs []int   `json:"invitee_ids,omitempty"`
}

type InviteRequestDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type BankRefRequestDTO struct {
	BankRef string `json:"bank_ref" validate:"required"`
}

type MemberDTO struct {
	UserID    int    `json:"user_id"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Status    string `json:"status"`
}

type AccountResponseDTO struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	OwnerID int         `json:"owner_id"`
	BankRef string      `json:"bank_ref,omitempty"`
	Members []MemberDTO `json:"members"`
}

type AccountListResponseDTO struct {
	Active      []AccountResponseDTO `json:"active"`
	Invitations []AccountResponseDTO `json:"invitations"`
}
