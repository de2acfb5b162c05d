package dto

// DateLayout is the wire format for expense dates.
const DateLayout = "2006-01-02"

type ShareDTO struct {
	UserID int    `json:"user_id"`
	Amount int64  `json:"amount"`
	Status string `json:"status,omitempty"`
}

type AddExpenseRequestDTO struct {
	Title  string     `json:"title" validate:"required,min=1,max=255"`
	Amount int64      `json:"amount" validate:"required,gt=0"`
	Date   string     `json:"date" validate:"required"`
	Shares []ShareDTO `json:"shares" validate:"required,min=1"`
}

type UpdateExpenseRequestDTO struct {
	Title  *string    `json:"title,omitempty"`
	Amount *int64     `json:"amount,omitempty"`
	Date   *string    `json:"date,omitempty"`
	Shares []ShareDTO `json:"shares,omitempty"`
}

type ExpenseResponseDTO struct {
	ID        int        `json:"id"`
	AccountID int        `json:"account_id"`
	Title     string     `json:"title"`
	Amount    int64      `json:"amount"`
	Date      string     `json:"date"`
	CreatedBy int        `json:"created_by"`
	Status    string     `json:"status"`
	Shares    []ShareDTO `json:"shares"`
}

type ExpenseIDsRequestDTO struct {
	IDs []int `json:"ids" validate:"required,min=1"`
}

type ToggleShareResponseDTO struct {
	Status string `json:"status"`
}
