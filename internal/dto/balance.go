package dto

type MemberBalanceDTO struct {
	UserID  int   `json:"user_id"`
	Pending int64 `json:"pending"`
}

type SummaryResponseDTO struct {
	TotalPending int64              `json:"total_pending"`
	PerMember    []MemberBalanceDTO `json:"per_member"`
}

type ReconciliationResponseDTO struct {
	Status      string `json:"status"`
	SystemTotal int64  `json:"system_total"`
	BankTotal   *int64 `json:"bank_total,omitempty"`
}
