package models

import "time"

// Withdrawal statuses. Only status transitions mutate a withdrawal after
// creation; the amount and bank snapshot are fixed at request time.
const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusApproved  = "approved"
	WithdrawalStatusRejected  = "rejected"
	WithdrawalStatusCompleted = "completed"
)

// BankDetails is a point-in-time snapshot of the payout destination. It is
// copied into the withdrawal row so later edits elsewhere cannot redirect an
// already-reviewed payout.
type BankDetails struct {
	AccountNumber     string `gorm:"size:34" json:"account_number"`
	IFSCCode          string `gorm:"size:11" json:"ifsc_code"`
	AccountHolderName string `gorm:"size:100" json:"account_holder_name"`
}

type Withdrawal struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CampaignID  uint        `gorm:"not null;index" json:"campaign_id"`
	Amount      float64     `gorm:"type:decimal(15,2);not null" json:"amount"`
	Reference   string      `gorm:"size:64;not null;uniqueIndex" json:"reference"`
	BankDetails BankDetails `gorm:"embedded;embeddedPrefix:bank_" json:"bank_details"`

	Status         string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RequestedAt    time.Time  `gorm:"not null" json:"requested_at"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	TransactionRef string     `gorm:"size:191" json:"transaction_ref,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

// Resolved reports whether the withdrawal has reached a terminal status.
func (w *Withdrawal) Resolved() bool {
	return w.Status == WithdrawalStatusCompleted || w.Status == WithdrawalStatusRejected
}

// MaskAccountNumber hides the middle of an account number for display.
func MaskAccountNumber(accountNumber string) string {
	if len(accountNumber) <= 6 {
		return accountNumber
	}
	return accountNumber[:4] + "****" + accountNumber[len(accountNumber)-4:]
}
