package models

import "time"

// ReturnNote 记录一次“不完整归还”的说明，只追加不修改
type ReturnNote struct {
	ID         string    `json:"id"`
	LoanID     int       `json:"loanId"`
	RecordedAt time.Time `json:"recordedAt"`
	Notes      string    `json:"notes"`
}
