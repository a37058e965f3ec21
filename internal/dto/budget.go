package dto

import "github.com/shopspring/decimal"

// SetBudgetLineRequest is the payload for recording an approved budget line.
type SetBudgetLineRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	PeriodID       string          `json:"periodID" binding:"required"`
	DepartmentID   *string         `json:"departmentID,omitempty"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount" binding:"required"`
}
