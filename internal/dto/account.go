package dto

import "github.com/quartzerp/glcore/internal/core/domain"

// CreateAccountRequest is the payload for creating a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code             string                      `json:"code" binding:"required"`
	Name             string                      `json:"name" binding:"required"`
	AccountType      domain.AccountType          `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	NormalBalance    domain.NormalBalance        `json:"normalBalance" binding:"required,oneof=DEBIT CREDIT"`
	IsPosting        bool                        `json:"isPosting"`
	IsControlAccount bool                        `json:"isControlAccount"`
	DepartmentReq    domain.DimensionRequirement `json:"departmentReq,omitempty"`
	ProjectReq       domain.DimensionRequirement `json:"projectReq,omitempty"`
	FundReq          domain.DimensionRequirement `json:"fundReq,omitempty"`
}
