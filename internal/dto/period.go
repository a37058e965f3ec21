package dto

import "time"

// CreatePeriodRequest is the payload for creating an accounting period. The
// checklist is seeded from ChecklistItems (falling back to the tenant default set).
type CreatePeriodRequest struct {
	Name            string    `json:"name" binding:"required"`
	StartDate       time.Time `json:"startDate" binding:"required"`
	EndDate         time.Time `json:"endDate" binding:"required"`
	IsOpeningPeriod bool      `json:"isOpeningPeriod"`
	ChecklistItems  []string  `json:"checklistItems,omitempty"`
}

// ReopenPeriodRequest carries the mandatory audit reason for reopening.
type ReopenPeriodRequest struct {
	Reason string `json:"reason" binding:"required"`
}
