package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssetRequest is the payload for registering a DRAFT fixed asset.
type CreateAssetRequest struct {
	CategoryID       string          `json:"categoryID" binding:"required"`
	Name             string          `json:"name" binding:"required"`
	Cost             decimal.Decimal `json:"cost" binding:"required"`
	ResidualValue    decimal.Decimal `json:"residualValue"`
	UsefulLifeMonths int             `json:"usefulLifeMonths"`
}

// CapitalizeAssetRequest moves a DRAFT asset to CAPITALIZED, fixing its posting
// accounts from the category defaults.
type CapitalizeAssetRequest struct {
	CapitalizationDate time.Time `json:"capitalizationDate" binding:"required"`
}

// DisposeAssetRequest moves a CAPITALIZED asset to DISPOSED.
type DisposeAssetRequest struct {
	DisposalDate time.Time `json:"disposalDate" binding:"required"`
}
