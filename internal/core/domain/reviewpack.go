package domain

import "time"

// ReviewPack is an immutable, hashed snapshot of a period's posted journals.
// Re-generation appends a new pack; prior packs are never overwritten.
type ReviewPack struct {
	PackID         string    `json:"packID"`
	TenantID       string    `json:"tenantID"`
	PeriodID       string    `json:"periodID"`
	StorageKey     string    `json:"storageKey"`
	SizeBytes      int64     `json:"sizeBytes"`
	ArchiveSHA256  string    `json:"archiveSHA256"`
	ManifestSHA256 string    `json:"manifestSHA256"`
	JournalCount   int       `json:"journalCount"`
	GeneratedBy    string    `json:"generatedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}
