package domain

import "time"

// AuditFields holds standard audit information for mutable domain entities.
// Ledger lines are append-only and carry only CreatedAt/CreatedBy themselves.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
