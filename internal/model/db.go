package model

import "time"

// SavedProduct is a wardrobe entry persisted from a catalog result, so the
// saved collection survives restarts. Slots are not stored; classification
// is re-run against the current taxonomy on load.
type SavedProduct struct {
	ID          string `gorm:"primaryKey;size:64;not null"` // catalog product id
	Name        string `gorm:"size:256;not null"`
	Description string
	Price       float64 `gorm:"not null"`
	Currency    string  `gorm:"size:8;not null"`
	Source      string  `gorm:"size:128;index"` // merchant
	ImageURL    string
	CreatedAt   time.Time
}

// PurchaseRun is the audit record of one purchase invocation: the derived
// settlement plan plus the agent run's outcome.
type PurchaseRun struct {
	RunID     string `gorm:"primaryKey;size:64;not null"`
	Status    string `gorm:"size:32;index;not null"` // STARTED, COMPLETED, INCOMPLETE, FAILED
	Result    string // terminal success payload from the agent, if any
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PurchaseRunItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → purchase_run.run_id
	RunID            string  `gorm:"size:64;index;not null"`
	ProductID        string  `gorm:"size:64;index;not null"`
	SlotID           string  `gorm:"size:16;not null"`
	Name             string  `gorm:"size:256;not null"`
	Price            float64 `gorm:"not null"`
	Currency         string  `gorm:"size:8;not null"`
	Source           string  `gorm:"size:128"`
	RecipientAddress string  `gorm:"size:64;not null"`
	SendAmount       string  `gorm:"size:32;not null"`

	CreatedAt time.Time
}
