package model

import "time"

// LogEntry is one line of the append-only audit trail. Independent of the
// ledger: it records who did what, in words, and is never mutated.
// Kept newest-first for display.
type LogEntry struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	Action    string    `gorm:"type:varchar(100)" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	User      string    `gorm:"type:varchar(100)" json:"user,omitempty"`
}
