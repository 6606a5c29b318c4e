package models

import "time"

// WebhookLog is the append-only audit trail of inbound provider notifications.
// Rows are written once the signature checks out, regardless of whether the
// event was ultimately applied, and are never updated or deleted.
type WebhookLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Provider   string    `gorm:"type:varchar(50);not null;index" json:"provider"`
	Payload    string    `gorm:"type:longtext;not null" json:"payload"`
	ReceivedAt time.Time `gorm:"autoCreateTime;index" json:"received_at"`
}
