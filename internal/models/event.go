package models

import "time"

// Event types recorded in the audit log.
const (
	EventLogin       = "login"
	EventLoginFailed = "login_failed"
	EventLogout      = "logout"
	EventUserCreate  = "user_create"
	EventUserUpdate  = "user_update"
	EventUserDelete  = "user_delete"
)

// Event is one append-only audit record. Caller context (address, endpoint,
// raw request line) is captured by the handler layer at creation time and
// passed in as plain values. Events are never updated or deleted in normal
// operation; records for a user are removed only when that user is deleted.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"not null" json:"type"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ip_address"`
	Endpoint    string    `json:"endpoint"`
	Request     string    `json:"request"`
	CreateTime  time.Time `gorm:"autoCreateTime" json:"create_time"`

	UserID *string `json:"user_id,omitempty"`
	User   *User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// ToDict projects the event for audit-log listings.
func (e *Event) ToDict() *Dict {
	d := NewDict()
	d.Set("id", e.ID)
	d.Set("type", e.Type)
	d.Set("description", e.Description)
	d.Set("ip_address", e.IPAddress)
	d.Set("endpoint", e.Endpoint)
	d.Set("create_time", e.CreateTime)
	return d
}
