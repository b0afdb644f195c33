// Package models contains the persisted entities and their API projections.
package models

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"inkwell/internal/permission"
)

// User is an account that can author articles and carry capabilities.
// The Password column only ever holds a salted digest, never plaintext.
type User struct {
	ID         string                `gorm:"primaryKey" json:"id"`
	Name       string                `gorm:"unique;not null" json:"name"`
	Password   string                `gorm:"not null" json:"-"`
	Permission permission.Permission `gorm:"not null;default:0" json:"-"`
	Expired    bool                  `gorm:"not null;default:false" json:"expired"`
	LastLogin  time.Time             `json:"last_login"`
	CreateTime time.Time             `gorm:"autoCreateTime" json:"create_time"`
}

// SetPassword replaces the stored credential with the salted digest of plain.
// Safe to call again for password changes. The salt is the process-wide
// USER_PASSWORD_SALT configuration value.
func (u *User) SetPassword(plain, salt string) {
	sum := sha1.Sum([]byte(plain + salt))
	u.Password = hex.EncodeToString(sum[:])
}

// CheckPassword verifies a timestamp-bound challenge: the caller presents
// digest(storedHash + timestamp) rather than the password itself, so the raw
// credential is never transmitted after account creation. Expired users never
// authenticate. Timestamp freshness is enforced by the login handler, not here.
func (u *User) CheckPassword(encPassword string, timestamp int64) bool {
	if u.Expired {
		return false
	}
	sum := sha1.Sum([]byte(u.Password + strconv.FormatInt(timestamp, 10)))
	return hex.EncodeToString(sum[:]) == encPassword
}

// Can reports whether the user's bitmask carries the capability p.
func (u *User) Can(p permission.Permission) bool {
	return permission.Can(u.Permission, p)
}

// IsActive reports whether the account may still log in.
func (u *User) IsActive() bool {
	return !u.Expired
}

// FormatPermission renders a capability bitmask as an ordered name -> enabled
// mapping, enumerating the full catalog in declaration order.
func FormatPermission(mask permission.Permission) *Dict {
	d := NewDict()
	for _, f := range permission.Flags(mask) {
		d.Set(f.Name, f.Enabled)
	}
	return d
}

// ToDict projects the user for API responses. Key order is part of the wire
// format. The permission detail is included only on request.
func (u *User) ToDict(withPermission bool) *Dict {
	d := NewDict()
	d.Set("id", u.ID)
	d.Set("name", u.Name)
	if withPermission {
		d.Set("permission", FormatPermission(u.Permission))
	}
	d.Set("expired", u.Expired)
	d.Set("last_login", u.LastLogin)
	return d
}
