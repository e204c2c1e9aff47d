package domain

import (
	"strings"
	"time"
)

// LicenseStatus is the stored activation state
type LicenseStatus string

const (
	LicenseStatusActive   LicenseStatus = "active"
	LicenseStatusInactive LicenseStatus = "inactive"
)

// LicenseSource tells where the purchase code was bought
type LicenseSource string

const (
	LicenseSourceEnvato LicenseSource = "envato"
	LicenseSourceDirect LicenseSource = "direct"
)

// IsValid returns true for a known source
func (s LicenseSource) IsValid() bool {
	return s == LicenseSourceEnvato || s == LicenseSourceDirect
}

// License is the single activation record of this installation.
// PurchaseCode holds the sealed (encrypted) value, never the plain code.
type License struct {
	Status        LicenseStatus
	PurchaseCode  string
	LicenseKey    string
	Customer      string
	Source        LicenseSource
	ValidUntil    *time.Time
	LastCheckedAt *time.Time
	GraceUntil    *time.Time
	Domain        string
	InstanceID    string
	LastError     string
	Signature     string
	UpdatedAt     time.Time
}

// Expired reports whether valid_until has passed. No expiry date means perpetual.
func (l *License) Expired(now time.Time) bool {
	return l.ValidUntil != nil && now.After(*l.ValidUntil)
}

// InGrace reports whether the grace window is still open
func (l *License) InGrace(now time.Time) bool {
	return l.GraceUntil != nil && now.Before(*l.GraceUntil)
}

// MaskPurchaseCode keeps the first and last four characters
func MaskPurchaseCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if len(code) <= 8 {
		return strings.Repeat("*", len(code))
	}
	return code[:4] + strings.Repeat("*", len(code)-8) + code[len(code)-4:]
}
