package models

import "time"

// Request модели

// ActivateRequest запрос на активацию лицензии
type ActivateRequest struct {
	PurchaseCode string `json:"purchaseCode"`
	Source       string `json:"source"` // envato | direct, по умолчанию envato
}

// Response модели

// ActionResponse результат активации, деактивации или проверки
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatusResponse текущее состояние лицензии для админки
type StatusResponse struct {
	Status        string     `json:"status"` // active | grace_period | inactive
	Label         string     `json:"label"`  // Active | Grace Period | Inactive
	CanRun        bool       `json:"canRun"`
	PurchaseCode  string     `json:"purchaseCode"` // маскированный
	LicenseKey    string     `json:"licenseKey,omitempty"`
	Customer      string     `json:"customer,omitempty"`
	Source        string     `json:"source"`
	ValidUntil    *string    `json:"validUntil,omitempty"` // "2026-12-31"
	LastCheckedAt *time.Time `json:"lastCheckedAt,omitempty"`
	GraceUntil    *time.Time `json:"graceUntil,omitempty"`
	Domain        string     `json:"domain,omitempty"`
	InstanceID    string     `json:"instanceId"`
	LastError     string     `json:"lastError,omitempty"`
}
