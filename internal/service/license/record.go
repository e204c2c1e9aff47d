package license

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
)

// signedFields поля записи, покрываемые подписью. Время хранится с точностью до секунды.
type signedFields struct {
	Status        string `json:"status"`
	PurchaseCode  string `json:"purchase_code"`
	LicenseKey    string `json:"license_key"`
	Customer      string `json:"customer"`
	Source        string `json:"source"`
	ValidUntil    string `json:"valid_until"`
	LastCheckedAt int64  `json:"last_checked"`
	GraceUntil    int64  `json:"grace_until"`
	Domain        string `json:"domain"`
	InstanceID    string `json:"instance_id"`
	LastError     string `json:"last_error"`
}

// signaturePayload сериализует запись лицензии в канонический JSON без подписи
func signaturePayload(l *domain.License) []byte {
	payload, _ := json.Marshal(signedFields{
		Status:        string(l.Status),
		PurchaseCode:  l.PurchaseCode,
		LicenseKey:    l.LicenseKey,
		Customer:      l.Customer,
		Source:        string(l.Source),
		ValidUntil:    formatDate(l.ValidUntil),
		LastCheckedAt: unixOrZero(l.LastCheckedAt),
		GraceUntil:    unixOrZero(l.GraceUntil),
		Domain:        l.Domain,
		InstanceID:    l.InstanceID,
		LastError:     l.LastError,
	})
	return payload
}

// sanitizePurchaseCode оставляет только латинские буквы, цифры и дефис
func sanitizePurchaseCode(code string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, strings.TrimSpace(code))
}

// sanitizeSource приводит источник к envato | direct, по умолчанию envato
func sanitizeSource(source string) domain.LicenseSource {
	s := domain.LicenseSource(strings.ToLower(strings.TrimSpace(source)))
	if s.IsValid() {
		return s
	}
	return domain.LicenseSourceEnvato
}

// parseValidUntil принимает только YYYY-MM-DD, иначе срок не ограничен
func parseValidUntil(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.ParseInLocation(domain.DateFormat, value, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(domain.DateFormat)
}

func unixOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}
