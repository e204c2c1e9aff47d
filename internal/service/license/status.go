package license

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	"github.com/m04kA/SMC-SimpleBooking/internal/service/license/models"
)

const (
	StatusActive      = "active"
	StatusGracePeriod = "grace_period"
	StatusInactive    = "inactive"
)

var statusLabels = map[string]string{
	StatusActive:      "Active",
	StatusGracePeriod: "Grace Period",
	StatusInactive:    "Inactive",
}

// IsActive сообщает, что лицензия подписана, активна и не истекла
func (s *Service) IsActive(ctx context.Context) (bool, error) {
	l, err := s.load(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: failed to load license: %v", ErrInternal, err)
	}
	return s.state(l) == StatusActive, nil
}

// CanRun сообщает, можно ли обслуживать бронирования: лицензия активна
// или не закончился льготный период. Результат кешируется на CacheTTL.
func (s *Service) CanRun(ctx context.Context) (bool, error) {
	if cached, ok := s.cache.Get(canRunCacheKey); ok {
		return cached.(bool), nil
	}

	l, err := s.load(ctx)
	if err != nil {
		s.logger.Error("CanRun: failed to load license: %v", err)
		return false, fmt.Errorf("%w: failed to load license: %v", ErrInternal, err)
	}

	canRun := s.state(l) != StatusInactive
	s.cache.Set(canRunCacheKey, canRun, cache.DefaultExpiration)
	return canRun, nil
}

// Status возвращает состояние лицензии с маскированным кодом покупки
func (s *Service) Status(ctx context.Context) (*models.StatusResponse, error) {
	l, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Status: failed to load license: %v", err)
		return nil, fmt.Errorf("%w: failed to load license: %v", ErrInternal, err)
	}

	code, err := s.sealer.Open(l.PurchaseCode)
	if err != nil {
		s.logger.Warn("Status: stored purchase code cannot be opened: %v", err)
		code = ""
	}

	state := s.state(l)
	resp := &models.StatusResponse{
		Status:        state,
		Label:         statusLabels[state],
		CanRun:        state != StatusInactive,
		PurchaseCode:  domain.MaskPurchaseCode(code),
		LicenseKey:    l.LicenseKey,
		Customer:      l.Customer,
		Source:        string(l.Source),
		LastCheckedAt: l.LastCheckedAt,
		GraceUntil:    l.GraceUntil,
		Domain:        l.Domain,
		InstanceID:    s.instanceID,
		LastError:     l.LastError,
	}
	if l.ValidUntil != nil {
		validUntil := formatDate(l.ValidUntil)
		resp.ValidUntil = &validUntil
	}

	return resp, nil
}

// state вычисляет active / grace_period / inactive.
// Запись с неверной подписью считается отсутствующей.
func (s *Service) state(l *domain.License) string {
	if l.Signature == "" || !s.sealer.Verify(signaturePayload(l), l.Signature) {
		return StatusInactive
	}

	now := s.now()
	if l.Status == domain.LicenseStatusActive && !l.Expired(now) {
		return StatusActive
	}
	if l.InGrace(now) {
		return StatusGracePeriod
	}
	return StatusInactive
}
