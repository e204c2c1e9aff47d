package license

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	licenseRepo "github.com/m04kA/SMC-SimpleBooking/internal/infra/storage/license"
	"github.com/m04kA/SMC-SimpleBooking/internal/integrations/licenseserver"
	"github.com/m04kA/SMC-SimpleBooking/internal/service/license/models"
	"github.com/m04kA/SMC-SimpleBooking/pkg/ptr"
)

const (
	DefaultGracePeriod     = 7 * 24 * time.Hour
	DefaultRecheckInterval = 24 * time.Hour
	DefaultCacheTTL        = time.Minute

	canRunCacheKey = "can_run"

	resultSuccess  = "success"
	resultRejected = "rejected"
	resultError    = "error"
)

// Config параметры установки, передаваемые серверу лицензий
type Config struct {
	Plugin          string
	Version         string
	Platform        string
	SiteURL         string
	GracePeriod     time.Duration
	RecheckInterval time.Duration
	CacheTTL        time.Duration
}

// Service управляет активацией лицензии установки
type Service struct {
	repo     LicenseRepository
	client   LicenseServerClient
	sealer   Sealer
	recorder CheckRecorder
	logger   Logger

	cfg        Config
	domain     string
	instanceID string

	cache *cache.Cache
	now   func() time.Time

	// Активация, деактивация и перепроверка меняют одну запись и идут по очереди
	mu sync.Mutex
}

// NewService создает новый экземпляр сервиса лицензий. recorder может быть nil.
func NewService(
	repo LicenseRepository,
	client LicenseServerClient,
	sealer Sealer,
	recorder CheckRecorder,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = DefaultGracePeriod
	}
	if cfg.RecheckInterval <= 0 {
		cfg.RecheckInterval = DefaultRecheckInterval
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}

	return &Service{
		repo:       repo,
		client:     client,
		sealer:     sealer,
		recorder:   recorder,
		logger:     logger,
		cfg:        cfg,
		domain:     hostOf(cfg.SiteURL),
		instanceID: uuid.NewSHA1(uuid.NameSpaceURL, []byte(cfg.SiteURL)).String(),
		cache:      cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		now:        time.Now,
	}
}

// InstanceID возвращает стабильный идентификатор установки
func (s *Service) InstanceID() string {
	return s.instanceID
}

// Activate проверяет код покупки на сервере лицензий и сохраняет активную лицензию
func (s *Service) Activate(ctx context.Context, req *models.ActivateRequest) (*models.ActionResponse, error) {
	code := sanitizePurchaseCode(req.PurchaseCode)
	source := sanitizeSource(req.Source)

	s.logger.Info("Activate: source=%s, code=%s", source, domain.MaskPurchaseCode(code))

	if code == "" {
		s.logger.Warn("Activate: empty purchase code")
		return nil, ErrInvalidPurchaseCode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. Проверяем код на сервере лицензий
	resp, err := s.validate(ctx, licenseserver.ActionActivate, code, source)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		s.logger.Warn("Activate: rejected by license server: %s", resp.Message)
		return nil, fmt.Errorf("%w: %s", ErrRejected, remoteMessage(resp, "License validation failed."))
	}

	// 2. Собираем запись лицензии
	sealed, err := s.sealer.Seal(code)
	if err != nil {
		s.logger.Error("Activate: failed to seal purchase code: %v", err)
		return nil, fmt.Errorf("%w: failed to seal purchase code: %v", ErrInternal, err)
	}

	now := s.now()
	l := &domain.License{
		Status:        domain.LicenseStatusActive,
		PurchaseCode:  sealed,
		LicenseKey:    strings.TrimSpace(resp.Data.LicenseKey),
		Customer:      strings.TrimSpace(resp.Data.Customer),
		Source:        source,
		ValidUntil:    parseValidUntil(resp.Data.ValidUntil),
		LastCheckedAt: &now,
		GraceUntil:    ptr.Ptr(now.Add(s.cfg.GracePeriod)),
		Domain:        s.domain,
		InstanceID:    s.instanceID,
	}
	if resp.Data.Source != "" {
		l.Source = sanitizeSource(resp.Data.Source)
	}

	// 3. Подписываем и сохраняем
	if err := s.save(ctx, l); err != nil {
		s.logger.Error("Activate: failed to save license: %v", err)
		return nil, fmt.Errorf("%w: failed to save license: %v", ErrInternal, err)
	}

	s.logger.Info("Activate: license activated, customer=%s, valid_until=%s", l.Customer, formatDate(l.ValidUntil))
	return &models.ActionResponse{
		Success: true,
		Message: "License activated successfully.",
	}, nil
}

// Deactivate сообщает серверу о деактивации (если возможно) и сохраняет неактивную запись.
// Ошибка сервера лицензий не мешает деактивации.
func (s *Service) Deactivate(ctx context.Context) (*models.ActionResponse, error) {
	s.logger.Info("Deactivate: deactivating license")

	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Deactivate: failed to load license: %v", err)
		return nil, fmt.Errorf("%w: failed to load license: %v", ErrInternal, err)
	}

	// 1. Уведомляем сервер лицензий, если код известен
	code, err := s.sealer.Open(l.PurchaseCode)
	if err != nil {
		s.logger.Warn("Deactivate: stored purchase code cannot be opened: %v", err)
		code = ""
	}
	if code != "" {
		if _, err := s.validate(ctx, licenseserver.ActionDeactivate, code, l.Source); err != nil {
			s.logger.Warn("Deactivate: remote deactivation failed, continuing: %v", err)
		}
	}

	// 2. Сохраняем неактивную запись
	now := s.now()
	l.Status = domain.LicenseStatusInactive
	l.PurchaseCode = ""
	l.LicenseKey = ""
	l.Customer = ""
	l.ValidUntil = nil
	l.LastError = ""
	l.LastCheckedAt = &now
	l.GraceUntil = &now
	l.Domain = s.domain
	l.InstanceID = s.instanceID

	if err := s.save(ctx, l); err != nil {
		s.logger.Error("Deactivate: failed to save license: %v", err)
		return nil, fmt.Errorf("%w: failed to save license: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: license deactivated")
	return &models.ActionResponse{
		Success: true,
		Message: "License deactivated.",
	}, nil
}

// Recheck перепроверяет активную лицензию на сервере.
// Без force проверка выполняется не чаще RecheckInterval.
// Сетевая ошибка только записывает last_error, льготный период не меняется.
// Явный отказ сервера деактивирует лицензию, но оставляет льготный период.
func (s *Service) Recheck(ctx context.Context, force bool) (*models.ActionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Recheck: failed to load license: %v", err)
		return nil, fmt.Errorf("%w: failed to load license: %v", ErrInternal, err)
	}

	if l.Status != domain.LicenseStatusActive {
		s.logger.Info("Recheck: license is not active, skipping")
		return &models.ActionResponse{Success: false, Message: "License is not active."}, nil
	}

	now := s.now()
	if !force && l.LastCheckedAt != nil && now.Sub(*l.LastCheckedAt) < s.cfg.RecheckInterval {
		s.logger.Info("Recheck: last check at %s, skipping", l.LastCheckedAt.Format(time.RFC3339))
		return &models.ActionResponse{Success: true, Message: "License was checked recently."}, nil
	}

	code, err := s.sealer.Open(l.PurchaseCode)
	if err != nil || code == "" {
		s.logger.Warn("Recheck: stored purchase code is unavailable: %v", err)
		return &models.ActionResponse{Success: false, Message: "Stored purchase code is unavailable."}, nil
	}

	s.logger.Info("Recheck: checking license, force=%t", force)

	result := &models.ActionResponse{}
	resp, err := s.validate(ctx, licenseserver.ActionCheck, code, l.Source)
	l.LastCheckedAt = &now

	switch {
	case err != nil:
		l.LastError = err.Error()
		result.Message = "License server unavailable, grace period kept."
		s.logger.Warn("Recheck: license server unavailable: %v", err)
	case resp.Success:
		l.Status = domain.LicenseStatusActive
		if validUntil := parseValidUntil(resp.Data.ValidUntil); validUntil != nil {
			l.ValidUntil = validUntil
		}
		l.GraceUntil = ptr.Ptr(now.Add(s.cfg.GracePeriod))
		l.LastError = ""
		result.Success = true
		result.Message = remoteMessage(resp, "License valid.")
		s.logger.Info("Recheck: license confirmed, valid_until=%s", formatDate(l.ValidUntil))
	default:
		l.Status = domain.LicenseStatusInactive
		l.LastError = remoteMessage(resp, "License validation failed.")
		result.Message = l.LastError
		s.logger.Warn("Recheck: license rejected: %s", l.LastError)
	}

	if err := s.save(ctx, l); err != nil {
		s.logger.Error("Recheck: failed to save license: %v", err)
		return nil, fmt.Errorf("%w: failed to save license: %v", ErrInternal, err)
	}

	return result, nil
}

// validate отправляет запрос серверу лицензий и учитывает результат в метриках
func (s *Service) validate(
	ctx context.Context,
	action licenseserver.Action,
	code string,
	source domain.LicenseSource,
) (*licenseserver.ValidateResponse, error) {
	resp, err := s.client.Validate(ctx, &licenseserver.ValidateRequest{
		Plugin:       s.cfg.Plugin,
		Version:      s.cfg.Version,
		Action:       action,
		Source:       string(source),
		PurchaseCode: code,
		LicenseCode:  code,
		SiteURL:      s.cfg.SiteURL,
		Domain:       s.domain,
		InstanceID:   s.instanceID,
		Platform:     s.cfg.Platform,
	})
	if err != nil {
		s.record(action, resultError)
		if errors.Is(err, licenseserver.ErrNotConfigured) {
			return nil, ErrServerNotConfigured
		}
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}

	if resp.Success {
		s.record(action, resultSuccess)
	} else {
		s.record(action, resultRejected)
	}
	return resp, nil
}

// load возвращает сохраненную запись или пустую неактивную
func (s *Service) load(ctx context.Context) (*domain.License, error) {
	l, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, licenseRepo.ErrLicenseNotFound) {
			return s.emptyLicense(), nil
		}
		return nil, err
	}
	return l, nil
}

// save подписывает запись, сохраняет ее и сбрасывает кеш CanRun
func (s *Service) save(ctx context.Context, l *domain.License) error {
	l.UpdatedAt = s.now()
	l.Signature = s.sealer.Sign(signaturePayload(l))

	if err := s.repo.Save(ctx, l); err != nil {
		return err
	}

	s.cache.Flush()
	return nil
}

func (s *Service) emptyLicense() *domain.License {
	return &domain.License{
		Status:     domain.LicenseStatusInactive,
		Source:     domain.LicenseSourceEnvato,
		Domain:     s.domain,
		InstanceID: s.instanceID,
	}
}

func (s *Service) record(action licenseserver.Action, result string) {
	if s.recorder != nil {
		s.recorder.RecordLicenseCheck(string(action), result)
	}
}

func hostOf(siteURL string) string {
	u, err := url.Parse(siteURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func remoteMessage(resp *licenseserver.ValidateResponse, fallback string) string {
	if msg := strings.TrimSpace(resp.Message); msg != "" {
		return msg
	}
	return fallback
}
