package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SimpleBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SimpleBooking/internal/service/settings/models"
)

// Service сервис для работы с настройками доступности
type Service struct {
	settingsRepo SettingsRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Get возвращает текущие настройки.
// Если настройки ни разу не сохранялись, возвращаются значения по умолчанию.
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching availability settings")

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Get: repository error: %v", err)
			return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("Get: settings not found, returning defaults")
		cfg = domain.DefaultAvailabilityConfig()
	}

	return models.FromDomainConfig(cfg), nil
}

// Update полностью заменяет настройки доступности
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: duration=%d, window=%s-%s, days=%d",
		req.SlotDurationMinutes, req.WindowStart, req.WindowEnd, len(req.Days))

	// 1. Конвертируем и валидируем входные данные
	cfg, err := req.ToDomainConfig()
	if err != nil {
		s.logger.Warn("Update: invalid weekday: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := cfg.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Перевернутое окно допустимо, но ни один день не будет иметь слотов
	if !cfg.HasValidWindow() {
		s.logger.Warn("Update: window %s-%s produces no slots", cfg.WindowStart, cfg.WindowEnd)
	}

	// 2. Сохраняем настройки и дни недели одной транзакцией
	var saved *domain.AvailabilityConfig
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.settingsRepo.Save(txCtx, cfg)
		return err
	})
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully saved availability settings")
	return models.FromDomainConfig(saved), nil
}
