package get_day_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SimpleBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SimpleBooking/pkg/logger"
	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

type bookingRepoMock struct{ mock.Mock }

func (m *bookingRepoMock) CountsBySlot(ctx context.Context, date time.Time) (map[types.TimeString]int, error) {
	args := m.Called(ctx, date)
	counts, _ := args.Get(0).(map[types.TimeString]int)
	return counts, args.Error(1)
}

type settingsRepoMock struct{ mock.Mock }

func (m *settingsRepoMock) Get(ctx context.Context) (*domain.AvailabilityConfig, error) {
	args := m.Called(ctx)
	cfg, _ := args.Get(0).(*domain.AvailabilityConfig)
	return cfg, args.Error(1)
}

var monday = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

func TestUseCase_Execute(t *testing.T) {
	bookings := &bookingRepoMock{}
	settings := &settingsRepoMock{}

	cfg := domain.DefaultAvailabilityConfig()
	cfg.SlotDurationMinutes = 60
	cfg.WindowStart, cfg.WindowEnd = "09:00", "12:00"
	cfg.Days[time.Monday] = domain.DaySchedule{Enabled: true, DailyLimit: 2}

	settings.On("Get", mock.Anything).Return(cfg, nil)
	bookings.On("CountsBySlot", mock.Anything, monday).Return(map[types.TimeString]int{"10:00": 1}, nil)

	uc := NewUseCase(bookings, settings, logger.NewNop())
	resp, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Booked)
	assert.Equal(t, 2, resp.Capacity)
	assert.Equal(t, []domain.SlotAvailability{
		{Time: "09:00", Booked: 0, Available: true},
		{Time: "10:00", Booked: 1, Available: false},
		{Time: "11:00", Booked: 0, Available: true},
	}, resp.Slots)
	bookings.AssertExpectations(t)
	settings.AssertExpectations(t)
}

func TestUseCase_Execute_DefaultSettings(t *testing.T) {
	bookings := &bookingRepoMock{}
	settings := &settingsRepoMock{}

	settings.On("Get", mock.Anything).Return(nil, settingsRepo.ErrSettingsNotFound)
	bookings.On("CountsBySlot", mock.Anything, monday).Return(map[types.TimeString]int{}, nil)

	resp, err := NewUseCase(bookings, settings, logger.NewNop()).Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 16)
	assert.Equal(t, 16, resp.Capacity)
}

func TestUseCase_Execute_LedgerError(t *testing.T) {
	bookings := &bookingRepoMock{}
	settings := &settingsRepoMock{}

	settings.On("Get", mock.Anything).Return(domain.DefaultAvailabilityConfig(), nil)
	bookings.On("CountsBySlot", mock.Anything, monday).Return(nil, errors.New("db down"))

	_, err := NewUseCase(bookings, settings, logger.NewNop()).Execute(context.Background(), &Request{Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	_, err := NewUseCase(&bookingRepoMock{}, &settingsRepoMock{}, logger.NewNop()).
		Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
