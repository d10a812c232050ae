package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func tsPtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

// TestGenerateTimeSlots тестирует генерацию сетки слотов
func TestGenerateTimeSlots(t *testing.T) {
	tests := []struct {
		name       string
		openTime   string
		closeTime  string
		duration   int
		breakStart *types.TimeString
		breakEnd   *types.TimeString
		expected   []string
	}{
		{
			name:       "full day with lunch break, 60 minute service",
			openTime:   "09:00",
			closeTime:  "17:00",
			duration:   60,
			breakStart: tsPtr("13:00"),
			breakEnd:   tsPtr("14:00"),
			expected: []string{
				"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
				"14:00", "14:30", "15:00", "15:30", "16:00",
			},
		},
		{
			name:      "no break, 30 minute service",
			openTime:  "10:00",
			closeTime: "12:00",
			duration:  30,
			expected:  []string{"10:00", "10:30", "11:00", "11:30"},
		},
		{
			name:      "last slot ends exactly at closing",
			openTime:  "09:00",
			closeTime: "10:30",
			duration:  90,
			expected:  []string{"09:00"},
		},
		{
			name:      "service longer than working day",
			openTime:  "09:00",
			closeTime: "10:00",
			duration:  120,
			expected:  []string{},
		},
		{
			name:      "open equals close",
			openTime:  "09:00",
			closeTime: "09:00",
			duration:  30,
			expected:  []string{},
		},
		{
			// Конец услуги за полночь не должен проходить строковое
			// сравнение с временем закрытия
			name:      "service crossing midnight does not fit",
			openTime:  "22:30",
			closeTime: "23:59",
			duration:  120,
			expected:  []string{},
		},
		{
			name:       "slot starting exactly at break end is allowed",
			openTime:   "12:00",
			closeTime:  "15:00",
			duration:   30,
			breakStart: tsPtr("12:30"),
			breakEnd:   tsPtr("13:30"),
			expected:   []string{"12:00", "13:30", "14:00", "14:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := generateTimeSlots(ts(tt.openTime), ts(tt.closeTime), tt.duration, tt.breakStart, tt.breakEnd)
			require.NoError(t, err)

			got := make([]string, 0, len(slots))
			for _, s := range slots {
				got = append(got, s.String())
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestGenerateTimeSlots_Granularity проверяет, что сетка идет с шагом 30 минут
// независимо от длительности услуги
func TestGenerateTimeSlots_Granularity(t *testing.T) {
	slots, err := generateTimeSlots(ts("09:00"), ts("12:00"), 45, nil, nil)
	require.NoError(t, err)

	expected := []string{"09:00", "09:30", "10:00", "10:30", "11:00"}
	got := make([]string, 0, len(slots))
	for _, s := range slots {
		got = append(got, s.String())
	}
	assert.Equal(t, expected, got)
}

// TestCollectBookedSlots тестирует сбор занятых слотов
func TestCollectBookedSlots(t *testing.T) {
	bookings := []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, StartTime: ts("10:00")},
		{ID: 2, Status: domain.StatusPending, StartTime: ts("11:00")},
		{ID: 3, Status: domain.StatusCancelled, StartTime: ts("12:00")},
		{ID: 4, Status: domain.StatusConfirmed, StartTime: ts("10:00")}, // дубликат времени
		{ID: 5, Status: domain.StatusNoShow, StartTime: ts("14:00")},
	}

	booked := collectBookedSlots(bookings)

	got := make([]string, 0, len(booked))
	for _, b := range booked {
		got = append(got, b.String())
	}
	// Отмененные и неявки не блокируют слот
	assert.Equal(t, []string{"10:00", "11:00"}, got)
}

// TestSubtractBookedSlots тестирует вычитание занятых слотов из сетки
func TestSubtractBookedSlots(t *testing.T) {
	slots := []types.TimeString{ts("09:00"), ts("09:30"), ts("10:00"), ts("10:30")}
	booked := []types.TimeString{ts("09:30"), ts("10:30")}

	available := subtractBookedSlots(slots, booked)

	got := make([]string, 0, len(available))
	for _, s := range available {
		got = append(got, s.String())
	}
	assert.Equal(t, []string{"09:00", "10:00"}, got)
}

// TestIsDateInPast тестирует сравнение дат без учета времени
func TestIsDateInPast(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		expected bool
	}{
		{
			name:     "yesterday is in the past",
			date:     time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC),
			expected: true,
		},
		{
			name:     "today earlier in the day is not in the past",
			date:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "tomorrow is not in the past",
			date:     time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isDateInPast(tt.date, now))
		})
	}
}
