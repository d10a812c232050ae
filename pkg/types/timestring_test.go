package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTimeStringFromString тестирует валидацию формата времени
func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning time", input: "09:00"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid end of day", input: "23:59"},
		{name: "invalid hour", input: "25:00", wantErr: true},
		{name: "invalid minute", input: "10:75", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

// TestTimeString_Minutes тестирует перевод в минуты с начала суток
func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{input: "00:00", expected: 0},
		{input: "09:00", expected: 540},
		{input: "13:45", expected: 825},
		{input: "23:59", expected: 1439},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			minutes, err := TimeString(tt.input).Minutes()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, minutes)
		})
	}
}

// TestTimeString_AddMinutes тестирует сдвиг времени
func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		minutes  int
		expected string
	}{
		{name: "add half hour", input: "09:00", minutes: 30, expected: "09:30"},
		{name: "cross the hour", input: "10:45", minutes: 30, expected: "11:15"},
		{name: "add full service duration", input: "16:00", minutes: 60, expected: "17:00"},
		{name: "zero shift", input: "12:00", minutes: 0, expected: "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shifted, err := TimeString(tt.input).AddMinutes(tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, shifted.String())
		})
	}
}

// TestTimeString_Comparisons тестирует сравнение времен
func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("17:30").IsAfter(TimeString("17:00")))
	assert.False(t, TimeString("17:00").IsAfter(TimeString("17:00")))
}

// TestNewTimeString тестирует создание из time.Time
func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 6, 15, 14, 30, 45, 0, time.UTC)
	assert.Equal(t, TimeString("14:30"), NewTimeString(moment))
}
