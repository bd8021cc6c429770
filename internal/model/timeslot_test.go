package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeSlot(t *testing.T) {
	s, err := NewTimeSlot("09:00", "10:30")
	require.NoError(t, err)
	assert.Equal(t, 540, s.Start)
	assert.Equal(t, 630, s.End)
	assert.Equal(t, 90, s.Duration())
	assert.Equal(t, "09:00-10:30", s.String())
}

func TestTimeSlotValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    TimeSlot
		wantErr bool
	}{
		{"valid", TimeSlot{Start: 540, End: 600}, false},
		{"full day", TimeSlot{Start: 0, End: MinutesPerDay}, false},
		{"zero length", TimeSlot{Start: 540, End: 540}, true},
		{"inverted", TimeSlot{Start: 600, End: 540}, true},
		{"negative start", TimeSlot{Start: -1, End: 60}, true},
		{"end past midnight", TimeSlot{Start: 1400, End: 1441}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseMinuteOfDay(t *testing.T) {
	m, err := ParseMinuteOfDay("15:04")
	require.NoError(t, err)
	assert.Equal(t, 15*60+4, m)

	_, err = ParseMinuteOfDay("25:00")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestWeeklyScheduleValidate(t *testing.T) {
	ok := WeeklySchedule{
		time.Monday: {{Start: 540, End: 600}, {Start: 600, End: 660}},
	}
	assert.NoError(t, ok.Validate())

	overlapping := WeeklySchedule{
		time.Monday: {{Start: 540, End: 620}, {Start: 600, End: 660}},
	}
	err := overlapping.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
