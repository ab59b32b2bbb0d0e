package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	ts, err = NewTimeStringFromString("14:00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("14:00"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("11:00"))
	assert.False(t, TimeString("11:00").IsBefore("11:00"))
	assert.True(t, TimeString("16:00").IsAfter("14:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("11:00:00")))
	assert.Equal(t, TimeString("11:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 16, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:00"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	at, err := TimeString("14:00").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 20, 14, 0, 0, 0, time.UTC), at)
}
