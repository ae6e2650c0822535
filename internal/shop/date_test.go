package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2024-02-29"))
	assert.False(t, ValidDate("2023-02-29"))
	assert.False(t, ValidDate("2024-2-9"))
	assert.False(t, ValidDate("2024-02-09T00:00:00Z"))
	assert.False(t, ValidDate(""))

	_, err := ParseDate("31/12/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDateRange(t *testing.T) {
	dates, err := DateRange("2024-02-27", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, dates)

	dates, err = DateRange("2024-03-02", "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, dates)

	_, err = DateRange("bad", "2024-03-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange("2024-01-01", "2024-01-01", "2024-01-31"))
	assert.True(t, InRange("2024-01-31", "2024-01-01", "2024-01-31"))
	assert.False(t, InRange("2024-02-01", "2024-01-01", "2024-01-31"))
}
