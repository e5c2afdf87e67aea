package calc_test

import (
	"errors"
	"testing"
	"time"

	"funnel-metrics-service/internal/calc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate_ZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, calc.Rate(5, 0))
	assert.Equal(t, 0.0, calc.Rate(0, 0))
	assert.Equal(t, 0.0, calc.Rate(int64(7), int64(0)))
}

func TestRate_Fraction(t *testing.T) {
	assert.Equal(t, 0.5, calc.Rate(3, 6))
	assert.InDelta(t, 1.0/3.0, calc.Rate(int64(1), int64(3)), 1e-12)
}

func TestDurationHours(t *testing.T) {
	start := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

	h, err := calc.DurationHours("job:1", start, start.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1.5, h)

	h, err = calc.DurationHours("job:1", start, start)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h)
}

func TestDurationHours_NegativeIsIntegrityError(t *testing.T) {
	start := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

	_, err := calc.DurationHours("job:42", start, start.Add(-time.Hour))
	require.Error(t, err)
	assert.True(t, errors.Is(err, calc.ErrDataIntegrity))

	var die *calc.DataIntegrityError
	require.True(t, errors.As(err, &die))
	assert.Equal(t, "job:42", die.Record)
}

func TestPercent_RoundsOnlyAtPresentation(t *testing.T) {
	r := calc.Rate(1, 3)
	assert.Equal(t, 33.3, calc.Percent(r, 1))
	assert.Equal(t, 33.33, calc.Percent(r, 2))
	assert.Equal(t, 0.0, calc.Percent(calc.Rate(4, 0), 1))
}
