package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePricePerKg(t *testing.T) {
	got, err := ComputePricePerKg(1250, 25)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, got, 1e-9)
}

func TestComputePricePerKgRoundsToTwoDecimals(t *testing.T) {
	got, err := ComputePricePerKg(10, 3)
	require.NoError(t, err)
	assert.InDelta(t, 3.33, got, 1e-9)
}

func TestComputePricePerKgRejectsNonPositiveKgs(t *testing.T) {
	_, err := ComputePricePerKg(1250, 0)
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = ComputePricePerKg(1250, -2)
	assert.ErrorIs(t, err, ErrInvalidProduct)
}
