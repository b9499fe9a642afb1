package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationValueAndScan(t *testing.T) {
	loc := &Location{Latitude: -23.55, Longitude: -46.63, City: "São Paulo", State: "SP"}

	v, err := loc.Value()
	require.NoError(t, err)

	var back Location
	require.NoError(t, back.Scan(v))
	assert.Equal(t, *loc, back)

	var nilLoc *Location
	v, err = nilLoc.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, back.Scan(42))
}

func TestLoanStatusValid(t *testing.T) {
	assert.True(t, StatusUnderReview.Valid())
	assert.False(t, LoanStatus("cancelled").Valid())
}
