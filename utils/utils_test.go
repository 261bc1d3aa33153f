package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, 0.123, FormatFloat(0.12345, 3))
	assert.Equal(t, 0.12, FormatFloat(0.12345, 2))
	assert.True(t, math.IsInf(FormatFloat(math.Inf(1), 3), 1))
	assert.True(t, math.IsNaN(FormatFloat(math.NaN(), 3)))
}

func TestParseFloats(t *testing.T) {
	xs, err := ParseFloats(" 0.2, 0.25 ,1")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.25, 1}, xs)

	xs, err = ParseFloats("")
	require.NoError(t, err)
	assert.Nil(t, xs)

	_, err = ParseFloats("0.2,x")
	assert.Error(t, err)
}

func TestParseInts(t *testing.T) {
	is, err := ParseInts("1,0")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, is)

	_, err = ParseInts("1.5")
	assert.Error(t, err)
}
