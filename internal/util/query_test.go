package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOptionalFloat(t *testing.T) {
	v, err := ParseOptionalFloat("min_price", "")
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = ParseOptionalFloat("min_price", " 12.5 ")
	require.NoError(t, err)
	require.Equal(t, 12.5, *v)

	_, err = ParseOptionalFloat("min_price", "abc")
	require.EqualError(t, err, "min_price must be a number")

	_, err = ParseOptionalFloat("max_price", "NaN")
	require.Error(t, err)
}
