package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddOverflows(t *testing.T) {
	sum, ok := addOverflows(10, 20)
	require.True(t, ok)
	require.Equal(t, uint64(30), sum)

	_, ok = addOverflows(math.MaxUint64, 1)
	require.False(t, ok)
}

func TestMulOverflows(t *testing.T) {
	product, ok := mulOverflows(6, 7)
	require.True(t, ok)
	require.Equal(t, uint64(42), product)

	_, ok = mulOverflows(0, math.MaxUint64)
	require.True(t, ok)

	_, ok = mulOverflows(math.MaxUint64, 2)
	require.False(t, ok)
}
