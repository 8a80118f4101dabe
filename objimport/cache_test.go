package objimport_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iyesgames/ima/objimport"
)

func TestCache_MissThenHit(t *testing.T) {
	cache, err := objimport.NewCache(t.TempDir())
	require.NoError(t, err)

	source := []byte(triangleOBJ)

	miss, err := cache.Load(source)
	require.NoError(t, err)
	require.Nil(t, miss)

	mesh, err := objimport.ParseCached(cache, source)
	require.NoError(t, err)
	require.NotNil(t, mesh)

	hit, err := cache.Load(source)
	require.NoError(t, err)
	require.Equal(t, mesh, hit)
}
