package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelworks/terragen/internal/worldgen"
)

func TestEncodeDecodeVoxels(t *testing.T) {
	vox := worldgen.NewVoxelMap()
	vox.Set(-3, 0, 7, 1)
	vox.Set(0, 12, 0, 5)
	vox.Set(4, 1, -2, 9)

	payload, err := EncodeVoxels(vox)
	require.NoError(t, err)

	voxels, err := DecodeVoxels(payload)
	require.NoError(t, err)
	require.Len(t, voxels, 3)

	for _, v := range voxels {
		id, ok := vox.At(v.X, v.Y, v.Z)
		require.True(t, ok, "decoded voxel (%d,%d,%d) not in source", v.X, v.Y, v.Z)
		assert.Equal(t, id, v.ID)
	}
}

func TestEncodeVoxelsStableBytes(t *testing.T) {
	build := func() *worldgen.VoxelMap {
		vox := worldgen.NewVoxelMap()
		for x := -10; x < 10; x++ {
			for z := -10; z < 10; z++ {
				vox.Set(x, 0, z, 1)
				vox.Set(x, 1, z, worldgen.BlockID(2+(x+z)%3))
			}
		}
		return vox
	}

	a, err := EncodeVoxels(build())
	require.NoError(t, err)
	b, err := EncodeVoxels(build())
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical maps must serialize to identical bytes")
}

func TestEncodeVoxelsEmpty(t *testing.T) {
	payload, err := EncodeVoxels(worldgen.NewVoxelMap())
	require.NoError(t, err)
	voxels, err := DecodeVoxels(payload)
	require.NoError(t, err)
	assert.Empty(t, voxels)
}

func TestDecodeVoxelsRejectsGarbage(t *testing.T) {
	_, err := DecodeVoxels([]byte("not gzip"))
	require.Error(t, err)
}
