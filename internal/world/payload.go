package world

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/voxelworks/terragen/internal/worldgen"
)

// EncodeVoxels flattens a voxel map into a gzip-compressed JSON array of
// [x, y, z, id] rows, sorted so the same world always produces the same
// bytes.
func EncodeVoxels(vox *worldgen.VoxelMap) ([]byte, error) {
	rows := make([][4]int32, 0, vox.Len())
	vox.Range(func(x, y, z int, id worldgen.BlockID) bool {
		rows = append(rows, [4]int32{int32(x), int32(y), int32(z), int32(id)})
		return true
	})
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		if a[2] != b[2] {
			return a[2] < b[2]
		}
		return a[0] < b[0]
	})

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(rows); err != nil {
		return nil, fmt.Errorf("encode voxel payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress voxel payload: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeVoxels is the inverse of EncodeVoxels.
func DecodeVoxels(data []byte) ([]Voxel, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompress voxel payload: %w", err)
	}
	defer zr.Close()

	var rows [][4]int32
	if err := json.NewDecoder(zr).Decode(&rows); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode voxel payload: %w", err)
	}

	voxels := make([]Voxel, len(rows))
	for i, row := range rows {
		voxels[i] = Voxel{
			X:  int(row[0]),
			Y:  int(row[1]),
			Z:  int(row[2]),
			ID: worldgen.BlockID(row[3]),
		}
	}
	return voxels, nil
}
