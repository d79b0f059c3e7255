package worldgen

// Voxel coordinates are packed into a single 64-bit key, 21 bits per axis
// with a bias so negative coordinates pack cleanly. This keeps the sparse
// map allocation-free on lookup compared to a string "x,y,z" key.
const (
	axisBits = 21
	axisMask = (1 << axisBits) - 1
	axisBias = 1 << 20
)

// PackKey encodes (x, y, z) into a voxel key. Each axis must lie within
// [-2^20, 2^20).
func PackKey(x, y, z int) uint64 {
	return uint64(uint32(x+axisBias)&axisMask)<<(2*axisBits) |
		uint64(uint32(y+axisBias)&axisMask)<<axisBits |
		uint64(uint32(z+axisBias)&axisMask)
}

// UnpackKey decodes a voxel key back into (x, y, z).
func UnpackKey(key uint64) (x, y, z int) {
	x = int(key>>(2*axisBits)&axisMask) - axisBias
	y = int(key>>axisBits&axisMask) - axisBias
	z = int(key&axisMask) - axisBias
	return
}

// VoxelMap is the sparse world-coordinate to block-ID mapping the engine
// produces. Absent keys are air.
type VoxelMap struct {
	blocks map[uint64]BlockID
}

// NewVoxelMap creates an empty voxel map.
func NewVoxelMap() *VoxelMap {
	return &VoxelMap{blocks: make(map[uint64]BlockID)}
}

// Set assigns the block at (x, y, z).
func (m *VoxelMap) Set(x, y, z int, id BlockID) {
	m.blocks[PackKey(x, y, z)] = id
}

// At returns the block at (x, y, z) and whether one is present.
func (m *VoxelMap) At(x, y, z int) (BlockID, bool) {
	id, ok := m.blocks[PackKey(x, y, z)]
	return id, ok
}

// Has reports whether a solid block occupies (x, y, z).
func (m *VoxelMap) Has(x, y, z int) bool {
	_, ok := m.blocks[PackKey(x, y, z)]
	return ok
}

// Delete removes the block at (x, y, z).
func (m *VoxelMap) Delete(x, y, z int) {
	delete(m.blocks, PackKey(x, y, z))
}

// Len returns the number of placed voxels.
func (m *VoxelMap) Len() int {
	return len(m.blocks)
}

// Range calls fn for every voxel until fn returns false. Iteration order
// is unspecified.
func (m *VoxelMap) Range(fn func(x, y, z int, id BlockID) bool) {
	for key, id := range m.blocks {
		x, y, z := UnpackKey(key)
		if !fn(x, y, z, id) {
			return
		}
	}
}
