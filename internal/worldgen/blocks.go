package worldgen

import "sort"

// BlockID is an externally supplied block-type identifier.
type BlockID int32

// BlockTable maps semantic block names to the caller's block IDs. Every
// name referenced by the generation stages must be present; missing names
// are reported as warnings and the affected voxels are skipped.
type BlockTable map[string]BlockID

// Semantic block names the generator places.
const (
	BlockStone       = "stone"
	BlockDirt        = "dirt"
	BlockGrass       = "grass"
	BlockSand        = "sand"
	BlockSandLight   = "sand-light"
	BlockSnow        = "snow"
	BlockGravel      = "gravel"
	BlockClay        = "clay"
	BlockCactus      = "cactus"
	BlockSandstone   = "sandstone"
	BlockLava        = "lava"
	BlockWaterStill  = "water-still"
	BlockCoal        = "coal"
	BlockIron        = "iron"
	BlockGold        = "gold"
	BlockEmerald     = "emerald"
	BlockDiamond     = "diamond"
	BlockLog         = "log"
	BlockPoplarLog   = "poplar log"
	BlockOakLeaves   = "oak-leaves"
	BlockColdLeaves  = "cold-leaves"
	BlockCobblestone = "cobblestone"
)

// blockNames lists every semantic name in registry order.
var blockNames = []string{
	BlockStone, BlockDirt, BlockGrass, BlockSand, BlockSandLight,
	BlockSnow, BlockGravel, BlockClay, BlockCactus, BlockSandstone,
	BlockLava, BlockWaterStill, BlockCoal, BlockIron, BlockGold,
	BlockEmerald, BlockDiamond, BlockLog, BlockPoplarLog,
	BlockOakLeaves, BlockColdLeaves, BlockCobblestone,
}

// DefaultBlockTable assigns sequential IDs starting at 1 in registry order.
func DefaultBlockTable() BlockTable {
	table := make(BlockTable, len(blockNames))
	for i, name := range blockNames {
		table[name] = BlockID(i + 1)
	}
	return table
}

// blockSet resolves semantic names against the caller's table and records
// each missing name once.
type blockSet struct {
	table   BlockTable
	missing map[string]bool
}

func newBlockSet(table BlockTable) *blockSet {
	return &blockSet{table: table, missing: make(map[string]bool)}
}

func (b *blockSet) id(name string) (BlockID, bool) {
	id, ok := b.table[name]
	if !ok {
		b.missing[name] = true
	}
	return id, ok
}

func (b *blockSet) warnings() []string {
	if len(b.missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(b.missing))
	for name := range b.missing {
		names = append(names, name)
	}
	sort.Strings(names)
	warnings := make([]string, len(names))
	for i, name := range names {
		warnings[i] = "block table has no mapping for " + name
	}
	return warnings
}
