package world

// Terrain tile codes.
const (
	TerrainEmpty     byte = 0x00
	TerrainWallH     byte = 0x01
	TerrainWallV     byte = 0x02
	TerrainCornerNW  byte = 0x03
	TerrainCornerNE  byte = 0x04
	TerrainCornerSE  byte = 0x05
	TerrainCornerSW  byte = 0x06
	TerrainTunnel    byte = 0x07
	TerrainDWallH    byte = 0x08
	TerrainDWallV    byte = 0x09
	TerrainDCornerNW byte = 0x0a
	TerrainDCornerNE byte = 0x0b
	TerrainDCornerSE byte = 0x0c
	TerrainDCornerSW byte = 0x0d
	TerrainDoor      byte = 0x0e

	terrainMax = TerrainDoor
)

// Food tile codes.
const (
	FoodEmpty     byte = 0x00
	FoodPellet    byte = 0x01
	FoodEnergizer byte = 0x02

	foodMax = FoodEnergizer
)

// IsWallCode reports whether code is one of the wall or corner variants.
func IsWallCode(code byte) bool {
	switch code {
	case TerrainWallH, TerrainWallV,
		TerrainCornerNW, TerrainCornerNE, TerrainCornerSE, TerrainCornerSW,
		TerrainDWallH, TerrainDWallV,
		TerrainDCornerNW, TerrainDCornerNE, TerrainDCornerSE, TerrainDCornerSW:
		return true
	}
	return false
}

// Map property names.
const (
	PropPacPos        = "pos_pac"
	PropBonusPos      = "pos_bonus"
	PropHouseMinTile  = "pos_house_min_tile"
	PropHouseMaxTile  = "pos_house_max_tile"
	PropWallColor     = "color_wall"
	PropDoorColor     = "color_door"
	PropFoodColor     = "color_food"
	PropGhostPosFmt   = "pos_%s_ghost"
	PropScatterPosFmt = "pos_scatter_%s_ghost"
)
