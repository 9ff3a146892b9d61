package config

import "image/color"

// GeometryConfig contains the tuning values of the area geometry core
type GeometryConfig struct {
	// Blockmap
	BlockmapBlockSize float64 // Width and height of a blockmap block

	// Sectors
	DefSectorBrightness uint8
	StepHeight          float64 // Mobs can walk up sectors at most this much higher

	// Wall shadows
	ShadowDefColor       color.NRGBA // Color at the edge of a wall shadow
	ShadowAutoLengthMult float64     // Height difference is multiplied by this for automatic lengths
	ShadowMinAutoLength  float64
	ShadowMaxAutoLength  float64
	ShadowMinLength      float64
	ShadowMaxLength      float64

	// Ledge smoothing
	SmoothingDefColor  color.NRGBA
	SmoothingMaxLength float64

	// LargeFloat marks a wall shadow length as automatic
	LargeFloat float64

	// StrictInvariants makes graph invariant violations panic instead of
	// logging a warning and skipping the operation
	StrictInvariants bool
}

// CollisionConfig contains the settings of the resolv collision space
type CollisionConfig struct {
	CellWidth  int
	CellHeight int
}

// StoreConfig contains the settings of the snapshot store
type StoreConfig struct {
	AppName string
}

var Geometry GeometryConfig
var Collision CollisionConfig
var Store StoreConfig

func init() {
	Geometry = GeometryConfig{
		BlockmapBlockSize: 128,

		DefSectorBrightness: 255,
		StepHeight:          50,

		ShadowDefColor:       color.NRGBA{R: 0, G: 0, B: 0, A: 230},
		ShadowAutoLengthMult: 0.2,
		ShadowMinAutoLength:  8,
		ShadowMaxAutoLength:  50,
		ShadowMinLength:      1,
		ShadowMaxLength:      100,

		SmoothingDefColor:  color.NRGBA{R: 0, G: 0, B: 0, A: 179},
		SmoothingMaxLength: 100,

		LargeFloat: 999999,

		StrictInvariants: false,
	}

	Collision = CollisionConfig{
		CellWidth:  16,
		CellHeight: 16,
	}

	Store = StoreConfig{
		AppName: "sectormap",
	}
}
