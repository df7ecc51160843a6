package parameter

// Arena geometry (world units)
const (
	ArenaWidth     = 40.0
	ArenaHeight    = 24.0
	WallThickness  = 1.0
	KillzoneHeight = 1.0

	// KillzoneDepth places the killzone strip this far below the arena floor
	KillzoneDepth = 4.0
)

// Character body
const (
	CharacterRadius = 1.0

	// SkinMargin widens the skin sensor beyond the solid body
	SkinMargin = 0.25

	CharacterRestitution   = 0.9
	CharacterLinearDamping = 0.05
	CharacterSleep         = 0.05

	// CharacterLaunchSpeed is the initial speed given to spawned characters
	CharacterLaunchSpeed = 6.0
)

// Weapon cells
const (
	// CellSize is the world size of one weapon asset pixel
	CellSize = 0.25

	WeaponAngularDamping = 0.5
	WeaponMotorTorque    = 1000.0
)
