package ledger

import "time"

// Match is one arena lifetime, opened on match start and closed on match over
type Match struct {
	ID           string `gorm:"primaryKey;size:36"`
	StartedAt    time.Time
	EndedAt      *time.Time
	Participants int
	Winner       string
	WinnerWeapon string
	SimTimeMs    int64 // Simulation time at close
	Reason       string

	Entrants []Entrant `gorm:"foreignKey:MatchID"`
	Kills    []Kill    `gorm:"foreignKey:MatchID"`
}

// Entrant is one roster participant of a match
type Entrant struct {
	ID      uint   `gorm:"primaryKey"`
	MatchID string `gorm:"index;size:36"`
	Name    string
	Weapon  string `gorm:"index"`
}

// Kill is one character removal
type Kill struct {
	ID           uint   `gorm:"primaryKey"`
	MatchID      string `gorm:"index;size:36"`
	Victim       string
	VictimWeapon string `gorm:"index"`
	Killer       string
	KillerWeapon string `gorm:"index"`
	Cause        string
	SimTimeMs    int64
	CreatedAt    time.Time
}

// WeaponStat aggregates ledger rows per weapon
type WeaponStat struct {
	Weapon  string
	Entries int64
	Kills   int64
	Deaths  int64
	Wins    int64
}
