package ledger

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lixenwraith/pixel-brawl/event"
)

// ErrUnknownMatch is returned when closing or recording into a match that was never opened
var ErrUnknownMatch = errors.New("unknown match")

// Store persists matches and kills in a SQLite database through gorm
type Store struct {
	db *gorm.DB
}

// Open connects to the database at path, creating tables as needed
// An empty path opens a private in-memory database
func Open(path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open ledger %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// One writer; in-memory databases are per-connection
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Match{}, &Entrant{}, &Kill{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// BeginMatch opens a match row with its entrants
func (s *Store) BeginMatch(p *event.MatchStartPayload, at time.Time) error {
	m := Match{
		ID:           p.MatchID,
		StartedAt:    at,
		Participants: len(p.Characters),
	}
	for _, c := range p.Characters {
		m.Entrants = append(m.Entrants, Entrant{Name: c.Name, Weapon: c.Weapon})
	}
	if err := s.db.Create(&m).Error; err != nil {
		return fmt.Errorf("begin match %s: %w", p.MatchID, err)
	}
	return nil
}

// RecordKill appends a kill row to an open match
func (s *Store) RecordKill(matchID string, p *event.CharacterKilledPayload, simTime time.Duration) error {
	if err := s.exists(matchID); err != nil {
		return err
	}
	k := Kill{
		MatchID:      matchID,
		Victim:       p.VictimName,
		VictimWeapon: p.VictimWeapon,
		Killer:       p.KillerName,
		KillerWeapon: p.KillerWeapon,
		Cause:        p.Cause,
		SimTimeMs:    simTime.Milliseconds(),
	}
	if err := s.db.Create(&k).Error; err != nil {
		return fmt.Errorf("record kill: %w", err)
	}
	return nil
}

// EndMatch closes a match with its winner; an empty winner records a draw
func (s *Store) EndMatch(matchID, winner, weapon, reason string, simTime time.Duration, at time.Time) error {
	res := s.db.Model(&Match{}).
		Where("id = ? AND ended_at IS NULL", matchID).
		Updates(map[string]any{
			"ended_at":      at,
			"winner":        winner,
			"winner_weapon": weapon,
			"sim_time_ms":   simTime.Milliseconds(),
			"reason":        reason,
		})
	if res.Error != nil {
		return fmt.Errorf("end match %s: %w", matchID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("end match %s: %w", matchID, ErrUnknownMatch)
	}
	return nil
}

func (s *Store) exists(matchID string) error {
	var n int64
	if err := s.db.Model(&Match{}).Where("id = ?", matchID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("match %s: %w", matchID, ErrUnknownMatch)
	}
	return nil
}

// Match loads a match with its entrants and kills
func (s *Store) Match(id string) (*Match, error) {
	var m Match
	err := s.db.Preload("Entrants").Preload("Kills", func(db *gorm.DB) *gorm.DB {
		return db.Order("sim_time_ms, id")
	}).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("match %s: %w", id, ErrUnknownMatch)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// RecentMatches returns up to limit matches, newest first
func (s *Store) RecentMatches(limit int) ([]Match, error) {
	var out []Match
	err := s.db.Order("started_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

type weaponCount struct {
	Weapon string
	N      int64
}

// WeaponStats aggregates entries, kills, deaths and wins per weapon, sorted by wins then kills
func (s *Store) WeaponStats() ([]WeaponStat, error) {
	stats := make(map[string]*WeaponStat)
	get := func(w string) *WeaponStat {
		if st, ok := stats[w]; ok {
			return st
		}
		st := &WeaponStat{Weapon: w}
		stats[w] = st
		return st
	}

	queries := []struct {
		model any
		col   string
		where string
		apply func(*WeaponStat, int64)
	}{
		{&Entrant{}, "weapon", "", func(st *WeaponStat, n int64) { st.Entries = n }},
		{&Kill{}, "killer_weapon", "killer_weapon <> ''", func(st *WeaponStat, n int64) { st.Kills = n }},
		{&Kill{}, "victim_weapon", "", func(st *WeaponStat, n int64) { st.Deaths = n }},
		{&Match{}, "winner_weapon", "winner_weapon <> ''", func(st *WeaponStat, n int64) { st.Wins = n }},
	}
	for _, q := range queries {
		var rows []weaponCount
		tx := s.db.Model(q.model).Select(q.col + " AS weapon, COUNT(*) AS n").Group(q.col)
		if q.where != "" {
			tx = tx.Where(q.where)
		}
		if err := tx.Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("weapon stats: %w", err)
		}
		for _, r := range rows {
			q.apply(get(r.Weapon), r.N)
		}
	}

	out := make([]WeaponStat, 0, len(stats))
	for _, st := range stats {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].Kills != out[j].Kills {
			return out[i].Kills > out[j].Kills
		}
		return out[i].Weapon < out[j].Weapon
	})
	return out, nil
}
