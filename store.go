package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// viewStore persists the parts of the view state worth keeping between
// sessions: the recent-profiles list and, per profile, the hidden tracks
// and the last active tab.
type viewStore struct {
	db   *sql.DB
	path string
}

type recentProfile struct {
	Path     string
	Label    string
	OpenedAt time.Time
}

func openViewStore() (*viewStore, error) {
	return openViewStoreAt(resolveConfigDir())
}

func openViewStoreAt(dir string) (*viewStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	sqlitePath := filepath.Join(dir, "viewstate.sqlite")
	db, err := sql.Open("sqlite", sqlitePath)
	if err != nil {
		return nil, err
	}
	if err := migrateViewStore(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &viewStore{db: db, path: sqlitePath}, nil
}

func migrateViewStore(db *sql.DB) error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS recent_profiles (
			path TEXT PRIMARY KEY,
			label TEXT NOT NULL DEFAULT '',
			opened_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS hidden_tracks (
			profile_path TEXT NOT NULL,
			pid TEXT NOT NULL,
			track_index INTEGER NOT NULL,
			PRIMARY KEY (profile_path, pid, track_index)
		);`,
		`CREATE TABLE IF NOT EXISTS profile_tabs (
			profile_path TEXT PRIMARY KEY,
			tab TEXT NOT NULL
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("view store migration failed: %w", err)
		}
	}
	return nil
}

func (s *viewStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *viewStore) TouchRecent(path, label string) error {
	if s == nil || s.db == nil {
		return nil
	}
	clean := filepath.Clean(strings.TrimSpace(path))
	if clean == "" {
		return nil
	}
	_, err := s.db.Exec(`INSERT INTO recent_profiles (path, label, opened_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET label = excluded.label, opened_at = CURRENT_TIMESTAMP`, clean, label)
	return err
}

func (s *viewStore) Recents(limit int) ([]recentProfile, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`SELECT path, COALESCE(NULLIF(label, ''), path), opened_at
		FROM recent_profiles ORDER BY opened_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []recentProfile
	for rows.Next() {
		var rp recentProfile
		if err := rows.Scan(&rp.Path, &rp.Label, &rp.OpenedAt); err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}

// SaveHidden replaces the stored hidden-track set for a profile.
func (s *viewStore) SaveHidden(profilePath string, hidden map[string]map[int]bool) error {
	if s == nil || s.db == nil {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM hidden_tracks WHERE profile_path = ?`, profilePath); err != nil {
		_ = tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO hidden_tracks (profile_path, pid, track_index) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for pid, set := range hidden {
		for trackIndex := range set {
			if _, err := stmt.Exec(profilePath, pid, trackIndex); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
	}
	return tx.Commit()
}

func (s *viewStore) LoadHidden(profilePath string) (map[string]map[int]bool, error) {
	hidden := make(map[string]map[int]bool)
	if s == nil || s.db == nil {
		return hidden, nil
	}
	rows, err := s.db.Query(`SELECT pid, track_index FROM hidden_tracks WHERE profile_path = ?`, profilePath)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			pid        string
			trackIndex int
		)
		if err := rows.Scan(&pid, &trackIndex); err != nil {
			return nil, err
		}
		set := hidden[pid]
		if set == nil {
			set = make(map[int]bool)
			hidden[pid] = set
		}
		set[trackIndex] = true
	}
	return hidden, rows.Err()
}

func (s *viewStore) SaveTab(profilePath string, tab tabID) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(`INSERT INTO profile_tabs (profile_path, tab) VALUES (?, ?)
		ON CONFLICT(profile_path) DO UPDATE SET tab = excluded.tab`, profilePath, string(tab))
	return err
}

func (s *viewStore) LoadTab(profilePath string) (tabID, bool, error) {
	if s == nil || s.db == nil {
		return "", false, nil
	}
	var tab string
	err := s.db.QueryRow(`SELECT tab FROM profile_tabs WHERE profile_path = ?`, profilePath).Scan(&tab)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return tabID(tab), true, nil
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
