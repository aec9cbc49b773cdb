package sqlite

import (
	"database/sql"
	"time"

	"github.com/forgeledger/forgeledger/internal/domain"
)

// ─── Ledger Key-Value ───────────────────────────────────────────────────────

// SetLedger stores a ledger key-value pair.
func (d *DB) SetLedger(key, value string) error {
	return setLedger(d.db, key, value)
}

// SetLedgerAll upserts several ledger keys in one transaction, so related
// fields (like the streak triple) can never be torn by a mid-way failure.
func (d *DB) SetLedgerAll(pairs map[string]string) error {
	return d.withTx(func(tx *sql.Tx) error {
		for k, v := range pairs {
			if err := setLedger(tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func setLedger(e execer, key, value string) error {
	_, err := e.Exec(
		`INSERT INTO ledger (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetLedger retrieves a ledger value by key.
// Returns "" if key not found.
func (d *DB) GetLedger(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM ledger WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Badges ─────────────────────────────────────────────────────────────────

// InsertBadge records a badge as earned.
// Returns false if the ID already exists (idempotent).
func (d *DB) InsertBadge(b domain.Badge) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO badges (id, name, description, category, earned_at)
		 VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Description, string(b.Category), b.EarnedAt.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly earned
}

// HasBadge checks whether a badge has been earned.
func (d *DB) HasBadge(id string) (bool, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM badges WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListBadges returns all earned badges, newest first.
func (d *DB) ListBadges() ([]domain.Badge, error) {
	rows, err := d.db.Query(
		`SELECT id, name, description, category, earned_at
		 FROM badges ORDER BY earned_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.Badge
	for rows.Next() {
		b, err := scanBadge(rows)
		if err != nil {
			return nil, err
		}
		badges = append(badges, *b)
	}
	return badges, rows.Err()
}

// BadgeCount returns how many badges have been earned.
func (d *DB) BadgeCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM badges`).Scan(&count)
	return count, err
}

// ─── Achievements ───────────────────────────────────────────────────────────

// InsertAchievement appends an entry to the achievement log.
func (d *DB) InsertAchievement(a domain.Achievement) error {
	return insertAchievement(d.db, a)
}

// SaveAward commits one XP award: the ledger snapshot pairs and the log
// entry land in a single transaction, so the stored XP and the achievement
// log stay in agreement even when a write fails part-way.
func (d *DB) SaveAward(pairs map[string]string, entry domain.Achievement) error {
	return d.withTx(func(tx *sql.Tx) error {
		for k, v := range pairs {
			if err := setLedger(tx, k, v); err != nil {
				return err
			}
		}
		return insertAchievement(tx, entry)
	})
}

func insertAchievement(e execer, a domain.Achievement) error {
	_, err := e.Exec(
		`INSERT INTO achievements (id, title, description, points, category, earned_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Description, a.Points, string(a.Category), a.EarnedAt.Unix(),
	)
	return err
}

// ListAchievements returns the newest entries, insertion order descending.
// limit <= 0 means no limit.
func (d *DB) ListAchievements(limit int) ([]domain.Achievement, error) {
	q := `SELECT id, title, description, points, category, earned_at
	      FROM achievements ORDER BY seq DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = d.db.Query(q+` LIMIT ?`, limit)
	} else {
		rows, err = d.db.Query(q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *a)
	}
	return entries, rows.Err()
}

// ListAchievementsSince returns entries earned at or after the given time,
// oldest first. Used by the weekly stats aggregation.
func (d *DB) ListAchievementsSince(t time.Time) ([]domain.Achievement, error) {
	rows, err := d.db.Query(
		`SELECT id, title, description, points, category, earned_at
		 FROM achievements WHERE earned_at >= ? ORDER BY seq ASC`, t.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *a)
	}
	return entries, rows.Err()
}

// AchievementCount returns the total number of log entries.
func (d *DB) AchievementCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM achievements`).Scan(&count)
	return count, err
}

// PointsByCategory sums logged points per category.
func (d *DB) PointsByCategory() (map[domain.Category]int64, error) {
	rows, err := d.db.Query(
		`SELECT category, COALESCE(SUM(points), 0) FROM achievements GROUP BY category`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[domain.Category]int64)
	for rows.Next() {
		var cat string
		var points int64
		if err := rows.Scan(&cat, &points); err != nil {
			return nil, err
		}
		totals[domain.Category(cat)] = points
	}
	return totals, rows.Err()
}

// ─── Events ─────────────────────────────────────────────────────────────────

// InsertEvent queues a celebration event. Returns the new event ID.
func (d *DB) InsertEvent(e domain.Event) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO events (type, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, 0)`,
		string(e.Type), e.Title, e.Body, e.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListPendingEvents returns unshown events, oldest first.
func (d *DB) ListPendingEvents(limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.Query(
		`SELECT id, type, title, body, created_at, shown
		 FROM events WHERE shown = 0 ORDER BY id ASC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var typ string
		var createdAt int64
		if err := rows.Scan(&e.ID, &typ, &e.Title, &e.Body, &createdAt, &e.Shown); err != nil {
			return nil, err
		}
		e.Type = domain.EventType(typ)
		e.CreatedAt = time.Unix(createdAt, 0)
		events = append(events, e)
	}
	return events, rows.Err()
}

// MarkEventShown marks an event as presented.
func (d *DB) MarkEventShown(id int64) error {
	result, err := d.db.Exec(`UPDATE events SET shown = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// ─── Scan helpers ───────────────────────────────────────────────────────────

func scanBadge(s scanner) (*domain.Badge, error) {
	var b domain.Badge
	var cat string
	var earnedAt int64

	err := s.Scan(&b.ID, &b.Name, &b.Description, &cat, &earnedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	b.Category = domain.Category(cat)
	b.EarnedAt = time.Unix(earnedAt, 0)
	return &b, nil
}

func scanAchievement(s scanner) (*domain.Achievement, error) {
	var a domain.Achievement
	var cat string
	var earnedAt int64

	err := s.Scan(&a.ID, &a.Title, &a.Description, &a.Points, &cat, &earnedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.Category = domain.Category(cat)
	a.EarnedAt = time.Unix(earnedAt, 0)
	return &a, nil
}
