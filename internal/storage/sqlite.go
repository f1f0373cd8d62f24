package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/meur/mhwdb/internal/models"
	"github.com/meur/mhwdb/internal/storage/migrations"
)

// Tables lists every table of the schema in creation order
var Tables = []string{
	"monster", "monster_text",
	"skilltree", "skilltree_text", "skill",
	"item", "item_text",
	"armor", "armor_text",
	"decoration", "decoration_text", "decoration_chance",
	"build_info",
}

// Store handles all database operations
type Store struct {
	db   *sql.DB
	path string
}

// Recreate deletes any database at dbPath, creates an empty one and applies
// the schema migrations.
func Recreate(dbPath string) (*Store, error) {
	if err := os.Remove(dbPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove old database: %w", err)
	}
	if err := migrateUp(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return Open(dbPath)
}

// Open opens an existing database without touching its schema
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// migrateUp applies the embedded migrations on a dedicated connection; the
// migrate driver closes it when done.
func migrateUp(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		db.Close()
		return err
	}
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		driver.Close()
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		src.Close()
		driver.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// WithTx runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back on error or panic.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			sqlTx.Rollback()
		}
	}()

	if err = fn(&Tx{tx: sqlTx, ctx: ctx}); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// --- Read-back ---

// Count returns the number of rows in table
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	if !knownTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

// GetArmor returns an armor row by ID
func (s *Store) GetArmor(ctx context.Context, id int) (*models.Armor, error) {
	var a models.Armor
	err := s.db.QueryRowContext(ctx, `
		SELECT id, rarity, part, male, female, slot_1, slot_2, slot_3,
			defense, fire, water, thunder, ice, dragon
		FROM armor WHERE id = ?
	`, id).Scan(&a.ID, &a.Rarity, &a.Part, &a.Male, &a.Female, &a.Slot1, &a.Slot2, &a.Slot3,
		&a.Defense, &a.Fire, &a.Water, &a.Thunder, &a.Ice, &a.Dragon)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetDecorationChances returns every decoration chance with the decoration's
// name in language, ordered by tier then name
func (s *Store) GetDecorationChances(ctx context.Context, language string) ([]models.DecorationChance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.decoration_id, t.name, d.tier, c.feystone, c.probability
		FROM decoration_chance c
		JOIN decoration d ON d.id = c.decoration_id
		JOIN decoration_text t ON t.id = c.decoration_id AND t.lang_id = ?
		ORDER BY d.rarity, t.name, c.feystone
	`, language)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chances []models.DecorationChance
	for rows.Next() {
		var c models.DecorationChance
		if err := rows.Scan(&c.DecorationID, &c.Name, &c.Tier, &c.Feystone, &c.Probability); err != nil {
			return nil, err
		}
		chances = append(chances, c)
	}
	return chances, rows.Err()
}

// GetBuildInfo returns the build info row, or nil if the database has none
func (s *Store) GetBuildInfo(ctx context.Context) (*models.BuildInfo, error) {
	var info models.BuildInfo
	var languages string
	err := s.db.QueryRowContext(ctx, `
		SELECT build_id, languages, built_at FROM build_info
	`).Scan(&info.BuildID, &languages, &info.BuiltAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	info.Languages = strings.Split(languages, ",")
	return &info, nil
}

func knownTable(table string) bool {
	for _, t := range Tables {
		if t == table {
			return true
		}
	}
	return false
}

// --- Writes ---

// Tx is the write side of one build transaction
type Tx struct {
	tx  *sql.Tx
	ctx context.Context
}

func (t *Tx) exec(query string, args ...interface{}) error {
	_, err := t.tx.ExecContext(t.ctx, query, args...)
	return err
}

// InsertMonster inserts a monster row
func (t *Tx) InsertMonster(m models.Monster) error {
	return t.exec(`INSERT INTO monster (id) VALUES (?)`, m.ID)
}

// InsertMonsterText inserts the localized strings of a monster
func (t *Tx) InsertMonsterText(m models.MonsterText) error {
	return t.exec(`
		INSERT INTO monster_text (id, lang_id, name, description) VALUES (?, ?, ?, ?)
	`, m.ID, m.LangID, m.Name, m.Description)
}

// InsertSkillTree inserts a skill tree row
func (t *Tx) InsertSkillTree(s models.SkillTree) error {
	return t.exec(`INSERT INTO skilltree (id) VALUES (?)`, s.ID)
}

// InsertSkillTreeText inserts the localized strings of a skill tree
func (t *Tx) InsertSkillTreeText(s models.SkillTreeText) error {
	return t.exec(`
		INSERT INTO skilltree_text (id, lang_id, name, description) VALUES (?, ?, ?, ?)
	`, s.ID, s.LangID, s.Name, s.Description)
}

// InsertSkill inserts the localized effect of one skill level
func (t *Tx) InsertSkill(s models.Skill) error {
	return t.exec(`
		INSERT INTO skill (skilltree_id, lang_id, level, description) VALUES (?, ?, ?, ?)
	`, s.SkillTreeID, s.LangID, s.Level, s.Description)
}

// InsertItem inserts an item row
func (t *Tx) InsertItem(i models.Item) error {
	return t.exec(`INSERT INTO item (id) VALUES (?)`, i.ID)
}

// InsertItemText inserts the localized name of an item
func (t *Tx) InsertItemText(i models.ItemText) error {
	return t.exec(`INSERT INTO item_text (id, lang_id, name) VALUES (?, ?, ?)`, i.ID, i.LangID, i.Name)
}

// InsertArmor inserts an armor row
func (t *Tx) InsertArmor(a models.Armor) error {
	return t.exec(`
		INSERT INTO armor (id, rarity, part, male, female, slot_1, slot_2, slot_3,
			defense, fire, water, thunder, ice, dragon)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Rarity, a.Part, a.Male, a.Female, a.Slot1, a.Slot2, a.Slot3,
		a.Defense, a.Fire, a.Water, a.Thunder, a.Ice, a.Dragon)
}

// InsertArmorText inserts the localized name of an armor piece
func (t *Tx) InsertArmorText(a models.ArmorText) error {
	return t.exec(`INSERT INTO armor_text (id, lang_id, name) VALUES (?, ?, ?)`, a.ID, a.LangID, a.Name)
}

// InsertDecoration inserts a decoration row
func (t *Tx) InsertDecoration(d models.Decoration) error {
	return t.exec(`
		INSERT INTO decoration (id, rarity, slot, skilltree_id, tier) VALUES (?, ?, ?, ?, ?)
	`, d.ID, d.Rarity, d.Slot, d.SkillTreeID, d.Tier)
}

// InsertDecorationText inserts the localized name of a decoration
func (t *Tx) InsertDecorationText(d models.DecorationText) error {
	return t.exec(`INSERT INTO decoration_text (id, lang_id, name) VALUES (?, ?, ?)`, d.ID, d.LangID, d.Name)
}

// BulkCreateDecorationChances inserts chance rows with one prepared statement
func (t *Tx) BulkCreateDecorationChances(chances []models.DecorationChance) error {
	stmt, err := t.tx.PrepareContext(t.ctx, `
		INSERT INTO decoration_chance (decoration_id, feystone, probability) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range chances {
		if _, err := stmt.ExecContext(t.ctx, c.DecorationID, c.Feystone, c.Probability); err != nil {
			return err
		}
	}
	return nil
}

// InsertBuildInfo records the build run
func (t *Tx) InsertBuildInfo(info models.BuildInfo) error {
	return t.exec(`
		INSERT INTO build_info (build_id, languages, built_at) VALUES (?, ?, ?)
	`, info.BuildID, strings.Join(info.Languages, ","), info.BuiltAt.UTC())
}
