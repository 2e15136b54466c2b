// Package store persists parsed hand histories in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/pokertools/handhistory"
)

// Store is a SQLite-backed hand archive.
type Store struct {
	db *sql.DB
}

// StoredHand is one archived hand row. Money columns keep their decimal
// string form; reparse with shopspring/decimal when arithmetic is needed.
type StoredHand struct {
	HandID          string
	Room            string
	PlayedAt        time.Time
	SB, BB          string
	Limit           string
	Game            string
	GameType        string
	Currency        string
	TableName       string
	TournamentIdent string
	TournamentName  string
	MaxPlayers      int
	Hero            string
	HeroCombo       string
	Button          string
	Board           string
	TotalPot        string
	Rake            string
	ShowDown        bool
	Winners         []string
}

// SaveResult reports how a batch save went.
type SaveResult struct {
	Inserted int
	Updated  int
	Skipped  int
}

// Open opens (creating if needed) the database at path and migrates it to
// the current schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL mode reduces write latency by avoiding full fsync on every commit.
	// synchronous=NORMAL is safe with WAL and significantly faster than the default FULL.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveHands upserts a batch of parsed hands in one transaction. Unparsed
// hands are skipped, not failed: a batch import should archive everything
// it can.
func (s *Store) SaveHands(ctx context.Context, room string, hands []*handhistory.HandHistory) (SaveResult, error) {
	var res SaveResult
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC().Format(time.RFC3339Nano)
		for _, h := range hands {
			if h == nil || !h.Parsed() {
				res.Skipped++
				continue
			}
			inserted, err := upsertHandTx(ctx, tx, room, h, now)
			if err != nil {
				return fmt.Errorf("save %s: %w", h, err)
			}
			if inserted {
				res.Inserted++
			} else {
				res.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return SaveResult{}, err
	}
	return res, nil
}

func upsertHandTx(ctx context.Context, tx *sql.Tx, room string, h *handhistory.HandHistory, now string) (bool, error) {
	var exists int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM hands WHERE hand_id = ? LIMIT 1`, h.ID).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}
	inserted := err == sql.ErrNoRows

	var hero, heroCombo string
	if h.Hero != nil {
		hero = h.Hero.Name
		if h.Hero.Combo != nil {
			heroCombo = h.Hero.Combo.String()
		}
	}
	var button string
	if h.Button != nil {
		button = h.Button.Name
	}
	var board []string
	for _, c := range h.Board() {
		board = append(board, c.String())
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO hands(
		hand_id, room, played_at, sb, bb, limit_type, game, game_type, currency,
		table_name, tournament_ident, tournament_name, max_players,
		hero, hero_combo, button, board, total_pot, rake, showdown, winners, raw, updated_at
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(hand_id) DO UPDATE SET
		room=excluded.room,
		played_at=excluded.played_at,
		sb=excluded.sb,
		bb=excluded.bb,
		limit_type=excluded.limit_type,
		game=excluded.game,
		game_type=excluded.game_type,
		currency=excluded.currency,
		table_name=excluded.table_name,
		tournament_ident=excluded.tournament_ident,
		tournament_name=excluded.tournament_name,
		max_players=excluded.max_players,
		hero=excluded.hero,
		hero_combo=excluded.hero_combo,
		button=excluded.button,
		board=excluded.board,
		total_pot=excluded.total_pot,
		rake=excluded.rake,
		showdown=excluded.showdown,
		winners=excluded.winners,
		raw=excluded.raw,
		updated_at=excluded.updated_at`,
		h.ID,
		room,
		h.Date.UTC().Format(time.RFC3339Nano),
		h.SB.String(),
		h.BB.String(),
		h.Limit.String(),
		h.Game.String(),
		h.GameType.String(),
		string(h.Currency),
		h.TableName,
		h.TournamentIdent,
		h.Extra["tournament_name"],
		h.MaxPlayers,
		hero,
		heroCombo,
		button,
		strings.Join(board, " "),
		decimalOrEmpty(h.TotalPot),
		decimalOrEmpty(h.Rake),
		boolToInt(h.ShowDown),
		strings.Join(h.Winners, ","),
		h.Raw,
		now,
	)
	return inserted, err
}

// HandByID fetches one archived hand.
func (s *Store) HandByID(ctx context.Context, id string) (*StoredHand, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM hands WHERE hand_id = ?`, id)
	return scanHand(row)
}

// Recent returns up to n archived hands, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]*StoredHand, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` FROM hands ORDER BY played_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hands []*StoredHand
	for rows.Next() {
		h, err := scanHand(rows)
		if err != nil {
			return nil, err
		}
		hands = append(hands, h)
	}
	return hands, rows.Err()
}

// Count returns the number of archived hands.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hands`).Scan(&n)
	return n, err
}

const selectColumns = `SELECT hand_id, room, played_at, sb, bb, limit_type, game,
	game_type, currency, table_name, tournament_ident, tournament_name,
	max_players, hero, hero_combo, button, board, total_pot, rake, showdown, winners`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHand(row rowScanner) (*StoredHand, error) {
	var h StoredHand
	var playedAt, winners string
	var showdown int
	err := row.Scan(
		&h.HandID, &h.Room, &playedAt, &h.SB, &h.BB, &h.Limit, &h.Game,
		&h.GameType, &h.Currency, &h.TableName, &h.TournamentIdent, &h.TournamentName,
		&h.MaxPlayers, &h.Hero, &h.HeroCombo, &h.Button, &h.Board,
		&h.TotalPot, &h.Rake, &showdown, &winners,
	)
	if err != nil {
		return nil, err
	}
	h.PlayedAt, err = time.Parse(time.RFC3339Nano, playedAt)
	if err != nil {
		return nil, fmt.Errorf("played_at %q: %w", playedAt, err)
	}
	h.ShowDown = showdown != 0
	if winners != "" {
		h.Winners = strings.Split(winners, ",")
	}
	return &h, nil
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
