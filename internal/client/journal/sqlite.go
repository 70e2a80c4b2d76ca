package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/usersadmin/internal/client/migrations"
	"github.com/dmitrijs2005/usersadmin/internal/dbx"
	"github.com/google/uuid"
)

// DefaultRecent is the page size of Recent when limit is not positive.
const DefaultRecent = 20

var nowFn = time.Now

// SQLiteRepository implements Repository on a migrated SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open opens the journal database at path and applies pending migrations.
func Open(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := dbx.OpenSQLite(ctx, path, migrations.Migrations)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	return NewSQLiteRepository(db), nil
}

// NewSQLiteRepository wraps an already migrated database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Append(ctx context.Context, e Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = nowFn()
	}

	query := `INSERT INTO journal (id, action, user_id, username, outcome, detail, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID.String(), string(e.Action), e.UserID, e.Username, string(e.Outcome), e.Detail, e.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecent
	}

	query := `SELECT id, action, user_id, username, outcome, detail, created_at
			FROM journal ORDER BY seq DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select journal entries: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var (
			e       Entry
			id      string
			action  string
			outcome string
			created int64
		)
		if err := rows.Scan(&id, &action, &e.UserID, &e.Username, &outcome, &e.Detail, &created); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt journal id %q: %w", id, err)
		}
		e.Action = Action(action)
		e.Outcome = Outcome(outcome)
		e.CreatedAt = time.Unix(0, created)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Clear removes all entries and restarts the insertion sequence.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM journal`); err != nil {
			return fmt.Errorf("failed to clear journal: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'journal'`); err != nil {
			return fmt.Errorf("failed to reset journal sequence: %w", err)
		}
		return nil
	})
}
