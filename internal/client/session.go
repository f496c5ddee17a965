package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dom/meucoracao/internal/client/migrations"
	"github.com/dom/meucoracao/internal/domain"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	keyToken = "jwt_token"
	keyUser  = "user_data"
)

// Session is the authenticated state kept between runs.
type Session struct {
	Token string
	User  domain.PublicUser
}

type SessionStore interface {
	// Load returns the persisted session, or nil when there is none.
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}

// SQLiteSessionStore keeps the session in the metadata table of a local
// SQLite file.
type SQLiteSessionStore struct {
	db *sql.DB
}

// OpenSessionStore opens or creates the database at path and brings its
// schema up to date.
func OpenSessionStore(ctx context.Context, path string) (*SQLiteSessionStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteSessionStore{db: db}, nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Load(ctx context.Context) (*Session, error) {
	token, err := s.get(ctx, keyToken)
	if err != nil || token == nil {
		return nil, err
	}

	session := &Session{Token: string(token)}

	userData, err := s.get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	if userData != nil {
		if err := json.Unmarshal(userData, &session.User); err != nil {
			return nil, fmt.Errorf("decode %s: %w", keyUser, err)
		}
	}

	return session, nil
}

func (s *SQLiteSessionStore) Save(ctx context.Context, session *Session) error {
	userData, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode %s: %w", keyUser, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for key, value := range map[string][]byte{keyToken: []byte(session.Token), keyUser: userData} {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteSessionStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteSessionStore) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}
