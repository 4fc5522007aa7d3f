package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/diary/internal/dbx"
)

const (
	keyUserName    = "username"
	keyAccessToken = "access_token"
)

// ErrNoSession is returned by Load when nobody is logged in.
var ErrNoSession = errors.New("no saved session")

// Session is the saved login.
type Session struct {
	UserName    string
	AccessToken string
}

// Store keeps a Session in the session key/value table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func get(ctx context.Context, q dbx.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

func set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// Save replaces the stored session in one transaction.
func (s *Store) Save(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyUserName, sess.UserName); err != nil {
			return err
		}
		return set(ctx, tx, keyAccessToken, sess.AccessToken)
	})
}

// Load returns the stored session or ErrNoSession.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	userName, err := get(ctx, s.db, keyUserName)
	if err == nil {
		var token string
		token, err = get(ctx, s.db, keyAccessToken)
		if err == nil {
			return &Session{UserName: userName, AccessToken: token}, nil
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	return nil, fmt.Errorf("failed to load session: %w", err)
}

// Clear forgets the stored session.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
