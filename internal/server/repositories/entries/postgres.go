package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/dmitrijs2005/diary/internal/dbx"
	"github.com/dmitrijs2005/diary/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// newID is a seam for tests.
var newID = uuid.NewString

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*models.Entry, error) {
	query := `SELECT id, title, writer, date, text, image FROM diary
		ORDER BY seq
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		var item models.Entry
		if err := rows.Scan(&item.ID, &item.Title, &item.Writer, &item.Date, &item.Text, &item.Image); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `INSERT INTO diary (id, title, writer, date, text, image)
		VALUES ($1, $2, $3, $4, $5, $6)`

	id := newID()
	_, err := r.db.ExecContext(ctx, query, id, entry.Title, entry.Writer, entry.Date, entry.Text, entry.Image)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	entry.ID = id
	return entry, nil
}

// Update uses COALESCE so that NULL parameters keep the stored value.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch *models.EntryPatch) (*models.Entry, error) {
	if patch == nil {
		patch = &models.EntryPatch{}
	}

	query := `UPDATE diary SET
			title = COALESCE($2, title),
			writer = COALESCE($3, writer),
			date = COALESCE($4, date),
			text = COALESCE($5, text),
			image = COALESCE($6, image)
		WHERE id = $1
		RETURNING id, title, writer, date, text, image`

	var item models.Entry
	err := r.db.QueryRowContext(ctx, query, id,
		nullable(patch.Title), nullable(patch.Writer), nullable(patch.Date), nullable(patch.Text), nullable(patch.Image),
	).Scan(&item.ID, &item.Title, &item.Writer, &item.Date, &item.Text, &item.Image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diary WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
