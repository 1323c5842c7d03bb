package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/tenant-notes/internal/models"
)

const noteColumns = `n.id, n.title, n.content, n.tenant_id, n.user_id, n.created_at, u.email`

func scanNote(row interface{ Scan(...any) error }) (*models.Note, error) {
	var n models.Note
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.TenantID, &n.UserID,
		&n.CreatedAt, &n.Author.Email); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListNotes возвращает все заметки арендатора с email автора,
// отсортированные по времени создания по убыванию.
func (s *Storage) ListNotes(ctx context.Context, tenantID string) ([]*models.Note, error) {
	const op = "storage.ListNotes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + noteColumns + `
			  FROM notes n
			  JOIN users u ON u.id = n.user_id
			  WHERE n.tenant_id = $1
			  ORDER BY n.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetNote возвращает заметку по ID строго в пределах арендатора.
// Заметка чужого арендатора неотличима от несуществующей: оба случая — ErrNotFound.
func (s *Storage) GetNote(ctx context.Context, noteID, tenantID string) (*models.Note, error) {
	const op = "storage.GetNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + noteColumns + `
			  FROM notes n
			  JOIN users u ON u.id = n.user_id
			  WHERE n.id = $1 AND n.tenant_id = $2`
	n, err := scanNote(s.DB.QueryRowContext(ctx, query, noteID, tenantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// CreateNote вставляет заметку, атомарно проверяя лимит тарифа FREE.
// Строка арендатора блокируется (SELECT ... FOR UPDATE), поэтому два
// конкурентных создания не могут одновременно пройти проверку счётчика.
func (s *Storage) CreateNote(ctx context.Context, note models.Note, freeLimit int) (*models.Note, error) {
	const op = "storage.CreateNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var plan string
	query := `SELECT plan FROM tenants WHERE id = $1 FOR UPDATE`
	if err = tx.QueryRowContext(ctx, query, note.TenantID).Scan(&plan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if plan == models.PlanFree {
		var count int
		query = `SELECT COUNT(*) FROM notes WHERE tenant_id = $1`
		if err = tx.QueryRowContext(ctx, query, note.TenantID).Scan(&count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if count >= freeLimit {
			return nil, fmt.Errorf("%s: %w", op, ErrNoteLimitExceeded)
		}
	}

	var created models.Note
	query = `INSERT INTO notes (title, content, tenant_id, user_id)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, title, content, tenant_id, user_id, created_at`
	if err = tx.QueryRowContext(ctx, query,
		note.Title, note.Content, note.TenantID, note.UserID).
		Scan(&created.ID, &created.Title, &created.Content,
			&created.TenantID, &created.UserID, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `SELECT email FROM users WHERE id = $1`
	if err = tx.QueryRowContext(ctx, query, note.UserID).Scan(&created.Author.Email); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// UpdateNote обновляет заголовок и содержимое заметки в пределах арендатора.
// Поля принадлежности (tenant_id, user_id) не меняются.
func (s *Storage) UpdateNote(ctx context.Context, noteID, tenantID, title, content string) (*models.Note, error) {
	const op = "storage.UpdateNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notes n SET title = $1, content = $2
			  FROM users u
			  WHERE n.id = $3 AND n.tenant_id = $4 AND u.id = n.user_id
			  RETURNING ` + noteColumns
	n, err := scanNote(s.DB.QueryRowContext(ctx, query, title, content, noteID, tenantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// RemoveNote удаляет заметку по ID в пределах арендатора.
func (s *Storage) RemoveNote(ctx context.Context, noteID, tenantID string) error {
	const op = "storage.RemoveNote"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM notes WHERE id = $1 AND tenant_id = $2`
	result, err := s.DB.ExecContext(ctx, query, noteID, tenantID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// CountNotes возвращает число заметок арендатора.
func (s *Storage) CountNotes(ctx context.Context, tenantID string) (int, error) {
	const op = "storage.CountNotes"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM notes WHERE tenant_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
