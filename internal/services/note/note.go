// Package services содержит бизнес-логику работы с заметками,
// всегда ограниченную арендатором принципала.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/tenant-notes/internal/models"
	"github.com/magabrotheeeer/tenant-notes/internal/storage/repository"
)

var (
	// ErrNoteNotFound возвращается и для несуществующей заметки, и для
	// заметки чужого арендатора — снаружи случаи неразличимы.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNoteLimitReached возвращается при достижении лимита тарифа FREE.
	ErrNoteLimitReached = errors.New("note limit reached")
)

// NoteRepository определяет методы для работы с заметками в хранилище.
type NoteRepository interface {
	// ListNotes возвращает заметки арендатора, новые первыми.
	ListNotes(ctx context.Context, tenantID string) ([]*models.Note, error)
	// GetNote возвращает заметку по ID в пределах арендатора.
	GetNote(ctx context.Context, noteID, tenantID string) (*models.Note, error)
	// CreateNote вставляет заметку с атомарной проверкой лимита FREE.
	CreateNote(ctx context.Context, note models.Note, freeLimit int) (*models.Note, error)
	// UpdateNote обновляет заголовок и содержимое в пределах арендатора.
	UpdateNote(ctx context.Context, noteID, tenantID, title, content string) (*models.Note, error)
	// RemoveNote удаляет заметку по ID в пределах арендатора.
	RemoveNote(ctx context.Context, noteID, tenantID string) error
}

// NoteService реализует тарифно-ограниченный CRUD заметок арендатора.
type NoteService struct {
	repo      NoteRepository
	log       *slog.Logger
	freeLimit int
}

// NewNoteService создает новый NoteService. freeLimit — максимум заметок
// на тарифе FREE.
func NewNoteService(repo NoteRepository, log *slog.Logger, freeLimit int) *NoteService {
	return &NoteService{
		repo:      repo,
		log:       log,
		freeLimit: freeLimit,
	}
}

// List возвращает все заметки арендатора принципала с email автора.
func (s *NoteService) List(ctx context.Context, p models.Principal) ([]*models.Note, error) {
	return s.repo.ListNotes(ctx, p.TenantID)
}

// Get возвращает заметку по ID, если она принадлежит арендатору принципала.
func (s *NoteService) Get(ctx context.Context, p models.Principal, noteID string) (*models.Note, error) {
	note, err := s.repo.GetNote(ctx, noteID, p.TenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

// Create создает заметку от имени принципала. Отсутствующее содержимое
// сохраняется пустой строкой. Для тарифа FREE действует лимит freeLimit.
func (s *NoteService) Create(ctx context.Context, p models.Principal, title, content string) (*models.Note, error) {
	note := models.Note{
		Title:    title,
		Content:  content,
		TenantID: p.TenantID,
		UserID:   p.UserID,
	}
	created, err := s.repo.CreateNote(ctx, note, s.freeLimit)
	if err != nil {
		if errors.Is(err, repository.ErrNoteLimitExceeded) {
			return nil, ErrNoteLimitReached
		}
		return nil, err
	}

	s.log.Info("created new note",
		slog.String("note_id", created.ID),
		slog.String("tenant_id", created.TenantID))
	return created, nil
}

// Update меняет заголовок и содержимое заметки арендатора принципала.
func (s *NoteService) Update(ctx context.Context, p models.Principal, noteID, title, content string) (*models.Note, error) {
	updated, err := s.repo.UpdateNote(ctx, noteID, p.TenantID, title, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Remove удаляет заметку арендатора принципала.
func (s *NoteService) Remove(ctx context.Context, p models.Principal, noteID string) error {
	if err := s.repo.RemoveNote(ctx, noteID, p.TenantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("note.Remove: %w", err)
	}
	return nil
}
