// Package repository реализует хранилище данных на основе PostgreSQL
// для арендаторов, пользователей, заметок и подписок. Все методы работы
// с заметками фильтруют по tenant_id вызывающего принципала.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Обработчики и сервисы сравнивают их через errors.Is.
var (
	// ErrNotFound возвращается, когда запрошенная запись отсутствует
	// либо принадлежит другому арендатору — снаружи эти случаи неразличимы.
	ErrNotFound = errors.New("not found")
	// ErrNoteLimitExceeded возвращается при попытке превысить лимит заметок
	// тарифа FREE.
	ErrNoteLimitExceeded = errors.New("note limit exceeded")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Ping проверяет готовность базы данных.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.Ping"
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с базой данных.
func (s *Storage) Close() error {
	return s.DB.Close()
}
