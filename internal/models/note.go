package models

import "time"

// Note представляет заметку, принадлежащую арендатору и её автору.
// Поле Author заполняется при чтении из хранилища (join с таблицей users).
type Note struct {
	ID        string     `json:"id"`        // Уникальный идентификатор заметки
	Title     string     `json:"title"`     // Заголовок (обязательный)
	Content   string     `json:"content"`   // Текст заметки, по умолчанию пустая строка
	TenantID  string     `json:"tenantId"`  // Идентификатор арендатора
	UserID    string     `json:"userId"`    // Идентификатор автора
	CreatedAt time.Time  `json:"createdAt"` // Время создания
	Author    NoteAuthor `json:"user"`      // Данные автора для выдачи клиенту
}

// NoteAuthor содержит публичные данные автора заметки.
type NoteAuthor struct {
	Email string `json:"email"`
}
