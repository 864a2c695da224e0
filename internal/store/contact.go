// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"portfolio/internal/models"
)

// ContactStore persists contact form submissions.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore returns a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, name, email, subject, message, phone, ip_address, is_read, replied_at, created_at`

func scanContact(scanner interface{ Scan(...any) error }) (*models.ContactMessage, error) {
	var m models.ContactMessage
	err := scanner.Scan(
		&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Phone,
		&m.IPAddress, &m.IsRead, &m.RepliedAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create stores a new message. The database sets created_at, leaves it
// unread and unreplied.
func (s *ContactStore) Create(m *models.ContactMessage) (*models.ContactMessage, error) {
	row := s.db.QueryRow(`
		INSERT INTO contact_messages (name, email, subject, message, phone, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+contactColumns,
		m.Name, m.Email, m.Subject, m.Message, m.Phone, m.IPAddress,
	)
	result, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return result, nil
}

// FindByID retrieves a message. Returns nil if not found.
func (s *ContactStore) FindByID(id uuid.UUID) (*models.ContactMessage, error) {
	m, err := scanContact(s.db.QueryRow(`SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find contact message: %w", err)
	}
	return m, nil
}

// List returns messages newest first. When unreadOnly is set, read
// messages are skipped.
func (s *ContactStore) List(limit int, unreadOnly bool) ([]models.ContactMessage, error) {
	b := psql.Select(contactColumns).From("contact_messages").OrderBy("created_at DESC", "id")
	if unreadOnly {
		b = b.Where(sq.Eq{"is_read": false})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build contact list: %w", err)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var items []models.ContactMessage
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (s *ContactStore) update(ids []uuid.UUID, set map[string]any) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := psql.Update("contact_messages").
		SetMap(set).
		Where(sq.Eq{"id": idStrings(uniqueIDs(ids))}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build contact update: %w", err)
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("update contact messages: %w", err)
	}
	return res.RowsAffected()
}

// MarkRead flags messages as read.
func (s *ContactStore) MarkRead(ids []uuid.UUID) (int64, error) {
	return s.update(ids, map[string]any{"is_read": true})
}

// MarkUnread clears the read flag. This is the only backward transition;
// replied_at is left untouched.
func (s *ContactStore) MarkUnread(ids []uuid.UUID) (int64, error) {
	return s.update(ids, map[string]any{"is_read": false})
}

// MarkReplied records the first reply time and marks messages read.
func (s *ContactStore) MarkReplied(ids []uuid.UUID) (int64, error) {
	return s.update(ids, map[string]any{
		"is_read":    true,
		"replied_at": sq.Expr("COALESCE(replied_at, NOW())"),
	})
}
